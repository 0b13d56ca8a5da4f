package service

import (
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/internal/models"
	"github.com/inkwell-app/inkwell/internal/repository"
)

type PermissionService struct {
	permissions *repository.PermissionRepository
}

func NewPermissionService(permissions *repository.PermissionRepository) *PermissionService {
	return &PermissionService{permissions: permissions}
}

func (s *PermissionService) Count() (int64, error) {
	return s.permissions.Count()
}

func (s *PermissionService) List(offset, limit int) ([]models.Permission, int64, error) {
	count, err := s.permissions.Count()
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to count permissions")
	}
	permissions, err := s.permissions.List(offset, limit)
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to list permissions")
	}
	return permissions, count, nil
}

func (s *PermissionService) Get(id uint64) (*models.Permission, error) {
	permission, err := s.permissions.GetByID(id)
	if err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to load permission")
	}
	if permission == nil || permission.Deleted {
		return nil, httperr.New(httperr.NotFound, "permission not found")
	}
	return permission, nil
}

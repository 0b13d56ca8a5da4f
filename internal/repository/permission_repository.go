package repository

import (
	"errors"

	"github.com/inkwell-app/inkwell/internal/models"
	"gorm.io/gorm"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Permission{}).Scopes(Listable).Count(&count).Error
	return count, err
}

func (r *PermissionRepository) List(offset, limit int) ([]models.Permission, error) {
	var permissions []models.Permission
	err := r.db.Scopes(Listable).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&permissions).Error
	return permissions, err
}

func (r *PermissionRepository) GetByID(id uint64) (*models.Permission, error) {
	var permission models.Permission
	err := r.db.First(&permission, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &permission, nil
}

func (r *PermissionRepository) GetByName(name string) (*models.Permission, error) {
	var permission models.Permission
	err := r.db.Scopes(Listable).Where("name = ?", name).First(&permission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &permission, nil
}

func (r *PermissionRepository) Create(permission *models.Permission) error {
	return r.db.Create(permission).Error
}

package service

import (
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/internal/models"
	"github.com/inkwell-app/inkwell/internal/repository"
	"github.com/inkwell-app/inkwell/internal/utils"
	"github.com/inkwell-app/inkwell/pkg/logger"
	"go.uber.org/zap"
)

type UserService struct {
	users       *repository.UserRepository
	permissions *repository.PermissionRepository
	hasher      *utils.Hasher
}

func NewUserService(users *repository.UserRepository, permissions *repository.PermissionRepository, hasher *utils.Hasher) *UserService {
	return &UserService{users: users, permissions: permissions, hasher: hasher}
}

func (s *UserService) Count() (int64, error) {
	return s.users.Count()
}

func (s *UserService) List(offset, limit int) ([]models.User, int64, error) {
	count, err := s.users.Count()
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to count users")
	}
	users, err := s.users.List(offset, limit)
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to list users")
	}
	return users, count, nil
}

func (s *UserService) Get(id uint64) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to load user")
	}
	if user == nil || user.Deleted {
		return nil, httperr.New(httperr.NotFound, "user not found")
	}
	return user, nil
}

// UpdateProfile applies a partial update to the identity row. Only the named
// fields are touched.
func (s *UserService) UpdateProfile(id uint64, username *string, anonym *bool) (*models.User, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if username != nil {
		if len(*username) > 50 {
			return nil, httperr.New(httperr.BadRequest, "username must be at most 50 characters")
		}
		fields["username"] = *username
	}
	if anonym != nil {
		fields["anonym"] = *anonym
	}
	if len(fields) == 0 {
		return nil, httperr.New(httperr.BadRequest, "nothing to update")
	}

	if err := s.users.Update(id, fields); err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to update user")
	}
	return s.Get(id)
}

// RotateCredential replaces the password: fresh salt, fresh digest, one
// update.
func (s *UserService) RotateCredential(id uint64, newPassword string) error {
	if len(newPassword) < 8 {
		return httperr.New(httperr.BadRequest, "password must be at least 8 characters")
	}
	if _, err := s.Get(id); err != nil {
		return err
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to generate salt")
	}
	if err := s.users.RotateCredential(id, salt, s.hasher.Hash(newPassword, salt)); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to rotate credential")
	}

	logger.Log.Info("credential rotated", zap.Uint64("user_id", id))
	return nil
}

func (s *UserService) UpdateOption(id uint64, newsletter, publicProfile *bool) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	fields := map[string]interface{}{}
	if newsletter != nil {
		fields["newsletter"] = *newsletter
	}
	if publicProfile != nil {
		fields["public_profile"] = *publicProfile
	}
	if len(fields) == 0 {
		return httperr.New(httperr.BadRequest, "nothing to update")
	}
	if err := s.users.UpdateOption(id, fields); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to update option")
	}
	return nil
}

func (s *UserService) UpdateDetail(id uint64, fields map[string]interface{}) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if len(fields) == 0 {
		return httperr.New(httperr.BadRequest, "nothing to update")
	}
	if err := s.users.UpdateDetail(id, fields); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to update detail")
	}
	return nil
}

func (s *UserService) Validate(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.users.MarkValidated(id); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to validate user")
	}
	logger.Log.Info("user validated", zap.Uint64("user_id", id))
	return nil
}

func (s *UserService) Ban(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.users.MarkBanned(id); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to ban user")
	}
	logger.Log.Info("user banned", zap.Uint64("user_id", id))
	return nil
}

func (s *UserService) SoftDelete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.users.MarkDeleted(id); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to retire user")
	}
	return nil
}

// Erase is the account-erasure path: the user row and all dependents are
// physically removed in one transaction.
func (s *UserService) Erase(id uint64) error {
	user, err := s.users.GetByID(id)
	if err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to load user")
	}
	if user == nil {
		return httperr.New(httperr.NotFound, "user not found")
	}
	if err := s.users.HardDelete(id); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to erase account")
	}
	logger.Log.Info("account erased", zap.Uint64("user_id", id))
	return nil
}

func (s *UserService) ListPermissions(id uint64) ([]models.UserPermission, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	links, err := s.users.ListPermissions(id)
	if err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to list permissions")
	}
	return links, nil
}

func (s *UserService) Grant(id uint64, permissionName string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	perm, err := s.permissions.GetByName(permissionName)
	if err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to load permission")
	}
	if perm == nil {
		return httperr.Newf(httperr.BadRequest, "unknown permission %q", permissionName)
	}
	if err := s.users.GrantPermission(id, perm.ID); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to grant permission")
	}
	logger.Log.Info("permission granted",
		zap.Uint64("user_id", id),
		zap.String("permission", permissionName),
	)
	return nil
}

func (s *UserService) Revoke(id uint64, permissionName string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	perm, err := s.permissions.GetByName(permissionName)
	if err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to load permission")
	}
	if perm == nil {
		return httperr.Newf(httperr.BadRequest, "unknown permission %q", permissionName)
	}
	if err := s.users.RevokePermission(id, perm.ID); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to revoke permission")
	}
	logger.Log.Info("permission revoked",
		zap.Uint64("user_id", id),
		zap.String("permission", permissionName),
	)
	return nil
}

package repository

import (
	"errors"
	"time"

	"github.com/inkwell-app/inkwell/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Scopes(Listable).Count(&count).Error
	return count, err
}

func (r *UserRepository) List(offset, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Scopes(Listable).
		Preload("Option").
		Preload("Detail").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	return users, err
}

// GetByID loads a user regardless of status flags; callers inspect banned and
// deleted themselves. Returns nil when no row exists.
func (r *UserRepository) GetByID(id uint64) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Option").Preload("Detail").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateWithDependents inserts the user row and its credential, option and
// detail rows in one transaction. A failure anywhere rolls the whole set
// back; a partial account is never persisted.
func (r *UserRepository) CreateWithDependents(user *models.User, cred *models.UserCredential, opt *models.UserOption, det *models.UserDetail) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		cred.UserID = user.ID
		opt.UserID = user.ID
		det.UserID = user.ID

		if err := tx.Create(cred).Error; err != nil {
			return err
		}
		if err := tx.Create(opt).Error; err != nil {
			return err
		}
		return tx.Create(det).Error
	})
}

func (r *UserRepository) Update(id uint64, fields map[string]interface{}) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

// MarkValidated flips the validated flag and stamps validated_at, exactly
// once. An already-validated user is left untouched.
func (r *UserRepository) MarkValidated(id uint64) error {
	return r.db.Model(&models.User{}).
		Where("id = ? AND validated = ?", id, false).
		Updates(statusMark("validated", time.Now())).Error
}

func (r *UserRepository) MarkBanned(id uint64) error {
	return r.db.Model(&models.User{}).
		Where("id = ? AND banned = ?", id, false).
		Updates(statusMark("banned", time.Now())).Error
}

// MarkDeleted soft-deletes the user and retires all permission links in one
// transaction. The 1:1 dependents stay in place; they are only reachable
// through the user row.
func (r *UserRepository) MarkDeleted(id uint64) error {
	now := time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).
			Where("id = ? AND deleted = ?", id, false).
			Updates(statusMark("deleted", now)).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.UserPermission{}).
			Where("user_id = ? AND deleted = ?", id, false).
			Updates(statusMark("deleted", now)).Error
	})
}

// HardDelete erases the account: the user row and all four dependent tables
// go in one transaction. This is the only physical-delete path for users.
func (r *UserRepository) HardDelete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.UserPermission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserCredential{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

func (r *UserRepository) GetCredential(userID uint64) (*models.UserCredential, error) {
	var cred models.UserCredential
	err := r.db.Where("user_id = ?", userID).First(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cred, nil
}

// RotateCredential replaces salt and digest together; they are never updated
// independently.
func (r *UserRepository) RotateCredential(userID uint64, salt, digest string) error {
	return r.db.Model(&models.UserCredential{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"salt": salt, "digest": digest}).Error
}

func (r *UserRepository) UpdateOption(userID uint64, fields map[string]interface{}) error {
	return r.db.Model(&models.UserOption{}).Where("user_id = ?", userID).Updates(fields).Error
}

func (r *UserRepository) UpdateDetail(userID uint64, fields map[string]interface{}) error {
	return r.db.Model(&models.UserDetail{}).Where("user_id = ?", userID).Updates(fields).Error
}

// GetPermissionNames returns the active permission names for a user, skipping
// retired links and retired permissions.
func (r *UserRepository) GetPermissionNames(userID uint64) ([]string, error) {
	var names []string
	err := r.db.Table("user_permissions").
		Joins("JOIN permissions ON permissions.id = user_permissions.permission_id").
		Where("user_permissions.user_id = ?", userID).
		Where("user_permissions.deleted = ?", false).
		Where("permissions.deleted = ?", false).
		Pluck("permissions.name", &names).Error
	return names, err
}

func (r *UserRepository) ListPermissions(userID uint64) ([]models.UserPermission, error) {
	var links []models.UserPermission
	err := r.db.Scopes(Listable).
		Preload("Permission").
		Where("user_id = ?", userID).
		Find(&links).Error
	return links, err
}

// GrantPermission links a permission to a user. Re-granting an active link is
// a no-op.
func (r *UserRepository) GrantPermission(userID, permissionID uint64) error {
	var existing models.UserPermission
	err := r.db.Where("user_id = ? AND permission_id = ? AND deleted = ?", userID, permissionID, false).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(&models.UserPermission{UserID: userID, PermissionID: permissionID}).Error
}

// RevokePermission retires every active link for the pair.
func (r *UserRepository) RevokePermission(userID, permissionID uint64) error {
	return r.db.Model(&models.UserPermission{}).
		Where("user_id = ? AND permission_id = ? AND deleted = ?", userID, permissionID, false).
		Updates(statusMark("deleted", time.Now())).Error
}

package models

import "time"

// Permission is a named capability, e.g. "update-user" or "publish-blog".
type Permission struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`

	Deleted   bool       `gorm:"default:false;index" json:"-"`
	DeletedAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserPermission links a user to a permission. Soft-deletable on its own, so
// a capability can be revoked without touching either parent row.
type UserPermission struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID       uint64 `gorm:"index;not null" json:"-"`
	PermissionID uint64 `gorm:"index;not null" json:"-"`

	Deleted   bool       `gorm:"default:false;index" json:"-"`
	DeletedAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`

	Permission Permission `gorm:"foreignKey:PermissionID" json:"permission"`
}

package models

import "time"

// User is the identity row. The four dependent rows (credential, option,
// detail, permission links) are created and destroyed atomically with it.
type User struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	Email    string `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Username string `gorm:"type:varchar(50)" json:"username"`
	Anonym   bool   `gorm:"default:false" json:"anonym"`

	Validated   bool       `gorm:"default:false" json:"validated"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
	Banned      bool       `gorm:"default:false;index" json:"banned"`
	BannedAt    *time.Time `json:"banned_at,omitempty"`
	Deleted     bool       `gorm:"default:false;index" json:"-"`
	DeletedAt   *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Credential  *UserCredential  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Option      *UserOption      `gorm:"constraint:OnDelete:CASCADE" json:"option,omitempty"`
	Detail      *UserDetail      `gorm:"constraint:OnDelete:CASCADE" json:"detail,omitempty"`
	Permissions []UserPermission `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// UserCredential holds the salted password digest. Salt and digest are only
// ever rotated together.
type UserCredential struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID uint64 `gorm:"uniqueIndex;not null" json:"-"`
	Digest string `gorm:"type:varchar(255);not null" json:"-"`
	Salt   string `gorm:"type:varchar(64);not null" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// UserOption holds per-user preferences, 1:1 with User.
type UserOption struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID uint64 `gorm:"uniqueIndex;not null" json:"-"`

	Newsletter    bool `gorm:"default:false" json:"newsletter"`
	PublicProfile bool `gorm:"default:true" json:"public_profile"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// UserDetail holds free-form profile metadata, 1:1 with User.
type UserDetail struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID uint64 `gorm:"uniqueIndex;not null" json:"-"`

	FullName  string `gorm:"type:varchar(100)" json:"full_name"`
	Bio       string `gorm:"type:text" json:"bio"`
	AvatarURL string `gorm:"type:varchar(255)" json:"avatar_url"`
	Location  string `gorm:"type:varchar(100)" json:"location"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

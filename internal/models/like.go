package models

import "time"

// Like marks a user's appreciation of a blog. Unliking soft-deletes the row.
type Like struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	BlogID uint64 `gorm:"index;not null" json:"-"`
	UserID uint64 `gorm:"index;not null" json:"-"`

	Deleted   bool       `gorm:"default:false;index" json:"-"`
	DeletedAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`

	Blog Blog `gorm:"foreignKey:BlogID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}

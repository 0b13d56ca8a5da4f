package models

import "time"

type Comment struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	BlogID   uint64 `gorm:"index;not null" json:"-"`
	AuthorID uint64 `gorm:"index;not null" json:"-"`

	Content string `gorm:"type:text;not null" json:"content"`

	Reviewed   bool       `gorm:"default:false" json:"reviewed"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	Approved   bool       `gorm:"default:false" json:"approved"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	Deleted    bool       `gorm:"default:false;index" json:"-"`
	DeletedAt  *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Blog   Blog `gorm:"foreignKey:BlogID" json:"-"`
	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

package models

import "time"

type Category struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`

	Deleted   bool       `gorm:"default:false;index" json:"-"`
	DeletedAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

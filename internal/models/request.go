package models

import "time"

// Request is a user-filed support/contact request. Creation and update go
// through channels outside this API; the API only lists, reads and retires
// them.
type Request struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID uint64 `gorm:"index;not null" json:"-"`

	Subject string `gorm:"type:varchar(200);not null" json:"subject"`
	Body    string `gorm:"type:text" json:"body"`

	Deleted   bool       `gorm:"default:false;index" json:"-"`
	DeletedAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

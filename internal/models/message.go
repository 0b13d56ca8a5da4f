package models

import "time"

// Message is a direct message between two users. Either party counts as the
// owner for authorization purposes.
type Message struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	SenderID   uint64 `gorm:"index;not null" json:"-"`
	ReceiverID uint64 `gorm:"index;not null" json:"-"`

	Content string `gorm:"type:text;not null" json:"content"`

	Deleted   bool       `gorm:"default:false;index" json:"-"`
	DeletedAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sender   User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"-"`
}

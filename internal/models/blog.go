package models

import "time"

// Blog is a diary entry. Moderation walks it through reviewed, approved and
// published; each flag carries its transition timestamp and is set once.
type Blog struct {
	ID         uint64  `gorm:"primaryKey;autoIncrement" json:"-"`
	AuthorID   uint64  `gorm:"index;not null" json:"-"`
	CategoryID *uint64 `gorm:"index" json:"-"`

	Title   string `gorm:"type:varchar(200);not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`

	Reviewed    bool       `gorm:"default:false" json:"reviewed"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	Approved    bool       `gorm:"default:false" json:"approved"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	Published   bool       `gorm:"default:false;index" json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Banned      bool       `gorm:"default:false" json:"banned"`
	BannedAt    *time.Time `json:"banned_at,omitempty"`
	Deleted     bool       `gorm:"default:false;index" json:"-"`
	DeletedAt   *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author   User      `gorm:"foreignKey:AuthorID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

package repository

import (
	"time"

	"gorm.io/gorm"
)

// Listable keeps only rows readers are allowed to see: soft-deleted rows are
// invisible to every list and count.
func Listable(db *gorm.DB) *gorm.DB {
	return db.Where("deleted = ?", false)
}

// statusMark pairs a boolean status flag with its transition timestamp. The
// two always change together.
func statusMark(flag string, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		flag:         true,
		flag + "_at": now,
	}
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Audit carries the bookkeeping columns shared by every stored entity.
// It is embedded rather than inherited so each entity keeps its own table shape.
type Audit struct {
	CreatedAt time.Time      `json:"created_at" gorm:"not null;index"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty" gorm:"autoUpdateTime:false"`
	IsDeleted bool           `json:"-" gorm:"not null;default:false"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// MarkDeleted flags the entity as soft-deleted at the given instant.
func (a *Audit) MarkDeleted(at time.Time) {
	a.IsDeleted = true
	a.DeletedAt = gorm.DeletedAt{Time: at, Valid: true}
}

// Touch records a modification time.
func (a *Audit) Touch(at time.Time) {
	t := at
	a.UpdatedAt = &t
}

// Version identifies the current revision of the row, used for cache keys.
func (a Audit) Version() int64 {
	if a.UpdatedAt != nil {
		return a.UpdatedAt.UnixNano()
	}
	return a.CreatedAt.UnixNano()
}

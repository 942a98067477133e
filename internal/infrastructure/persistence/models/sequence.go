package models

import (
	"github.com/google/uuid"
)

// NumberSequenceModel backs per-user document numbering. One row per
// (user, kind, year); the counter row is locked while a number is issued
// so concurrent creations never share one.
type NumberSequenceModel struct {
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind    string    `gorm:"type:varchar(10);primaryKey"`
	Year    int       `gorm:"primaryKey"`
	Counter int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (NumberSequenceModel) TableName() string {
	return "number_sequences"
}

package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/billing/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// nextSequenceNumber issues the next document number from the per-user,
// per-kind, per-year counter row. The row is read under a write lock so
// two concurrent issuances cannot observe the same counter value; callers
// run inside a transaction, which holds the lock until commit.
func nextSequenceNumber(ctx context.Context, db *gorm.DB, userID uuid.UUID, kind string, prefix string, year int) (string, error) {
	var seq models.NumberSequenceModel
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND kind = ? AND year = ?", userID, kind, year).
		First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq = models.NumberSequenceModel{UserID: userID, Kind: kind, Year: year, Counter: 0}
		if err := db.WithContext(ctx).Create(&seq).Error; err != nil {
			return "", err
		}
	} else if err != nil {
		return "", err
	}

	seq.Counter++
	if err := db.WithContext(ctx).
		Model(&models.NumberSequenceModel{}).
		Where("user_id = ? AND kind = ? AND year = ?", userID, kind, year).
		Update("counter", seq.Counter).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq.Counter), nil
}

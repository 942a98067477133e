package persistence

import (
	"context"
	"testing"

	"github.com/billing/backend/internal/domain/company"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProfileTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.CompanyProfileModel{})
	require.NoError(t, err)

	return db
}

func newTestProfile(t *testing.T, userID uuid.UUID, name string) *company.Profile {
	profile, err := company.NewProfile(userID, name, "SI")
	require.NoError(t, err)
	return profile
}

func TestProfileRepository_SaveAndFind(t *testing.T) {
	db := setupProfileTestDB(t)
	repo := NewGormProfileRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("saves and finds by ID for owner", func(t *testing.T) {
		profile := newTestProfile(t, userID, "Studio Alfa")
		require.NoError(t, repo.Save(ctx, profile))

		found, err := repo.FindByIDForUser(ctx, userID, profile.ID)
		require.NoError(t, err)
		assert.Equal(t, profile.ID, found.ID)
		assert.Equal(t, "Studio Alfa", found.Name)
		assert.Equal(t, "SI", found.Country)
		assert.False(t, found.IsDefault)
	})

	t.Run("hides profiles of other users", func(t *testing.T) {
		profile := newTestProfile(t, userID, "Hidden")
		require.NoError(t, repo.Save(ctx, profile))

		_, err := repo.FindByIDForUser(ctx, uuid.New(), profile.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProfileRepository_DefaultLookup(t *testing.T) {
	db := setupProfileTestDB(t)
	repo := NewGormProfileRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("returns not found when no default exists", func(t *testing.T) {
		_, err := repo.FindDefaultForUser(ctx, userID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("finds the default profile", func(t *testing.T) {
		regular := newTestProfile(t, userID, "Secondary")
		require.NoError(t, repo.Save(ctx, regular))

		def := newTestProfile(t, userID, "Primary")
		def.MarkDefault()
		require.NoError(t, repo.Save(ctx, def))

		found, err := repo.FindDefaultForUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, def.ID, found.ID)
		assert.True(t, found.IsDefault)
	})

	t.Run("default of one user is invisible to another", func(t *testing.T) {
		_, err := repo.FindDefaultForUser(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProfileRepository_DefaultSwap(t *testing.T) {
	db := setupProfileTestDB(t)
	repo := NewGormProfileRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	first := newTestProfile(t, userID, "First")
	first.MarkDefault()
	second := newTestProfile(t, userID, "Second")
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	// Move the flag from first to second the way the service does it:
	// load everything under lock, flip flags in memory, write both back.
	profiles, err := repo.FindAllForUserForUpdate(ctx, userID)
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	updated := make([]*company.Profile, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		if p.ID == second.ID {
			p.MarkDefault()
		} else if p.IsDefault {
			p.ClearDefault()
		}
		updated = append(updated, p)
	}
	require.NoError(t, repo.SaveAll(ctx, updated))

	found, err := repo.FindDefaultForUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)

	var defaults int64
	require.NoError(t, db.Model(&models.CompanyProfileModel{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Count(&defaults).Error)
	assert.Equal(t, int64(1), defaults)
}

func TestProfileRepository_CountAndDelete(t *testing.T) {
	db := setupProfileTestDB(t)
	repo := NewGormProfileRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	a := newTestProfile(t, userID, "A")
	b := newTestProfile(t, userID, "B")
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))
	require.NoError(t, repo.Save(ctx, newTestProfile(t, uuid.New(), "Other")))

	count, err := repo.CountForUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.Delete(ctx, b.ID))

	count, err = repo.CountForUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = repo.FindByIDForUser(ctx, userID, b.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProfileRepository_ListFiltering(t *testing.T) {
	db := setupProfileTestDB(t)
	repo := NewGormProfileRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	ljubljana := newTestProfile(t, userID, "Atelier")
	ljubljana.City = "Ljubljana"
	maribor := newTestProfile(t, userID, "Workshop")
	maribor.City = "Maribor"
	require.NoError(t, repo.Save(ctx, ljubljana))
	require.NoError(t, repo.Save(ctx, maribor))

	filter := shared.DefaultFilter()
	filter.Search = "ljub"
	profiles, err := repo.FindAllForUser(ctx, userID, filter)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, ljubljana.ID, profiles[0].ID)
}

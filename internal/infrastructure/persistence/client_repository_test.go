package persistence

import (
	"context"
	"testing"

	"github.com/billing/backend/internal/domain/partner"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupClientTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.ClientModel{})
	require.NoError(t, err)

	return db
}

func newTestClient(t *testing.T, userID uuid.UUID, name string) *partner.Client {
	client, err := partner.NewClient(userID, name, "SI")
	require.NoError(t, err)
	return client
}

func TestClientRepository_Visibility(t *testing.T) {
	db := setupClientTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	otherID := uuid.New()
	curatorID := uuid.New()

	own := newTestClient(t, userID, "Own Client")
	foreign := newTestClient(t, otherID, "Foreign Client")
	central := newTestClient(t, curatorID, "Central Client")
	central.IsFromCentralRepo = true

	require.NoError(t, repo.Save(ctx, own))
	require.NoError(t, repo.Save(ctx, foreign))
	require.NoError(t, repo.Save(ctx, central))

	t.Run("lists own and central clients only", func(t *testing.T) {
		clients, err := repo.FindAllForUser(ctx, userID, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, clients, 2)

		ids := []uuid.UUID{clients[0].ID, clients[1].ID}
		assert.Contains(t, ids, own.ID)
		assert.Contains(t, ids, central.ID)
	})

	t.Run("central client is readable by any user", func(t *testing.T) {
		found, err := repo.FindByIDForUser(ctx, userID, central.ID)
		require.NoError(t, err)
		assert.True(t, found.IsFromCentralRepo)
		assert.Equal(t, "Central Client", found.Name)
	})

	t.Run("foreign private client is not found", func(t *testing.T) {
		_, err := repo.FindByIDForUser(ctx, userID, foreign.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("count follows the same visibility rule", func(t *testing.T) {
		count, err := repo.CountForUser(ctx, userID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestClientRepository_Search(t *testing.T) {
	db := setupClientTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	acme := newTestClient(t, userID, "Acme d.o.o.")
	acme.City = "Koper"
	acme.TaxNumber = "SI12345678"
	globex := newTestClient(t, userID, "Globex")
	globex.City = "Celje"
	require.NoError(t, repo.Save(ctx, acme))
	require.NoError(t, repo.Save(ctx, globex))

	t.Run("matches name case-insensitively", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "ACME"
		clients, err := repo.FindAllForUser(ctx, userID, filter)
		require.NoError(t, err)
		require.Len(t, clients, 1)
		assert.Equal(t, acme.ID, clients[0].ID)
	})

	t.Run("matches tax number", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "1234"
		clients, err := repo.FindAllForUser(ctx, userID, filter)
		require.NoError(t, err)
		require.Len(t, clients, 1)
		assert.Equal(t, acme.ID, clients[0].ID)
	})
}

func TestClientRepository_Pagination(t *testing.T) {
	db := setupClientTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	for _, name := range []string{"One", "Two", "Three", "Four", "Five"} {
		require.NoError(t, repo.Save(ctx, newTestClient(t, userID, name)))
	}

	filter := shared.DefaultFilter()
	filter.Page = 2
	filter.PageSize = 2
	filter.OrderBy = "name"
	filter.OrderDir = "asc"

	clients, err := repo.FindAllForUser(ctx, userID, filter)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "One", clients[0].Name)
	assert.Equal(t, "Three", clients[1].Name)

	count, err := repo.CountForUser(ctx, userID, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestClientRepository_SaveUpdatesAndDelete(t *testing.T) {
	db := setupClientTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	client := newTestClient(t, userID, "Before")
	require.NoError(t, repo.Save(ctx, client))

	name := "After"
	city := "Ljubljana"
	require.NoError(t, client.Apply(partner.Patch{Name: &name, City: &city}))
	require.NoError(t, repo.Save(ctx, client))

	found, err := repo.FindByIDForUser(ctx, userID, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", found.Name)
	assert.Equal(t, "Ljubljana", found.City)

	require.NoError(t, repo.Delete(ctx, client.ID))
	_, err = repo.FindByID(ctx, client.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var rows int64
	require.NoError(t, db.Model(&models.ClientModel{}).Count(&rows).Error)
	assert.Equal(t, int64(0), rows)
}

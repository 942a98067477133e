package partner

import (
	"testing"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("creates client", func(t *testing.T) {
		c, err := NewClient(uuid.New(), "Wayne Enterprises", "us")
		require.NoError(t, err)
		assert.Equal(t, "US", c.Country)
		assert.False(t, c.IsFromCentralRepo)
	})

	t.Run("rejects nil owner", func(t *testing.T) {
		_, err := NewClient(uuid.Nil, "Wayne Enterprises", "US")
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewClient(uuid.New(), "", "US")
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})
}

func TestClient_Apply(t *testing.T) {
	t.Run("updates present fields", func(t *testing.T) {
		c, err := NewClient(uuid.New(), "Wayne Enterprises", "US")
		require.NoError(t, err)

		email := "billing@wayne.example"
		require.NoError(t, c.Apply(Patch{Email: &email}))
		assert.Equal(t, email, c.Email)
		assert.Equal(t, "Wayne Enterprises", c.Name)
	})

	t.Run("central repository clients are read-only", func(t *testing.T) {
		c, err := NewClient(uuid.New(), "Curated Client", "US")
		require.NoError(t, err)
		c.IsFromCentralRepo = true

		name := "Renamed"
		err = c.Apply(Patch{Name: &name})
		assert.True(t, shared.IsCode(err, shared.CodeForbidden))
		assert.Equal(t, "Curated Client", c.Name)
	})
}

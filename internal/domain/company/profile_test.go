package company

import (
	"testing"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	t.Run("creates non-default profile", func(t *testing.T) {
		p, err := NewProfile(uuid.New(), "Acme GmbH", "de")
		require.NoError(t, err)
		assert.False(t, p.IsDefault)
		assert.Equal(t, "DE", p.Country)
	})

	t.Run("rejects nil owner", func(t *testing.T) {
		_, err := NewProfile(uuid.Nil, "Acme GmbH", "DE")
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProfile(uuid.New(), "   ", "DE")
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("rejects bad country code", func(t *testing.T) {
		_, err := NewProfile(uuid.New(), "Acme", "Germany")
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})
}

func TestProfile_DefaultFlag(t *testing.T) {
	p, err := NewProfile(uuid.New(), "Acme GmbH", "DE")
	require.NoError(t, err)

	p.MarkDefault()
	assert.True(t, p.IsDefault)
	p.ClearDefault()
	assert.False(t, p.IsDefault)
}

func TestProfile_Apply(t *testing.T) {
	p, err := NewProfile(uuid.New(), "Acme GmbH", "DE")
	require.NoError(t, err)

	t.Run("updates only present fields", func(t *testing.T) {
		iban := "DE89370400440532013000"
		city := "Berlin"
		require.NoError(t, p.Apply(Patch{IBAN: &iban, City: &city}))
		assert.Equal(t, iban, p.IBAN)
		assert.Equal(t, "Berlin", p.City)
		assert.Equal(t, "Acme GmbH", p.Name)
	})

	t.Run("rejects emptying the name", func(t *testing.T) {
		empty := ""
		err := p.Apply(Patch{Name: &empty})
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})
}

func TestProfile_IsOwnedBy(t *testing.T) {
	owner := uuid.New()
	p, err := NewProfile(owner, "Acme GmbH", "DE")
	require.NoError(t, err)

	assert.True(t, p.IsOwnedBy(owner))
	assert.False(t, p.IsOwnedBy(uuid.New()))
}

package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/billing/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func validStorageConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Bucket:            "billing-documents",
		AccessKey:         "test-key",
		SecretKey:         "test-secret",
		Endpoint:          "http://localhost:9000",
		UsePathStyle:      true,
		PresignExpiration: 15 * time.Minute,
	}
}

func newTestStore(t *testing.T) *S3Store {
	t.Helper()
	store, err := NewS3Store(validStorageConfig(), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return store
}

func TestNewS3Store(t *testing.T) {
	t.Run("rejects incomplete configuration", func(t *testing.T) {
		cases := map[string]*config.StorageConfig{
			"nil config":     nil,
			"missing bucket": {AccessKey: "k", SecretKey: "s"},
			"missing access": {Bucket: "billing-documents", SecretKey: "s"},
			"missing secret": {Bucket: "billing-documents", AccessKey: "k"},
		}
		for name, cfg := range cases {
			_, err := NewS3Store(cfg)
			require.Error(t, err, name)
		}
	})

	t.Run("builds from a complete config", func(t *testing.T) {
		store := newTestStore(t)
		assert.Equal(t, "billing-documents", store.bucket)
		assert.Equal(t, 15*time.Minute, store.presignExpiry)
	})

	t.Run("zero presign expiry falls back to the default", func(t *testing.T) {
		cfg := validStorageConfig()
		cfg.PresignExpiration = 0
		store, err := NewS3Store(cfg)
		require.NoError(t, err)
		assert.Equal(t, defaultPresignExpiry, store.presignExpiry)
	})

	t.Run("region and endpoint default for local development", func(t *testing.T) {
		store, err := NewS3Store(&config.StorageConfig{
			Bucket:    "billing-documents",
			AccessKey: "k",
			SecretKey: "s",
		})
		require.NoError(t, err)
		assert.NotNil(t, store)
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.StorageConfig
		want string
	}{
		{"empty defaults to local", config.StorageConfig{}, "http://localhost:9000"},
		{"bare host gets http", config.StorageConfig{Endpoint: "minio:9000"}, "http://minio:9000"},
		{"bare host gets https with ssl", config.StorageConfig{Endpoint: "minio:9000", UseSSL: true}, "https://minio:9000"},
		{"explicit scheme kept", config.StorageConfig{Endpoint: "https://s3.eu-central-1.amazonaws.com", UseSSL: false}, "https://s3.eu-central-1.amazonaws.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizeEndpoint(&tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestS3Store_GenerateUploadURL(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("empty key is rejected", func(t *testing.T) {
		_, _, err := store.GenerateUploadURL(ctx, "", "application/pdf", time.Minute)
		require.Error(t, err)
	})

	t.Run("presigns a PUT against the bucket", func(t *testing.T) {
		url, expiresAt, err := store.GenerateUploadURL(ctx, "invoices/INV-2026-0001.pdf", "application/pdf", 10*time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "localhost:9000")
		assert.Contains(t, url, "billing-documents")
		assert.True(t, strings.Contains(url, "invoices/INV-2026-0001.pdf") || strings.Contains(url, "invoices%2FINV-2026-0001.pdf"))
		assert.True(t, expiresAt.After(time.Now()))
		assert.True(t, expiresAt.Before(time.Now().Add(11*time.Minute)))
	})

	t.Run("non-positive expiry uses the configured default", func(t *testing.T) {
		_, expiresAt, err := store.GenerateUploadURL(ctx, "invoices/INV-2026-0002.pdf", "application/pdf", 0)
		require.NoError(t, err)
		assert.True(t, expiresAt.After(time.Now().Add(14*time.Minute)))
		assert.True(t, expiresAt.Before(time.Now().Add(16*time.Minute)))
	})
}

func TestS3Store_GenerateDownloadURL(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("empty key is rejected", func(t *testing.T) {
		_, _, err := store.GenerateDownloadURL(ctx, "", time.Minute)
		require.Error(t, err)
	})

	t.Run("presigns a GET with a signature", func(t *testing.T) {
		url, expiresAt, err := store.GenerateDownloadURL(ctx, "quotations/QUO-2026-0001.pdf", 5*time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "billing-documents")
		assert.Contains(t, url, "X-Amz-Signature")
		assert.True(t, expiresAt.After(time.Now()))
	})
}

func TestS3Store_KeyValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.Error(t, store.DeleteObject(ctx, ""))

	_, err := store.ObjectExists(ctx, "")
	require.Error(t, err)
}

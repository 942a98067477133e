package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"BILLING_APP_NAME":          os.Getenv("BILLING_APP_NAME"),
		"BILLING_APP_ENV":           os.Getenv("BILLING_APP_ENV"),
		"BILLING_APP_PORT":          os.Getenv("BILLING_APP_PORT"),
		"BILLING_DATABASE_HOST":     os.Getenv("BILLING_DATABASE_HOST"),
		"BILLING_DATABASE_PORT":     os.Getenv("BILLING_DATABASE_PORT"),
		"BILLING_DATABASE_USER":     os.Getenv("BILLING_DATABASE_USER"),
		"BILLING_DATABASE_PASSWORD": os.Getenv("BILLING_DATABASE_PASSWORD"),
		"BILLING_DATABASE_DBNAME":   os.Getenv("BILLING_DATABASE_DBNAME"),
		"BILLING_DATABASE_SSLMODE":  os.Getenv("BILLING_DATABASE_SSLMODE"),
		"BILLING_JWT_SECRET":        os.Getenv("BILLING_JWT_SECRET"),
		"BILLING_STORAGE_BUCKET":    os.Getenv("BILLING_STORAGE_BUCKET"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "billing-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "billing", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "billing-documents", cfg.Storage.Bucket)
	})

	t.Run("loads values from environment variables with BILLING prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("BILLING_APP_NAME", "test-app")
		os.Setenv("BILLING_APP_ENV", "testing")
		os.Setenv("BILLING_APP_PORT", "9000")
		os.Setenv("BILLING_DATABASE_HOST", "testdb.local")
		os.Setenv("BILLING_DATABASE_PORT", "5433")
		os.Setenv("BILLING_DATABASE_USER", "testuser")
		os.Setenv("BILLING_DATABASE_PASSWORD", "testpass")
		os.Setenv("BILLING_DATABASE_DBNAME", "testdb")
		os.Setenv("BILLING_DATABASE_SSLMODE", "require")
		os.Setenv("BILLING_STORAGE_BUCKET", "test-bucket")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, "test-bucket", cfg.Storage.Bucket)
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("BILLING_APP_ENV", "production")
		os.Setenv("BILLING_DATABASE_PASSWORD", "secret")
		os.Setenv("BILLING_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production rejects short jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("BILLING_APP_ENV", "production")
		os.Setenv("BILLING_JWT_SECRET", "too-short")
		os.Setenv("BILLING_DATABASE_PASSWORD", "secret")
		os.Setenv("BILLING_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("production rejects disabled ssl", func(t *testing.T) {
		clearEnv()
		os.Setenv("BILLING_APP_ENV", "production")
		os.Setenv("BILLING_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("BILLING_DATABASE_PASSWORD", "secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	t.Run("builds DSN with escaped credentials", func(t *testing.T) {
		d := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user@company",
			Password: "p@ss:word/1",
			DBName:   "billing",
			SSLMode:  "disable",
		}

		dsn := d.DSN()
		assert.Contains(t, dsn, "postgres://")
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "sslmode=disable")
		assert.NotContains(t, dsn, "p@ss:word/1") // must be URL-escaped
	})

	t.Run("includes database name as path", func(t *testing.T) {
		d := DatabaseConfig{
			Host:    "db.internal",
			Port:    5433,
			User:    "svc",
			DBName:  "billing",
			SSLMode: "require",
		}

		dsn := d.DSN()
		assert.Contains(t, dsn, "/billing")
		assert.Contains(t, dsn, "db.internal:5433")
	})
}

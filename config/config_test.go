package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("STORAGE_DRIVER", "")

	cfg := Load()

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, StorageDisk, cfg.StorageDriver)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.Equal(t, "sa-east-1", cfg.S3Region)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("S3_BUCKET", "avatars")
	t.Setenv("APP_API_URL", "http://api.local/")
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.local, ,http://b.local")

	cfg := Load()

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, StorageS3, cfg.StorageDriver)
	assert.Equal(t, "http://api.local", cfg.AppAPIURL)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.CORSOrigins())
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "memory and disk", cfg: Config{DBDriver: DriverMemory, StorageDriver: StorageDisk}},
		{name: "unknown db driver", cfg: Config{DBDriver: "mongo", StorageDriver: StorageDisk}, wantErr: true},
		{name: "unknown storage driver", cfg: Config{DBDriver: DriverMemory, StorageDriver: "ftp"}, wantErr: true},
		{name: "s3 without bucket", cfg: Config{DBDriver: DriverMemory, StorageDriver: StorageS3}, wantErr: true},
		{name: "gcs with bucket", cfg: Config{DBDriver: DriverMemory, StorageDriver: StorageGCS, GCSBucket: "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("AUTH_TOKEN_SECRET", "token-secret")
	t.Setenv("AUTH_PASSWORD_KEY", "password-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Server.ServiceURL)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 168*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, "log", cfg.Mail.Provider)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/test.db")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://app.example.com , ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.Database.DSN())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_InvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "http")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid SERVER_PORT")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: "postgres", Host: "db", Username: "u", Password: "p", Name: "n"},
			Storage:  StorageConfig{Type: "local"},
			Auth: AuthConfig{
				TokenSecret:     "s",
				PasswordKey:     "k",
				AccessTokenTTL:  time.Minute,
				RefreshTokenTTL: time.Hour,
				ResetTokenTTL:   time.Minute,
			},
			Mail: MailConfig{Provider: "log"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "Valid", mutate: func(*Config) {}},
		{name: "MissingPassword", mutate: func(c *Config) { c.Database.Password = "" }, wantErr: "DB_PASSWORD is required"},
		{name: "SQLiteWithoutPassword", mutate: func(c *Config) {
			c.Database = DatabaseConfig{Driver: "sqlite", SQLitePath: "x.db"}
		}},
		{name: "UnknownDriver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: "unsupported DB_DRIVER"},
		{name: "MissingTokenSecret", mutate: func(c *Config) { c.Auth.TokenSecret = "" }, wantErr: "AUTH_TOKEN_SECRET is required"},
		{name: "MissingPasswordKey", mutate: func(c *Config) { c.Auth.PasswordKey = "" }, wantErr: "AUTH_PASSWORD_KEY is required"},
		{name: "S3WithoutBucket", mutate: func(c *Config) { c.Storage = StorageConfig{Type: "s3"} }, wantErr: "STORAGE_S3_BUCKET is required"},
		{name: "UnknownMailProvider", mutate: func(c *Config) { c.Mail.Provider = "smtp" }, wantErr: "unsupported MAIL_PROVIDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN_EscapesPassword(t *testing.T) {
	cfg := DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, Username: "app", Password: "p@ss/word", Name: "cases", SSLMode: "require"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/cases?sslmode=require", cfg.DSN())
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"Development defaults", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Zero TTL", func(c *Config) { c.TokenTTLHours = 0 }, true},
		{"Production default secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = defaultJWTSecret
		}, true},
		{"Production short secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"Production disabled SSL", func(c *Config) {
			c.Env = "prod"
			c.DBSSLMode = "disable"
		}, true},
		{"Production with DATABASE_URL", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = ""
			c.DBPassword = ""
			c.DatabaseURL = "postgres://u:p@db:5432/murmur?sslmode=require"
		}, false},
		{"Production strict", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Env:           "development",
				JWTSecret:     "secure-secret-at-least-32-chars-long",
				TokenTTLHours: 24,
				DBPassword:    "secure-password",
				DBSSLMode:     "disable",
				Port:          "3000",
			}
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	c := &Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "murmur"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=murmur sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://u:p@db/murmur"
	assert.Equal(t, "postgres://u:p@db/murmur", c.DSN())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_SSLMODE")
	defer os.Unsetenv("PORT")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("DB_SSLMODE", "  DISABLE  ")
	os.Setenv("PORT", "4000")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "4000", c.Port)
	assert.Equal(t, 24, c.TokenTTLHours)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TOKEN_TTL_HOURS=6\nPORT=5000\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		_ = os.Unsetenv("TOKEN_TTL_HOURS")
		_ = os.Unsetenv("PORT")
		viper.Reset()
	})

	t.Setenv("APP_ENV", "development")
	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 6, c.TokenTTLHours)
	assert.Equal(t, "5000", c.Port)
}

func TestLoadConfig_ValidatesBeforeReturning(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("APP_ENV", "development")
	t.Setenv("TOKEN_TTL_HOURS", "0")

	c, err := LoadConfig()
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "invalid configuration")
}

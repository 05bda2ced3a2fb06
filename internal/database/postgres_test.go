package database

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestGetConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		viper.Reset()
		cfg := GetConfig()

		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, "5432", cfg.Port)
		assert.Equal(t, "spendwise", cfg.Name)
		assert.Equal(t, 25, cfg.MaxOpenConns)
		assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
		assert.True(t, cfg.AutoMigrate)
	})

	t.Run("overrides", func(t *testing.T) {
		viper.Reset()
		viper.Set("database.host", "db.internal")
		viper.Set("database.auto_migrate", false)
		defer viper.Reset()

		cfg := GetConfig()
		assert.Equal(t, "db.internal", cfg.Host)
		assert.False(t, cfg.AutoMigrate)
	})
}

func TestDBConfig_DSN(t *testing.T) {
	cfg := &DBConfig{Host: "h", Port: "1", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=n sslmode=disable", cfg.DSN())
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	assert.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "000001_init.up.sql")
	assert.Contains(t, names, "000001_init.down.sql")
}

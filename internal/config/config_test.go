package config_test

import (
	"testing"
	"time"

	"github.com/iyhunko/antique-store-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvFilePath, "testdata/missing.env")
	t.Setenv(config.DebugModeEnv, "")
	t.Setenv(config.LogLevelEnv, "")
	t.Setenv(config.DBDriverEnv, "")
	t.Setenv(config.SQLitePathEnv, "")
	t.Setenv(config.MigrationsPathEnv, "")
	t.Setenv(config.CORSAllowedOriginsEnv, "")
	t.Setenv(config.ShutdownTimeoutEnv, "")
	t.Setenv(config.SQSQueueURLEnv, "")
	t.Setenv(config.HTTPServerPortEnv, "8080")
	t.Setenv(config.MetricsServerPortEnv, "9090")
}

func TestLoadFromEnv(t *testing.T) {
	setBaseEnv(t)
	t.Setenv(config.DebugModeEnv, "true")
	t.Setenv(config.DBHostEnv, "localhost")
	t.Setenv(config.DBUserEnv, "user")
	t.Setenv(config.DBPassEnv, "pass")
	t.Setenv(config.DBNameEnv, "testdb")
	t.Setenv(config.DBPortEnv, "5432")
	t.Setenv(config.SQSQueueURLEnv, "http://localhost:4566/000000000000/products")

	conf, err := config.LoadFromEnv()
	require.NoError(t, err, "loading config should not return error")

	assert.True(t, conf.DebugMode, "DebugMode should be true")
	assert.Equal(t, "info", conf.LogLevel)
	assert.Equal(t, config.DriverPostgres, conf.Database.Driver, "postgres should be the default driver")
	assert.Equal(t, "localhost", conf.Database.Host, "DB Host should be 'localhost'")
	assert.Equal(t, "user", conf.Database.User, "DB User should be 'user'")
	assert.Equal(t, "pass", conf.Database.Password, "DB Password should be 'pass'")
	assert.Equal(t, "testdb", conf.Database.Name, "DB Name should be 'testdb'")
	assert.Equal(t, "5432", conf.Database.Port, "DB Port should be '5432'")
	assert.Equal(t, "file://migrations", conf.Database.MigrationsPath)
	assert.Equal(t, "8080", conf.HTTPServer.Port, "HTTP Server Port should be '8080'")
	assert.Equal(t, "9090", conf.MetricsServer.Port, "Metrics Server Port should be '9090'")
	assert.Equal(t, []string{"*"}, conf.CORS.AllowedOrigins)
	assert.Equal(t, 10*time.Second, conf.ShutdownTimeout)
	assert.True(t, conf.AWS.NotificationsEnabled())
}

func TestLoadFromEnv_SQLite(t *testing.T) {
	setBaseEnv(t)
	t.Setenv(config.DBDriverEnv, "SQLite")
	t.Setenv(config.DBHostEnv, "")

	conf, err := config.LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, conf.Database.Driver)
	assert.Equal(t, "antiquestore.db", conf.Database.SQLitePath)
	assert.False(t, conf.AWS.NotificationsEnabled())
}

func TestLoadFromEnv_Errors(t *testing.T) {
	t.Run("postgres without host", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv(config.DBHostEnv, "")
		t.Setenv(config.DBUserEnv, "user")
		t.Setenv(config.DBNameEnv, "testdb")
		t.Setenv(config.DBPortEnv, "5432")

		_, err := config.LoadFromEnv()
		assert.ErrorIs(t, err, config.ErrMissingConfig)
	})

	t.Run("unknown driver", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv(config.DBDriverEnv, "mongo")

		_, err := config.LoadFromEnv()
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("unknown log level", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv(config.DBDriverEnv, config.DriverMemory)
		t.Setenv(config.LogLevelEnv, "verbose")

		_, err := config.LoadFromEnv()
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("non numeric http port", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv(config.DBDriverEnv, config.DriverMemory)
		t.Setenv(config.HTTPServerPortEnv, "http")

		_, err := config.LoadFromEnv()
		assert.Error(t, err)
	})
}

func TestGetEnvAsBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		want         bool
	}{
		{"GetEnvAsBool_True", "true", false, true},
		{"GetEnvAsBool_False", "false", true, false},
		{"GetEnvAsBool_Invalid", "invalid", true, true},
		{"GetEnvAsBool_Empty", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV", tt.envValue)
			got := config.GetEnvAsBool("TEST_ENV", tt.defaultValue)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetEnvAsSlice(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     []string
	}{
		{"GetEnvAsSlice_Empty", "", []string{"*"}},
		{"GetEnvAsSlice_Single", "http://shop.local", []string{"http://shop.local"}},
		{"GetEnvAsSlice_Trimmed", " http://a.local , ,http://b.local", []string{"http://a.local", "http://b.local"}},
		{"GetEnvAsSlice_OnlyCommas", ",,", []string{"*"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV", tt.envValue)
			assert.Equal(t, tt.want, config.GetEnvAsSlice("TEST_ENV", []string{"*"}))
		})
	}
}

func TestAllNumbers(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]string
		wantErr bool
	}{
		{"AllNumbers_Valid", map[string]string{"key1": "123", "key2": "456", "key3": "789"}, false},
		{"AllNumbers_Invalid", map[string]string{"key1": "123", "key2": "abc", "key3": "789"}, true},
		{"AllNumbers_EmptyString", map[string]string{"key1": "123", "key2": "", "key3": "789"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.AllNumbers(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAllNonEmpty(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]string
		wantErr bool
	}{
		{"AllNonEmpty_Valid", map[string]string{"key1": "host", "key2": "user", "key3": "pass"}, false},
		{"AllNonEmpty_EmptyString", map[string]string{"key1": "host", "key2": "", "key3": "pass"}, true},
		{"AllNonEmpty_AllEmpty", map[string]string{"key1": "", "key2": "", "key3": ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.AllNonEmpty(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDB(t *testing.T) {
	cfg := Config{
		DBType:            "postgres",
		DBHost:            "db.internal",
		DBPort:            "5433",
		DBName:            "backoffice",
		DBUser:            "app",
		DBPassword:        "secret",
		DBSSLMode:         "require",
		DBMaxIdleConn:     3,
		DBMaxOpenConn:     30,
		DBConnMaxLifetime: 600,
		DBConnMaxIdleTime: 60,
	}

	dbCfg := cfg.DB()
	assert.Equal(t, "postgres", dbCfg.Type)
	assert.Equal(t, "db.internal", dbCfg.Host)
	assert.Equal(t, "5433", dbCfg.Port)
	assert.Equal(t, "backoffice", dbCfg.Name)
	assert.Equal(t, "app", dbCfg.User)
	assert.Equal(t, "secret", dbCfg.Password)
	assert.Equal(t, "require", dbCfg.SSLMode)
	assert.Equal(t, 3, dbCfg.MaxIdleConn)
	assert.Equal(t, 30, dbCfg.MaxOpenConn)
	assert.Equal(t, 600, dbCfg.ConnMaxLifetime)
	assert.Equal(t, 60, dbCfg.ConnMaxIdleTime)
}

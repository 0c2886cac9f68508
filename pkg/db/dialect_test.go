package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialect(t *testing.T) {
	dialector, err := Dialect(Config{
		Type:     "postgres",
		Host:     "localhost",
		Port:     "5432",
		Name:     "backoffice",
		User:     "postgres",
		Password: "postgres",
		SSLMode:  "disable",
	})
	require.NoError(t, err)
	assert.Equal(t, "postgres", dialector.Name())

	dialector, err = Dialect(Config{Type: "sqlite"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", dialector.Name())

	_, err = Dialect(Config{Type: "oracle"})
	assert.Error(t, err)
}

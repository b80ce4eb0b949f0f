package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrationsRejectsNonPostgres(t *testing.T) {
	for _, dbType := range []string{"mysql", "sqlite", ""} {
		err := RunMigrations(nil, dbType)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "postgres")
	}
}

func TestRunMigrationsRequiresHandle(t *testing.T) {
	err := RunMigrations(nil, "postgres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database handle")
}

package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreEmbeddedInOrder(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, "0001_init", migrations[0].Version)
	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}

	schema := migrations[0].SQL
	assert.True(t, strings.Contains(schema, "CREATE TABLE IF NOT EXISTS counters"))
	assert.True(t, strings.Contains(schema, "PRIMARY KEY (product_id, store_id)"))
}

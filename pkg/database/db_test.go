package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/offerdesk/pkg/database"
)

func TestOpenMemoryPinsOneConnection(t *testing.T) {
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer database.Close(db) //nolint:errcheck

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	// A table created on the pinned connection stays visible.
	require.NoError(t, db.Exec("CREATE TABLE t (id INTEGER PRIMARY KEY)").Error)
	require.NoError(t, db.Exec("INSERT INTO t (id) VALUES (1)").Error)
	var n int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM t").Scan(&n).Error)
	assert.EqualValues(t, 1, n)

	assert.NoError(t, database.Ping(context.Background(), db))
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := database.Open("oracle", "x")
	assert.Error(t, err)
}

func TestIsMemory(t *testing.T) {
	assert.True(t, database.IsMemory("sqlite", ":memory:"))
	assert.True(t, database.IsMemory("sqlite", "file:test?mode=memory&cache=shared"))
	assert.False(t, database.IsMemory("sqlite", "offerdesk.db"))
	assert.False(t, database.IsMemory("postgres", ":memory:"))
}

package migrations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/offerdesk/app/models"
	_ "github.com/shashiranjanraj/offerdesk/database/migrations"
	"github.com/shashiranjanraj/offerdesk/pkg/database"
	"github.com/shashiranjanraj/offerdesk/pkg/migration"
)

func TestInitialSchema(t *testing.T) {
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer database.Close(db) //nolint:errcheck

	require.NoError(t, migration.New(db).Run())

	m := db.Migrator()
	for _, model := range []interface{}{&models.User{}, &models.Order{}, &models.Offer{}} {
		assert.True(t, m.HasTable(model))
	}
	assert.True(t, m.HasIndex(&models.Order{}, "CustomerID"))
	assert.True(t, m.HasIndex(&models.Offer{}, "OrderID"))

	// Reference columns are not constrained: a dangling offer is accepted.
	require.NoError(t, db.Create(&models.Offer{ID: 1, OrderID: 999, ExecutorID: 999}).Error)

	require.NoError(t, migration.New(db).Rollback())
	assert.False(t, m.HasTable(&models.User{}))
}

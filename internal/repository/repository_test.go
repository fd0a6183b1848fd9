package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"parfumerie/internal/db"
	"parfumerie/internal/db/mock"
	"parfumerie/models"
)

// seededStore returns a private in-memory store holding the sample catalog.
func seededStore(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(database) })

	require.NoError(t, mock.Seed(context.Background(), database))
	return database
}

func fragranceByName(t *testing.T, database *gorm.DB, name string) models.Fragrance {
	t.Helper()

	var fragrance models.Fragrance
	require.NoError(t, database.Where("name = ?", name).First(&fragrance).Error)
	return fragrance
}

func customerByLastName(t *testing.T, database *gorm.DB, lastName string) models.Customer {
	t.Helper()

	var customer models.Customer
	require.NoError(t, database.Where("last_name = ?", lastName).First(&customer).Error)
	return customer
}

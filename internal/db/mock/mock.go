package mock

import (
	"context"

	"gorm.io/gorm"

	"parfumerie/internal/db"
	applog "parfumerie/internal/log"
	"parfumerie/models"
)

// New returns an in-memory sqlite database seeded with the studio's sample
// catalog, two customers and one finished composition.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := db.NewInMemory()
	if err != nil {
		return nil, err
	}

	if err := Seed(ctx, database); err != nil {
		_ = db.Close(database)
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

// Fragrances lists the base scents every fresh studio starts with.
func Fragrances() []models.Fragrance {
	return []models.Fragrance{
		{Name: "Bergamotte", Code: 101, Description: "Frisch, zitrusartig, belebend"},
		{Name: "Lavendel", Code: 102, Description: "Blumig, krautig, beruhigend"},
		{Name: "Sandelholz", Code: 201, Description: "Holzig, warm, erdig"},
		{Name: "Rose", Code: 301, Description: "Blumig, süß, romantisch"},
		{Name: "Vanille", Code: 401, Description: "Süß, warm, gemütlich"},
	}
}

// Customers lists the sample customers.
func Customers() []models.Customer {
	return []models.Customer{
		{
			FirstName:  "Maria",
			LastName:   "Schmidt",
			Email:      "maria.schmidt@example.com",
			Phone:      "030-12345678",
			Street:     "Berliner Str. 42",
			PostalCode: "10115",
			City:       "Berlin",
		},
		{
			FirstName:  "Thomas",
			LastName:   "Müller",
			Email:      "thomas.mueller@example.com",
			Phone:      "030-87654321",
			Street:     "Unter den Linden 10",
			PostalCode: "10117",
			City:       "Berlin",
		},
	}
}

// Seed inserts the sample data into an already migrated database.
func Seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	return database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fragrances := Fragrances()
		if err := tx.Create(&fragrances).Error; err != nil {
			return err
		}

		customers := Customers()
		if err := tx.Create(&customers).Error; err != nil {
			return err
		}

		signature := models.Composition{
			CustomerID:  customers[0].ID,
			Name:        "Sommerabend",
			TotalAmount: models.VolumeSmall,
		}
		if err := tx.Omit("Details").Create(&signature).Error; err != nil {
			return err
		}

		details := []models.CompositionDetail{
			{CompositionID: signature.ID, FragranceID: fragrances[0].ID, Amount: 20},
			{CompositionID: signature.ID, FragranceID: fragrances[3].ID, Amount: 20},
			{CompositionID: signature.ID, FragranceID: fragrances[4].ID, Amount: 10},
		}
		return tx.Create(&details).Error
	})
}

package mock

import (
	"context"
	"testing"

	"parfumerie/models"
)

func TestNewSeedsExpectedRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := New(ctx)
	if err != nil {
		t.Fatalf("mock database initialization failed: %v", err)
	}

	var fragrances []models.Fragrance
	if err := db.WithContext(ctx).Order("code").Find(&fragrances).Error; err != nil {
		t.Fatalf("query fragrances: %v", err)
	}
	if len(fragrances) != len(Fragrances()) {
		t.Fatalf("seeded %d fragrances, want %d", len(fragrances), len(Fragrances()))
	}
	if fragrances[0].Name != "Bergamotte" || fragrances[0].Code != 101 {
		t.Fatalf("first fragrance = %+v", fragrances[0])
	}

	var customers []models.Customer
	if err := db.WithContext(ctx).Find(&customers).Error; err != nil {
		t.Fatalf("query customers: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("seeded %d customers, want 2", len(customers))
	}

	var composition models.Composition
	if err := db.WithContext(ctx).Preload("Details").First(&composition).Error; err != nil {
		t.Fatalf("query composition: %v", err)
	}
	if !models.ValidTotal(models.SumAmounts(composition.Details)) {
		t.Fatalf("seeded composition sums to %v", models.SumAmounts(composition.Details))
	}
}

func TestNewReturnsIndependentStores(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	first, err := New(ctx)
	if err != nil {
		t.Fatalf("first mock database: %v", err)
	}
	second, err := New(ctx)
	if err != nil {
		t.Fatalf("second mock database: %v", err)
	}

	if err := first.Where("1 = 1").Delete(&models.CompositionDetail{}).Error; err != nil {
		t.Fatalf("clear details: %v", err)
	}

	var count int64
	if err := second.Model(&models.CompositionDetail{}).Count(&count).Error; err != nil {
		t.Fatalf("count details: %v", err)
	}
	if count != 3 {
		t.Fatalf("second store has %d details, want 3", count)
	}
}

package db

import (
	"context"
	"strings"
	"testing"

	"parfumerie/internal/config"
	"parfumerie/models"
)

func TestInitializeRequiresURL(t *testing.T) {
	t.Parallel()

	db, err := Initialize(config.DatabaseConfig{URL: ""})
	if err == nil {
		t.Fatal("expected error when database URL is empty")
	}
	if db != nil {
		t.Fatal("expected returned db handle to be nil on error")
	}
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	if _, err := Dialector(config.DatabaseConfig{Driver: "mysql", URL: "root@/db"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestDialectorSelectsDriver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		driver string
		want   string
	}{
		{"", "sqlite"},
		{"sqlite", "sqlite"},
		{"postgres", "postgres"},
	}
	for _, tt := range tests {
		d, err := Dialector(config.DatabaseConfig{Driver: tt.driver, URL: "file::memory:"})
		if err != nil {
			t.Fatalf("Dialector(%q) error = %v", tt.driver, err)
		}
		if got := d.Name(); got != tt.want {
			t.Fatalf("Dialector(%q).Name() = %q, want %q", tt.driver, got, tt.want)
		}
	}
}

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"parfumerie.db", "parfumerie.db?_foreign_keys=on"},
		{"file:studio.db?cache=shared", "file:studio.db?cache=shared&_foreign_keys=on"},
		{"file:studio.db?_foreign_keys=off", "file:studio.db?_foreign_keys=off"},
	}
	for _, tt := range tests {
		if got := sqliteDSN(tt.in); got != tt.want {
			t.Fatalf("sqliteDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAutoMigrateRejectsNilDatabase(t *testing.T) {
	t.Parallel()

	if err := AutoMigrate(nil); err == nil {
		t.Fatal("expected error when database handle is nil")
	}
}

func TestConfigureWithSQLiteFile(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/studio.db"
	database, err := Configure(config.DatabaseConfig{Driver: "sqlite", URL: "file:" + path})
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	t.Cleanup(func() { _ = Close(database) })

	for _, table := range []string{"customers", "fragrances", "compositions", "composition_details"} {
		if !database.Migrator().HasTable(table) {
			t.Fatalf("expected table %s to exist", table)
		}
	}
	if err := Ping(context.Background(), database); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
}

func TestNewInMemoryEnforcesForeignKeys(t *testing.T) {
	t.Parallel()

	database, err := NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = Close(database) })

	orphan := models.Composition{CustomerID: 999, TotalAmount: 50}
	if err := database.Create(&orphan).Error; err == nil {
		t.Fatal("expected foreign key violation for unknown customer")
	}
}

func TestNewInMemoryStoresAreIsolated(t *testing.T) {
	t.Parallel()

	first, err := NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = Close(first) })
	second, err := NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = Close(second) })

	if err := first.Create(&models.Fragrance{Name: "Rose", Code: 301}).Error; err != nil {
		t.Fatalf("create fragrance: %v", err)
	}

	var count int64
	if err := second.Model(&models.Fragrance{}).Count(&count).Error; err != nil {
		t.Fatalf("count fragrances: %v", err)
	}
	if count != 0 {
		t.Fatalf("second store count = %d, want 0", count)
	}
}

func TestConfigurePropagatesInitializationError(t *testing.T) {
	t.Parallel()

	if _, err := Configure(config.DatabaseConfig{}); err == nil {
		t.Fatal("expected configuration error when initialize fails")
	}
}

func TestMustConfigurePanicsOnError(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when configuration fails")
		}
	}()

	MustConfigure(config.DatabaseConfig{})
}

func TestNewInMemoryDetailForeignKeys(t *testing.T) {
	t.Parallel()

	database, err := NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = Close(database) })

	fragrance := models.Fragrance{Name: "Lavendel", Code: 102}
	if err := database.Create(&fragrance).Error; err != nil {
		t.Fatalf("create fragrance in empty store: %v", err)
	}
	customer := models.Customer{FirstName: "Maria", LastName: "Schmidt"}
	if err := database.Create(&customer).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	composition := models.Composition{CustomerID: customer.ID, TotalAmount: 50}
	if err := database.Omit("Details").Create(&composition).Error; err != nil {
		t.Fatalf("create composition: %v", err)
	}

	valid := models.CompositionDetail{CompositionID: composition.ID, FragranceID: fragrance.ID, Amount: 50}
	if err := database.Create(&valid).Error; err != nil {
		t.Fatalf("create detail for known fragrance: %v", err)
	}
	unknown := models.CompositionDetail{CompositionID: composition.ID, FragranceID: fragrance.ID + 100, Amount: 10}
	if err := database.Create(&unknown).Error; err == nil {
		t.Fatal("expected foreign key violation for unknown fragrance")
	}

	var ddl string
	if err := database.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'fragrances'").Scan(&ddl).Error; err != nil {
		t.Fatalf("read fragrances schema: %v", err)
	}
	if strings.Contains(ddl, "REFERENCES") {
		t.Fatalf("fragrances table must not reference other tables: %s", ddl)
	}
}

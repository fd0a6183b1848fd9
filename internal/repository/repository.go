// Package repository wraps the gorm queries behind the studio's REST API.
// Every repository receives its database handle explicitly.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound reports that no row matched the requested identifier.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidTotal is returned when total enforcement is switched on and a
	// composition does not add up to a bottle size.
	ErrInvalidTotal = errors.New("composition total must be 50 or 100 ml and match its details")
)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Set bundles the repositories that share one database handle.
type Set struct {
	Customers    *Customers
	Fragrances   *Fragrances
	Compositions *Compositions
}

// New builds every repository on top of database.
func New(database *gorm.DB, opts ...CompositionOption) Set {
	return Set{
		Customers:    NewCustomers(database),
		Fragrances:   NewFragrances(database),
		Compositions: NewCompositions(database, opts...),
	}
}

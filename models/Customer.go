package models

import (
	"strings"
	"time"
)

// Customer is a client of the studio. Compositions reference customers
// without cascading, so a customer that still owns compositions cannot be
// deleted.
type Customer struct {
	ID           uint          `gorm:"column:customer_id;primaryKey" json:"customer_id"`
	FirstName    string        `gorm:"not null" json:"first_name"`
	LastName     string        `gorm:"not null" json:"last_name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Street       string        `json:"street"`
	PostalCode   string        `json:"postal_code"`
	City         string        `json:"city"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Compositions []Composition `gorm:"foreignKey:CustomerID;references:ID" json:"-"`
}

// FullName joins first and last name with a single space.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Initials is used by the studio pages for the customer badge.
func (c Customer) Initials() string {
	var b strings.Builder
	for _, part := range []string{c.FirstName, c.LastName} {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r := []rune(part)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}

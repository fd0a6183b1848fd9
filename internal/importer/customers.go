package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"parfumerie/internal/repository"
)

// Customers imports customer rows. German and English headers are accepted;
// a row whose email matches an existing customer updates that customer.
func (im *Importer) Customers(ctx context.Context, r io.Reader) (Result, error) {
	records, err := readRecords(r)
	if err != nil {
		return Result{}, fmt.Errorf("read csv: %w", err)
	}

	var result Result
	for idx, record := range records {
		line := idx + 2
		fields := repository.CustomerFields{
			FirstName:  column(record, "first_name", "vorname"),
			LastName:   column(record, "last_name", "nachname", "name"),
			Email:      column(record, "email", "e-mail", "mail"),
			Phone:      column(record, "phone", "telefon", "tel"),
			Street:     column(record, "street", "straße", "strasse"),
			PostalCode: column(record, "postal_code", "plz", "zip"),
			City:       column(record, "city", "stadt", "ort"),
		}
		if fields.FirstName == "" || fields.LastName == "" {
			skip(ctx, line, "first and last name required")
			result.Skipped++
			continue
		}

		err := im.inTx(ctx, func(set repository.Set) error {
			if fields.Email != "" {
				matches, err := set.Customers.Search(ctx, fields.Email)
				if err != nil {
					return fmt.Errorf("find customer %s: %w", fields.Email, err)
				}
				for _, existing := range matches {
					if strings.EqualFold(existing.Email, fields.Email) {
						if _, err := set.Customers.Update(ctx, existing.ID, fields); err != nil {
							return fmt.Errorf("update customer %s: %w", fields.Email, err)
						}
						result.Updated++
						return nil
					}
				}
			}
			if _, err := set.Customers.Create(ctx, fields); err != nil {
				return fmt.Errorf("create customer %s %s: %w", fields.FirstName, fields.LastName, err)
			}
			result.Created++
			return nil
		})
		if err != nil {
			return result, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return result, nil
}

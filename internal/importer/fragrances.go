package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"parfumerie/internal/repository"
)

// Fragrances imports name, code and description columns. Rows whose code is
// already known update that fragrance.
func (im *Importer) Fragrances(ctx context.Context, r io.Reader) (Result, error) {
	records, err := readRecords(r)
	if err != nil {
		return Result{}, fmt.Errorf("read csv: %w", err)
	}

	var result Result
	for idx, record := range records {
		line := idx + 2
		name := column(record, "name", "duft", "fragrance")
		code, ok := parseNumber(column(record, "code", "nummer", "nr"))
		if name == "" || !ok || code <= 0 {
			skip(ctx, line, "name and positive code required", "name", name)
			result.Skipped++
			continue
		}
		fields := repository.FragranceFields{
			Name:        name,
			Code:        int(code),
			Description: column(record, "description", "beschreibung"),
		}

		err := im.inTx(ctx, func(set repository.Set) error {
			existing, err := set.Fragrances.FindByCode(ctx, fields.Code)
			switch {
			case err == nil:
				if _, err := set.Fragrances.Update(ctx, existing.ID, fields); err != nil {
					return fmt.Errorf("update fragrance %d: %w", fields.Code, err)
				}
				result.Updated++
			case errors.Is(err, repository.ErrNotFound):
				if _, err := set.Fragrances.Create(ctx, fields); err != nil {
					return fmt.Errorf("create fragrance %d: %w", fields.Code, err)
				}
				result.Created++
			default:
				return fmt.Errorf("find fragrance %d: %w", fields.Code, err)
			}
			return nil
		})
		if err != nil {
			return result, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return result, nil
}

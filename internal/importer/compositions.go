package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"parfumerie/internal/repository"
	"parfumerie/models"
)

// Compositions imports one composition per row: the customer id followed by
// pairs of fragrance (code or name) and amount. The total is the sum of the
// imported amounts. Unknown fragrances are skipped with a warning; a row left
// without any line is skipped as a whole.
func (im *Importer) Compositions(ctx context.Context, r io.Reader) (Result, error) {
	rows, err := readRows(r)
	if err != nil {
		return Result{}, fmt.Errorf("read csv: %w", err)
	}

	fragrances, err := repository.NewFragrances(im.db).List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load fragrances: %w", err)
	}
	lookup := newFragranceLookup(fragrances)

	var result Result
	for idx, row := range rows[1:] {
		line := idx + 2
		customerID, err := strconv.ParseUint(strings.TrimSpace(row[0]), 10, 64)
		if err != nil || customerID == 0 {
			skip(ctx, line, "customer id required", "value", row[0])
			result.Skipped++
			continue
		}

		input := repository.NewComposition{CustomerID: uint(customerID)}
		for i := 1; i+1 < len(row); i += 2 {
			ref := normalizeValue(row[i])
			amount, ok := parseNumber(row[i+1])
			if ref == "" || !ok || amount <= 0 {
				continue
			}
			fragranceID, found := lookup.find(ref)
			if !found {
				skip(ctx, line, "unknown fragrance", "fragrance", ref)
				continue
			}
			input.Details = append(input.Details, repository.NewDetail{FragranceID: fragranceID, Amount: amount})
			input.TotalAmount += amount
		}
		if len(input.Details) == 0 {
			skip(ctx, line, "no usable fragrance lines", "customer_id", input.CustomerID)
			result.Skipped++
			continue
		}

		err = im.inTx(ctx, func(set repository.Set) error {
			if _, err := set.Customers.Get(ctx, input.CustomerID); err != nil {
				return err
			}
			_, err := set.Compositions.Create(ctx, input)
			return err
		})
		if errors.Is(err, repository.ErrNotFound) {
			skip(ctx, line, "unknown customer", "customer_id", input.CustomerID)
			result.Skipped++
			continue
		}
		if errors.Is(err, repository.ErrInvalidTotal) {
			skip(ctx, line, "total is not a bottle size", "total", input.TotalAmount)
			result.Skipped++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("line %d: create composition: %w", line, err)
		}
		result.Created++
	}
	return result, nil
}

type fragranceLookup struct {
	byCode map[int]uint
	byName map[string]uint
}

func newFragranceLookup(fragrances []models.Fragrance) fragranceLookup {
	l := fragranceLookup{
		byCode: make(map[int]uint, len(fragrances)),
		byName: make(map[string]uint, len(fragrances)),
	}
	for _, f := range fragrances {
		l.byCode[f.Code] = f.ID
		l.byName[strings.ToLower(f.Name)] = f.ID
	}
	return l
}

// find resolves a code first and falls back to the name.
func (l fragranceLookup) find(ref string) (uint, bool) {
	if code, ok := parseNumber(ref); ok {
		if id, found := l.byCode[int(code)]; found {
			return id, true
		}
	}
	id, found := l.byName[strings.ToLower(strings.TrimSpace(ref))]
	return id, found
}

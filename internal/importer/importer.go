// Package importer loads catalog spreadsheets exported as CSV into the
// studio database. Every row is written in its own transaction so one bad
// row does not discard the rest of the file.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"

	applog "parfumerie/internal/log"
	"parfumerie/internal/repository"
)

var (
	numberPattern   = regexp.MustCompile(`[-+]?\d*[.,]?\d+`)
	cleanWhitespace = regexp.MustCompile(`\s+`)
)

// Result counts what happened to the rows of one import.
type Result struct {
	Created int
	Updated int
	Skipped int
}

func (r Result) String() string {
	return fmt.Sprintf("%d created, %d updated, %d skipped", r.Created, r.Updated, r.Skipped)
}

// Importer writes CSV rows through the repositories. The composition options
// are the ones the API runs with, so imported compositions follow the same
// total rule and hooks.
type Importer struct {
	db   *gorm.DB
	opts []repository.CompositionOption
}

func New(db *gorm.DB, opts ...repository.CompositionOption) *Importer {
	return &Importer{db: db, opts: opts}
}

// readRows returns the non-empty rows of a CSV document, header included.
func readRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	out := rows[:0]
	for _, row := range rows {
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		out = append(out, row)
	}
	if len(out) == 0 {
		return nil, errors.New("csv is empty")
	}
	return out, nil
}

// readRecords maps every data row onto the lower-cased header names.
func readRecords(r io.Reader) ([]map[string]string, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	header := make([]string, len(rows[0]))
	for i, key := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(key))
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			record[key] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}
	return records, nil
}

// column returns the first non-empty value among the accepted header names.
func column(record map[string]string, names ...string) string {
	for _, name := range names {
		if value := normalizeValue(record[name]); value != "" {
			return value
		}
	}
	return ""
}

func normalizeValue(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "N/A") || strings.EqualFold(value, "nan") {
		return ""
	}
	return cleanWhitespace.ReplaceAllString(value, " ")
}

// parseNumber reads the first number in value, accepting a decimal comma.
func parseNumber(value string) (float64, bool) {
	match := numberPattern.FindString(normalizeValue(value))
	if match == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(strings.Replace(match, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func (im *Importer) inTx(ctx context.Context, fn func(set repository.Set) error) error {
	return im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repository.New(tx, im.opts...))
	})
}

func skip(ctx context.Context, line int, reason string, args ...any) {
	applog.Warn(ctx, "skipping import row", append([]any{"line", line, "reason", reason}, args...)...)
}

package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/guessr/pkg/domain"
)

// Table is a raw tabular source: a header row and string cells.
// An empty cell is a missing value.
type Table struct {
	Header []string
	Rows   [][]string
}

// missingMarkers are cell spellings read as missing values.
var missingMarkers = map[string]struct{}{
	"na": {}, "n/a": {}, "nan": {}, "null": {}, "none": {}, "#n/a": {}, "-nan": {},
}

// cell returns the trimmed value at row/col, or "" when the row is short
// or the cell holds a missing marker.
func (t Table) cell(row, col int) string {
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	c := strings.TrimSpace(r[col])
	if _, ok := missingMarkers[strings.ToLower(c)]; ok {
		return ""
	}
	return c
}

// FromTable validates a Table and turns it into a Dataset.
//
// The name column is required. Rows without a name are dropped. Every other column
// whose present cells all parse as numbers becomes a trait, in header order. Cells
// that fail to parse become missing, and missing values are replaced by domain.MissingValue.
func FromTable(t Table, nameColumn string) (*domain.Dataset, error) {
	if nameColumn == "" {
		nameColumn = domain.DefaultNameColumn
	}

	nameIdx := -1
	for i, h := range t.Header {
		if strings.TrimSpace(h) == nameColumn {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("%w: expected column %q, available columns are %v",
			domain.ErrMissingNameColumn, nameColumn, t.Header)
	}

	rows := make([]int, 0, len(t.Rows))
	names := make([]string, 0, len(t.Rows))
	for r := range t.Rows {
		name := t.cell(r, nameIdx)
		if name == "" {
			continue
		}
		rows = append(rows, r)
		names = append(names, name)
	}

	var candidates []int
	for col := range t.Header {
		if col == nameIdx {
			continue
		}
		if isNumericColumn(t, rows, col) {
			candidates = append(candidates, col)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no numeric feature columns in %v", domain.ErrNoUsableTraits, t.Header)
	}

	ds := &domain.Dataset{Characters: names}
	for _, col := range candidates {
		values := make([]float64, len(rows))
		for i, r := range rows {
			v, ok := parseNumber(t.cell(r, col))
			if !ok {
				v = domain.MissingValue
			}
			values[i] = v
		}
		ds.Traits = append(ds.Traits, domain.Trait{
			Name:   strings.TrimSpace(t.Header[col]),
			Values: values,
		})
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// isNumericColumn reports whether every present cell of col parses as a number.
// A column with no present cells is numeric, matching a column of missing values.
func isNumericColumn(t Table, rows []int, col int) bool {
	for _, r := range rows {
		c := t.cell(r, col)
		if c == "" {
			continue
		}
		if _, ok := parseNumber(c); !ok {
			return false
		}
	}
	return true
}

// parseNumber parses a finite decimal. NaN markers and booleans are not numbers.
func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

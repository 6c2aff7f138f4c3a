package guessr

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/guessr/pkg/adapters/csv"
	"github.com/aretw0/guessr/pkg/adapters/parquet"
	"github.com/aretw0/guessr/pkg/ports"
)

// OpenDataset returns the data provider for the file at path, chosen by extension.
// The file itself is only read when a game starts.
//
// Both formats keep the same columns: integer and float columns become traits,
// while text and boolean columns ("true"/"false" in CSV, BOOLEAN in Parquet) are ignored.
// Encode flags as 0/1 to use them as traits.
func OpenDataset(path, nameColumn string) (ports.DataProvider, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		p := csv.New(path)
		if nameColumn != "" {
			p.NameColumn = nameColumn
		}
		return p, nil
	case ".parquet", ".pq":
		p := parquet.New(path)
		if nameColumn != "" {
			p.NameColumn = nameColumn
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported dataset format %q (want .csv or .parquet)", ext)
	}
}

package csv

import (
	"context"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/guessr/pkg/dataset"
	"github.com/aretw0/guessr/pkg/domain"
)

// Provider implements ports.DataProvider by reading a CSV file with a header row.
// The file is read again on every Load.
type Provider struct {
	Path       string
	NameColumn string
}

// New creates a Provider for the CSV file at path.
func New(path string) *Provider {
	return &Provider{Path: path, NameColumn: domain.DefaultNameColumn}
}

// Load reads and validates the file.
func (p *Provider) Load(ctx context.Context) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(p.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataSourceUnavailable, err)
	}
	defer f.Close()

	table, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDataSourceUnavailable, p.Path, err)
	}
	return dataset.FromTable(table, p.NameColumn)
}

// ReadTable parses CSV data into a dataset.Table.
// Rows may have fewer fields than the header; missing fields are empty.
func ReadTable(r io.Reader) (dataset.Table, error) {
	reader := stdcsv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return dataset.Table{}, fmt.Errorf("empty file")
		}
		return dataset.Table{}, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		// Spreadsheet exports often start with a UTF-8 BOM.
		header[0] = trimBOM(header[0])
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return dataset.Table{}, fmt.Errorf("failed to read rows: %w", err)
	}
	return dataset.Table{Header: header, Rows: rows}, nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}

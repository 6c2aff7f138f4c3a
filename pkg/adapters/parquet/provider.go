package parquet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/guessr/pkg/dataset"
	"github.com/aretw0/guessr/pkg/domain"
	"github.com/parquet-go/parquet-go"
)

// Provider implements ports.DataProvider by reading a Parquet file.
// Each leaf column becomes a table column named by its dotted path.
type Provider struct {
	Path       string
	NameColumn string
}

// New creates a Provider for the Parquet file at path.
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

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataSourceUnavailable, err)
	}

	table, err := ReadTable(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDataSourceUnavailable, p.Path, err)
	}
	return dataset.FromTable(table, p.NameColumn)
}

// ReadTable converts every row of a Parquet file into string cells.
// Null values become empty cells.
func ReadTable(r io.ReaderAt, size int64) (dataset.Table, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("failed to open parquet file: %w", err)
	}

	paths := pf.Schema().Columns()
	header := make([]string, len(paths))
	for i, path := range paths {
		header[i] = strings.Join(path, ".")
	}

	table := dataset.Table{Header: header}
	buf := make([]parquet.Row, 128)
	for _, rg := range pf.RowGroups() {
		if err := readGroup(rg, len(header), buf, &table); err != nil {
			return dataset.Table{}, err
		}
	}
	return table, nil
}

func readGroup(rg parquet.RowGroup, width int, buf []parquet.Row, table *dataset.Table) error {
	rows := rg.Rows()
	defer rows.Close()

	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			cells := make([]string, width)
			for _, v := range row {
				col := v.Column()
				if col < 0 || col >= width {
					continue
				}
				cells[col] = formatValue(v)
			}
			table.Rows = append(table.Rows, cells)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read rows: %w", err)
		}
		if n == 0 {
			return nil
		}
	}
}

func formatValue(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Kind() {
	case parquet.Boolean:
		// Rendered like a CSV flag so the column is dropped as non-numeric in both formats.
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}

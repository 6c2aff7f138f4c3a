package memory

import (
	"context"
	"slices"

	"github.com/aretw0/guessr/pkg/dataset"
	"github.com/aretw0/guessr/pkg/domain"
)

// Provider implements ports.DataProvider from an in-memory table.
// Every Load parses the table again, so callers get a fresh Dataset per game.
type Provider struct {
	table      dataset.Table
	nameColumn string
}

// NewProvider creates a Provider from a header row and raw string rows.
// The first header named domain.DefaultNameColumn holds the character names.
func NewProvider(header []string, rows ...[]string) *Provider {
	return &Provider{
		table:      dataset.Table{Header: slices.Clone(header), Rows: rows},
		nameColumn: domain.DefaultNameColumn,
	}
}

// WithNameColumn overrides the name column header.
func (p *Provider) WithNameColumn(name string) *Provider {
	p.nameColumn = name
	return p
}

// Load parses the table into a Dataset.
func (p *Provider) Load(ctx context.Context) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dataset.FromTable(p.table, p.nameColumn)
}

// NewFromDataset creates a provider that serves copies of an already validated Dataset.
func NewFromDataset(ds *domain.Dataset) *DatasetProvider {
	return &DatasetProvider{ds: ds}
}

// DatasetProvider serves copies of a fixed Dataset.
type DatasetProvider struct {
	ds *domain.Dataset
}

// Load returns a deep copy of the dataset.
func (p *DatasetProvider) Load(ctx context.Context) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.ds.Validate(); err != nil {
		return nil, err
	}
	out := &domain.Dataset{Characters: slices.Clone(p.ds.Characters)}
	for _, t := range p.ds.Traits {
		out.Traits = append(out.Traits, domain.Trait{Name: t.Name, Values: slices.Clone(t.Values)})
	}
	return out, nil
}

package domain_test

import (
	"testing"

	"github.com/aretw0/guessr/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stump() *domain.Tree {
	return &domain.Tree{
		Features: []string{"has_straw_hat"},
		Nodes: []domain.Node{
			{Kind: domain.NodeSplit, Trait: 0, Threshold: 0.5, Left: 1, Right: 2},
			{Kind: domain.NodeLeaf, Left: domain.NoChild, Right: domain.NoChild, Label: "Zoro"},
			{Kind: domain.NodeLeaf, Left: domain.NoChild, Right: domain.NoChild, Label: "Luffy"},
		},
	}
}

func TestTree_Question(t *testing.T) {
	tr := stump()
	require.NoError(t, tr.Validate())

	q, err := tr.Question(domain.RootID)
	require.NoError(t, err)
	assert.Equal(t, "has straw hat", q)

	_, err = tr.Question(1)
	assert.Error(t, err, "leaves carry no question")

	_, err = tr.Question(42)
	assert.Error(t, err)
}

func TestTree_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Tree)
	}{
		{"empty", func(tr *domain.Tree) { tr.Nodes = nil }},
		{"leaf root", func(tr *domain.Tree) { tr.Nodes = tr.Nodes[1:2] }},
		{"unknown trait", func(tr *domain.Tree) { tr.Nodes[0].Trait = 3 }},
		{"dangling child", func(tr *domain.Tree) { tr.Nodes[0].Right = 9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := stump()
			tt.mutate(tr)
			assert.ErrorIs(t, tr.Validate(), domain.ErrMalformedTree)
		})
	}
}

func TestDataset_Validate(t *testing.T) {
	assert.ErrorIs(t, (*domain.Dataset)(nil).Validate(), domain.ErrNoUsableTraits)
	assert.ErrorIs(t, (&domain.Dataset{Characters: []string{"a"}}).Validate(), domain.ErrNoUsableTraits)

	ragged := &domain.Dataset{
		Characters: []string{"a", "b"},
		Traits:     []domain.Trait{{Name: "x", Values: []float64{1}}},
	}
	assert.Error(t, ragged.Validate())
}

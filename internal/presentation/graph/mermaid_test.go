package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/guessr/internal/presentation/graph"
	"github.com/aretw0/guessr/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func sampleTree() *domain.Tree {
	return &domain.Tree{
		Features: []string{"has_straw_hat"},
		Nodes: []domain.Node{
			{Kind: domain.NodeSplit, Trait: 0, Threshold: 0.5, Left: 1, Right: 2, Samples: 2},
			{Kind: domain.NodeLeaf, Left: domain.NoChild, Right: domain.NoChild, Label: "Zoro", Samples: 1, Depth: 1},
			{Kind: domain.NodeLeaf, Left: domain.NoChild, Right: domain.NoChild, Label: `Monkey "D" Luffy`, Samples: 1, Depth: 1},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(sampleTree(), nil)

	for _, want := range []string{
		"graph TD\n",
		`n0{"has straw hat > 0.5?"}`,
		`n0 -- "no" --> n1`,
		`n0 -- "yes" --> n2`,
		`n1(["Zoro <br/> 1 sample(s)"])`,
		`n2(["Monkey 'D' Luffy <br/> 1 sample(s)"])`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "classDef")
	assert.Less(t, strings.Index(out, `"no"`), strings.Index(out, `"yes"`))
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	game := domain.NewGame("s")
	game.Active = true
	game.CurrentNode = 2
	game.Turns = []domain.Turn{{Node: 0}, {Node: 0}, {Node: 42}}

	out := graph.GenerateMermaid(sampleTree(), graph.OverlayFor(game))

	assert.Equal(t, 1, strings.Count(out, "class n0 visited;"))
	assert.Contains(t, out, "class n2 current;")
	assert.NotContains(t, out, "n42")

	game.Active = false
	out = graph.GenerateMermaid(sampleTree(), graph.OverlayFor(game))
	assert.NotContains(t, out, "current;")
}

func TestGenerateMermaid_NilTree(t *testing.T) {
	assert.Equal(t, "graph TD\n", graph.GenerateMermaid(nil, nil))
}

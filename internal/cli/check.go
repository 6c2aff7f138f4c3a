package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/guessr"
	"github.com/aretw0/guessr/pkg/tree"
)

// Report describes a dataset and the tree trained on it.
type Report struct {
	Dataset    string
	Characters int
	Unique     int
	Traits     int
	Nodes      int
	Leaves     int
	Depth      int
}

// Check loads the dataset at path and trains a tree on it, without starting a game.
func Check(ctx context.Context, path, nameColumn string, maxDepth int) (Report, error) {
	provider, err := guessr.OpenDataset(path, nameColumn)
	if err != nil {
		return Report{}, err
	}
	ds, err := provider.Load(ctx)
	if err != nil {
		return Report{}, err
	}
	t, err := tree.Build(ds, tree.WithMaxDepth(maxDepth))
	if err != nil {
		return Report{}, err
	}

	unique := make(map[string]struct{}, ds.Len())
	for _, name := range ds.Characters {
		unique[name] = struct{}{}
	}
	r := Report{
		Dataset:    path,
		Characters: ds.Len(),
		Unique:     len(unique),
		Traits:     len(ds.Traits),
		Nodes:      len(t.Nodes),
		Depth:      t.Depth(),
	}
	for _, n := range t.Nodes {
		if n.IsLeaf() {
			r.Leaves++
		}
	}
	return r, nil
}

// Print writes the report for humans.
func (r Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Dataset:    %s\n", r.Dataset)
	fmt.Fprintf(w, "Characters: %d (%d unique)\n", r.Characters, r.Unique)
	fmt.Fprintf(w, "Traits:     %d\n", r.Traits)
	fmt.Fprintf(w, "Tree:       %d nodes, %d leaves, depth %d\n", r.Nodes, r.Leaves, r.Depth)
}

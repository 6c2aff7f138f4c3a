package tree

import (
	"fmt"
	"sort"

	"github.com/aretw0/guessr/pkg/domain"
)

// tieTolerance absorbs float noise when comparing split impurities,
// so equal splits resolve by trait index and then threshold order.
const tieTolerance = 1e-12

// Option configures Build.
type Option func(*builder)

// WithMaxDepth bounds the depth of the tree. Non-positive values keep the default.
func WithMaxDepth(depth int) Option {
	return func(b *builder) {
		if depth > 0 {
			b.maxDepth = depth
		}
	}
}

type builder struct {
	ds       *domain.Dataset
	maxDepth int
	labels   []int // class id per row
	classes  []string
	nodes    []domain.Node
}

// Build trains a decision tree that separates every character from the others.
//
// Each split minimises the weighted Gini impurity of the character labels over all
// (trait, threshold) candidates, where thresholds are midpoints between consecutive
// distinct values at the node. Rows with value <= threshold go left. Ties keep the
// earliest trait and then the smallest threshold, so the same dataset always yields
// the same tree. Nodes are stored in pre-order with the root at index 0.
//
// Build returns domain.ErrMalformedTree when not even the root can be split.
func Build(ds *domain.Dataset, opts ...Option) (*domain.Tree, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	b := &builder{ds: ds, maxDepth: domain.DefaultMaxDepth}
	for _, opt := range opts {
		opt(b)
	}
	b.indexLabels()

	rows := make([]int, ds.Len())
	for i := range rows {
		rows[i] = i
	}
	b.grow(rows, 0)

	t := &domain.Tree{
		Nodes:    b.nodes,
		Features: ds.TraitNames(),
		MaxDepth: b.maxDepth,
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("cannot ask a first question: %w", err)
	}
	return t, nil
}

// indexLabels maps character names to dense class ids. Repeated names share a class.
func (b *builder) indexLabels() {
	ids := make(map[string]int)
	b.labels = make([]int, b.ds.Len())
	for row, name := range b.ds.Characters {
		id, ok := ids[name]
		if !ok {
			id = len(b.classes)
			ids[name] = id
			b.classes = append(b.classes, name)
		}
		b.labels[row] = id
	}
}

// grow appends the subtree for rows and returns its node index.
func (b *builder) grow(rows []int, depth int) int {
	id := len(b.nodes)
	b.nodes = append(b.nodes, domain.Node{
		Kind:    domain.NodeLeaf,
		Left:    domain.NoChild,
		Right:   domain.NoChild,
		Label:   b.majority(rows),
		Samples: len(rows),
		Depth:   depth,
	})

	if depth >= b.maxDepth || b.pure(rows) {
		return id
	}
	s, ok := b.bestSplit(rows)
	if !ok {
		return id
	}

	var left, right []int
	for _, r := range rows {
		if b.ds.Value(s.trait, r) <= s.threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return id
	}

	n := &b.nodes[id]
	n.Kind = domain.NodeSplit
	n.Trait = s.trait
	n.Threshold = s.threshold

	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	// b.nodes may have been reallocated by the recursion.
	b.nodes[id].Left = l
	b.nodes[id].Right = r
	return id
}

func (b *builder) pure(rows []int) bool {
	for _, r := range rows[1:] {
		if b.labels[r] != b.labels[rows[0]] {
			return false
		}
	}
	return true
}

// majority returns the most frequent label, lowest class id on ties.
func (b *builder) majority(rows []int) string {
	if len(rows) == 0 {
		return ""
	}
	counts := make(map[int]int)
	best, bestCount := -1, 0
	for _, r := range rows {
		c := b.labels[r]
		counts[c]++
		if counts[c] > bestCount || (counts[c] == bestCount && c < best) {
			best, bestCount = c, counts[c]
		}
	}
	return b.classes[best]
}

type split struct {
	trait     int
	threshold float64
	impurity  float64
}

// bestSplit scans every trait in order, sweeping rows sorted by value and
// scoring each boundary between distinct values.
func (b *builder) bestSplit(rows []int) (split, bool) {
	best := split{trait: -1}
	found := false

	total := make(map[int]int)
	for _, r := range rows {
		total[b.labels[r]]++
	}
	n := float64(len(rows))

	sorted := make([]int, len(rows))
	for trait := range b.ds.Traits {
		copy(sorted, rows)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.ds.Value(trait, sorted[i]) < b.ds.Value(trait, sorted[j])
		})

		left := make(map[int]int)
		right := make(map[int]int, len(total))
		for c, k := range total {
			right[c] = k
		}
		// Sums of squared class counts on each side, updated as rows move left.
		var leftSq, rightSq float64
		for _, k := range total {
			rightSq += float64(k * k)
		}

		for i := 0; i < len(sorted)-1; i++ {
			c := b.labels[sorted[i]]
			leftSq += float64(2*left[c] + 1)
			rightSq -= float64(2*right[c] - 1)
			left[c]++
			right[c]--

			v, next := b.ds.Value(trait, sorted[i]), b.ds.Value(trait, sorted[i+1])
			if v == next {
				continue
			}

			nl := float64(i + 1)
			nr := n - nl
			giniL := 1 - leftSq/(nl*nl)
			giniR := 1 - rightSq/(nr*nr)
			imp := (nl*giniL + nr*giniR) / n

			if !found || imp < best.impurity-tieTolerance {
				best = split{trait: trait, threshold: midpoint(v, next), impurity: imp}
				found = true
			}
		}
	}
	return best, found
}

// midpoint returns a threshold strictly below hi, even when hi and lo are adjacent floats.
func midpoint(lo, hi float64) float64 {
	m := lo + (hi-lo)/2
	if m >= hi {
		return lo
	}
	return m
}

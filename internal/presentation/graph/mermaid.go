package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/guessr/pkg/domain"
)

// Overlay contains session data to visualize on the tree.
type Overlay struct {
	VisitedNodes []int
	// CurrentNode is highlighted when the overlay is active. Negative means none.
	CurrentNode int
}

// GenerateMermaid produces a Mermaid flowchart of a decision tree.
// It applies semantic styling:
// - Split: {Rhombus} labelled with the question
// - Leaf: ([Stadium]) labelled with the majority character and sample count
// The "no" edge always precedes the "yes" edge.
func GenerateMermaid(t *domain.Tree, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if t == nil {
		return sb.String()
	}

	for id, node := range t.Nodes {
		nid := nodeID(id)

		if node.IsLeaf() {
			label := fmt.Sprintf("%s <br/> %d sample(s)", node.Label, node.Samples)
			fmt.Fprintf(&sb, "    %s([\"%s\"])\n", nid, escape(label))
			continue
		}

		trait := strconv.Itoa(node.Trait)
		if node.Trait >= 0 && node.Trait < len(t.Features) {
			trait = domain.HumanizeTrait(t.Features[node.Trait])
		}
		label := fmt.Sprintf("%s > %s?", trait, strconv.FormatFloat(node.Threshold, 'g', -1, 64))
		fmt.Fprintf(&sb, "    %s{\"%s\"}\n", nid, escape(label))
		fmt.Fprintf(&sb, "    %s -- \"no\" --> %s\n", nid, nodeID(node.Left))
		fmt.Fprintf(&sb, "    %s -- \"yes\" --> %s\n", nid, nodeID(node.Right))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, id := range overlay.VisitedNodes {
			if seen[id] || id < 0 || id >= len(t.Nodes) {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(id))
		}
		if overlay.CurrentNode >= 0 && overlay.CurrentNode < len(t.Nodes) {
			fmt.Fprintf(&sb, "    class %s current;\n", nodeID(overlay.CurrentNode))
		}
	}

	return sb.String()
}

// OverlayFor builds the overlay of a game: every node a question was asked at, plus
// the current node while the game is running.
func OverlayFor(g *domain.Game) *Overlay {
	o := &Overlay{CurrentNode: -1}
	for _, turn := range g.Turns {
		o.VisitedNodes = append(o.VisitedNodes, turn.Node)
	}
	if g.Active {
		o.CurrentNode = g.CurrentNode
	}
	return o
}

func nodeID(id int) string {
	return "n" + strconv.Itoa(id)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

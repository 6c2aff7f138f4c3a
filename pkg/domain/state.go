package domain

import (
	"slices"
	"time"
)

// Phase is the position of a game in the engine state machine.
type Phase string

const (
	PhaseInactive             Phase = "inactive"
	PhaseQuestioning          Phase = "questioning"
	PhaseAwaitingConfirmation Phase = "awaiting_confirmation"
)

// Outcome records how a game ended.
type Outcome string

const (
	OutcomeNone            Outcome = ""
	OutcomeWon             Outcome = "won"
	OutcomeStumped         Outcome = "stumped"
	OutcomeBudgetExhausted Outcome = "budget_exhausted"
	OutcomeQuit            Outcome = "quit"
	OutcomeAborted         Outcome = "aborted"
)

// Turn is one answered question.
type Turn struct {
	Node   int    `json:"node"`
	Trait  string `json:"trait"`
	Answer string `json:"answer"`
	// Remaining is the candidate count after the answer was applied.
	Remaining int `json:"remaining"`
}

// Game is the mutable state of a single play session.
// Dataset and Tree are shared with the engine for the lifetime of the game and never mutated.
type Game struct {
	ID string `json:"id"`

	Active         bool     `json:"active"`
	Remaining      []string `json:"remaining"`
	CurrentNode    int      `json:"current_node"`
	QuestionsAsked int      `json:"questions_asked"`

	// PendingGuess holds the character awaiting confirmation. Empty means none.
	PendingGuess string `json:"pending_guess,omitempty"`

	Dataset *Dataset `json:"dataset,omitempty"`
	Tree    *Tree    `json:"tree,omitempty"`

	Turns     []Turn    `json:"turns,omitempty"`
	Outcome   Outcome   `json:"outcome,omitempty"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGame creates an inactive game with the given session ID.
func NewGame(id string) *Game {
	return &Game{ID: id}
}

// Phase derives the state machine position from the game fields.
func (g *Game) Phase() Phase {
	switch {
	case !g.Active:
		return PhaseInactive
	case g.PendingGuess != "":
		return PhaseAwaitingConfirmation
	default:
		return PhaseQuestioning
	}
}

// Reset begins a fresh game over ds and tree with every character as a candidate.
func (g *Game) Reset(ds *Dataset, tree *Tree, now time.Time) {
	seen := make(map[string]struct{}, ds.Len())
	remaining := make([]string, 0, ds.Len())
	for _, name := range ds.Characters {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		remaining = append(remaining, name)
	}

	g.Dataset = ds
	g.Tree = tree
	g.Remaining = remaining
	g.CurrentNode = RootID
	g.QuestionsAsked = 0
	g.PendingGuess = ""
	g.Active = true
	g.Turns = nil
	g.Outcome = OutcomeNone
	g.StartedAt = now
	g.UpdatedAt = now
}

// End deactivates the game and clears any pending guess.
func (g *Game) End(outcome Outcome) {
	g.Active = false
	g.PendingGuess = ""
	g.Outcome = outcome
}

// Deactivate stops the game without touching the other fields.
// Used when a game could not be started at all.
func (g *Game) Deactivate() {
	g.Active = false
	g.PendingGuess = ""
}

// Eliminate removes name from the candidates. It reports whether it was present.
func (g *Game) Eliminate(name string) bool {
	i := slices.Index(g.Remaining, name)
	if i < 0 {
		return false
	}
	g.Remaining = slices.Delete(g.Remaining, i, i+1)
	return true
}

// Narrow keeps the candidates whose dataset rows satisfy keep.
// A candidate survives if any row carrying its name matches.
func (g *Game) Narrow(keep func(row int) bool) {
	matched := make(map[string]struct{}, len(g.Remaining))
	for row, name := range g.Dataset.Characters {
		if keep(row) {
			matched[name] = struct{}{}
		}
	}
	g.Remaining = slices.DeleteFunc(g.Remaining, func(name string) bool {
		_, ok := matched[name]
		return !ok
	})
}

// Snapshot returns a copy safe to hand to another goroutine.
// Dataset and Tree are shared since they are immutable.
func (g *Game) Snapshot() *Game {
	c := *g
	c.Remaining = slices.Clone(g.Remaining)
	c.Turns = slices.Clone(g.Turns)
	return &c
}

package domain_test

import (
	"testing"
	"time"

	"github.com/aretw0/guessr/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *domain.Dataset {
	return &domain.Dataset{
		Characters: []string{"Goku", "Vegeta", "Goku", "Piccolo"},
		Traits: []domain.Trait{
			{Name: "is_saiyan", Values: []float64{1, 1, 0, 0}},
		},
	}
}

func TestGame_Reset(t *testing.T) {
	g := domain.NewGame("s1")
	assert.Equal(t, domain.PhaseInactive, g.Phase())

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	g.PendingGuess = "stale"
	g.QuestionsAsked = 7
	g.Reset(sample(), &domain.Tree{}, now)

	assert.Equal(t, []string{"Goku", "Vegeta", "Piccolo"}, g.Remaining, "names are deduplicated in first-seen order")
	assert.Equal(t, domain.PhaseQuestioning, g.Phase())
	assert.Zero(t, g.QuestionsAsked)
	assert.Empty(t, g.PendingGuess)
	assert.Equal(t, now, g.StartedAt)
}

func TestGame_Narrow(t *testing.T) {
	g := domain.NewGame("s1")
	ds := sample()
	g.Reset(ds, &domain.Tree{}, time.Now())

	// Goku has one row on each side, so he survives either answer.
	g.Narrow(func(row int) bool { return ds.Value(0, row) <= 0.5 })
	assert.Equal(t, []string{"Goku", "Piccolo"}, g.Remaining)

	g.Narrow(func(row int) bool { return ds.Value(0, row) > 0.5 })
	assert.Equal(t, []string{"Goku"}, g.Remaining)
}

func TestGame_EliminateAndEnd(t *testing.T) {
	g := domain.NewGame("s1")
	g.Reset(sample(), &domain.Tree{}, time.Now())

	assert.True(t, g.Eliminate("Vegeta"))
	assert.False(t, g.Eliminate("Vegeta"))
	assert.NotContains(t, g.Remaining, "Vegeta")

	g.PendingGuess = "Goku"
	assert.Equal(t, domain.PhaseAwaitingConfirmation, g.Phase())

	g.End(domain.OutcomeQuit)
	assert.Equal(t, domain.PhaseInactive, g.Phase())
	assert.Empty(t, g.PendingGuess)
	assert.Equal(t, domain.OutcomeQuit, g.Outcome)
}

func TestGame_SnapshotIsolation(t *testing.T) {
	g := domain.NewGame("s1")
	g.Reset(sample(), &domain.Tree{}, time.Now())
	g.Turns = append(g.Turns, domain.Turn{Trait: "is_saiyan", Answer: "yes"})

	snap := g.Snapshot()
	g.Remaining[0] = "changed"
	g.Turns[0].Answer = "no"

	require.Len(t, snap.Remaining, 3)
	assert.Equal(t, "Goku", snap.Remaining[0])
	assert.Equal(t, "yes", snap.Turns[0].Answer)
	assert.Same(t, g.Dataset, snap.Dataset)
}

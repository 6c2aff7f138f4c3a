package domain_test

import (
	"context"
	"testing"

	"github.com/aretw0/guessr/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnGameEnd: func(context.Context, *domain.GameEvent) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnGameEnd: func(context.Context, *domain.GameEvent) { calls = append(calls, "b") },
		OnGuess:   func(context.Context, *domain.TurnEvent) { calls = append(calls, "guess") },
	}

	merged := a.Merge(b)
	merged.OnGameEnd(context.Background(), &domain.GameEvent{})
	merged.OnGuess(context.Background(), &domain.TurnEvent{})

	assert.Equal(t, []string{"a", "b", "guess"}, calls)
	assert.Nil(t, merged.OnQuestion)
}

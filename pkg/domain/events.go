package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventGameStart EventType = "game_start"
	EventQuestion  EventType = "question"
	EventAnswer    EventType = "answer"
	EventGuess     EventType = "guess"
	EventGameEnd   EventType = "game_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// GameEvent is emitted when a game starts or ends.
type GameEvent struct {
	EventBase
	Characters int     `json:"characters"`
	Traits     int     `json:"traits"`
	Questions  int     `json:"questions"`
	Outcome    Outcome `json:"outcome,omitempty"`
	Character  string  `json:"character,omitempty"`
}

// TurnEvent is emitted around a single question, answer or guess.
type TurnEvent struct {
	EventBase
	Node      int    `json:"node"`
	Trait     string `json:"trait,omitempty"`
	Answer    string `json:"answer,omitempty"`
	Guess     string `json:"guess,omitempty"`
	Remaining int    `json:"remaining"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnGameStart func(context.Context, *GameEvent)
	OnQuestion  func(context.Context, *TurnEvent)
	OnAnswer    func(context.Context, *TurnEvent)
	OnGuess     func(context.Context, *TurnEvent)
	OnGameEnd   func(context.Context, *GameEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnGameStart: chain(h.OnGameStart, other.OnGameStart),
		OnQuestion:  chain(h.OnQuestion, other.OnQuestion),
		OnAnswer:    chain(h.OnAnswer, other.OnAnswer),
		OnGuess:     chain(h.OnGuess, other.OnGuess),
		OnGameEnd:   chain(h.OnGameEnd, other.OnGameEnd),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

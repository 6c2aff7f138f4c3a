package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/guessr/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the game collectors.
type Metrics struct {
	GamesStarted  prometheus.Counter
	GamesFinished *prometheus.CounterVec
	Answers       *prometheus.CounterVec
	Guesses       prometheus.Counter
	Questions     prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "guessr_games_started_total",
			Help: "Total number of games started",
		}),
		GamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "guessr_games_finished_total",
			Help: "Total number of finished games by outcome",
		}, []string{"outcome"}),
		Answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "guessr_answers_total",
			Help: "Total number of applied answers by kind",
		}, []string{"answer"}),
		Guesses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "guessr_guesses_total",
			Help: "Total number of guesses offered",
		}),
		Questions: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "guessr_questions_per_game",
			Help:    "Questions answered before a game ended",
			Buckets: prometheus.LinearBuckets(0, 5, 6),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.GamesStarted, m.GamesFinished, m.Answers, m.Guesses, m.Questions)
	}
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnGameStart: func(context.Context, *domain.GameEvent) {
			m.GamesStarted.Inc()
		},
		OnAnswer: func(_ context.Context, e *domain.TurnEvent) {
			m.Answers.WithLabelValues(e.Answer).Inc()
		},
		OnGuess: func(context.Context, *domain.TurnEvent) {
			m.Guesses.Inc()
		},
		OnGameEnd: func(_ context.Context, e *domain.GameEvent) {
			m.GamesFinished.WithLabelValues(string(e.Outcome)).Inc()
			m.Questions.Observe(float64(e.Questions))
		},
	}
}

// LoggingHooks logs every lifecycle event at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnGameStart: func(ctx context.Context, e *domain.GameEvent) {
			logger.DebugContext(ctx, "game_start", "session_id", e.SessionID, "characters", e.Characters, "traits", e.Traits)
		},
		OnQuestion: func(ctx context.Context, e *domain.TurnEvent) {
			logger.DebugContext(ctx, "question", "session_id", e.SessionID, "node", e.Node, "trait", e.Trait)
		},
		OnAnswer: func(ctx context.Context, e *domain.TurnEvent) {
			logger.DebugContext(ctx, "answer", "session_id", e.SessionID, "answer", e.Answer, "remaining", e.Remaining)
		},
		OnGuess: func(ctx context.Context, e *domain.TurnEvent) {
			logger.DebugContext(ctx, "guess", "session_id", e.SessionID, "guess", e.Guess)
		},
		OnGameEnd: func(ctx context.Context, e *domain.GameEvent) {
			logger.DebugContext(ctx, "game_end", "session_id", e.SessionID, "outcome", e.Outcome, "questions", e.Questions)
		},
	}
}

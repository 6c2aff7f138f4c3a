package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/guessr/internal/logging"
	"github.com/aretw0/guessr/pkg/domain"
	"github.com/aretw0/guessr/pkg/ports"
	"github.com/aretw0/guessr/pkg/tree"
)

// Engine is the guessing state machine. It holds no game state itself:
// every operation receives the Game it mutates.
type Engine struct {
	provider ports.DataProvider
	maxDepth int
	budget   int
	rng      ports.Randomizer
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	now      func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithMaxDepth bounds the depth of the trees trained on start.
func WithMaxDepth(depth int) EngineOption {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// WithQuestionBudget sets how many answered questions force a guess.
func WithQuestionBudget(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.budget = n
		}
	}
}

// WithRandomizer injects the randomness source used for "don't know" answers
// and best-effort guesses. The engine serialises access to it.
func WithRandomizer(r ports.Randomizer) EngineOption {
	return func(e *Engine) {
		if r != nil {
			e.rng = &lockedRandomizer{src: r}
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithClock overrides the time source used for game timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine that loads a fresh dataset from provider on every start.
func NewEngine(provider ports.DataProvider, opts ...EngineOption) *Engine {
	e := &Engine{
		provider: provider,
		maxDepth: domain.DefaultMaxDepth,
		budget:   domain.DefaultQuestionBudget,
		rng:      newTimeSeededRandomizer(),
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// QuestionBudget returns the configured question budget.
func (e *Engine) QuestionBudget() int {
	return e.budget
}

// Start loads and trains a fresh game into g and returns the first question.
// Failures leave g inactive and come back as an explanatory reply; the error
// is returned for logging only.
func (e *Engine) Start(ctx context.Context, g *domain.Game) (reply domain.Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			g.Deactivate()
			err = fmt.Errorf("panic during start: %v", r)
			e.logger.Error("Unexpected failure starting game", "session_id", g.ID, "err", err)
			reply = notice(msgStartUnexpected)
		}
	}()

	ds, err := e.provider.Load(ctx)
	if err != nil {
		g.Deactivate()
		e.logger.Error("Failed to load dataset", "session_id", g.ID, "err", err)
		return notice(msgStartUnavailable), fmt.Errorf("load dataset: %w", err)
	}

	t, err := tree.Build(ds, tree.WithMaxDepth(e.maxDepth))
	if err != nil {
		g.Deactivate()
		if errors.Is(err, domain.ErrMalformedTree) {
			e.logger.Error("Decision tree is malformed", "session_id", g.ID, "err", err)
			return notice(msgStartMalformed), err
		}
		e.logger.Error("Failed to build decision tree", "session_id", g.ID, "err", err)
		return notice(msgStartUnavailable), fmt.Errorf("build tree: %w", err)
	}

	g.Reset(ds, t, e.now())
	trait, err := t.Question(domain.RootID)
	if err != nil {
		g.Deactivate()
		return notice(msgStartMalformed), fmt.Errorf("%w: %v", domain.ErrMalformedTree, err)
	}

	e.logger.Info("Game started",
		"session_id", g.ID,
		"characters", len(g.Remaining),
		"traits", len(ds.Traits),
		"nodes", len(t.Nodes),
		"depth", t.Depth(),
	)
	if e.hooks.OnGameStart != nil {
		e.hooks.OnGameStart(ctx, &domain.GameEvent{
			EventBase:  e.event(domain.EventGameStart, g),
			Characters: len(g.Remaining),
			Traits:     len(ds.Traits),
		})
	}
	return e.ask(ctx, g, "", trait), nil
}

// Quit ends the game in g if one is running.
func (e *Engine) Quit(ctx context.Context, g *domain.Game) (domain.Reply, error) {
	if !g.Active {
		return notice(msgQuitNoGame), domain.ErrNoActiveSession
	}
	return e.finish(ctx, g, domain.OutcomeQuit, "", msgQuit), nil
}

// ask emits the question for the trait at the current node.
func (e *Engine) ask(ctx context.Context, g *domain.Game, prefix, trait string) domain.Reply {
	if e.hooks.OnQuestion != nil {
		e.hooks.OnQuestion(ctx, &domain.TurnEvent{
			EventBase: e.event(domain.EventQuestion, g),
			Node:      g.CurrentNode,
			Trait:     trait,
			Remaining: len(g.Remaining),
		})
	}
	return domain.Reply{
		Text:  prefix + fmt.Sprintf(msgQuestion, trait),
		Kind:  domain.ReplyQuestion,
		Trait: trait,
	}
}

// guess sets name as the pending guess.
func (e *Engine) guess(ctx context.Context, g *domain.Game, name, format string) domain.Reply {
	g.PendingGuess = name
	if e.hooks.OnGuess != nil {
		e.hooks.OnGuess(ctx, &domain.TurnEvent{
			EventBase: e.event(domain.EventGuess, g),
			Node:      g.CurrentNode,
			Guess:     name,
			Remaining: len(g.Remaining),
		})
	}
	return domain.Reply{
		Text:  fmt.Sprintf(format, name),
		Kind:  domain.ReplyGuess,
		Guess: name,
	}
}

// finish ends the game with outcome.
func (e *Engine) finish(ctx context.Context, g *domain.Game, outcome domain.Outcome, character, text string) domain.Reply {
	g.End(outcome)
	g.UpdatedAt = e.now()

	e.logger.Info("Game ended",
		"session_id", g.ID,
		"outcome", outcome,
		"questions", g.QuestionsAsked,
		"character", character,
	)
	if e.hooks.OnGameEnd != nil {
		e.hooks.OnGameEnd(ctx, &domain.GameEvent{
			EventBase: e.event(domain.EventGameEnd, g),
			Questions: g.QuestionsAsked,
			Outcome:   outcome,
			Character: character,
		})
	}
	return domain.Reply{
		Text:    text,
		Kind:    domain.ReplyTerminal,
		Outcome: outcome,
		Guess:   character,
	}
}

func (e *Engine) event(t domain.EventType, g *domain.Game) domain.EventBase {
	return domain.EventBase{Timestamp: e.now(), Type: t, SessionID: g.ID}
}

func notice(text string) domain.Reply {
	return domain.Reply{Text: text, Kind: domain.ReplyNotice}
}

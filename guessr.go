package guessr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/guessr/internal/logging"
	"github.com/aretw0/guessr/internal/presentation/graph"
	"github.com/aretw0/guessr/internal/runtime"
	"github.com/aretw0/guessr/pkg/adapters/memory"
	"github.com/aretw0/guessr/pkg/domain"
	"github.com/aretw0/guessr/pkg/ports"
	"github.com/aretw0/guessr/pkg/session"
)

// DefaultSession is the session used by single-player front ends.
const DefaultSession = domain.DefaultSessionID

// Engine is the high-level entry point of the guessing game.
// It routes every operation to the game of a session ID and keeps games apart,
// so any number of players can be served by one Engine.
type Engine struct {
	runtime  *runtime.Engine
	sessions *session.Manager

	provider    ports.DataProvider
	store       ports.GameStore
	locker      ports.DistributedLocker
	recorder    ports.ResultRecorder
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	runtimeOpts []runtime.EngineOption
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithProvider sets the source of the character table. It is required.
func WithProvider(p ports.DataProvider) Option {
	return func(e *Engine) {
		e.provider = p
	}
}

// WithStore replaces the default in-memory game store.
func WithStore(s ports.GameStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLocker serialises sessions across replicas.
func WithLocker(l ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = l
	}
}

// WithRecorder records every finished game.
func WithRecorder(r ports.ResultRecorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxDepth bounds the depth of the decision tree.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithMaxDepth(depth))
	}
}

// WithQuestionBudget sets how many answered questions force a guess.
func WithQuestionBudget(n int) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithQuestionBudget(n))
	}
}

// WithRandomizer injects the randomness source. Use NewSeededRandomizer for reproducible games.
func WithRandomizer(r ports.Randomizer) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithRandomizer(r))
	}
}

// NewSeededRandomizer returns a deterministic randomness source. Zero seeds from the clock.
func NewSeededRandomizer(seed int64) ports.Randomizer {
	return runtime.NewSeededRandomizer(seed)
}

// New initializes an Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.provider == nil {
		return nil, errors.New("a data provider is required (use WithProvider)")
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}

	sessionOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(eng.locker))
	}
	eng.sessions = session.NewManager(eng.store, sessionOpts...)

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	}
	runtimeOpts = append(runtimeOpts, eng.runtimeOpts...)
	eng.runtime = runtime.NewEngine(eng.provider, runtimeOpts...)

	return eng, nil
}

// Start begins a new game in the session, replacing any game in progress,
// and returns the first question or an explanation of why the game could not start.
func (e *Engine) Start(ctx context.Context, sessionID string) string {
	reply, _ := e.StartReply(ctx, sessionID)
	return reply.Text
}

// Answer applies the player's answer and returns the next prompt.
func (e *Engine) Answer(ctx context.Context, sessionID, answer string) string {
	reply, _ := e.AnswerReply(ctx, sessionID, answer)
	return reply.Text
}

// Quit ends the game in the session.
func (e *Engine) Quit(ctx context.Context, sessionID string) string {
	reply, _ := e.QuitReply(ctx, sessionID)
	return reply.Text
}

// StartReply is Start with the structured reply. The error is informational:
// the reply always carries the message to show.
func (e *Engine) StartReply(ctx context.Context, sessionID string) (domain.Reply, error) {
	var reply domain.Reply
	err := e.sessions.Update(ctx, sessionID, func(ctx context.Context, g *domain.Game) error {
		var err error
		reply, err = e.runtime.Start(ctx, g)
		return err
	})
	return e.settle(sessionID, reply, err, "start")
}

// AnswerReply is Answer with the structured reply.
func (e *Engine) AnswerReply(ctx context.Context, sessionID, answer string) (domain.Reply, error) {
	var reply domain.Reply
	err := e.sessions.UpdateExisting(ctx, sessionID, func(ctx context.Context, g *domain.Game) error {
		var err error
		reply, err = e.runtime.Answer(ctx, g, answer)
		e.record(ctx, g, reply)
		return err
	})
	if errors.Is(err, domain.ErrSessionNotFound) {
		reply, err = e.runtime.Answer(ctx, domain.NewGame(sessionID), answer)
	}
	return e.settle(sessionID, reply, err, "answer")
}

// QuitReply is Quit with the structured reply.
func (e *Engine) QuitReply(ctx context.Context, sessionID string) (domain.Reply, error) {
	var reply domain.Reply
	err := e.sessions.UpdateExisting(ctx, sessionID, func(ctx context.Context, g *domain.Game) error {
		var err error
		reply, err = e.runtime.Quit(ctx, g)
		e.record(ctx, g, reply)
		return err
	})
	if errors.Is(err, domain.ErrSessionNotFound) {
		reply, err = e.runtime.Quit(ctx, domain.NewGame(sessionID))
	}
	return e.settle(sessionID, reply, err, "quit")
}

// settle turns infrastructure failures (store, locks) into a user-facing reply.
func (e *Engine) settle(sessionID string, reply domain.Reply, err error, op string) (domain.Reply, error) {
	if err != nil && !errors.Is(err, domain.ErrInvalidInput) && !errors.Is(err, domain.ErrNoActiveSession) {
		e.logger.Warn("Operation failed", "op", op, "session_id", sessionID, "err", err)
	}
	if reply.Text == "" {
		reply = domain.Reply{Text: runtime.UnexpectedFailureMessage, Kind: domain.ReplyNotice}
	}
	return reply, err
}

// record appends a finished game to the results ledger. Failures are logged only.
func (e *Engine) record(ctx context.Context, g *domain.Game, reply domain.Reply) {
	if e.recorder == nil || reply.Kind != domain.ReplyTerminal {
		return
	}
	res := domain.Result{
		SessionID: g.ID,
		Outcome:   reply.Outcome,
		Character: reply.Guess,
		Questions: g.QuestionsAsked,
		Duration:  g.UpdatedAt.Sub(g.StartedAt),
		EndedAt:   g.UpdatedAt,
	}
	if err := e.recorder.Record(ctx, res); err != nil {
		e.logger.Warn("Failed to record result", "session_id", g.ID, "err", err)
	}
}

// Inspect returns a snapshot of the game in the session.
func (e *Engine) Inspect(ctx context.Context, sessionID string) (*domain.Game, error) {
	return e.sessions.Load(ctx, sessionID)
}

// Graph renders the decision tree of the session as a Mermaid flowchart,
// highlighting the nodes asked so far and the current one.
func (e *Engine) Graph(ctx context.Context, sessionID string) (string, error) {
	g, err := e.Inspect(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if g.Tree == nil {
		return "", fmt.Errorf("session %q: %w", sessionID, domain.ErrNoActiveSession)
	}
	return graph.GenerateMermaid(g.Tree, graph.OverlayFor(g)), nil
}

// Sessions lists the known session IDs.
func (e *Engine) Sessions(ctx context.Context) ([]string, error) {
	return e.sessions.List(ctx)
}

// End removes the session and its game.
func (e *Engine) End(ctx context.Context, sessionID string) error {
	return e.sessions.Delete(ctx, sessionID)
}

// QuestionBudget returns the configured question budget.
func (e *Engine) QuestionBudget() int {
	return e.runtime.QuestionBudget()
}

package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/guessr/internal/logging"
	"github.com/aretw0/guessr/pkg/domain"
)

// Game is the part of the engine the runner drives. *guessr.Engine satisfies it.
type Game interface {
	StartReply(ctx context.Context, sessionID string) (domain.Reply, error)
	AnswerReply(ctx context.Context, sessionID, answer string) (domain.Reply, error)
	QuitReply(ctx context.Context, sessionID string) (domain.Reply, error)
}

// ContentRenderer transforms a message before it is written (e.g. markdown to ANSI).
type ContentRenderer func(string) (string, error)

// Runner handles the prompt loop of one session.
type Runner struct {
	Input     io.Reader
	Output    io.Writer
	SessionID string
	Renderer  ContentRenderer
	Logger    *slog.Logger
	// Headless suppresses the banner and the "> " prompt.
	Headless bool
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithInput sets the source of player lines.
func WithInput(r io.Reader) Option {
	return func(rn *Runner) {
		rn.Input = r
	}
}

// WithOutput sets where replies are written.
func WithOutput(w io.Writer) Option {
	return func(rn *Runner) {
		rn.Output = w
	}
}

// WithSessionID sets the session played by the runner.
func WithSessionID(id string) Option {
	return func(rn *Runner) {
		rn.SessionID = id
	}
}

// WithRenderer configures the content renderer.
func WithRenderer(renderer ContentRenderer) Option {
	return func(rn *Runner) {
		rn.Renderer = renderer
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(rn *Runner) {
		rn.Logger = logger
	}
}

// WithHeadless sets the runner to headless mode.
func WithHeadless(headless bool) Option {
	return func(rn *Runner) {
		rn.Headless = headless
	}
}

// NewRunner creates a Runner on Stdin/Stdout for the default session.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:     os.Stdin,
		Output:    os.Stdout,
		SessionID: domain.DefaultSessionID,
		Logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plays one game until it ends, the player quits, input ends or ctx is cancelled.
// It returns an error only when the game could not start or I/O failed.
func (r *Runner) Run(ctx context.Context, game Game) error {
	if r.Input == nil || r.Output == nil {
		return errors.New("runner input and output must be set")
	}
	lines := bufio.NewScanner(r.Input)
	lines.Buffer(make([]byte, 0, 1024), DefaultMaxInputSize*2)

	reply, err := game.StartReply(ctx, r.SessionID)
	r.print(reply)
	if reply.Kind != domain.ReplyQuestion {
		if err == nil {
			err = errors.New("game did not start")
		}
		return fmt.Errorf("start: %w", err)
	}

	for {
		if ctx.Err() != nil {
			return r.quit(context.WithoutCancel(ctx), game)
		}

		if !r.Headless {
			fmt.Fprint(r.Output, "> ")
		}
		if !lines.Scan() {
			if err := lines.Err(); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
			return r.quit(ctx, game)
		}

		input, err := SanitizeInput(lines.Text())
		if err != nil {
			r.Logger.Warn("Rejected input", "session_id", r.SessionID, "err", err)
			fmt.Fprintln(r.Output, "That input could not be read. Please answer with a few words.")
			continue
		}

		switch strings.ToLower(input) {
		case "quit", "exit":
			return r.quit(ctx, game)
		}

		reply, _ = game.AnswerReply(ctx, r.SessionID, input)
		r.print(reply)
		if reply.Kind == domain.ReplyTerminal || reply.Kind == domain.ReplyNotice {
			return nil
		}
	}
}

func (r *Runner) quit(ctx context.Context, game Game) error {
	reply, err := game.QuitReply(ctx, r.SessionID)
	if errors.Is(err, domain.ErrNoActiveSession) {
		return nil
	}
	r.print(reply)
	return nil
}

func (r *Runner) print(reply domain.Reply) {
	out := reply.Text
	if r.Renderer != nil {
		if rendered, err := r.Renderer(out); err == nil {
			out = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimSpace(out))
}

package cli

import (
	"context"
	"io"
	"os"

	"github.com/aretw0/guessr"
	"github.com/aretw0/guessr/internal/presentation/tui"
	"github.com/aretw0/guessr/pkg/runner"
	"golang.org/x/term"
)

// PlayOptions contains the configuration of the play command.
type PlayOptions struct {
	SessionID string
	Headless  bool
	Input     io.Reader
	Output    io.Writer
}

// Play runs one interactive game on the terminal.
func Play(ctx context.Context, app *App, opts PlayOptions) error {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if !isTerminal(opts.Input) {
		// Piped answers get plain output.
		opts.Headless = true
	}
	if opts.SessionID == "" {
		opts.SessionID = guessr.DefaultSession
	}

	runnerOpts := []runner.Option{
		runner.WithInput(opts.Input),
		runner.WithOutput(opts.Output),
		runner.WithSessionID(opts.SessionID),
		runner.WithLogger(app.Logger),
		runner.WithHeadless(opts.Headless),
	}
	if !opts.Headless {
		tui.PrintBanner(opts.Output, guessr.Version)
		PrintSystemMessage(opts.Output, "Think of a character. Answer 'yes', 'no' or 'don't know'. Type 'quit' to stop.")
		runnerOpts = append(runnerOpts, runner.WithRenderer(tui.NewRenderer()))
	}

	err := runner.NewRunner(runnerOpts...).Run(ctx, app.Engine)
	return HandleExecutionError(err)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/guessr/internal/logging"
)

// ErrInterrupted is the cancellation cause recorded when SIGINT or SIGTERM arrives.
var ErrInterrupted = errors.New("interrupted")

// SignalContext returns a child of parent that is cancelled on SIGINT or SIGTERM.
// context.Cause reports which signal it was.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			cancel(fmt.Errorf("%w by %s", ErrInterrupted, sig))
		case <-ctx.Done():
		}
	}()
	return ctx, func() { cancel(context.Canceled) }
}

// NewLogger builds the application logger from a level name.
// Quiet front ends (the interactive game) only log warnings unless debug is asked for.
func NewLogger(level string, quiet bool) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if quiet && lvl < slog.LevelWarn && lvl != slog.LevelDebug {
		lvl = slog.LevelWarn
	}
	return logging.New(lvl), nil
}

// PrintSystemMessage prints a standardized system message.
func PrintSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// HandleExecutionError maps interruptions to a clean exit.
func HandleExecutionError(err error) error {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrInterrupted) {
		return nil
	}
	return err
}

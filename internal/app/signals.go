package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/atomicstack/chat-tui/internal/shutdown"
)

// watchSignals turns SIGINT/SIGTERM into an Interrupted termination. It
// returns when either a signal arrives or the session ends some other way.
func watchSignals(ctx context.Context, term *shutdown.Terminator) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	done := term.Subscribe()
	select {
	case <-sigs:
		term.Terminate(shutdown.Interrupted)
	case <-done:
	case <-ctx.Done():
	}
	return nil
}

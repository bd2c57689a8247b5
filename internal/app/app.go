package app

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/chat-tui/internal/logging/events"
	"github.com/atomicstack/chat-tui/internal/shutdown"
	"github.com/atomicstack/chat-tui/internal/state"
	"github.com/atomicstack/chat-tui/internal/transport"
	"github.com/atomicstack/chat-tui/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	ServerAddr   string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	TickInterval time.Duration
	DialTimeout  time.Duration
	DialInterval time.Duration
}

// Run bootstraps and executes the Bubble Tea program. It returns once every
// long-lived task (UI, merge loop, event reader, signal watcher) has
// observed the termination broadcast and exited.
func Run(cfg Config) error {
	return RunContext(context.Background(), cfg)
}

// RunContext is Run with a caller-supplied parent context and extra program
// options (tests pass input/output overrides).
func RunContext(ctx context.Context, cfg Config, opts ...tea.ProgramOption) error {
	store := state.NewStore()
	term := shutdown.New()
	g, gctx := errgroup.WithContext(ctx)

	connector := NewConnector(gctx, store, term, transport.NewDialer(cfg.DialTimeout, cfg.DialInterval), cfg.TickInterval, g.Go)
	model := ui.NewModel(ui.Options{
		Store:        store,
		Handler:      connector,
		Terminated:   term.Subscribe(),
		ServerAddr:   cfg.ServerAddr,
		Width:        cfg.Width,
		Height:       cfg.Height,
		ShowFooter:   cfg.ShowFooter,
		Verbose:      cfg.Verbose,
		TickInterval: cfg.TickInterval,
	})
	programOpts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithoutSignalHandler()}, opts...)
	program := tea.NewProgram(model, programOpts...)
	connector.SetNotify(func() { program.Send(ui.StateChangedMsg{}) })

	g.Go(func() error {
		return watchSignals(gctx, term)
	})
	g.Go(func() error {
		_, err := program.Run()
		term.Terminate(shutdown.UserRequested)
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	go func() {
		// parent cancellation ends the session like a signal would
		<-gctx.Done()
		term.Terminate(shutdown.Interrupted)
	}()

	err := g.Wait()
	reason, _ := term.Reason()
	events.App.Exit(reason.String(), err)
	return err
}

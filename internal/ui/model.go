package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/chat-tui/internal/shutdown"
	"github.com/atomicstack/chat-tui/internal/state"
	"github.com/atomicstack/chat-tui/internal/theme"
	"github.com/atomicstack/chat-tui/internal/ui/command"
	uistate "github.com/atomicstack/chat-tui/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultServerAddr pre-fills the connect screen when no address is configured.
const DefaultServerAddr = "localhost:8080"

const defaultTickInterval = time.Second

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

type focusSection int

const (
	focusRooms focusSection = iota
	focusInput
)

func (f focusSection) String() string {
	if f == focusInput {
		return "input"
	}
	return "rooms"
}

// Options configures a Model.
type Options struct {
	Store   *state.Store
	Handler command.Handler
	// Terminated delivers the session's termination reason; the model quits
	// the program when it fires.
	Terminated   <-chan shutdown.Reason
	ServerAddr   string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	TickInterval time.Duration
}

// Model implements the Bubble Tea model for the chat client.
type Model struct {
	store      *state.Store
	bus        *command.Bus
	terminated <-chan shutdown.Reason

	screen      screenKind
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	tick        time.Duration

	addr    *uistate.Input
	rooms   *uistate.RoomList
	message *uistate.Input
	focus   focusSection

	log      viewport.Model
	logRoom  string
	logCount int

	caret      cursor.Model
	caretDirty bool

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	exitReason shutdown.Reason
	quitting   bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the UI over the given store. The store is only read here;
// every mutation goes through the command bus.
func NewModel(opts Options) *Model {
	store := opts.Store
	if store == nil {
		store = state.NewStore()
	}
	addr := opts.ServerAddr
	if addr == "" {
		addr = DefaultServerAddr
	}
	tick := opts.TickInterval
	if tick <= 0 {
		tick = defaultTickInterval
	}
	m := &Model{
		store:      store,
		bus:        command.New(opts.Handler),
		terminated: opts.Terminated,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		tick:       tick,
		addr:       uistate.NewInput(),
		rooms:      uistate.NewRoomList(),
		message:    uistate.NewInput(),
		log:        viewport.New(0, 0),
	}
	m.addr.SetText(addr)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Input != nil {
		c.TextStyle = styles.Input.Copy()
	}
	c.SetChar(" ")
	m.caret = c
	m.registerHandlers()
	m.sync()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd()}
	if m.terminated != nil {
		cmds = append(cmds, waitForTermination(m.terminated))
	}
	if cmd := m.caret.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateCaretModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(StateChangedMsg{}):   m.handleStateChangedMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
		reflect.TypeOf(terminatedMsg{}):     m.handleTerminatedMsg,
		reflect.TypeOf(command.ResultMsg{}): m.handleResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.caretDirty {
		m.caretDirty = false
		m.caret.Blink = false
		if cmd := m.caret.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// ExitReason reports why the model quit, if it has.
func (m *Model) ExitReason() (shutdown.Reason, bool) {
	return m.exitReason, m.quitting
}

// Package app is the interactive appointment book: a Bubble Tea program over
// the view state store.
//
// Every store mutation happens in Update. Work that blocks (fetches, status
// changes, cache watching) runs in tea.Cmds that report back with messages.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	appsvc "tableflip.dev/clinic/pkg/app"
	"tableflip.dev/clinic/pkg/dateutil"
	"tableflip.dev/clinic/pkg/debounce"
	"tableflip.dev/clinic/pkg/store"
	"tableflip.dev/clinic/pkg/tui/components/help"
	"tableflip.dev/clinic/pkg/tui/components/panel"
	"tableflip.dev/clinic/pkg/tui/theme"
	"tableflip.dev/clinic/pkg/viewstate"
)

type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
	modeRange
)

// Options configures a Model.
type Options struct {
	// SearchDebounce is the quiet period before a search query is applied.
	SearchDebounce time.Duration
	// Watch enables live reloads from the local cache.
	Watch bool
}

// Model is the Bubble Tea model.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	svc   *appsvc.Service
	store *viewstate.Store
	theme theme.Theme
	opts  Options

	search    textinput.Model
	rangeIn   textinput.Model
	input     inputMode
	help      *help.Model
	showHelp  bool
	details   panel.Model
	debouncer *debounce.Debouncer
	send      func(tea.Msg)

	cursor    int
	calRef    time.Time
	calCursor int

	width   int
	height  int
	flash   string
	pending bool
	watch   <-chan store.Event
}

// New builds the model. Call SetSender with the program's Send before Run so
// debounced searches can reach the event loop.
func New(ctx context.Context, svc *appsvc.Service, st *viewstate.Store, opts Options) *Model {
	ctx, cancel := context.WithCancel(ctx)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search patient, type or notes"
	search.CharLimit = 120

	rangeIn := textinput.New()
	rangeIn.Prompt = "range "
	rangeIn.Placeholder = "2024-03-01..2024-03-31"
	rangeIn.CharLimit = 60

	th := theme.Default()
	m := &Model{
		ctx:       ctx,
		cancel:    cancel,
		svc:       svc,
		store:     st,
		theme:     th,
		opts:      opts,
		search:    search,
		rangeIn:   rangeIn,
		help:      help.New(80, 24, th.Panel.Frame),
		details:   panel.New(th.Panel),
		debouncer: debounce.New(opts.SearchDebounce),
		send:      func(tea.Msg) {},
		calRef:    dateutil.StartOfDay(st.Now()),
	}
	m.calCursor = m.todayCell()
	return m
}

// SetSender wires the function used to post messages from other goroutines.
func (m *Model) SetSender(send func(tea.Msg)) {
	if send != nil {
		m.send = send
	}
}

// Close stops the debouncer and any background watch. It is safe to call
// more than once.
func (m *Model) Close() {
	m.debouncer.Stop()
	m.cancel()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.store.SetLoading(true)
	cmds := []tea.Cmd{m.fetch()}
	if m.opts.Watch {
		if ch, err := m.svc.Watch(m.ctx); err != nil {
			m.svc.Log.Warn().Err(err).Msg("live reload disabled")
		} else {
			m.watch = ch
			cmds = append(cmds, m.waitForCache())
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) fetch() tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		records, err := svc.Fetch(ctx)
		return snapshotMsg{records: records, err: err}
	}
}

func (m *Model) waitForCache() tea.Cmd {
	ch := m.watch
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return cacheClosedMsg{}
		}
		return cacheEventMsg{event: ev}
	}
}

// Run starts the program and blocks until it exits.
func Run(ctx context.Context, svc *appsvc.Service, st *viewstate.Store, opts Options) error {
	m := New(ctx, svc, st, opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.SetSender(p.Send)
	_, err := p.Run()
	return err
}

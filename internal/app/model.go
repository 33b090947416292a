// Package app contains the root application model: the order list, the
// month grid, and the glue between pointer gestures, selection, drops and
// persistence.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/printcal/internal/calendar"
	"github.com/zjrosen/printcal/internal/config"
	"github.com/zjrosen/printcal/internal/drag"
	"github.com/zjrosen/printcal/internal/drop"
	"github.com/zjrosen/printcal/internal/history"
	"github.com/zjrosen/printcal/internal/keys"
	"github.com/zjrosen/printcal/internal/log"
	"github.com/zjrosen/printcal/internal/orders"
	"github.com/zjrosen/printcal/internal/persistence"
	"github.com/zjrosen/printcal/internal/pubsub"
	"github.com/zjrosen/printcal/internal/selection"
	"github.com/zjrosen/printcal/internal/ui/toaster"
	"github.com/zjrosen/printcal/internal/watcher"
)

type pane int

const (
	paneList pane = iota
	paneCalendar
)

type modal int

const (
	modalNone modal = iota
	modalLogin
	modalNotes
	modalDetails
	modalHelp
)

// Deps are the collaborators the model drives.
type Deps struct {
	Config     config.Config
	ConfigPath string
	Store      *calendar.Store
	Gateway    *persistence.Gateway
	Service    *orders.Service
	Clock      calendar.Clock
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string
	clock      calendar.Clock
	keys       keys.KeyMap

	store     *calendar.Store
	history   *history.Manager
	selection *selection.Model
	resolver  *drop.Resolver
	drag      *drag.Controller
	saver     *persistence.Saver

	worker *orders.Worker
	queue  *orders.Queue

	ctx     context.Context
	cancel  context.CancelFunc
	changes *pubsub.ContinuousListener[calendar.Change]
	watcher *watcher.Watcher
	watchCh <-chan struct{}

	cells        cellRegistry
	activeDay    calendar.DateKey
	firstWeekday time.Weekday

	records     []orders.Record
	visible     []int // indices into records passing the filter
	listOffset  int
	loggedInAs  string
	lastRefresh time.Time
	stale       bool
	cached      bool
	busyText    string

	// container of the row the live gesture started on
	pressContainer selection.Container

	focus     pane
	modal     modal
	filtering bool

	filter     textinput.Model
	username   textinput.Model
	password   textinput.Model
	loginField int
	notes      textarea.Model
	notesDay   calendar.DateKey
	details    viewport.Model
	help       help.Model

	toaster toaster.Model

	width  int
	height int
}

// New wires the model. ctx bounds the background worker and listeners.
func New(ctx context.Context, deps Deps) Model {
	cfg := deps.Config
	clock := deps.Clock
	if clock == nil {
		clock = calendar.RealClock{}
	}
	ctx, cancel := context.WithCancel(ctx)

	firstWeekday, err := config.ParseWeekday(cfg.Calendar.FirstWeekday)
	if err != nil {
		log.Warn(log.CatConfig, "bad first_weekday, using monday", "value", cfg.Calendar.FirstWeekday)
		firstWeekday = time.Monday
	}

	store := deps.Store
	hist := history.New(cfg.Calendar.HistoryLimit)
	sel := selection.New()
	queue := &orders.Queue{}

	today := calendar.Today(clock)
	m := Model{
		cfg:          cfg,
		configPath:   deps.ConfigPath,
		clock:        clock,
		keys:         keys.DefaultKeyMap(),
		store:        store,
		history:      hist,
		selection:    sel,
		resolver:     drop.New(store, hist, sel),
		drag:         drag.NewController(drag.Config{Threshold: cfg.Calendar.DragThreshold}),
		queue:        queue,
		ctx:          ctx,
		cancel:       cancel,
		changes:      pubsub.NewContinuousListener(ctx, store.Broker()),
		cells:        newCellRegistry(calendar.MonthOf(today), firstWeekday),
		activeDay:    today,
		firstWeekday: firstWeekday,
		focus:        paneList,
		filter:       newFilterInput(),
		username:     newUsernameInput(cfg.Orders.Username),
		password:     newPasswordInput(),
		notes:        newNotesArea(),
		details:      viewport.New(0, 0),
		help:         help.New(),
		toaster:      toaster.New(),
	}
	if deps.Gateway != nil {
		m.saver = persistence.NewSaver(deps.Gateway, store.State, cfg.Calendar.SaveDebounce)
		m.saver.TrackRevision(store.Revision)
	}
	if deps.Service != nil {
		m.worker = orders.NewWorker(ctx, deps.Service, queue, clock)
		if records, at, ok := deps.Service.Snapshot(ctx); ok {
			m.records = records
			m.lastRefresh = at
			m.cached = true
		}
	}
	m.refilter()

	if cfg.UI.WatchConfig && deps.ConfigPath != "" {
		if w, err := watcher.New(watcher.DefaultConfig(deps.ConfigPath)); err != nil {
			log.ErrorErr(log.CatWatcher, "config watcher unavailable", err)
		} else if ch, err := w.Start(); err != nil {
			log.ErrorErr(log.CatWatcher, "config watcher unavailable", err)
			_ = w.Stop()
		} else {
			m.watcher, m.watchCh = w, ch
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		orders.PollCmd(m.queue, m.cfg.Calendar.PollInterval),
		m.changes.Listen(),
	}
	if m.watchCh != nil {
		cmds = append(cmds, watcher.WaitCmd(m.watchCh))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.drag.SetBounds(drag.Rect{W: msg.Width, H: msg.Height})
		m.help.Width = msg.Width
		m = m.resizeModals()
		return m, nil

	case orders.PollMsg:
		var cmd tea.Cmd
		m, cmd = m.applyResults(msg.Results)
		return m, tea.Batch(cmd, orders.PollCmd(m.queue, m.cfg.Calendar.PollInterval))

	case pubsub.Event[calendar.Change]:
		var save tea.Cmd
		if m.saver != nil {
			save = m.saver.Schedule()
		}
		return m, tea.Batch(save, m.changes.Listen())

	case persistence.SaveTickMsg:
		// A failed write is logged by the saver and retried on the next change.
		if m.saver != nil {
			m.saver.Handle(msg)
		}
		return m, nil

	case watcher.ChangedMsg:
		m = m.reloadConfig()
		return m, watcher.WaitCmd(m.watchCh)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Handle(msg)
		return m, nil

	case tea.MouseMsg:
		if m.modal != modalNone {
			if m.modal == modalDetails {
				var cmd tea.Cmd
				m.details, cmd = m.details.Update(msg)
				return m, cmd
			}
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

// notify shows a toast and schedules its dismissal.
func (m Model) notify(text string, style toaster.Style) (Model, tea.Cmd) {
	if text == "" {
		return m, nil
	}
	m.toaster = m.toaster.Show(text, style)
	return m, m.toaster.ScheduleDismiss(toaster.DefaultDuration)
}

func (m Model) applyResults(results []orders.Result) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, r := range results {
		m.busyText = ""
		if !r.OK() {
			if r.Op == orders.OpLogin {
				m.password.SetValue("")
				m.loggedInAs = ""
			}
			if !m.lastRefresh.IsZero() {
				m.stale = true
			}
			m, cmd = m.notify(r.Message, toaster.StyleError)
			continue
		}

		m.replaceRecords(r.Orders)
		m.lastRefresh = r.At
		m.stale = false
		m.cached = false
		if r.Op == orders.OpLogin {
			m.loggedInAs = m.username.Value()
			m.password.SetValue("")
			m.rememberUsername(m.loggedInAs)
		}
		m, cmd = m.notify(r.Message, toaster.StyleSuccess)
	}
	return m, cmd
}

// replaceRecords swaps in a freshly fetched list. Rows under a live drag
// from the list no longer exist afterwards.
func (m *Model) replaceRecords(records []orders.Record) {
	if st := m.drag.State(); st.Phase != drag.Idle && st.Payload.Source == drag.SourceList {
		m.drag.Cancel()
	}
	m.records = records
	m.selection.Clear(selection.List())
	m.listOffset = 0
	m.refilter()
}

func (m Model) rememberUsername(username string) {
	if m.configPath == "" || username == "" || username == m.cfg.Orders.Username {
		return
	}
	if err := config.SaveUsername(m.configPath, username); err != nil {
		log.ErrorErr(log.CatConfig, "remembering username failed", err)
	}
}

func (m Model) reloadConfig() Model {
	cfg, err := config.Load(m.configPath)
	if err != nil {
		log.ErrorErr(log.CatConfig, "reloading config failed", err, "path", m.configPath)
		return m
	}
	m.cfg.UI = cfg.UI
	m.cfg.Calendar.DragThreshold = cfg.Calendar.DragThreshold
	m.drag.SetThreshold(cfg.Calendar.DragThreshold)
	if wd, err := config.ParseWeekday(cfg.Calendar.FirstWeekday); err == nil && wd != m.firstWeekday {
		m.firstWeekday = wd
		m.cells = newCellRegistry(m.cells.month, wd)
	}
	log.Info(log.CatConfig, "config reloaded", "path", m.configPath)
	return m
}

// Store returns the calendar store.
func (m Model) Store() *calendar.Store { return m.store }

// Close stops background work and writes any pending save.
func (m *Model) Close() error {
	m.cancel()
	if m.worker != nil {
		m.worker.Stop()
	}
	if m.watcher != nil {
		_ = m.watcher.Stop()
	}
	var err error
	if m.saver != nil {
		err = m.saver.Flush()
	}
	m.store.Close()
	return err
}

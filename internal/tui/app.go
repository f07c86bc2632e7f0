package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/browse"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/tui/components"
)

// ApplicationState represents the current screen
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// Layout proportions
const (
	ListColumnPercent = 60 // List width when the inspector is shown
	MinColumnWidth    = 20

	// Header line + footer line
	ChromeHeight = 2

	tickInterval = 100 * time.Millisecond
	statusTTL    = 3 * time.Second
)

// Options tune a Model beyond its required services
type Options struct {
	DefaultSort   browse.SortKey
	ShowInspector bool
	FetchTimeout  time.Duration
	Logger        *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Query state, advanced only through browse.Update
	Browse browse.State

	// Services
	CatalogSvc *service.CatalogService
	PosterSvc  *service.PosterService

	// UI Components
	SearchBar components.SearchBar
	SortModal components.SortModal
	List      *components.MovieList
	Inspector components.Inspector
	Help      help.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg     string
	StatusIsErr   bool
	SpinnerFrame  int
	ShowInspector bool

	fetchTimeout time.Duration
	logger       *slog.Logger
}

// NewModel creates a new application model
func NewModel(catalogSvc *service.CatalogService, posterSvc *service.PosterService, opts Options) Model {
	state := browse.New()
	if opts.DefaultSort.Valid() {
		state.SortKey = opts.DefaultSort
	}

	timeout := opts.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := Model{
		State:         StateBrowsing,
		Browse:        state,
		CatalogSvc:    catalogSvc,
		PosterSvc:     posterSvc,
		SearchBar:     components.NewSearchBar(),
		SortModal:     components.NewSortModal(),
		List:          components.NewMovieList(),
		Inspector:     components.NewInspector(),
		Help:          help.New(),
		ShowInspector: opts.ShowInspector,
		fetchTimeout:  timeout,
		logger:        logger,
	}
	m.syncList()
	return m
}

// Init kicks off the first page and the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return browse.Mounted{} },
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case browse.FetchResult:
		if msg.Seq == m.Browse.Seq {
			m.logger.Debug("fetch result",
				"seq", msg.Seq,
				"outcome", msg.Outcome().String(),
				"mode", msg.Request.Mode.String(),
				"page", msg.Request.Page,
			)
		}
		return m.dispatch(msg)

	case browse.Event:
		return m.dispatch(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.List.SetLoading(m.Browse.Loading, m.SpinnerFrame)
		return m, TickCmd(tickInterval)

	case PosterOpenedMsg:
		m.StatusMsg = "Opened " + msg.Movie.Title
		m.StatusIsErr = false
		return m, ClearStatusCmd(statusTTL)

	case ErrMsg:
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(statusTTL)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// dispatch runs one event through the reducer and turns any fetch it asks
// for into a command
func (m Model) dispatch(ev browse.Event) (Model, tea.Cmd) {
	prev := m.Browse
	next, fc := browse.Update(m.Browse, ev)
	m.Browse = next

	// A new query or a replaced discover page starts at the top; search
	// pages append below what is already on screen
	if next.Query != prev.Query || (next.Mode() == domain.ModeDiscover && next.Page != prev.Page) {
		m.List.Reset()
	}
	m.syncList()

	if fc == nil {
		return m, nil
	}
	return m, FetchPageCmd(m.CatalogSvc, *fc, m.fetchTimeout)
}

// syncList pushes the reducer's view of the world into the components
func (m *Model) syncList() {
	m.List.SetMovies(m.Browse.Movies)
	m.List.SetLoading(m.Browse.Loading, m.SpinnerFrame)
	m.List.SetTitle(m.listTitle())
	m.updateInspector()
}

// updateInspector points the inspector at the selected movie
func (m *Model) updateInspector() {
	movie, ok := m.List.Selected()
	if !ok {
		m.Inspector.SetMovie(nil, "")
		return
	}
	url := ""
	if m.PosterSvc != nil {
		url = m.PosterSvc.URL(movie)
	}
	m.Inspector.SetMovie(&movie, url)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	layout := m.calculateLayout()
	contentHeight := max(m.Height-ChromeHeight, 1)

	m.List.SetSize(layout.listWidth, contentHeight)
	if layout.inspectorWidth > 0 {
		m.Inspector.SetSize(layout.inspectorWidth, contentHeight)
	}
	m.SearchBar.SetWidth(layout.searchWidth)
	m.Help.Width = m.Width
}

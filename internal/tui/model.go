// Package tui is the terminal front end: header with search, category bar,
// featured carousel, card grid and article detail.
//
// The article list lives in a controller.State owned by the Model and
// changes only through controller.Reduce. Fetches run as tea.Cmds.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrSnakeDoc/newsdesk/internal/controller"
	"github.com/MrSnakeDoc/newsdesk/internal/domain"
	"github.com/MrSnakeDoc/newsdesk/internal/logger"
	"github.com/MrSnakeDoc/newsdesk/internal/sources"
)

const statusTTL = 3 * time.Second

// Options configures a Model. Only Source is required.
type Options struct {
	Source           sources.Source
	Timeout          time.Duration
	CarouselInterval time.Duration
	CarouselSize     int
	OpenBrowser      func(string) error
	Now              func() time.Time
	Logger           logger.Logger
}

type Model struct {
	src         sources.Source
	timeout     time.Duration
	openBrowser func(string) error
	now         func() time.Time
	log         logger.Logger

	keys     keyMap
	state    controller.State
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model
	carousel carousel

	searching bool
	focus     int
	width     int
	height    int

	status   string
	statusID int
	quitting bool
}

func New(opts Options) *Model {
	if opts.Timeout <= 0 {
		opts.Timeout = controller.DefaultTimeout
	}
	if opts.CarouselInterval == 0 {
		opts.CarouselInterval = 5 * time.Second
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = OpenBrowser
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "Search news..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 200
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return &Model{
		src:         opts.Source,
		timeout:     opts.Timeout,
		openBrowser: opts.OpenBrowser,
		now:         opts.Now,
		log:         opts.Logger,
		keys:        defaultKeyMap(),
		state:       controller.Initial(),
		input:       ti,
		spinner:     sp,
		help:        help.New(),
		carousel:    newCarousel(opts.CarouselSize, opts.CarouselInterval),
	}
}

// Init loads the default category.
func (m *Model) Init() tea.Cmd {
	return m.dispatch(controller.CategorySelected{Category: domain.DefaultCategory})
}

// State returns the current article list state.
func (m *Model) State() controller.State { return m.state }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, min(60, msg.Width-30))
		return m, nil

	case fetchResultMsg:
		return m, m.dispatch(msg.event)

	case carouselTickMsg:
		return m, m.carousel.tick(msg)

	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case browserOpenedMsg:
		if msg.err != nil {
			m.log.Warn("failed to open browser", logger.String("url", msg.url), logger.Error(msg.err))
			return m, m.setStatus(fmt.Sprintf("Could not open browser: %v", msg.err))
		}
		return m, m.setStatus("Opened in browser")

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, m.quit()
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	if article, ok := m.state.Selected(); ok {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			return m, m.dispatch(controller.Dismissed{})
		case key.Matches(msg, m.keys.Browser):
			return m, openBrowserCmd(m.openBrowser, article.URL)
		case key.Matches(msg, m.keys.Quit):
			return m, m.quit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Cancel):
		if m.state.SearchActive() {
			m.input.SetValue("")
			return m, m.dispatch(controller.CategorySelected{Category: m.state.ActiveCategory})
		}

	case key.Matches(msg, m.keys.NextCat):
		return m, m.selectCategory(m.categoryOffset(1))

	case key.Matches(msg, m.keys.PrevCat):
		return m, m.selectCategory(m.categoryOffset(-1))

	case key.Matches(msg, m.keys.JumpCat):
		cats := domain.Categories()
		if i := int(msg.String()[0] - '1'); i >= 0 && i < len(cats) {
			return m, m.selectCategory(cats[i])
		}

	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-m.columns())
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(m.columns())
	case key.Matches(msg, m.keys.Left):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveFocus(1)

	case key.Matches(msg, m.keys.Open):
		if m.focus < len(m.state.Articles) {
			return m, m.dispatch(controller.ArticleSelected{ID: m.state.Articles[m.focus].ID})
		}

	case key.Matches(msg, m.keys.Featured):
		if a, ok := m.carousel.current(m.state.Articles); ok {
			return m, m.dispatch(controller.ArticleSelected{ID: a.ID})
		}

	case key.Matches(msg, m.keys.CarouselPrv):
		return m, m.carousel.prev()
	case key.Matches(msg, m.keys.CarouselNxt):
		return m, m.carousel.next()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.searching = false
		m.input.Blur()
		return m, m.dispatch(controller.SearchSubmitted{Query: m.input.Value()})

	case key.Matches(msg, m.keys.Cancel):
		m.searching = false
		m.input.Blur()
		m.input.SetValue(m.state.SearchQuery)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// dispatch runs ev through the reducer and schedules whatever follows:
// a fetch, the spinner, carousel (un)mounting.
func (m *Model) dispatch(ev controller.Event) tea.Cmd {
	prev := m.state
	next, req := controller.Reduce(prev, ev)
	m.state = next

	var cmds []tea.Cmd
	if req != nil {
		m.log.Debug("fetch requested",
			logger.String("kind", req.Kind.String()),
			logger.String("category", req.Category.String()),
			logger.String("query", req.Query),
			logger.Uint64("generation", req.Generation),
		)
		cmds = append(cmds, fetchCmd(m.src, *req, m.timeout), m.spinner.Tick)
	}

	if prev.Phase == controller.PhaseLoading && next.Phase != prev.Phase {
		m.focus = 0
		if next.Phase == controller.PhaseFailed {
			m.log.Warn("request failed", logger.String("message", next.Err))
		}
	}

	cmds = append(cmds, m.carousel.sync(m.carouselVisible(), next.Generation, next.Articles))
	return tea.Batch(cmds...)
}

func (m *Model) carouselVisible() bool {
	return m.state.Phase == controller.PhaseLoaded &&
		!m.state.SearchActive() &&
		len(m.state.Articles) > 0
}

func (m *Model) selectCategory(c domain.Category) tea.Cmd {
	m.input.SetValue("")
	return m.dispatch(controller.CategorySelected{Category: c})
}

// refresh repeats the last request.
func (m *Model) refresh() tea.Cmd {
	if m.state.Phase == controller.PhaseIdle {
		return nil
	}
	last := m.state.LastRequest
	if last.Kind == controller.KindSearch {
		return m.dispatch(controller.SearchSubmitted{Query: last.Query})
	}
	return m.dispatch(controller.CategorySelected{Category: last.Category})
}

func (m *Model) categoryOffset(delta int) domain.Category {
	cats := domain.Categories()
	i := 0
	for j, c := range cats {
		if c == m.state.ActiveCategory {
			i = j
			break
		}
	}
	return cats[(i+delta+len(cats))%len(cats)]
}

// columns is the card grid width for the current terminal size.
func (m *Model) columns() int {
	switch {
	case m.width >= 160:
		return 4
	case m.width >= 120:
		return 3
	case m.width >= 80:
		return 2
	default:
		return 1
	}
}

func (m *Model) moveFocus(delta int) {
	n := len(m.state.Articles)
	if n == 0 {
		return
	}
	f := m.focus + delta
	if f < 0 || f >= n {
		return
	}
	m.focus = f
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.statusID++
	m.status = s
	return clearStatusCmd(statusTTL, m.statusID)
}

func (m *Model) quit() tea.Cmd {
	m.carousel.stop()
	m.quitting = true
	return tea.Quit
}

package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/artx/internal/formatter"
	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/shared"
	"github.com/desertthunder/artx/internal/tasks"
)

const emptyQueryNotice = "Please enter an artist name."

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	ResultsView
	DetailView
)

// SearchEngine is the subset of [tasks.Explorer] the TUI drives.
type SearchEngine interface {
	Search(ctx context.Context, query string, progress chan<- tasks.ProgressUpdate) <-chan tasks.Result
	IsLatest(res tasks.Result) bool
}

// Opener launches an external viewer for a URL.
type Opener func(url string) error

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       SearchEngine
	open         Opener
	width        int
	height       int
	input        textinput.Model
	spinner      spinner.Model
	results      list.Model
	query        string
	selected     *models.Artist
	loading      bool
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	notice       string
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model. A nil opener falls back to [shared.OpenBrowser].
func NewModel(ctx context.Context, engine SearchEngine, open Opener) *Model {
	if open == nil {
		open = shared.OpenBrowser
	}

	ti := textinput.New()
	ti.Placeholder = "Artist name"
	ti.Prompt = "Search: "
	ti.CharLimit = 200
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.ok

	results := list.New(nil, resultsDelegate(), 0, 0)
	results.SetShowHelp(false)

	return &Model{
		ctx:          ctx,
		view:         SearchView,
		engine:       engine,
		open:         open,
		input:        ti,
		spinner:      sp,
		results:      results,
		progressChan: make(chan tasks.ProgressUpdate, 16),
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init starts the cursor blink and the progress listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForProgress())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.SetSize(max(msg.Width-4, 0), max(msg.Height-8, 0))
		m.input.Width = max(msg.Width-12, 10)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.abort) {
			return m, tea.Quit
		}
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case ResultsView:
			return m.handleResultsKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateComponents(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgProgressUpdate:
		if update, ok := msg.data.(tasks.ProgressUpdate); ok {
			m.progress = update
		}
		return m, m.waitForProgress()

	case MsgSearchResult:
		res, ok := msg.data.(tasks.Result)
		if !ok || !m.engine.IsLatest(res) {
			return m, nil
		}
		m.loading = false
		if res.Err != nil {
			m.showError(res.Err)
			return m, nil
		}
		m.query = res.Query
		m.err = nil
		m.notice = ""
		m.results.SetItems(artistItems(res.Artists))
		m.results.ResetSelected()
		m.results.ResetFilter()
		m.results.Title = formatter.ResultsHeader(res.Query)
		m.view = ResultsView
		m.input.Blur()
		return m, nil

	case MsgBrowserOpened:
		data, ok := msg.data.(browserResult)
		if !ok {
			return m, nil
		}
		if data.err != nil {
			m.err = data.err
			m.notice = ""
		} else {
			m.err = nil
			m.notice = "Opened " + data.url
		}
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case SearchView:
		return m.renderSearch()
	case ResultsView:
		return m.renderResults()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

// Submit validates the current input and dispatches a search.
func (m *Model) Submit() tea.Cmd {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.err = nil
		m.notice = emptyQueryNotice
		return nil
	}

	m.err = nil
	m.notice = ""
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.search(query))
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.search):
		return m, m.Submit()
	case key.Matches(msg, m.keys.back):
		if len(m.results.Items()) > 0 {
			m.view = ResultsView
			m.input.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.results.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		if m.results.FilterState() == list.FilterApplied {
			m.results.ResetFilter()
			return m, nil
		}
		m.view = SearchView
		m.notice = ""
		m.err = nil
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.results.SelectedItem().(artistItem); ok {
			artist := item.artist
			m.selected = &artist
			m.notice = ""
			m.err = nil
			m.view = DetailView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = ResultsView
		m.selected = nil
		m.notice = ""
		m.err = nil
		return m, nil
	case key.Matches(msg, m.keys.open):
		if m.selected == nil || m.selected.ImageURL == "" {
			m.notice = "No image available."
			return m, nil
		}
		return m, m.openImage(m.selected.ImageURL)
	}
	return m, nil
}

func (m *Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case SearchView:
		m.input, cmd = m.input.Update(msg)
	case ResultsView:
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

func (m *Model) showError(err error) {
	if errors.Is(err, shared.ErrEmptyQuery) {
		m.err = nil
		m.notice = emptyQueryNotice
		return
	}
	m.notice = ""
	m.err = err
	m.view = SearchView
	m.input.Focus()
}

func (m *Model) search(query string) tea.Cmd {
	ch := m.engine.Search(m.ctx, query, m.progressChan)
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return nil
		}
		return searchResultMsg(res)
	}
}

func (m *Model) waitForProgress() tea.Cmd {
	ch := m.progressChan
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return nil
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) openImage(url string) tea.Cmd {
	open := m.open
	return func() tea.Msg {
		return browserOpenedMsg(url, open(url))
	}
}

func (m *Model) renderStatus() string {
	switch {
	case m.err != nil:
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	case m.notice != "":
		return styles.warn.Render(m.notice)
	default:
		return ""
	}
}

func (m *Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Artist Search"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		if m.progress.Message != "" {
			b.WriteString(styles.help.Render(m.progress.Message))
		} else {
			b.WriteString(styles.help.Render("Searching..."))
		}
		b.WriteString("\n\n")
	}

	if status := m.renderStatus(); status != "" {
		b.WriteString(status)
		b.WriteString("\n\n")
	}

	helpKeys := []key.Binding{m.keys.search, m.keys.abort}
	if len(m.results.Items()) > 0 {
		helpKeys = []key.Binding{m.keys.search, m.keys.back, m.keys.abort}
	}
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderResults() string {
	var b strings.Builder
	if len(m.results.Items()) == 0 {
		b.WriteString(styles.title.Render(formatter.ResultsHeader(m.query)))
		b.WriteString("\n")
		b.WriteString(styles.help.Render("No artists found."))
		b.WriteString("\n\n")
	} else {
		b.WriteString(m.results.View())
		b.WriteString("\n\n")
	}
	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.enter, m.keys.back, m.keys.quit}
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.title.Render("Artist Details"))
	b.WriteString("\n")
	b.WriteString(styles.detail.Render(strings.TrimSuffix(formatter.ArtistDetail(*m.selected), "\n")))
	b.WriteString("\n\n")

	if status := m.renderStatus(); status != "" {
		b.WriteString(status)
		b.WriteString("\n\n")
	}

	helpKeys := []key.Binding{m.keys.open, m.keys.back, m.keys.quit}
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}

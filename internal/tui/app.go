package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/waabox/stageview/internal/domain"
	"github.com/waabox/stageview/internal/draw/term"
	"github.com/waabox/stageview/internal/render"
	"github.com/waabox/stageview/internal/resize"
)

const (
	defaultColumns = 120
	defaultRows    = 24
	// chromeRows is the header, two separators, the status line and the footer.
	chromeRows = 5
)

// SnapshotLoadedMsg is sent when the payload has been read and decoded.
// It is exported so that tests can inject it directly into AppModel.Update.
type SnapshotLoadedMsg struct {
	Pipeline domain.Pipeline
	Err      error
}

// tickMsg is sent by the periodic reload ticker.
type tickMsg struct{}

// viewState indicates the current navigation level.
type viewState int

const (
	viewDiagram viewState = iota
	viewStages
	viewStatuses
)

// Options configures an AppModel.
type Options struct {
	// Load reads the current pipeline snapshot.
	Load func() (domain.Pipeline, error)
	// Renderer paints snapshots; its params should be sized for terminal cells.
	Renderer *render.Renderer
	Cell     term.Options
	// ReloadInterval reloads the payload periodically. Zero disables it.
	ReloadInterval time.Duration
	// Changes triggers a reload on every value. May be nil.
	Changes <-chan struct{}
	Log     zerolog.Logger
}

// AppModel is the root Bubbletea model for stageview.
type AppModel struct {
	load     func() (domain.Pipeline, error)
	interval time.Duration
	changes  <-chan struct{}
	log      zerolog.Logger
	// Diagram
	hub    *resize.Hub
	canvas *term.Canvas
	coord  *resize.Coordinator
	// frame is the canvas text captured after the last render pass.
	frame *string
	vp    viewport.Model
	// Navigation
	view     viewState
	stages   StageListModel
	statuses StatusListModel
	// General state
	loaded  bool
	loading bool
	err     error
	width   int
	height  int
}

// NewAppModel creates the root application model.
func NewAppModel(opts Options) AppModel {
	canvas := term.New(opts.Cell)
	measure := resize.TableMeasure(opts.Renderer.Params().TableMetrics())
	coord := resize.NewCoordinator(opts.Renderer, canvas, measure, opts.Log)
	frame := new(string)
	coord.OnRender(func() { *frame = canvas.String() })
	return AppModel{
		load:     opts.Load,
		interval: opts.ReloadInterval,
		changes:  opts.Changes,
		log:      opts.Log,
		hub:      resize.NewHub(),
		canvas:   canvas,
		coord:    coord,
		frame:    frame,
		vp:       viewport.New(defaultColumns, defaultRows-chromeRows),
		stages:   NewStageListModel(nil),
		loading:  true,
		width:    defaultColumns,
		height:   defaultRows,
	}
}

// Init triggers the initial payload load.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.loadSnapshot(), tickEvery(m.interval), waitForChange(m.changes))
}

func (m AppModel) loadSnapshot() tea.Cmd {
	return func() tea.Msg {
		p, err := m.load()
		return SnapshotLoadedMsg{Pipeline: p, Err: err}
	}
}

func tickEvery(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Update handles all incoming messages and key events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(1, msg.Height-chromeRows)
		m.hub.Notify(m.canvas.PixelWidth(msg.Width))
		m.vp.SetContent(*m.frame)

	case SnapshotLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("payload reload failed")
			m.err = msg.Err
			return m, nil
		}
		if err := m.coord.Show(m.hub, msg.Pipeline, m.canvas.PixelWidth(m.width)); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.loaded = true
		m.stages = m.stages.UpdateStages(msg.Pipeline.Stages)
		if m.view == viewStatuses {
			m.statuses = NewStatusListModel(m.stages.SelectedStage())
		}
		m.vp.SetContent(*m.frame)

	case fileChangedMsg:
		m.loading = true
		return m, tea.Batch(m.loadSnapshot(), waitForChange(m.changes))

	case tickMsg:
		m.loading = true
		return m, tea.Batch(m.loadSnapshot(), tickEvery(m.interval))

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.coord.Close()
			return m, tea.Quit
		case "ctrl+r":
			m.loading = true
			return m, m.loadSnapshot()
		}
		switch m.view {
		case viewDiagram:
			return m.updateDiagram(msg)
		case viewStages:
			return m.updateStages(msg)
		case viewStatuses:
			return m.updateStatuses(msg)
		}
	}
	return m, nil
}

func (m AppModel) updateDiagram(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "tab" {
		m.view = viewStages
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m AppModel) updateStages(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down":
		m.stages = m.stages.MoveDown()
	case "up":
		m.stages = m.stages.MoveUp()
	case "enter":
		if len(m.stages.Stages()) > 0 {
			m.statuses = NewStatusListModel(m.stages.SelectedStage())
			m.view = viewStatuses
		}
	case "tab", "esc":
		m.view = viewDiagram
	}
	return m, nil
}

func (m AppModel) updateStatuses(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down":
		m.statuses = m.statuses.MoveDown()
	case "up":
		m.statuses = m.statuses.MoveUp()
	case "esc":
		m.view = viewStages
	case "tab":
		m.view = viewDiagram
	}
	return m, nil
}

// DiagramWidth returns the surface width of the last render pass in pixels.
func (m AppModel) DiagramWidth() int {
	return m.coord.Width()
}

// Listeners returns the number of resize listeners currently registered.
func (m AppModel) Listeners() int {
	return m.hub.Len()
}

// Pipeline returns the snapshot currently shown.
func (m AppModel) Pipeline() domain.Pipeline {
	return m.coord.Pipeline()
}

var headerStyle = lipgloss.NewStyle().Bold(true)

// View renders the full TUI.
func (m AppModel) View() string {
	if !m.loaded {
		if m.err != nil {
			return fmt.Sprintf("Error: %v\n\nPress 'ctrl+r' to retry or 'q' to quit.\n", m.err)
		}
		return "Loading pipeline...\n"
	}

	header := headerStyle.Render(fmt.Sprintf(" stageview | %s", m.coord.Pipeline().Label())) + "\n"
	separator := strings.Repeat("─", max(1, min(m.width, 80))) + "\n"

	switch m.view {
	case viewStages:
		footer := " ↑/↓: navigate   enter: statuses   tab: diagram   ctrl+r: reload   q: quit\n"
		return header + separator + " Stages\n" + m.stages.View() + "\n" + separator + m.statusLine() + footer
	case viewStatuses:
		title := fmt.Sprintf(" Statuses for stage: %s\n", m.statuses.Stage())
		footer := " ↑/↓: navigate   esc: back   tab: diagram   q: quit\n"
		return header + separator + title + m.statuses.View() + "\n" + separator + m.statusLine() + footer
	default:
		footer := " ↑/↓/pgup/pgdn: scroll   tab: stages   ctrl+r: reload   q: quit\n"
		return header + separator + m.vp.View() + "\n" + separator + m.statusLine() + footer
	}
}

func (m AppModel) statusLine() string {
	switch {
	case m.err != nil:
		return fmt.Sprintf(" reload failed: %v\n", m.err)
	case m.loading:
		return " reloading...\n"
	default:
		return fmt.Sprintf(" %d stages, %d renders\n", len(m.coord.Pipeline().Stages), m.coord.Renders())
	}
}

// Run starts the Bubbletea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(NewAppModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "running tui")
	}
	return nil
}

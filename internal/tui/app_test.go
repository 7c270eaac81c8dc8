package tui_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waabox/stageview/internal/domain"
	"github.com/waabox/stageview/internal/draw/term"
	"github.com/waabox/stageview/internal/palette"
	"github.com/waabox/stageview/internal/render"
	"github.com/waabox/stageview/internal/tui"
)

func samplePipeline() domain.Pipeline {
	return domain.Pipeline{
		Repository: domain.Repository{Owner: "bersace", Name: "bacasable"},
		Ref:        "master",
		Stages: []domain.Stage{
			{Name: "build", State: domain.StateSuccess, Statuses: []domain.Status{
				{Name: "lint", State: domain.StateSuccess},
				{Name: "compile", State: domain.StateSuccess},
			}},
			{Name: "test", State: domain.StateFailure, Time: "3h ago", Statuses: []domain.Status{
				{Name: "units", State: domain.StateFailure},
			}},
		},
	}
}

func newModel(load func() (domain.Pipeline, error)) tui.AppModel {
	return tui.NewAppModel(tui.Options{
		Load:     load,
		Renderer: render.New(palette.Default(), render.DefaultParams(16)),
		Cell:     term.DefaultOptions(),
		Log:      zerolog.Nop(),
	})
}

func update(t *testing.T, m tui.AppModel, msg tea.Msg) tui.AppModel {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(tui.AppModel)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApp_ShowsLoadingUntilSnapshot(t *testing.T) {
	m := newModel(func() (domain.Pipeline, error) { return samplePipeline(), nil })
	assert.Contains(t, m.View(), "Loading pipeline")
}

func TestApp_InitLoadsSnapshot(t *testing.T) {
	m := newModel(func() (domain.Pipeline, error) { return samplePipeline(), nil })
	cmd := m.Init()
	require.NotNil(t, cmd)

	var loaded tui.SnapshotLoadedMsg
	switch msg := cmd().(type) {
	case tui.SnapshotLoadedMsg:
		loaded = msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if l, ok := c().(tui.SnapshotLoadedMsg); ok {
				loaded = l
			}
		}
	default:
		t.Fatalf("unexpected message %T", msg)
	}
	require.NoError(t, loaded.Err)
	assert.Equal(t, "bersace/bacasable @master", loaded.Pipeline.Label())
}

func TestApp_SnapshotRendersDiagram(t *testing.T) {
	m := newModel(nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, tui.SnapshotLoadedMsg{Pipeline: samplePipeline()})

	view := m.View()
	assert.Contains(t, view, "stageview | bersace/bacasable @master")
	assert.Contains(t, view, "build")
	assert.Contains(t, view, "█")
	assert.Equal(t, 800, m.DiagramWidth())
	assert.Equal(t, 1, m.Listeners())
}

func TestApp_WindowResizeRerenders(t *testing.T) {
	m := newModel(nil)
	m = update(t, m, tui.SnapshotLoadedMsg{Pipeline: samplePipeline()})
	assert.Equal(t, 960, m.DiagramWidth(), "default width before any size message")

	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})
	assert.Equal(t, 480, m.DiagramWidth())
}

func TestApp_ReloadKeepsSingleListener(t *testing.T) {
	m := newModel(nil)
	m = update(t, m, tui.SnapshotLoadedMsg{Pipeline: samplePipeline()})
	m = update(t, m, tui.SnapshotLoadedMsg{Pipeline: samplePipeline()})
	m = update(t, m, tui.SnapshotLoadedMsg{Pipeline: samplePipeline()})

	assert.Equal(t, 1, m.Listeners())
}

func TestApp_ReloadErrorKeepsLastDiagram(t *testing.T) {
	m := newModel(nil)
	m = update(t, m, tui.SnapshotLoadedMsg{Pipeline: samplePipeline()})
	m = update(t, m, tui.SnapshotLoadedMsg{Err: errors.New("decoding pipeline.json: bad json")})

	view := m.View()
	assert.Contains(t, view, "reload failed: decoding pipeline.json")
	assert.Contains(t, view, "build")
	assert.Equal(t, "bersace/bacasable @master", m.Pipeline().Label())
}

func TestApp_FirstLoadError(t *testing.T) {
	m := newModel(nil)
	m = update(t, m, tui.SnapshotLoadedMsg{Err: errors.New("opening payload: no such file")})

	assert.True(t, strings.HasPrefix(m.View(), "Error: opening payload"))
}

func TestApp_StageNavigation(t *testing.T) {
	m := newModel(nil)
	m = update(t, m, tui.SnapshotLoadedMsg{Pipeline: samplePipeline()})

	m = update(t, m, key("tab"))
	view := m.View()
	assert.Contains(t, view, "> ✓ build")
	assert.Contains(t, view, "✗ test")
	assert.Contains(t, view, "3h ago")

	m = update(t, m, key("down"))
	m = update(t, m, key("enter"))
	view = m.View()
	assert.Contains(t, view, "Statuses for stage: test")
	assert.Contains(t, view, "> ✗ units")

	m = update(t, m, key("esc"))
	assert.Contains(t, m.View(), "> ✗ test")
}

func TestApp_QuitKey(t *testing.T) {
	m := newModel(nil)
	m = update(t, m, tui.SnapshotLoadedMsg{Pipeline: samplePipeline()})

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, 0, m.Listeners())
}

func TestApp_UnrenderableSnapshotKeepsLastDiagram(t *testing.T) {
	m := newModel(nil)
	m = update(t, m, tui.SnapshotLoadedMsg{Pipeline: samplePipeline()})
	m = update(t, m, tui.SnapshotLoadedMsg{Pipeline: domain.Pipeline{}})

	assert.Equal(t, 1, m.Listeners())
	assert.Equal(t, "bersace/bacasable @master", m.Pipeline().Label())
	assert.Contains(t, m.View(), "reload failed")
	assert.Contains(t, m.View(), "█")

	m = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 30})
	assert.Equal(t, 400, m.DiagramWidth())
}

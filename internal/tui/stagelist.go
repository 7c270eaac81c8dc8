package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/waabox/stageview/internal/domain"
)

// StageListModel is an immutable Bubbletea-compatible model for the stage list panel.
type StageListModel struct {
	stages []domain.Stage
	cursor int
}

// NewStageListModel creates a stage list model with the given stages.
func NewStageListModel(stages []domain.Stage) StageListModel {
	return StageListModel{stages: stages, cursor: 0}
}

// UpdateStages replaces the stages, keeping the cursor on the stage with the
// same name when it still exists.
func (m StageListModel) UpdateStages(stages []domain.Stage) StageListModel {
	selected := m.SelectedStage().Name
	m.stages = stages
	m.cursor = 0
	for i, s := range stages {
		if s.Name == selected {
			m.cursor = i
			break
		}
	}
	return m
}

// MoveDown returns a new model with the cursor moved down by one.
func (m StageListModel) MoveDown() StageListModel {
	if m.cursor < len(m.stages)-1 {
		m.cursor++
	}
	return m
}

// MoveUp returns a new model with the cursor moved up by one.
func (m StageListModel) MoveUp() StageListModel {
	if m.cursor > 0 {
		m.cursor--
	}
	return m
}

// SelectedIndex returns the current cursor position.
func (m StageListModel) SelectedIndex() int {
	return m.cursor
}

// SelectedStage returns the currently highlighted stage.
// Returns zero-value Stage if the list is empty.
func (m StageListModel) SelectedStage() domain.Stage {
	if len(m.stages) == 0 {
		return domain.Stage{}
	}
	return m.stages[m.cursor]
}

// Stages returns the full stage slice.
func (m StageListModel) Stages() []domain.Stage {
	return m.stages
}

// View renders the stage list as a string.
func (m StageListModel) View() string {
	if len(m.stages) == 0 {
		return "No stages found."
	}
	var sb strings.Builder
	for i, s := range m.stages {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		age := s.Time
		if age == "" {
			age = "--"
		}
		sb.WriteString(fmt.Sprintf("%s%s %s %-12s %s\n",
			prefix,
			stateIcon(s.State),
			pad(truncate(s.Name, 20), 20),
			fmt.Sprintf("%d statuses", len(s.Statuses)),
			age,
		))
	}
	return sb.String()
}

func stateIcon(s domain.State) string {
	switch s {
	case domain.StateSuccess:
		return "✓"
	case domain.StateFailure:
		return "✗"
	case domain.StateError:
		return "!"
	case domain.StatePending:
		return "●"
	default:
		return "?"
	}
}

func truncate(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "…")
}

func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

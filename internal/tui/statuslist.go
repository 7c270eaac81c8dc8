package tui

import (
	"fmt"
	"strings"

	"github.com/waabox/stageview/internal/domain"
)

// StatusListModel is an immutable model for the statuses of one stage.
type StatusListModel struct {
	stage  string
	items  []domain.Status
	cursor int
}

// NewStatusListModel creates a status list model for stage.
func NewStatusListModel(stage domain.Stage) StatusListModel {
	return StatusListModel{stage: stage.Name, items: stage.Statuses}
}

// MoveDown returns a new model with the cursor moved down by one.
func (m StatusListModel) MoveDown() StatusListModel {
	if m.cursor < len(m.items)-1 {
		m.cursor++
	}
	return m
}

// MoveUp returns a new model with the cursor moved up by one.
func (m StatusListModel) MoveUp() StatusListModel {
	if m.cursor > 0 {
		m.cursor--
	}
	return m
}

// Cursor returns the current cursor position.
func (m StatusListModel) Cursor() int {
	return m.cursor
}

// Stage returns the name of the stage the statuses belong to.
func (m StatusListModel) Stage() string {
	return m.stage
}

// View renders the status list with cursor indicators.
func (m StatusListModel) View() string {
	if len(m.items) == 0 {
		return "No statuses reported for this stage."
	}
	var sb strings.Builder
	for i, s := range m.items {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		sb.WriteString(fmt.Sprintf("%s%s %s %s\n",
			prefix,
			stateIcon(s.State),
			pad(truncate(s.Name, 25), 25),
			s.State,
		))
	}
	return sb.String()
}

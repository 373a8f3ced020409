// Package tui is a terminal front end for the murli viewer.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
	"github.com/devagn611/Daily-Murli-Reader/internal/viewer"
)

// Viewer is the subset of *viewer.Viewer the terminal drives.
type Viewer interface {
	Select(sel domain.Selection) error
	SetLanguage(lang domain.Language) error
	ShiftDays(n int) error
	Selection() domain.Selection
	IncreaseFont() domain.FontSize
	DecreaseFont() domain.FontSize
	ResetFont() domain.FontSize
	Subscribe() <-chan viewer.Snapshot
}

// snapshotMsg carries a viewer state change into the program.
type snapshotMsg viewer.Snapshot

// closedMsg is sent once the viewer has closed its subscription.
type closedMsg struct{}

type Model struct {
	viewer  Viewer
	updates <-chan viewer.Snapshot
	now     func() time.Time

	snap         viewer.Snapshot
	width        int
	height       int
	offset       int
	showDownload bool
	err          error
}

func NewModel(v Viewer) Model {
	return Model{
		viewer:  v,
		updates: v.Subscribe(),
		now:     time.Now,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.updates)
}

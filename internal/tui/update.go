package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
	"github.com/devagn611/Daily-Murli-Reader/internal/viewer"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.offset = min(m.offset, m.maxOffset())
		return m, nil

	case snapshotMsg:
		if !viewer.Snapshot(msg).Selection.Equal(m.snap.Selection) {
			m.offset = 0
		}
		m.snap = viewer.Snapshot(msg)
		m.offset = min(m.offset, m.maxOffset())
		return m, waitForSnapshot(m.updates)

	case closedMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "left", "h":
		m.err = m.viewer.ShiftDays(-1)
	case "right":
		m.err = m.viewer.ShiftDays(1)
	case "t":
		sel := m.viewer.Selection()
		sel.Date = domain.Day(m.now())
		m.err = m.viewer.Select(sel)
	case "l":
		m.err = m.viewer.SetLanguage(m.viewer.Selection().Language.Next())
	case "+", "=":
		m.viewer.IncreaseFont()
	case "-":
		m.viewer.DecreaseFont()
	case "0":
		m.viewer.ResetFont()
	case "d":
		m.showDownload = !m.showDownload
	case "up", "k":
		m.offset = max(m.offset-1, 0)
	case "down", "j":
		m.offset = min(m.offset+1, m.maxOffset())
	case "pgup":
		m.offset = max(m.offset-m.pageLines(), 0)
	case "pgdown", " ":
		m.offset = min(m.offset+m.pageLines(), m.maxOffset())
	}

	return m, nil
}

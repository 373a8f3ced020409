package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devagn611/Daily-Murli-Reader/internal/viewer"
)

// waitForSnapshot blocks on the subscription. Update re-arms it after each
// snapshot, so exactly one is pending at a time.
func waitForSnapshot(updates <-chan viewer.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return closedMsg{}
		}
		return snapshotMsg(snap)
	}
}

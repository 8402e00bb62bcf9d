package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aegismedical/eresus/internal/services"
)

// snapshotMsg carries the latest published arrest state
type snapshotMsg struct {
	snapshot services.Snapshot
}

// subscriptionClosedMsg is sent once the snapshot subscription is cancelled
type subscriptionClosedMsg struct{}

// resetDoneMsg reports a finished reset, including save and export warnings
type resetDoneMsg struct {
	quit   bool
	result services.ResetResult
	saved  bool
}

// retryDoneMsg reports the outcome of retrying unsaved logs
type retryDoneMsg struct {
	err error
}

// waitForSnapshot blocks until the arrest service publishes new state
func waitForSnapshot(ch <-chan services.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-ch
		if !ok {
			return subscriptionClosedMsg{}
		}
		return snapshotMsg{snapshot: snapshot}
	}
}

// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/intervu-dev/intervu/internal/archive"
	"github.com/intervu-dev/intervu/internal/engine"
	"github.com/intervu-dev/intervu/internal/interview"
	"github.com/intervu-dev/intervu/internal/tui"
)

// InitSessionCmd creates a session on the engine for the chosen role.
func InitSessionCmd(c *engine.Client, roleID string) tea.Cmd {
	return func() tea.Msg {
		id, err := c.InitSession(context.Background(), roleID)
		return tui.SessionInitMsg{SessionID: id, RoleID: roleID, Err: err}
	}
}

// LoadHistoryCmd fetches the recorded transcript for a session.
func LoadHistoryCmd(c *engine.Client, sessionID string) tea.Cmd {
	return func() tea.Msg {
		msgs, err := c.History(context.Background(), sessionID)
		return tui.HistoryLoadedMsg{SessionID: sessionID, Messages: msgs, Err: err}
	}
}

// FetchStatusCmd fetches the authoritative session status.
func FetchStatusCmd(c *engine.Client, sessionID string) tea.Cmd {
	return func() tea.Msg {
		st, err := c.Status(context.Background(), sessionID)
		return tui.StatusMsg{SessionID: sessionID, Status: st, Err: err}
	}
}

// StartInterviewCmd starts the interview and returns the engine's first
// assistant message.
func StartInterviewCmd(c *engine.Client, sessionID string) tea.Cmd {
	return func() tea.Msg {
		first, err := c.StartInterview(context.Background(), sessionID)
		return tui.StartedMsg{SessionID: sessionID, First: first, Err: err}
	}
}

// SendCmd posts one user message atomically.
func SendCmd(c *engine.Client, sessionID, message string) tea.Cmd {
	return func() tea.Msg {
		res, err := c.Send(context.Background(), sessionID, message)
		return tui.SendResultMsg{SessionID: sessionID, Result: res, Err: err}
	}
}

// OpenStreamCmd posts one user message to the streaming endpoint and wraps
// the raw body in an Assembler.
func OpenStreamCmd(c *engine.Client, sessionID, message string) tea.Cmd {
	return func() tea.Msg {
		body, err := c.OpenStream(context.Background(), sessionID, message)
		if err != nil {
			return tui.StreamOpenedMsg{SessionID: sessionID, Err: err}
		}
		return tui.StreamOpenedMsg{SessionID: sessionID, Assembler: interview.NewAssembler(body)}
	}
}

// ReadChunkCmd pulls the next chunk from an in-flight stream. The update
// loop folds the returned text into the ledger and re-issues the pull until
// Done, so at most one pull runs at a time and the ledger is only ever
// mutated on the update goroutine.
func ReadChunkCmd(sessionID string, asm *interview.Assembler) tea.Cmd {
	return func() tea.Msg {
		text, done, err := asm.Next()
		return tui.StreamChunkMsg{SessionID: sessionID, Text: text, Done: done, Err: err}
	}
}

// EndSessionCmd requests manual termination of a session.
func EndSessionCmd(c *engine.Client, sessionID string) tea.Cmd {
	return func() tea.Msg {
		closing, err := c.EndSession(context.Background(), sessionID)
		return tui.EndedMsg{SessionID: sessionID, Closing: closing, Err: err}
	}
}

// SaveTranscriptCmd archives a finished interview. A nil store disables
// archiving and resolves immediately.
func SaveTranscriptCmd(store *archive.Store, rec archive.Record) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return tui.ArchiveSavedMsg{SessionID: rec.SessionID}
		}
		saved, err := store.Save(rec)
		if err != nil {
			return tui.ArchiveSavedMsg{SessionID: rec.SessionID, Err: err}
		}
		return tui.ArchiveSavedMsg{SessionID: rec.SessionID, RecordID: saved.ID}
	}
}

// TickCmd emits a TimerTickMsg after one second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tui.TimerTickMsg{Time: t}
	})
}

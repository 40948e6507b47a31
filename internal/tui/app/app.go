// Package app provides the main TUI application that wires all views together.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/intervu-dev/intervu/internal/archive"
	"github.com/intervu-dev/intervu/internal/config"
	"github.com/intervu-dev/intervu/internal/engine"
	"github.com/intervu-dev/intervu/internal/interview"
	"github.com/intervu-dev/intervu/internal/log"
	"github.com/intervu-dev/intervu/internal/tui"
	"github.com/intervu-dev/intervu/internal/tui/commands"
	"github.com/intervu-dev/intervu/internal/tui/views"
)

// confirmTimeout is the window for the second press of a double-press
// confirmation (Ctrl+C to quit, Esc to leave a session).
const confirmTimeout = time.Second

// App is the main TUI application. Its Update method is the single event
// loop: every engine result, key press, and timer tick is applied here, one
// at a time, so session state never needs locking.
type App struct {
	model  *tui.Model
	client *engine.Client
	store  *archive.Store // optional; nil disables transcript archiving
	logger *log.Logger    // optional

	rolesView views.RolesModel
	chatView  views.ChatModel

	// Live session state. Nil outside StateConnecting/StateChat.
	iv  *interview.Interview
	asm *interview.Assembler
}

// New creates a new App with the given configuration and collaborators.
func New(cfg *config.Config, client *engine.Client, store *archive.Store, logger *log.Logger) *App {
	model := tui.NewModel(cfg)

	return &App{
		model:     model,
		client:    client,
		store:     store,
		logger:    logger,
		rolesView: views.NewRolesModel(tui.Catalog(cfg), model.Width, model.Height),
	}
}

// Init returns the initial command for the TUI.
func (a *App) Init() tea.Cmd {
	return a.rolesView.Init()
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		var cmd tea.Cmd
		switch a.model.State {
		case tui.StateRoles:
			a.rolesView, cmd = a.rolesView.Update(msg)
		case tui.StateChat:
			a.chatView, cmd = a.chatView.Update(msg)
		}
		return a, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyCtrlC:
			if a.model.CtrlCPending {
				a.teardown()
				return a, tea.Quit
			}
			a.model.CtrlCPending = true
			return a, tea.Tick(confirmTimeout, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})

		case tui.KeyEsc:
			if a.model.State != tui.StateChat {
				return a, nil
			}
			if a.model.EscPending {
				a.teardown()
				a.model.State = tui.StateRoles
				a.model.EscPending = false
				return a, a.rolesView.Init()
			}
			a.model.EscPending = true
			return a, tea.Tick(confirmTimeout, func(time.Time) tea.Msg {
				return tui.EscResetMsg{}
			})
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case tui.EscResetMsg:
		a.model.EscPending = false
		return a, nil

	case spinner.TickMsg:
		if a.model.State == tui.StateConnecting {
			var cmd tea.Cmd
			a.model.Spinner, cmd = a.model.Spinner.Update(msg)
			return a, cmd
		}

	case tui.TimerTickMsg:
		return a.handleTimerTick()

	case tui.SessionInitMsg:
		return a.handleSessionInit(msg)

	case tui.HistoryLoadedMsg:
		return a.handleHistoryLoaded(msg)

	case tui.StatusMsg:
		return a.handleStatus(msg)

	case tui.StartedMsg:
		return a.handleStarted(msg)

	case tui.SendResultMsg:
		return a.handleSendResult(msg)

	case tui.StreamOpenedMsg:
		return a.handleStreamOpened(msg)

	case tui.StreamChunkMsg:
		return a.handleStreamChunk(msg)

	case tui.EndedMsg:
		return a.handleEnded(msg)

	case tui.ArchiveSavedMsg:
		return a.handleArchiveSaved(msg)
	}

	// Route the rest to the active view.
	switch a.model.State {
	case tui.StateRoles:
		return a.updateRoles(msg)
	case tui.StateChat:
		return a.updateChat(msg)
	}

	return a, nil
}

// View renders the current application state.
func (a *App) View() string {
	var content string

	switch a.model.State {
	case tui.StateRoles:
		content = a.rolesView.View()
		if a.model.Err != nil {
			errLine := tui.ErrorStyle.Render(a.model.Err.Error())
			content = lipgloss.JoinVertical(lipgloss.Center, errLine, content)
		}
		content = a.centerContent(content)

	case tui.StateConnecting:
		line := fmt.Sprintf("%s Setting up your %s interview...", a.model.Spinner.View(), a.model.Role.Title)
		content = a.centerContent(tui.BoxStyle.Render(line))

	case tui.StateChat:
		content = a.chatView.View()

	default:
		content = "Unknown state"
	}

	if a.model.CtrlCPending {
		hint := tui.WarningStyle.Render("Press Ctrl+C again to exit")
		content = lipgloss.JoinVertical(lipgloss.Left, content, hint)
	} else if a.model.EscPending {
		hint := tui.WarningStyle.Render("Press Esc again to leave the interview")
		content = lipgloss.JoinVertical(lipgloss.Left, content, hint)
	}

	return content
}

// centerContent centers the given content in the available space.
func (a *App) centerContent(content string) string {
	return lipgloss.Place(
		a.model.Width,
		a.model.Height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// ============================================================================
// View routing
// ============================================================================

func (a *App) updateRoles(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.rolesView, cmd = a.rolesView.Update(msg)

	if chosen, ok := msg.(views.RoleChosenMsg); ok {
		a.model.Err = nil
		a.model.Role = chosen.Role
		a.model.State = tui.StateConnecting
		return a, tea.Batch(
			a.model.Spinner.Tick,
			commands.InitSessionCmd(a.client, chosen.Role.ID),
		)
	}

	return a, cmd
}

func (a *App) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.chatView, cmd = a.chatView.Update(msg)

	switch msg := msg.(type) {
	case views.StartRequestMsg:
		if a.iv == nil || a.iv.Started() || a.chatView.Loading() {
			return a, cmd
		}
		a.chatView.SetNotice("")
		a.chatView.SetLoading(true)
		return a, tea.Batch(cmd, a.chatView.Init(), commands.StartInterviewCmd(a.client, a.iv.Handle()))

	case views.SubmitMsg:
		return a.handleSubmit(msg.Content, cmd)

	case views.EndRequestMsg:
		if a.iv == nil || a.chatView.Loading() || !a.iv.RequestEnd() {
			return a, cmd
		}
		a.chatView.SetNotice("")
		a.chatView.SetLoading(true)
		return a, tea.Batch(cmd, a.chatView.Init(), commands.EndSessionCmd(a.client, a.iv.Handle()))
	}

	return a, cmd
}

// handleSubmit appends the user's message optimistically and issues the send.
// The outbound entry stays in the ledger even if the send later fails.
func (a *App) handleSubmit(content string, viewCmd tea.Cmd) (tea.Model, tea.Cmd) {
	if a.iv == nil || !a.iv.CanSend() || a.chatView.Loading() {
		return a, viewCmd
	}

	wasStarted := a.iv.Started()
	a.iv.AppendUser(content)
	a.event(log.LogEvent{Event: log.EventMessageSent, SessionID: a.iv.Handle(), Messages: a.iv.Messages()})
	a.chatView.SetNotice("")
	a.chatView.SetLoading(true)
	a.chatView.Refresh()

	cmds := []tea.Cmd{viewCmd, a.chatView.Init()}
	if !wasStarted {
		// First send anchored the timer; start publishing elapsed time.
		cmds = append(cmds, commands.TickCmd())
	}

	if a.model.Cfg.UI.Streaming {
		cmds = append(cmds, commands.OpenStreamCmd(a.client, a.iv.Handle(), content))
	} else {
		cmds = append(cmds, commands.SendCmd(a.client, a.iv.Handle(), content))
	}
	return a, tea.Batch(cmds...)
}

// ============================================================================
// Engine result handlers
// ============================================================================

// live reports whether an async result still corresponds to the current
// session. Results for a torn-down or replaced session are dropped.
func (a *App) live(sessionID string) bool {
	if a.iv != nil && a.iv.Handle() == sessionID {
		return true
	}
	a.event(log.LogEvent{Event: log.EventStaleResultDropped, SessionID: sessionID})
	return false
}

func (a *App) handleSessionInit(msg tui.SessionInitMsg) (tea.Model, tea.Cmd) {
	if a.model.State != tui.StateConnecting {
		return a, nil
	}
	if msg.Err != nil {
		a.model.State = tui.StateRoles
		a.model.Err = fmt.Errorf("could not create session: %w", msg.Err)
		return a, nil
	}

	a.iv = interview.New(msg.SessionID)
	a.chatView = views.NewChatModel(a.iv, a.model.Role.Title, a.model.Cfg.UI.Markdown, a.model.Width, a.model.Height)
	return a, commands.LoadHistoryCmd(a.client, msg.SessionID)
}

func (a *App) handleHistoryLoaded(msg tui.HistoryLoadedMsg) (tea.Model, tea.Cmd) {
	if !a.live(msg.SessionID) {
		return a, nil
	}

	a.model.State = tui.StateChat
	cmds := []tea.Cmd{a.chatView.Init()}

	if msg.Err != nil {
		// A fresh session simply has no history yet; enter the chat and let
		// the user start.
		a.chatView.SetNotice(fmt.Sprintf("Could not load history: %v", msg.Err))
	} else {
		a.iv.LoadHistory(msg.Messages)
		if a.iv.Started() {
			// Resumed session: the timer anchors at this moment, and the
			// elapsed display starts publishing.
			cmds = append(cmds, commands.TickCmd(), commands.FetchStatusCmd(a.client, msg.SessionID))
		}
	}

	a.chatView.Refresh()
	return a, tea.Batch(cmds...)
}

func (a *App) handleStatus(msg tui.StatusMsg) (tea.Model, tea.Cmd) {
	if !a.live(msg.SessionID) {
		return a, nil
	}
	if msg.Err != nil {
		// Keep the previous cached status; the fetch is retried on the next
		// interaction.
		return a, nil
	}

	var cmds []tea.Cmd
	if a.iv.ApplyStatus(*msg.Status) {
		// This refresh is the one that ended the session.
		a.chatView.SetLoading(false)
		cmds = append(cmds, a.archiveCmd())
	}
	a.chatView.Refresh()
	return a, tea.Batch(cmds...)
}

func (a *App) handleStarted(msg tui.StartedMsg) (tea.Model, tea.Cmd) {
	if !a.live(msg.SessionID) {
		return a, nil
	}
	a.chatView.SetLoading(false)

	if msg.Err != nil {
		a.chatView.SetNotice(fmt.Sprintf("Could not start the interview: %v", msg.Err))
		return a, nil
	}

	a.iv.Begin(msg.First)
	a.chatView.Refresh()
	return a, tea.Batch(
		commands.TickCmd(),
		commands.FetchStatusCmd(a.client, msg.SessionID),
	)
}

func (a *App) handleSendResult(msg tui.SendResultMsg) (tea.Model, tea.Cmd) {
	if !a.live(msg.SessionID) {
		return a, nil
	}
	a.chatView.SetLoading(false)

	if msg.Err != nil {
		// Application errors and transport failures alike leave the ledger
		// untouched; the user's own message stays in place.
		var appErr *engine.AppError
		if errors.As(msg.Err, &appErr) {
			a.chatView.SetNotice(appErr.Message)
		} else {
			a.chatView.SetNotice(fmt.Sprintf("Send failed: %v", msg.Err))
		}
		a.chatView.Refresh()
		return a, commands.FetchStatusCmd(a.client, msg.SessionID)
	}

	a.iv.AppendAssistant(msg.Result.Response)

	var cmds []tea.Cmd
	if msg.Result.InterviewCompleted && a.iv.Resolve(interview.TriggerInline) {
		cmds = append(cmds, a.archiveCmd())
	}
	cmds = append(cmds, commands.FetchStatusCmd(a.client, msg.SessionID))

	a.chatView.Refresh()
	return a, tea.Batch(cmds...)
}

func (a *App) handleStreamOpened(msg tui.StreamOpenedMsg) (tea.Model, tea.Cmd) {
	if !a.live(msg.SessionID) {
		if msg.Assembler != nil {
			_ = msg.Assembler.Close()
		}
		return a, nil
	}

	if msg.Err != nil {
		a.chatView.SetLoading(false)
		a.chatView.SetNotice(fmt.Sprintf("Send failed: %v", msg.Err))
		return a, commands.FetchStatusCmd(a.client, msg.SessionID)
	}

	a.asm = msg.Assembler
	return a, commands.ReadChunkCmd(msg.SessionID, a.asm)
}

func (a *App) handleStreamChunk(msg tui.StreamChunkMsg) (tea.Model, tea.Cmd) {
	if !a.live(msg.SessionID) || a.asm == nil {
		return a, nil
	}

	// Fold the accumulated text here, on the update loop, so the ledger is
	// never mutated from a command goroutine.
	if msg.Text != "" {
		a.iv.ExtendAssistant(msg.Text)
	}

	if msg.Err != nil {
		// Partial text already folded stays in place; the server may have
		// advanced the session before the failure, so refresh regardless.
		a.asm = nil
		a.iv.FinishStream()
		a.chatView.SetLoading(false)
		a.chatView.SetNotice(fmt.Sprintf("Response interrupted: %v", msg.Err))
		a.chatView.Refresh()
		return a, commands.FetchStatusCmd(a.client, msg.SessionID)
	}

	if msg.Done {
		a.asm = nil
		a.iv.FinishStream()
		a.chatView.SetLoading(false)
		a.chatView.Refresh()
		a.event(log.LogEvent{Event: log.EventStreamCompleted, SessionID: msg.SessionID})
		return a, commands.FetchStatusCmd(a.client, msg.SessionID)
	}

	a.chatView.Refresh()
	return a, commands.ReadChunkCmd(msg.SessionID, a.asm)
}

func (a *App) handleEnded(msg tui.EndedMsg) (tea.Model, tea.Cmd) {
	if !a.live(msg.SessionID) {
		return a, nil
	}
	a.chatView.SetLoading(false)

	if msg.Err != nil {
		// Failed terminate request: return to a retryable state.
		a.iv.CancelEnd()
		a.chatView.SetNotice(fmt.Sprintf("Could not end the interview: %v", msg.Err))
		return a, nil
	}

	var cmds []tea.Cmd
	if a.iv.Resolve(interview.TriggerManual) {
		// First transition wins the closing-message append. If a polled or
		// inline completion beat this confirmation, nothing is appended.
		if msg.Closing != "" {
			a.iv.AppendAssistant(msg.Closing)
		}
		cmds = append(cmds, a.archiveCmd())
	}
	cmds = append(cmds, commands.FetchStatusCmd(a.client, msg.SessionID))

	a.chatView.Refresh()
	return a, tea.Batch(cmds...)
}

func (a *App) handleArchiveSaved(msg tui.ArchiveSavedMsg) (tea.Model, tea.Cmd) {
	if a.iv == nil || a.iv.Handle() != msg.SessionID {
		return a, nil
	}
	if msg.Err != nil {
		a.chatView.SetNotice(fmt.Sprintf("Could not archive transcript: %v", msg.Err))
		return a, nil
	}
	if msg.RecordID != "" {
		a.event(log.LogEvent{
			Event:     log.EventTranscriptSaved,
			SessionID: msg.SessionID,
			Messages:  a.iv.Messages(),
		})
	}
	return a, nil
}

func (a *App) handleTimerTick() (tea.Model, tea.Cmd) {
	if a.iv == nil || !a.iv.Started() {
		return a, nil
	}
	a.chatView.Refresh()
	if a.iv.Ended() {
		// The tick chain stops here; the frozen final time stays on screen.
		return a, nil
	}
	return a, commands.TickCmd()
}

// archiveCmd builds the transcript archive command for the just-ended
// session. Called exactly once, at the first termination transition.
func (a *App) archiveCmd() tea.Cmd {
	rec := archive.Record{
		SessionID: a.iv.Handle(),
		RoleID:    a.model.Role.ID,
		Cause:     a.iv.EndCause().String(),
		Messages:  a.iv.Snapshot(),
	}
	if st := a.iv.Status(); st != nil {
		rec.Phase = st.CurrentPhase
		rec.QuestionCount = st.QuestionCount
	}
	if final, ok := a.iv.FinalElapsed(); ok {
		rec.ElapsedSec = int(final.Seconds())
	}
	return commands.SaveTranscriptCmd(a.store, rec)
}

// teardown discards the live session. In-flight results become stale and are
// dropped when they resolve.
func (a *App) teardown() {
	if a.asm != nil {
		_ = a.asm.Close()
		a.asm = nil
	}
	a.iv = nil
}

// event appends a log event, if a logger is configured.
func (a *App) event(ev log.LogEvent) {
	if a.logger == nil {
		return
	}
	_ = a.logger.Append(ev)
}

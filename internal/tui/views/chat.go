package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/intervu-dev/intervu/internal/interview"
	"github.com/intervu-dev/intervu/internal/tui"
)

// SubmitMsg is sent when the user submits an answer.
type SubmitMsg struct {
	Content string
}

// StartRequestMsg is sent when the user asks to start the interview.
type StartRequestMsg struct{}

// EndRequestMsg is sent when the user asks to end the interview.
type EndRequestMsg struct{}

// ChatModel is the view model for the live interview screen. It renders from
// the interview state machine and emits intent messages; all engine calls
// and state transitions happen in the app layer.
type ChatModel struct {
	iv        *interview.Interview
	roleTitle string

	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	markdown bool
	loading  bool
	notice   string

	width  int
	height int
}

// NewChatModel creates a ChatModel rendering the given interview.
func NewChatModel(iv *interview.Interview, roleTitle string, markdown bool, width, height int) ChatModel {
	ta := textarea.New()
	ta.Placeholder = "Type your answer... (Enter to send)"
	ta.CharLimit = 5000
	ta.SetWidth(width - 8)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))

	vpWidth, vpHeight := chatDimensions(width, height)
	vp := viewport.New(vpWidth, vpHeight)

	m := ChatModel{
		iv:        iv,
		roleTitle: roleTitle,
		textarea:  ta,
		viewport:  vp,
		spinner:   sp,
		markdown:  markdown,
		width:     width,
		height:    height,
	}
	m.rebuildRenderer()
	m.Refresh()
	return m
}

// chatDimensions derives the viewport size from the terminal size, reserving
// space for the header, input area, and footer.
func chatDimensions(width, height int) (int, int) {
	vpHeight := height - 16
	if vpHeight < 5 {
		vpHeight = 5
	}
	vpWidth := width - 8
	if vpWidth < 20 {
		vpWidth = 20
	}
	return vpWidth, vpHeight
}

// rebuildRenderer creates the markdown renderer for the current width.
// Rendering falls back to plain text if the renderer cannot be built.
func (m *ChatModel) rebuildRenderer() {
	if !m.markdown {
		m.renderer = nil
		return
	}
	vpWidth, _ := chatDimensions(m.width, m.height)
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(vpWidth-4),
	)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = r
}

// Init returns the initial command for the chat view.
func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Refresh re-renders the transcript into the viewport and scrolls to the
// bottom. The app calls this after every ledger or status change.
func (m *ChatModel) Refresh() {
	m.viewport.SetContent(m.formatTranscript())
	m.viewport.GotoBottom()
}

// SetLoading marks whether an interaction is in flight. Input is disabled
// while loading, which is what keeps sends single-flight.
func (m *ChatModel) SetLoading(loading bool) {
	m.loading = loading
}

// Loading reports whether an interaction is in flight.
func (m ChatModel) Loading() bool {
	return m.loading
}

// SetNotice shows a transient warning line under the input area. Pass "" to
// clear it.
func (m *ChatModel) SetNotice(notice string) {
	m.notice = notice
}

// Update handles messages for the chat view.
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEnter:
			if m.loading || m.iv.Ended() {
				return m, nil
			}
			if !m.iv.Started() {
				return m, func() tea.Msg {
					return StartRequestMsg{}
				}
			}
			content := strings.TrimSpace(m.textarea.Value())
			if content == "" || !m.iv.CanSend() {
				return m, nil
			}
			m.textarea.Reset()
			return m, func() tea.Msg {
				return SubmitMsg{Content: content}
			}

		case tui.KeyCtrlE:
			if m.iv.Ended() {
				return m, nil
			}
			return m, func() tea.Msg {
				return EndRequestMsg{}
			}
		}

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpWidth, vpHeight := chatDimensions(msg.Width, msg.Height)
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
		m.textarea.SetWidth(vpWidth)

		m.rebuildRenderer()
		m.Refresh()
		return m, nil
	}

	if !m.loading && !m.iv.Ended() {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the chat view.
func (m ChatModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")

	switch {
	case m.iv.Ended():
		b.WriteString(m.renderEndedBanner())
	case m.loading:
		b.WriteString(fmt.Sprintf("%s Interviewer is typing...", m.spinner.View()))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render(m.textarea.View()))
	case !m.iv.Started():
		b.WriteString(tui.SuccessStyle.Render("Press Enter to start the interview."))
	default:
		b.WriteString(m.textarea.View())
	}

	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(tui.WarningStyle.Render(m.notice))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())

	content := b.String()
	return tui.BoxStyle.
		Width(m.width - 4).
		Render(content)
}

// renderHeader renders the role title, phase, question progress, and the
// elapsed timer.
func (m ChatModel) renderHeader() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render(fmt.Sprintf("Interview: %s", m.roleTitle)))

	st := m.iv.Status()
	if st == nil {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(tui.PhaseStyle(st.CurrentPhase).Render(tui.PhaseLabel(st.CurrentPhase)))
	b.WriteString(tui.DimStyle.Render(fmt.Sprintf("  ·  Question %d/%d  ·  ", st.QuestionCount, st.TotalQuestions)))
	b.WriteString(formatElapsed(m.iv.Elapsed()))
	b.WriteString("\n")
	b.WriteString(progressBar(st.ProgressPercentage, 40))

	if desc := tui.PhaseDescription(st.CurrentPhase); desc != "" {
		b.WriteString("  ")
		b.WriteString(tui.DimStyle.Render(desc))
	}

	return b.String()
}

// renderEndedBanner renders the terminal banner shown in place of the input
// area once the session has ended.
func (m ChatModel) renderEndedBanner() string {
	label := "Interview complete. Thanks for your time!"
	if st := m.iv.Status(); st != nil && st.ManuallyEnded {
		label = "Interview ended."
	} else if m.iv.EndCause() == interview.TriggerManual {
		label = "Interview ended."
	}

	line := tui.SuccessStyle.Render(label)
	if final, ok := m.iv.FinalElapsed(); ok {
		line += tui.DimStyle.Render(fmt.Sprintf("  Total time: %s", formatElapsed(final)))
	}
	return line
}

// renderFooter renders the key hints.
func (m ChatModel) renderFooter() string {
	if m.iv.Ended() {
		return tui.DimStyle.Render("Esc Esc: Back to roles · Ctrl+C Ctrl+C: Exit")
	}
	return tui.DimStyle.Render("Enter: Send · Ctrl+E: End interview · Esc Esc: Back to roles")
}

// formatTranscript renders the message ledger for the viewport.
func (m ChatModel) formatTranscript() string {
	msgs := m.iv.Snapshot()
	if len(msgs) == 0 {
		return tui.DimStyle.Render("The interviewer will greet you once the interview starts.")
	}

	var b strings.Builder
	for i, msg := range msgs {
		switch msg.Role {
		case interview.RoleUser:
			b.WriteString(tui.UserStyle.Render("You: "))
			b.WriteString(msg.Content)
		case interview.RoleAssistant:
			b.WriteString(tui.InterviewerStyle.Render("Interviewer:"))
			b.WriteString("\n")
			b.WriteString(m.renderAssistant(msg.Content))
		default:
			b.WriteString(tui.DimStyle.Render(msg.Role + ": "))
			b.WriteString(msg.Content)
		}

		if i < len(msgs)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// renderAssistant renders assistant content as markdown when enabled,
// falling back to the raw text on renderer errors.
func (m ChatModel) renderAssistant(content string) string {
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// progressBar renders a fixed-width bar for a 0-100 percentage.
func progressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return tui.ProgressFullStyle.Render(strings.Repeat("█", filled)) +
		tui.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// formatElapsed formats a duration as m:ss, or h:mm:ss past the hour.
func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/intervu-dev/intervu/internal/interview"
)

// Base color constants.
const (
	primaryColor   = "#7C3AED" // Purple
	secondaryColor = "#10B981" // Green
	warningColor   = "#F59E0B" // Amber
	errorColor     = "#EF4444" // Red
	dimColor       = "#6B7280" // Gray
)

// Style variables for consistent TUI rendering.
var (
	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders success messages in green.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders warning messages in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// UserStyle renders the user's speaker prefix.
	UserStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor)).
			Bold(true)

	// InterviewerStyle renders the interviewer's speaker prefix.
	InterviewerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(primaryColor)).
				Bold(true)

	// ProgressFullStyle renders filled progress indicators.
	ProgressFullStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(secondaryColor))

	// ProgressEmptyStyle renders empty progress indicators.
	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(dimColor))
)

// phaseColors maps each engine phase to its display color.
var phaseColors = map[string]string{
	interview.PhaseGreeting:  "#10B981", // green
	interview.PhaseEasy:      "#06B6D4", // cyan
	interview.PhaseModerate:  "#3B82F6", // blue
	interview.PhaseScenario:  "#8B5CF6", // violet
	interview.PhaseHard:      "#F59E0B", // amber
	interview.PhaseExpert:    "#EF4444", // red
	interview.PhaseCompleted: "#10B981", // green
}

// phaseDescriptions maps each engine phase to a one-line description shown
// under the chat header.
var phaseDescriptions = map[string]string{
	interview.PhaseGreeting:  "Getting to know you",
	interview.PhaseEasy:      "Warming up with fundamentals",
	interview.PhaseModerate:  "Diving into practical knowledge",
	interview.PhaseScenario:  "Real-world problem solving",
	interview.PhaseHard:      "Advanced challenges",
	interview.PhaseExpert:    "Expert-level mastery",
	interview.PhaseCompleted: "All questions completed!",
}

// PhaseStyle returns a bold style in the phase's display color. Unknown
// phases fall back to the dim color.
func PhaseStyle(phase string) lipgloss.Style {
	color, ok := phaseColors[phase]
	if !ok {
		color = dimColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// PhaseLabel returns the header label for a phase.
func PhaseLabel(phase string) string {
	if phase == interview.PhaseCompleted {
		return "Interview Complete"
	}
	return phase + " phase"
}

// PhaseDescription returns the one-line description for a phase, or "" for
// an unknown phase.
func PhaseDescription(phase string) string {
	return phaseDescriptions[phase]
}

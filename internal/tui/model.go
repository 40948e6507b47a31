package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/intervu-dev/intervu/internal/config"
)

// ViewState represents the current state of the TUI.
type ViewState int

const (
	StateRoles      ViewState = iota // choosing an interview role
	StateConnecting                  // session being created on the engine
	StateChat                        // live interview
)

// Role describes a selectable interview role.
type Role struct {
	ID          string
	Title       string
	Description string
	Difficulty  string
}

// BuiltinRoles returns the built-in role catalog. Roles from the config file
// are appended to these.
func BuiltinRoles() []Role {
	return []Role{
		{
			ID:          "meta-ads-expert",
			Title:       "Meta Ads Expert",
			Description: "Facebook & Instagram advertising campaigns, audience targeting, optimization",
			Difficulty:  "Advanced",
		},
		{
			ID:          "google-ads-expert",
			Title:       "Google Ads Expert",
			Description: "Search campaigns, keyword strategy, Quality Score optimization",
			Difficulty:  "Advanced",
		},
		{
			ID:          "shopify-developer",
			Title:       "Shopify Developer",
			Description: "Liquid templates, theme development, app integration, store optimization",
			Difficulty:  "Technical",
		},
		{
			ID:          "copywriter",
			Title:       "Copywriter",
			Description: "Ad copy, email marketing, landing pages, brand voice & messaging",
			Difficulty:  "Creative",
		},
		{
			ID:          "performance-marketing-manager",
			Title:       "Performance Marketing Manager",
			Description: "Multi-channel attribution, funnel optimization, ROI management",
			Difficulty:  "Strategic",
		},
		{
			ID:          "social-media-intern",
			Title:       "Social Media Intern",
			Description: "Content planning, community management, platform best practices",
			Difficulty:  "Entry Level",
		},
		{
			ID:          "client-servicing-executive",
			Title:       "Client Servicing Executive",
			Description: "Account management, client communication, conflict resolution",
			Difficulty:  "Interpersonal",
		},
		{
			ID:          "content-creator-ugc",
			Title:       "Content Creator / UGC Editor",
			Description: "Video editing, content strategy, trend analysis, UGC campaigns",
			Difficulty:  "Creative",
		},
	}
}

// Catalog merges the built-in roles with roles declared in the config file.
// A config role whose ID matches a built-in role replaces it.
func Catalog(cfg *config.Config) []Role {
	roles := BuiltinRoles()
	index := make(map[string]int, len(roles))
	for i, r := range roles {
		index[r.ID] = i
	}
	for _, rc := range cfg.Roles {
		role := Role{ID: rc.ID, Title: rc.Title, Description: rc.Description, Difficulty: rc.Difficulty}
		if i, ok := index[rc.ID]; ok {
			roles[i] = role
			continue
		}
		roles = append(roles, role)
	}
	return roles
}

// Model holds the shared TUI state used across views.
type Model struct {
	State ViewState
	Cfg   *config.Config
	Err   error

	// Chosen role, meaningful from StateConnecting onward.
	Role Role

	Spinner spinner.Model

	// Terminal dimensions
	Width  int
	Height int

	// Double-press confirmation state
	CtrlCPending bool // waiting for second Ctrl+C press
	EscPending   bool // waiting for second Esc press
}

// NewModel creates a new Model with the given configuration.
func NewModel(cfg *config.Config) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(primaryColor))

	return &Model{
		State:   StateRoles,
		Cfg:     cfg,
		Spinner: sp,
		Width:   80,
		Height:  24,
	}
}

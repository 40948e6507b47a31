package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intervu-dev/intervu/internal/config"
)

func TestCatalogMergesConfigRoles(t *testing.T) {
	cfg := &config.Config{
		Roles: []config.RoleConfig{
			{ID: "sre", Title: "Site Reliability Engineer", Difficulty: "Technical"},
			{ID: "copywriter", Title: "Senior Copywriter"},
		},
	}

	roles := Catalog(cfg)

	byID := map[string]Role{}
	for _, r := range roles {
		byID[r.ID] = r
	}

	// New config role is appended.
	require.Contains(t, byID, "sre")
	assert.Equal(t, "Site Reliability Engineer", byID["sre"].Title)

	// Matching config role replaces the built-in one, without duplication.
	assert.Equal(t, "Senior Copywriter", byID["copywriter"].Title)
	assert.Len(t, roles, len(BuiltinRoles())+1)
}

func TestCatalogDefaultsToBuiltins(t *testing.T) {
	roles := Catalog(&config.Config{})
	assert.Equal(t, BuiltinRoles(), roles)
}

func TestPhaseLabels(t *testing.T) {
	assert.Equal(t, "Interview Complete", PhaseLabel("completed"))
	assert.Equal(t, "easy phase", PhaseLabel("easy"))
	assert.NotEmpty(t, PhaseDescription("scenario"))
	assert.Empty(t, PhaseDescription("bogus"))
}

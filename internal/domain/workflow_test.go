package domain

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		completed int
		total     int
		expected  int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13},
		{3, 3, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Percent(tt.completed, tt.total),
			"Percent(%d, %d)", tt.completed, tt.total)
	}
}

func TestPercent_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("stays within 0..100", prop.ForAll(
		func(completed, extra int) bool {
			total := completed + extra
			pct := Percent(completed, total)
			return pct >= 0 && pct <= 100
		},
		gen.IntRange(0, 10000),
		gen.IntRange(0, 10000),
	))

	properties.Property("monotonic in completed", prop.ForAll(
		func(completed, extra int) bool {
			total := completed + extra + 1
			return Percent(completed, total) <= Percent(completed+1, total)
		},
		gen.IntRange(0, 10000),
		gen.IntRange(0, 10000),
	))

	properties.Property("full completion is exactly 100", prop.ForAll(
		func(total int) bool {
			return Percent(total, total) == 100
		},
		gen.IntRange(1, 10000),
	))

	properties.TestingRun(t)
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		overall  int
		expected string
	}{
		{0, "not_started"},
		{1, "planning"},
		{24, "planning"},
		{25, "development"},
		{49, "development"},
		{50, "testing"},
		{74, "testing"},
		{75, "deployment"},
		{99, "deployment"},
		{100, "completed"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, StatusLabel(tt.overall), "StatusLabel(%d)", tt.overall)
	}
}

func TestNewWorkflow(t *testing.T) {
	now := time.Now()
	w := NewWorkflow("proj-1", WorkflowTypeDiscovery, []PhaseSpec{
		{Name: "discovery", Capabilities: []string{"market_research", "strategy"}},
		{Name: "design", Capabilities: []string{"wireframes"}},
	}, now)

	require.NotNil(t, w)
	assert.Equal(t, "proj-1", w.ID)
	assert.Equal(t, "discovery", w.CurrentPhase)
	assert.Equal(t, now, w.Timeline.Started)
	assert.Equal(t, 0, w.Progress.Overall)
	assert.Equal(t, 0, w.Progress.ByPhase["discovery"])

	for _, p := range w.Phases {
		for capability, status := range p.Capabilities {
			assert.Equal(t, CapabilityPending, status, "capability %s", capability)
		}
	}
}

func TestWorkflow_Recompute(t *testing.T) {
	w := NewWorkflow("proj-1", WorkflowTypeCustom, []PhaseSpec{
		{Name: "discovery", Capabilities: []string{"market_research", "strategy"}},
		{Name: "design", Capabilities: []string{"wireframes"}},
		{Name: "development", Capabilities: []string{"api_development"}},
	}, time.Now())

	w.Phases[0].Capabilities["market_research"] = CapabilityCompleted
	w.Phases[0].Capabilities["strategy"] = CapabilityCompleted
	w.Phases[1].Capabilities["wireframes"] = CapabilityInProgress
	w.Recompute()

	assert.Equal(t, 100, w.Progress.ByPhase["discovery"])
	assert.Equal(t, 0, w.Progress.ByPhase["design"])
	assert.Equal(t, 0, w.Progress.ByPhase["development"])
	assert.Equal(t, 50, w.Progress.Overall)
}

func TestWorkflow_CloneIsolation(t *testing.T) {
	role := RoleCoordinator
	w := NewWorkflow("proj-1", WorkflowTypeCustom, DefaultPhaseTemplate(), time.Now())
	w.Metadata = map[string]interface{}{"tier": "standard"}
	w.Timeline.Milestones = []Milestone{{Capability: "market_research", Phase: "discovery", CompletedBy: &role}}

	clone := w.Clone()
	clone.Phases[0].Capabilities["market_research"] = CapabilityCompleted
	clone.Progress.ByPhase["discovery"] = 99
	clone.Metadata["tier"] = "premium"
	clone.Timeline.Milestones[0].Capability = "changed"

	assert.Equal(t, CapabilityPending, w.Phases[0].Capabilities["market_research"])
	assert.Equal(t, 0, w.Progress.ByPhase["discovery"])
	assert.Equal(t, "standard", w.Metadata["tier"])
	assert.Equal(t, "market_research", w.Timeline.Milestones[0].Capability)
}

func TestCapabilityStatus_Valid(t *testing.T) {
	assert.True(t, CapabilityPending.Valid())
	assert.True(t, CapabilityInProgress.Valid())
	assert.True(t, CapabilityCompleted.Valid())
	assert.True(t, CapabilityBlocked.Valid())
	assert.False(t, CapabilityStatus("done").Valid())
	assert.False(t, CapabilityStatus("").Valid())
}

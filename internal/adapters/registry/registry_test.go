package registry

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashfusion/core/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	require.Len(t, catalog, 12)

	seen := make(map[domain.AgentRole]bool)
	for _, profile := range catalog {
		assert.False(t, seen[profile.Role], "duplicate role %s", profile.Role)
		seen[profile.Role] = true

		assert.NotEmpty(t, profile.Name, "role %s", profile.Role)
		assert.NotEmpty(t, profile.Capabilities, "role %s", profile.Role)
		assert.NotEmpty(t, profile.CommunicationStyle.Tone, "role %s", profile.Role)
		assert.NotEmpty(t, profile.StressResponses, "role %s", profile.Role)
	}

	assert.True(t, seen[domain.RoleCoordinator])
	assert.True(t, seen[domain.RoleQAEngineer])
	assert.True(t, seen[domain.RoleDataAnalyst])
}

func TestRegistry_Lookup(t *testing.T) {
	r := New(testLogger())

	assert.Equal(t, 12, r.Size())

	profile, ok := r.Profile(domain.RoleBackendDeveloper)
	require.True(t, ok)
	assert.Equal(t, domain.RoleBackendDeveloper, profile.Role)

	_, ok = r.Profile(domain.AgentRole("intern"))
	assert.False(t, ok)

	all := r.All()
	assert.Len(t, all, 12)
	assert.Equal(t, domain.RoleCoordinator, all[0].Role)
}

func TestRegistry_ByCapability(t *testing.T) {
	r := New(testLogger())

	matched := r.ByCapability("market_research")
	require.NotEmpty(t, matched)
	for _, profile := range matched {
		assert.True(t, profile.HasCapability("market_research"))
	}

	assert.Empty(t, r.ByCapability("time_travel"))
}

func TestRegistry_Assignments(t *testing.T) {
	r := New(testLogger())

	require.NoError(t, r.AssignWorkflow(domain.RoleQAEngineer, "proj-1"))
	require.NoError(t, r.AssignWorkflow(domain.RoleQAEngineer, "proj-2"))
	require.NoError(t, r.AssignWorkflow(domain.RoleQAEngineer, "proj-2"))

	stats, ok := r.Stats(domain.RoleQAEngineer)
	require.True(t, ok)
	assert.Equal(t, []string{"proj-1", "proj-2"}, stats.ActiveWorkflows)

	r.ReleaseWorkflow(domain.RoleQAEngineer, "proj-1")
	stats, _ = r.Stats(domain.RoleQAEngineer)
	assert.Equal(t, []string{"proj-2"}, stats.ActiveWorkflows)

	r.ReleaseAll()
	stats, _ = r.Stats(domain.RoleQAEngineer)
	assert.Empty(t, stats.ActiveWorkflows)

	assert.ErrorIs(t, r.AssignWorkflow(domain.AgentRole("intern"), "proj-1"), domain.ErrNotFound)
}

func TestRegistry_TaskCounters(t *testing.T) {
	r := New(testLogger())

	r.RecordTask(domain.RoleDataAnalyst, true, 100*time.Millisecond)
	r.RecordTask(domain.RoleDataAnalyst, true, 200*time.Millisecond)
	r.RecordTask(domain.RoleDataAnalyst, false, 300*time.Millisecond)

	stats, ok := r.Stats(domain.RoleDataAnalyst)
	require.True(t, ok)
	assert.Equal(t, int64(3), stats.TasksCompleted)
	assert.InDelta(t, 2.0/3.0, stats.SuccessRate, 0.001)
	assert.Equal(t, 200*time.Millisecond, stats.AverageLatency)

	// unknown role is logged and dropped
	r.RecordTask(domain.AgentRole("intern"), true, time.Millisecond)
}

func TestRegistry_StatusLine(t *testing.T) {
	r := New(testLogger())

	line, ok := r.StatusLine(domain.RoleCoordinator)
	require.True(t, ok)
	assert.Contains(t, line, "idle")

	require.NoError(t, r.AssignWorkflow(domain.RoleCoordinator, "proj-1"))
	line, _ = r.StatusLine(domain.RoleCoordinator)
	assert.Contains(t, line, "working")

	for _, id := range []string{"proj-2", "proj-3", "proj-4"} {
		require.NoError(t, r.AssignWorkflow(domain.RoleCoordinator, id))
	}
	line, _ = r.StatusLine(domain.RoleCoordinator)
	assert.Contains(t, line, "stretched")

	_, ok = r.StatusLine(domain.AgentRole("intern"))
	assert.False(t, ok)
}

package registry

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/flashfusion/core/internal/domain"
)

type runtimeState struct {
	active       map[string]struct{}
	tasks        int64
	successes    int64
	totalLatency time.Duration
}

// Registry holds the immutable role catalog plus the mutable runtime layer
// (assignments and counters). The catalog never changes after construction.
type Registry struct {
	logger   *slog.Logger
	profiles map[domain.AgentRole]domain.AgentProfile
	order    []domain.AgentRole

	mu      sync.Mutex
	runtime map[domain.AgentRole]*runtimeState
}

func New(logger *slog.Logger) *Registry {
	return NewWithCatalog(DefaultCatalog(), logger)
}

func NewWithCatalog(catalog []domain.AgentProfile, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Registry{
		logger:   logger.With("component", "agent-registry"),
		profiles: make(map[domain.AgentRole]domain.AgentProfile, len(catalog)),
		order:    make([]domain.AgentRole, 0, len(catalog)),
		runtime:  make(map[domain.AgentRole]*runtimeState, len(catalog)),
	}

	for _, profile := range catalog {
		r.profiles[profile.Role] = profile
		r.order = append(r.order, profile.Role)
		r.runtime[profile.Role] = &runtimeState{active: make(map[string]struct{})}
	}
	return r
}

func (r *Registry) Size() int {
	return len(r.order)
}

func (r *Registry) Profile(role domain.AgentRole) (domain.AgentProfile, bool) {
	profile, ok := r.profiles[role]
	return profile, ok
}

func (r *Registry) All() []domain.AgentProfile {
	profiles := make([]domain.AgentProfile, 0, len(r.order))
	for _, role := range r.order {
		profiles = append(profiles, r.profiles[role])
	}
	return profiles
}

func (r *Registry) ByCapability(capability string) []domain.AgentProfile {
	var matched []domain.AgentProfile
	for _, role := range r.order {
		if r.profiles[role].HasCapability(capability) {
			matched = append(matched, r.profiles[role])
		}
	}
	return matched
}

func (r *Registry) AssignWorkflow(role domain.AgentRole, workflowID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.runtime[role]
	if !ok {
		return domain.ErrNotFound
	}
	state.active[workflowID] = struct{}{}
	return nil
}

func (r *Registry) ReleaseWorkflow(role domain.AgentRole, workflowID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state, ok := r.runtime[role]; ok {
		delete(state.active, workflowID)
	}
}

func (r *Registry) ReleaseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, state := range r.runtime {
		state.active = make(map[string]struct{})
	}
}

func (r *Registry) RecordTask(role domain.AgentRole, success bool, latency time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.runtime[role]
	if !ok {
		r.logger.Warn("task recorded for unknown role", "role", role)
		return
	}

	state.tasks++
	if success {
		state.successes++
	}
	state.totalLatency += latency
}

func (r *Registry) Stats(role domain.AgentRole) (domain.AgentStats, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.runtime[role]
	if !ok {
		return domain.AgentStats{}, false
	}

	stats := domain.AgentStats{
		Role:            role,
		ActiveWorkflows: make([]string, 0, len(state.active)),
	}
	for id := range state.active {
		stats.ActiveWorkflows = append(stats.ActiveWorkflows, id)
	}
	sort.Strings(stats.ActiveWorkflows)

	stats.TasksCompleted = state.tasks
	if state.tasks > 0 {
		stats.SuccessRate = float64(state.successes) / float64(state.tasks)
		stats.AverageLatency = state.totalLatency / time.Duration(state.tasks)
	}
	return stats, true
}

// StatusLine renders the role's mood text for dashboards.
func (r *Registry) StatusLine(role domain.AgentRole) (string, bool) {
	profile, ok := r.profiles[role]
	if !ok {
		return "", false
	}

	r.mu.Lock()
	load := len(r.runtime[role].active)
	r.mu.Unlock()

	return profile.StatusLine(load), true
}

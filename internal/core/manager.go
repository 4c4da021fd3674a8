package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dario.cat/mergo"

	"github.com/flashfusion/core/internal/adapters/events"
	"github.com/flashfusion/core/internal/adapters/metrics"
	"github.com/flashfusion/core/internal/adapters/registry"
	"github.com/flashfusion/core/internal/adapters/storage"
	"github.com/flashfusion/core/internal/domain"
	"github.com/flashfusion/core/internal/ports"
	"github.com/flashfusion/core/internal/xjson"
)

// CreateOptions controls workflow creation through the orchestrator.
type CreateOptions struct {
	ProjectID string
	Metadata  map[string]interface{}
	// Exclusive fails when the project id is already tracked instead of
	// returning the existing workflow.
	Exclusive bool
	// Reset discards existing state for the project id.
	Reset bool
}

// Manager wires the workflow state machine, the agent registry and the
// metrics pipeline together behind one lifecycle.
type Manager struct {
	config    *domain.Config
	logger    *slog.Logger
	store     ports.Store
	events    ports.EventManager
	registry  *registry.Registry
	collector *metrics.Collector
	sampler   *metrics.Sampler
	workflows *WorkflowManager

	mu        sync.Mutex
	started   bool
	stopped   bool
	templates map[string]domain.WorkflowTemplate
	bindings  map[string][]domain.AgentRole
	shared    map[string]interface{}
}

func NewManager(config *domain.Config) (*Manager, error) {
	if config == nil {
		config = domain.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := config.Logger.With("component", "manager")

	var store ports.Store
	var err error
	switch config.Storage {
	case domain.StorageMemory:
		store = storage.NewMemory()
	default:
		store, err = storage.NewBadger(config.DataDir, config.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
	}

	eventManager := events.NewManager(config.Logger)
	alerts := metrics.NewAlertManager(eventManager, config.Logger)
	collector := metrics.NewCollector(config.Metrics, store, alerts, eventManager, config.Logger)
	sampler := metrics.NewSampler(collector, config.Metrics.SampleInterval, config.Logger)
	agents := registry.New(config.Logger)
	workflows := NewWorkflowManager(config.Workflow, store, eventManager, config.Logger)

	templates := domain.BuiltinTemplates()
	for name, template := range config.WorkflowTypes {
		templates[name] = template
	}

	return &Manager{
		config:    config,
		logger:    logger,
		store:     store,
		events:    eventManager,
		registry:  agents,
		collector: collector,
		sampler:   sampler,
		workflows: workflows,
		templates: templates,
		bindings:  make(map[string][]domain.AgentRole),
		shared:    make(map[string]interface{}),
	}, nil
}

// DefineWorkflowType registers a template under the given name. Templates
// are fixed once the manager starts.
func (m *Manager) DefineWorkflowType(name string, template domain.WorkflowTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return domain.ErrAlreadyStarted
	}
	m.templates[name] = template
	return nil
}

func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return domain.ErrAlreadyStarted
	}
	if m.stopped {
		return domain.ErrShutdown
	}

	if err := m.collector.Start(ctx); err != nil {
		return err
	}
	if err := m.sampler.Start(ctx); err != nil {
		return err
	}

	m.started = true
	m.logger.Info("orchestrator started",
		"storage", m.config.Storage,
		"agents", m.registry.Size(),
		"workflow_types", len(m.templates))
	return nil
}

func (m *Manager) CreateWorkflow(ctx context.Context, typeName string, opts CreateOptions) (*domain.Workflow, error) {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return nil, domain.ErrShutdown
	}
	template, ok := m.templates[typeName]
	m.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("workflow type %q: %w", typeName, domain.ErrUnknownType)
	}
	if opts.ProjectID == "" {
		return nil, fmt.Errorf("project id is required: %w", domain.ErrInvalidInput)
	}

	mode := CreateIdempotent
	switch {
	case opts.Reset:
		mode = CreateReset
	case opts.Exclusive:
		mode = CreateExclusive
	}

	workflow, err := m.workflows.Create(ctx, opts.ProjectID, template.Type, template.Phases, opts.Metadata, mode)
	if err != nil {
		return nil, err
	}

	m.bindAgents(opts.ProjectID, template.RequiredRoles)
	return workflow, nil
}

// bindAgents records the template's required roles against the workflow so
// registry load reflects it. Re-creating an already tracked workflow keeps
// the original binding.
func (m *Manager) bindAgents(projectID string, roles []domain.AgentRole) {
	m.mu.Lock()
	if _, bound := m.bindings[projectID]; bound {
		m.mu.Unlock()
		return
	}
	m.bindings[projectID] = append([]domain.AgentRole(nil), roles...)
	m.mu.Unlock()

	for _, role := range roles {
		if err := m.registry.AssignWorkflow(role, projectID); err != nil {
			m.logger.Warn("failed to bind agent", "role", role, "project_id", projectID, "error", err)
		}
	}
}

// ReleaseWorkflowAgents unbinds every role assigned for the workflow.
func (m *Manager) ReleaseWorkflowAgents(projectID string) {
	m.mu.Lock()
	roles := m.bindings[projectID]
	delete(m.bindings, projectID)
	m.mu.Unlock()

	for _, role := range roles {
		m.registry.ReleaseWorkflow(role, projectID)
	}
}

// RemoveWorkflow drops the workflow and releases its agent bindings.
func (m *Manager) RemoveWorkflow(ctx context.Context, projectID string) error {
	if err := m.workflows.Delete(ctx, projectID); err != nil {
		return err
	}
	m.ReleaseWorkflowAgents(projectID)
	return nil
}

// ShareData publishes a payload from one workflow to another under a slot
// keyed by data type and direction. Map payloads merge into the existing
// slot; anything else overwrites it. Returns the slot key.
func (m *Manager) ShareData(ctx context.Context, sourceID, targetID, dataType string, payload interface{}) (string, error) {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return "", domain.ErrShutdown
	}

	key := dataType + ":" + sourceID + "_to_" + targetID

	value := payload
	if incoming, ok := payload.(map[string]interface{}); ok {
		if existing, ok := m.shared[key].(map[string]interface{}); ok {
			merged := make(map[string]interface{}, len(existing)+len(incoming))
			for k, v := range existing {
				merged[k] = v
			}
			if err := mergo.Merge(&merged, incoming, mergo.WithOverride); err != nil {
				m.mu.Unlock()
				return "", fmt.Errorf("failed to merge shared data: %w", err)
			}
			value = merged
		}
	}
	m.shared[key] = value
	m.mu.Unlock()

	raw, err := xjson.Marshal(value)
	if err != nil {
		m.logger.Warn("failed to encode shared data", "key", key, "error", err)
		return key, nil
	}
	if err := m.store.SaveSharedData(ctx, key, raw); err != nil {
		m.logger.Warn("failed to persist shared data", "key", key, "error", err)
	}
	return key, nil
}

func (m *Manager) GetSharedData(ctx context.Context, key string) (interface{}, error) {
	m.mu.Lock()
	value, ok := m.shared[key]
	m.mu.Unlock()
	if ok {
		return value, nil
	}

	raw, err := m.store.LoadSharedData(ctx, key)
	if err != nil {
		return nil, err
	}

	var decoded interface{}
	if err := xjson.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode shared data: %w", err)
	}

	m.mu.Lock()
	m.shared[key] = decoded
	m.mu.Unlock()
	return decoded, nil
}

// GetAvailableAgents returns the full catalog, or only the roles a workflow
// type requires when typeName is non-empty.
func (m *Manager) GetAvailableAgents(typeName string) ([]domain.AgentProfile, error) {
	if typeName == "" {
		return m.registry.All(), nil
	}

	m.mu.Lock()
	template, ok := m.templates[typeName]
	m.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("workflow type %q: %w", typeName, domain.ErrUnknownType)
	}

	profiles := make([]domain.AgentProfile, 0, len(template.RequiredRoles))
	for _, role := range template.RequiredRoles {
		if profile, ok := m.registry.Profile(role); ok {
			profiles = append(profiles, profile)
		}
	}
	return profiles, nil
}

func (m *Manager) IsHealthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started && !m.stopped && m.registry.Size() > 0
}

// Shutdown stops the metric loops, releases every agent binding and purges
// shared-data slots. Safe to call more than once.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return nil
	}
	m.stopped = true
	m.started = false
	m.shared = make(map[string]interface{})
	m.bindings = make(map[string][]domain.AgentRole)
	m.mu.Unlock()

	if err := m.sampler.Stop(); err != nil && err != domain.ErrNotStarted {
		m.logger.Warn("failed to stop sampler", "error", err)
	}
	if err := m.collector.Stop(); err != nil && err != domain.ErrNotStarted {
		m.logger.Warn("failed to stop collector", "error", err)
	}

	m.registry.ReleaseAll()

	if err := m.store.PurgeSharedData(ctx); err != nil {
		m.logger.Warn("failed to purge shared data", "error", err)
	}
	if err := m.store.Close(); err != nil {
		m.logger.Warn("failed to close storage", "error", err)
		return err
	}

	m.logger.Info("orchestrator stopped")
	return nil
}

func (m *Manager) Events() ports.EventManager          { return m.events }
func (m *Manager) Registry() *registry.Registry        { return m.registry }
func (m *Manager) Metrics() *metrics.Collector         { return m.collector }
func (m *Manager) Workflows() *WorkflowManager         { return m.workflows }
func (m *Manager) Alerts() *metrics.AlertManager       { return m.collector.Alerts() }
func (m *Manager) Dashboard(window time.Duration) metrics.DashboardData {
	if window <= 0 {
		window = m.config.Metrics.DashboardWindow
	}
	return m.collector.GetDashboardData(window)
}

package core

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/flashfusion/core/internal/domain"
	"github.com/flashfusion/core/internal/ports"
)

type CreateMode int

const (
	// CreateIdempotent returns the existing workflow when the project id is
	// already tracked.
	CreateIdempotent CreateMode = iota
	// CreateExclusive fails with ErrAlreadyExists instead.
	CreateExclusive
	// CreateReset discards any existing state and builds a fresh workflow.
	CreateReset
)

// WorkflowManager owns the phase/capability state machine for every tracked
// project. Mutations for the same project id are serialized through a
// per-id lock; different ids proceed in parallel.
type WorkflowManager struct {
	store  ports.WorkflowStore
	events ports.EventManager
	logger *slog.Logger
	config domain.WorkflowConfig

	mu        sync.Mutex
	workflows map[string]*domain.Workflow
	locks     map[string]*sync.Mutex
}

func NewWorkflowManager(config domain.WorkflowConfig, store ports.WorkflowStore, events ports.EventManager, logger *slog.Logger) *WorkflowManager {
	if logger == nil {
		logger = slog.Default()
	}

	return &WorkflowManager{
		store:     store,
		events:    events,
		logger:    logger.With("component", "workflow-manager"),
		config:    config,
		workflows: make(map[string]*domain.Workflow),
		locks:     make(map[string]*sync.Mutex),
	}
}

func (wm *WorkflowManager) lockFor(projectID string) *sync.Mutex {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	lock, ok := wm.locks[projectID]
	if !ok {
		lock = &sync.Mutex{}
		wm.locks[projectID] = lock
	}
	return lock
}

// loadLocked returns the tracked workflow, falling back to the persisted
// document on a memory miss. Caller must hold the project's lock.
func (wm *WorkflowManager) loadLocked(ctx context.Context, projectID string) *domain.Workflow {
	wm.mu.Lock()
	workflow, ok := wm.workflows[projectID]
	wm.mu.Unlock()
	if ok {
		return workflow
	}

	workflow, err := wm.store.LoadWorkflow(ctx, projectID)
	if err != nil {
		if !domain.IsNotFound(err) {
			wm.logger.Warn("failed to load persisted workflow", "project_id", projectID, "error", err)
		}
		return nil
	}

	wm.mu.Lock()
	wm.workflows[projectID] = workflow
	wm.mu.Unlock()
	return workflow
}

func (wm *WorkflowManager) persist(ctx context.Context, workflow *domain.Workflow) {
	// Persistence failures never surface to mutation callers: in-memory
	// state stays authoritative and the next mutation retries the write.
	if err := wm.store.SaveWorkflow(ctx, workflow); err != nil {
		wm.logger.Warn("failed to persist workflow", "project_id", workflow.ID, "error", err)
	}
}

func (wm *WorkflowManager) Create(ctx context.Context, projectID string, wtype domain.WorkflowType, phases []domain.PhaseSpec, metadata map[string]interface{}, mode CreateMode) (*domain.Workflow, error) {
	lock := wm.lockFor(projectID)
	lock.Lock()
	defer lock.Unlock()

	if existing := wm.loadLocked(ctx, projectID); existing != nil {
		switch mode {
		case CreateExclusive:
			return nil, domain.ErrAlreadyExists
		case CreateReset:
		default:
			return existing.Clone(), nil
		}
	}

	if len(phases) == 0 {
		phases = domain.DefaultPhaseTemplate()
	}

	workflow := domain.NewWorkflow(projectID, wtype, phases, time.Now())
	workflow.Metadata = metadata

	wm.mu.Lock()
	wm.workflows[projectID] = workflow
	wm.mu.Unlock()

	wm.persist(ctx, workflow)

	phaseNames := make([]string, len(workflow.Phases))
	for i, p := range workflow.Phases {
		phaseNames[i] = p.Name
	}
	wm.events.EmitWorkflowCreated(&domain.WorkflowCreatedEvent{
		ProjectID: projectID,
		Type:      wtype,
		Phases:    phaseNames,
		CreatedAt: workflow.CreatedAt,
	})

	wm.logger.Info("workflow created", "project_id", projectID, "type", wtype, "phases", len(phaseNames))
	return workflow.Clone(), nil
}

func (wm *WorkflowManager) Get(ctx context.Context, projectID string) (*domain.Workflow, error) {
	lock := wm.lockFor(projectID)
	lock.Lock()
	defer lock.Unlock()

	workflow := wm.loadLocked(ctx, projectID)
	if workflow == nil {
		return nil, domain.ErrNotFound
	}
	return workflow.Clone(), nil
}

// UpdateProgress applies a capability status report. Capabilities are
// located by scanning phases in template order; unknown capabilities are
// accepted into the current phase rather than rejected, so a reporting
// collaborator is never blocked.
func (wm *WorkflowManager) UpdateProgress(ctx context.Context, projectID, capability string, status domain.CapabilityStatus, agentRole *domain.AgentRole) (*domain.Workflow, error) {
	lock := wm.lockFor(projectID)
	lock.Lock()
	defer lock.Unlock()

	workflow := wm.loadLocked(ctx, projectID)
	if workflow == nil {
		return nil, domain.ErrNotFound
	}

	if !status.Valid() {
		wm.logger.Warn("invalid capability status, coercing to in_progress",
			"project_id", projectID, "capability", capability, "status", status)
		status = domain.CapabilityInProgress
	}

	now := time.Now()
	phaseName := wm.applyStatus(workflow, capability, status)

	workflow.Recompute()
	workflow.UpdatedAt = now

	if status == domain.CapabilityCompleted {
		milestone := domain.Milestone{
			Capability:  capability,
			Phase:       phaseName,
			CompletedAt: now,
			CompletedBy: agentRole,
		}
		workflow.Timeline.Milestones = append(workflow.Timeline.Milestones, milestone)
		wm.events.EmitMilestoneAdded(&domain.MilestoneAddedEvent{
			ProjectID: projectID,
			Milestone: milestone,
		})
	}

	wm.maybeAdvance(workflow, phaseName, now)

	wm.persist(ctx, workflow)

	wm.events.EmitProgressUpdated(&domain.ProgressUpdatedEvent{
		ProjectID:  projectID,
		Capability: capability,
		Status:     status,
		Phase:      phaseName,
		Overall:    workflow.Progress.Overall,
		ByPhase:    workflow.Progress.ByPhase,
		UpdatedAt:  now,
	})

	return workflow.Clone(), nil
}

// applyStatus updates the capability in the phase that already declares it,
// or inserts it into the current phase. Returns the phase the capability
// landed in.
func (wm *WorkflowManager) applyStatus(workflow *domain.Workflow, capability string, status domain.CapabilityStatus) string {
	for i := range workflow.Phases {
		if _, ok := workflow.Phases[i].Capabilities[capability]; ok {
			workflow.Phases[i].Capabilities[capability] = status
			return workflow.Phases[i].Name
		}
	}

	target := workflow.Phase(workflow.CurrentPhase)
	if target == nil {
		if len(workflow.Phases) == 0 {
			workflow.Phases = append(workflow.Phases, domain.Phase{
				Name:         "adhoc",
				Capabilities: make(map[string]domain.CapabilityStatus),
			})
			workflow.CurrentPhase = "adhoc"
		}
		target = &workflow.Phases[0]
	}
	if target.Capabilities == nil {
		target.Capabilities = make(map[string]domain.CapabilityStatus)
	}

	wm.logger.Debug("capability not in template, inserting into current phase",
		"project_id", workflow.ID, "capability", capability, "phase", target.Name)
	target.Capabilities[capability] = status
	return target.Name
}

// maybeAdvance is the forward-only phase ratchet: when the mutated phase
// reaches the advance threshold and sits at or past the current phase, the
// workflow moves to the phase after it. Earlier phases completing late
// never move anything, and there is no backward motion.
func (wm *WorkflowManager) maybeAdvance(workflow *domain.Workflow, phaseName string, now time.Time) {
	phase := workflow.Phase(phaseName)
	if phase == nil || len(phase.Capabilities) == 0 {
		return
	}

	completed := 0
	for _, status := range phase.Capabilities {
		if status == domain.CapabilityCompleted {
			completed++
		}
	}
	ratio := float64(completed) / float64(len(phase.Capabilities))
	if ratio < wm.config.AdvanceThreshold {
		return
	}

	phaseIdx := workflow.PhaseIndex(phaseName)
	currentIdx := workflow.PhaseIndex(workflow.CurrentPhase)
	if phaseIdx < currentIdx || phaseIdx+1 >= len(workflow.Phases) {
		return
	}

	from := workflow.CurrentPhase
	workflow.CurrentPhase = workflow.Phases[phaseIdx+1].Name

	wm.events.EmitPhaseAdvanced(&domain.PhaseAdvancedEvent{
		ProjectID:  workflow.ID,
		From:       from,
		To:         workflow.CurrentPhase,
		AdvancedAt: now,
	})

	wm.logger.Info("phase advanced", "project_id", workflow.ID, "from", from, "to", workflow.CurrentPhase)
}

// Delete forgets the workflow entirely, in memory and in the store.
func (wm *WorkflowManager) Delete(ctx context.Context, projectID string) error {
	lock := wm.lockFor(projectID)
	lock.Lock()
	defer lock.Unlock()

	if wm.loadLocked(ctx, projectID) == nil {
		return domain.ErrNotFound
	}

	wm.mu.Lock()
	delete(wm.workflows, projectID)
	wm.mu.Unlock()

	if err := wm.store.DeleteWorkflow(ctx, projectID); err != nil {
		wm.logger.Warn("failed to delete persisted workflow", "project_id", projectID, "error", err)
	}
	return nil
}

func (wm *WorkflowManager) GetStatus(ctx context.Context, projectID string) (*domain.Summary, error) {
	lock := wm.lockFor(projectID)
	lock.Lock()
	defer lock.Unlock()

	workflow := wm.loadLocked(ctx, projectID)
	if workflow == nil {
		return nil, domain.ErrNotFound
	}

	recent := wm.config.RecentMilestones
	if recent <= 0 {
		recent = 5
	}
	milestones := workflow.Timeline.Milestones
	if len(milestones) > recent {
		milestones = milestones[len(milestones)-recent:]
	}

	byPhase := make(map[string]int, len(workflow.Progress.ByPhase))
	for k, v := range workflow.Progress.ByPhase {
		byPhase[k] = v
	}

	return &domain.Summary{
		ProjectID:        projectID,
		CurrentPhase:     workflow.CurrentPhase,
		Overall:          workflow.Progress.Overall,
		ByPhase:          byPhase,
		RecentMilestones: append([]domain.Milestone(nil), milestones...),
		Elapsed:          time.Since(workflow.Timeline.Started),
		Status:           domain.StatusLabel(workflow.Progress.Overall),
	}, nil
}

// SetCustomPhases replaces the phase template wholesale. Capability state
// starts over as pending; the current-phase pointer is deliberately left
// alone.
func (wm *WorkflowManager) SetCustomPhases(ctx context.Context, projectID string, phases []domain.PhaseSpec) (*domain.Workflow, error) {
	lock := wm.lockFor(projectID)
	lock.Lock()
	defer lock.Unlock()

	workflow := wm.loadLocked(ctx, projectID)
	if workflow == nil {
		return nil, domain.ErrNotFound
	}

	built := make([]domain.Phase, 0, len(phases))
	for _, spec := range phases {
		caps := make(map[string]domain.CapabilityStatus, len(spec.Capabilities))
		for _, c := range spec.Capabilities {
			caps[c] = domain.CapabilityPending
		}
		built = append(built, domain.Phase{Name: spec.Name, Capabilities: caps})
	}

	workflow.Phases = built
	workflow.Type = domain.WorkflowTypeCustom
	workflow.Recompute()
	workflow.UpdatedAt = time.Now()

	wm.persist(ctx, workflow)

	phaseNames := make([]string, len(built))
	for i, p := range built {
		phaseNames[i] = p.Name
	}
	wm.events.EmitWorkflowCustomized(&domain.WorkflowCustomizedEvent{
		ProjectID:    projectID,
		Phases:       phaseNames,
		CustomizedAt: workflow.UpdatedAt,
	})

	return workflow.Clone(), nil
}

// AddMilestone appends a manual annotation independent of capability
// tracking.
func (wm *WorkflowManager) AddMilestone(ctx context.Context, projectID string, milestone domain.Milestone) error {
	lock := wm.lockFor(projectID)
	lock.Lock()
	defer lock.Unlock()

	workflow := wm.loadLocked(ctx, projectID)
	if workflow == nil {
		return domain.ErrNotFound
	}

	if milestone.CompletedAt.IsZero() {
		milestone.CompletedAt = time.Now()
	}

	workflow.Timeline.Milestones = append(workflow.Timeline.Milestones, milestone)
	workflow.UpdatedAt = time.Now()

	wm.persist(ctx, workflow)

	wm.events.EmitMilestoneAdded(&domain.MilestoneAddedEvent{
		ProjectID: projectID,
		Milestone: milestone,
	})
	return nil
}

// Analytics aggregates across all workflows currently tracked in memory.
func (wm *WorkflowManager) Analytics() domain.Analytics {
	wm.mu.Lock()
	ids := make([]string, 0, len(wm.workflows))
	for id := range wm.workflows {
		ids = append(ids, id)
	}
	wm.mu.Unlock()

	analytics := domain.Analytics{
		PhaseDistribution: make(map[string]int),
	}

	var overallSum float64
	var phaseSum float64
	var phaseCount int
	cutoff := time.Now().Add(-24 * time.Hour)

	for _, id := range ids {
		lock := wm.lockFor(id)
		lock.Lock()

		wm.mu.Lock()
		workflow, ok := wm.workflows[id]
		wm.mu.Unlock()
		if !ok {
			lock.Unlock()
			continue
		}

		analytics.TotalWorkflows++
		analytics.PhaseDistribution[workflow.CurrentPhase]++
		overallSum += float64(workflow.Progress.Overall)
		for _, pct := range workflow.Progress.ByPhase {
			phaseSum += float64(pct)
			phaseCount++
		}
		if workflow.UpdatedAt.After(cutoff) {
			analytics.UpdatedLast24h++
		}

		lock.Unlock()
	}

	if analytics.TotalWorkflows > 0 {
		analytics.AvgOverall = overallSum / float64(analytics.TotalWorkflows)
	}
	if phaseCount > 0 {
		analytics.AvgPhaseCompletion = phaseSum / float64(phaseCount)
	}
	return analytics
}

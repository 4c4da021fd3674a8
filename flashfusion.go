// Package flashfusion provides an embeddable workflow orchestration core for Go applications.
//
// FlashFusion tracks multi-phase project workflows driven by a catalog of agent
// roles. It provides features like:
//   - Phase/capability state machines with derived progress and milestones
//   - Forward-only phase advancement once a phase crosses its completion threshold
//   - A periodic metrics pipeline with threshold alerts and a durable critical-metric log
//   - Cross-workflow shared-data slots with map merging
//   - Event-driven architecture with typed and pattern subscriptions
//
// Basic usage:
//
//	manager, err := flashfusion.New("./data", logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	manager.Start(context.Background())
//
//	workflow, _ := manager.CreateWorkflow("discovery", flashfusion.CreateOptions{
//	    ProjectID: "proj-123",
//	})
//	manager.Workflows().UpdateProgress(ctx, workflow.ID, "market_research",
//	    flashfusion.CapabilityCompleted, nil)
package flashfusion

import (
	"log/slog"

	"github.com/flashfusion/core/internal/adapters/metrics"
	"github.com/flashfusion/core/internal/adapters/registry"
	"github.com/flashfusion/core/internal/core"
	"github.com/flashfusion/core/internal/domain"
)

// Manager is the orchestration engine that owns workflow state, the agent
// registry, the metrics pipeline and shared-data slots.
type Manager = core.Manager

// CreateOptions controls workflow creation, including idempotency behavior.
type CreateOptions = core.CreateOptions

// WorkflowManager is the phase/capability state machine behind Manager.Workflows().
type WorkflowManager = core.WorkflowManager

// Workflow is the full state document for one tracked project.
type Workflow = domain.Workflow

// Phase is a named group of capabilities inside a workflow.
type Phase = domain.Phase

// PhaseSpec declares a phase and its capabilities when building templates.
type PhaseSpec = domain.PhaseSpec

// WorkflowTemplate pairs a phase layout with the agent roles it requires.
type WorkflowTemplate = domain.WorkflowTemplate

// Milestone records a completed capability or a manual annotation.
type Milestone = domain.Milestone

// Summary is the condensed status view returned by GetStatus.
type Summary = domain.Summary

// Analytics aggregates progress across all tracked workflows.
type Analytics = domain.Analytics

// AgentProfile describes one role in the agent catalog.
type AgentProfile = domain.AgentProfile

// AgentStats carries the runtime counters tracked per role.
type AgentStats = domain.AgentStats

// Metric is one sampled or reported measurement.
type Metric = domain.Metric

// Aggregate summarizes a metric series over a window.
type Aggregate = domain.Aggregate

// Threshold holds the warning and critical bounds for a metric.
type Threshold = domain.Threshold

// Alert records a threshold breach and its acknowledgement lifecycle.
type Alert = domain.Alert

// DashboardData is the assembled monitoring snapshot.
type DashboardData = metrics.DashboardData

// Config is the full configuration object accepted by NewWithConfig.
type Config = domain.Config

// StorageBackend selects the persistence adapter.
type StorageBackend = domain.StorageBackend

// WorkflowType identifies a workflow template family.
type WorkflowType = domain.WorkflowType

// CapabilityStatus is the lifecycle state of one capability.
type CapabilityStatus = domain.CapabilityStatus

// AgentRole identifies one of the catalog roles.
type AgentRole = domain.AgentRole

// AlertLevel is the severity of a threshold breach.
type AlertLevel = domain.AlertLevel

// AlertStatus is the lifecycle state of an alert.
type AlertStatus = domain.AlertStatus

// Event types for workflow lifecycle monitoring

// WorkflowCreatedEvent is emitted when a workflow is first created.
type WorkflowCreatedEvent = domain.WorkflowCreatedEvent

// ProgressUpdatedEvent is emitted after every capability status change.
type ProgressUpdatedEvent = domain.ProgressUpdatedEvent

// PhaseAdvancedEvent is emitted when a workflow ratchets to the next phase.
type PhaseAdvancedEvent = domain.PhaseAdvancedEvent

// MilestoneAddedEvent is emitted when a milestone lands on the timeline.
type MilestoneAddedEvent = domain.MilestoneAddedEvent

// WorkflowCustomizedEvent is emitted when a workflow's phases are replaced.
type WorkflowCustomizedEvent = domain.WorkflowCustomizedEvent

// MetricRecordedEvent is emitted for every recorded metric.
type MetricRecordedEvent = domain.MetricRecordedEvent

// AlertTriggeredEvent is emitted when a metric crosses a threshold.
type AlertTriggeredEvent = domain.AlertTriggeredEvent

// AlertAcknowledgedEvent is emitted when an active alert is acknowledged.
type AlertAcknowledgedEvent = domain.AlertAcknowledgedEvent

// AlertResolvedEvent is emitted when an alert is resolved.
type AlertResolvedEvent = domain.AlertResolvedEvent

// Storage backend constants
const (
	StorageBadger = domain.StorageBadger
	StorageMemory = domain.StorageMemory
)

// Capability status constants
const (
	CapabilityPending    = domain.CapabilityPending
	CapabilityInProgress = domain.CapabilityInProgress
	CapabilityCompleted  = domain.CapabilityCompleted
	CapabilityBlocked    = domain.CapabilityBlocked
)

// Builtin workflow type constants
const (
	WorkflowTypeDiscovery = domain.WorkflowTypeDiscovery
	WorkflowTypeCommerce  = domain.WorkflowTypeCommerce
	WorkflowTypeContent   = domain.WorkflowTypeContent
	WorkflowTypeHybrid    = domain.WorkflowTypeHybrid
	WorkflowTypeCustom    = domain.WorkflowTypeCustom
)

// Alert severity and lifecycle constants
const (
	AlertLevelWarning  = domain.AlertLevelWarning
	AlertLevelCritical = domain.AlertLevelCritical

	AlertStatusActive       = domain.AlertStatusActive
	AlertStatusAcknowledged = domain.AlertStatusAcknowledged
	AlertStatusResolved     = domain.AlertStatusResolved
)

// Agent role constants
const (
	RoleCoordinator           = domain.RoleCoordinator
	RoleProductManager        = domain.RoleProductManager
	RoleMarketResearcher      = domain.RoleMarketResearcher
	RoleUXDesigner            = domain.RoleUXDesigner
	RoleBackendDeveloper      = domain.RoleBackendDeveloper
	RoleFrontendDeveloper     = domain.RoleFrontendDeveloper
	RoleIntegrationSpecialist = domain.RoleIntegrationSpecialist
	RoleQAEngineer            = domain.RoleQAEngineer
	RoleDevOpsEngineer        = domain.RoleDevOpsEngineer
	RoleContentStrategist     = domain.RoleContentStrategist
	RoleCommerceSpecialist    = domain.RoleCommerceSpecialist
	RoleDataAnalyst           = domain.RoleDataAnalyst
)

// New creates a manager with default configuration backed by badger storage
// under dataDir. A nil logger discards log output.
func New(dataDir string, logger *slog.Logger) (*Manager, error) {
	return core.NewManager(domain.NewConfigFromSimple(dataDir, logger))
}

// NewWithConfig creates a manager from a full configuration object.
//
// Example:
//
//	config := flashfusion.DefaultConfig()
//	config.Logger = logger
//	config.DataDir = "./data"
//	config.WithThreshold("response_time", 500, 2000)
//	manager, err := flashfusion.NewWithConfig(config)
func NewWithConfig(config *Config) (*Manager, error) {
	return core.NewManager(config)
}

// DefaultConfig returns the baseline configuration used by New.
func DefaultConfig() *Config {
	return domain.DefaultConfig()
}

// LoadConfig reads a YAML configuration file and fills unset fields from
// DefaultConfig.
func LoadConfig(path string, logger *slog.Logger) (*Config, error) {
	return domain.LoadConfig(path, logger)
}

// BuiltinTemplates returns the workflow templates registered out of the box.
func BuiltinTemplates() map[string]WorkflowTemplate {
	return domain.BuiltinTemplates()
}

// DefaultCatalog returns the builtin agent role catalog.
func DefaultCatalog() []AgentProfile {
	return registry.DefaultCatalog()
}

// IsNotFound reports whether err indicates a missing workflow, alert or
// shared-data slot.
func IsNotFound(err error) bool { return domain.IsNotFound(err) }

// IsUnknownType reports whether err indicates an unregistered workflow type.
func IsUnknownType(err error) bool { return domain.IsUnknownType(err) }

// IsAlreadyExists reports whether err came from an exclusive create against
// an existing workflow.
func IsAlreadyExists(err error) bool { return domain.IsAlreadyExists(err) }

// IsInvalidTransition reports whether err came from an illegal alert state
// change.
func IsInvalidTransition(err error) bool { return domain.IsInvalidTransition(err) }

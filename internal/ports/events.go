package ports

import "github.com/flashfusion/core/internal/domain"

// EventManager fans lifecycle events out to subscribed handlers. Handlers
// run on their own goroutines; a panicking handler never takes the emitter
// down.
type EventManager interface {
	OnWorkflowCreated(handler func(*domain.WorkflowCreatedEvent)) error
	OnProgressUpdated(handler func(*domain.ProgressUpdatedEvent)) error
	OnPhaseAdvanced(handler func(*domain.PhaseAdvancedEvent)) error
	OnMilestoneAdded(handler func(*domain.MilestoneAddedEvent)) error
	OnWorkflowCustomized(handler func(*domain.WorkflowCustomizedEvent)) error
	OnMetricRecorded(handler func(*domain.MetricRecordedEvent)) error
	OnAlertTriggered(handler func(*domain.AlertTriggeredEvent)) error
	OnAlertAcknowledged(handler func(*domain.AlertAcknowledgedEvent)) error
	OnAlertResolved(handler func(*domain.AlertResolvedEvent)) error

	Subscribe(pattern string, handler func(event string, payload interface{})) error
	Unsubscribe(pattern string) error

	EmitWorkflowCreated(event *domain.WorkflowCreatedEvent)
	EmitProgressUpdated(event *domain.ProgressUpdatedEvent)
	EmitPhaseAdvanced(event *domain.PhaseAdvancedEvent)
	EmitMilestoneAdded(event *domain.MilestoneAddedEvent)
	EmitWorkflowCustomized(event *domain.WorkflowCustomizedEvent)
	EmitMetricRecorded(event *domain.MetricRecordedEvent)
	EmitAlertTriggered(event *domain.AlertTriggeredEvent)
	EmitAlertAcknowledged(event *domain.AlertAcknowledgedEvent)
	EmitAlertResolved(event *domain.AlertResolvedEvent)
}

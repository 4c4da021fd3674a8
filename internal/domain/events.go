package domain

import "time"

// Event names form the contract consumed by dashboards and loggers.
const (
	EventWorkflowCreated    = "workflow:created"
	EventProgressUpdated    = "progress:updated"
	EventPhaseAdvanced      = "phase:advanced"
	EventMilestoneAdded     = "milestone:added"
	EventWorkflowCustomized = "workflow:customized"
	EventMetricRecorded     = "metric:recorded"
	EventAlertTriggered     = "alert:triggered"
	EventAlertAcknowledged  = "alert:acknowledged"
	EventAlertResolved      = "alert:resolved"
)

type WorkflowCreatedEvent struct {
	ProjectID string       `json:"project_id"`
	Type      WorkflowType `json:"type"`
	Phases    []string     `json:"phases"`
	CreatedAt time.Time    `json:"created_at"`
}

type ProgressUpdatedEvent struct {
	ProjectID  string           `json:"project_id"`
	Capability string           `json:"capability"`
	Status     CapabilityStatus `json:"status"`
	Phase      string           `json:"phase"`
	Overall    int              `json:"overall"`
	ByPhase    map[string]int   `json:"by_phase"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

type PhaseAdvancedEvent struct {
	ProjectID  string    `json:"project_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	AdvancedAt time.Time `json:"advanced_at"`
}

type MilestoneAddedEvent struct {
	ProjectID string    `json:"project_id"`
	Milestone Milestone `json:"milestone"`
}

type WorkflowCustomizedEvent struct {
	ProjectID    string    `json:"project_id"`
	Phases       []string  `json:"phases"`
	CustomizedAt time.Time `json:"customized_at"`
}

type MetricRecordedEvent struct {
	Metric Metric `json:"metric"`
}

type AlertTriggeredEvent struct {
	Alert Alert `json:"alert"`
}

type AlertAcknowledgedEvent struct {
	AlertID        string    `json:"alert_id"`
	AcknowledgedAt time.Time `json:"acknowledged_at"`
}

type AlertResolvedEvent struct {
	AlertID    string    `json:"alert_id"`
	ResolvedAt time.Time `json:"resolved_at"`
}

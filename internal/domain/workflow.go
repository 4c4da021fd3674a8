package domain

import (
	"math"
	"time"
)

type WorkflowType string

const (
	WorkflowTypeDiscovery WorkflowType = "discovery"
	WorkflowTypeCommerce  WorkflowType = "commerce"
	WorkflowTypeContent   WorkflowType = "content"
	WorkflowTypeHybrid    WorkflowType = "hybrid"
	WorkflowTypeCustom    WorkflowType = "custom"
)

type CapabilityStatus string

const (
	CapabilityPending    CapabilityStatus = "pending"
	CapabilityInProgress CapabilityStatus = "in_progress"
	CapabilityCompleted  CapabilityStatus = "completed"
	CapabilityBlocked    CapabilityStatus = "blocked"
)

func (s CapabilityStatus) Valid() bool {
	switch s {
	case CapabilityPending, CapabilityInProgress, CapabilityCompleted, CapabilityBlocked:
		return true
	}
	return false
}

type Phase struct {
	Name         string                      `json:"name"`
	Capabilities map[string]CapabilityStatus `json:"capabilities"`
}

type Progress struct {
	ByPhase map[string]int `json:"by_phase"`
	Overall int            `json:"overall"`
}

type Milestone struct {
	Capability  string     `json:"capability"`
	Phase       string     `json:"phase"`
	CompletedAt time.Time  `json:"completed_at"`
	CompletedBy *AgentRole `json:"completed_by,omitempty"`
}

type Timeline struct {
	Started    time.Time   `json:"started"`
	Milestones []Milestone `json:"milestones"`
}

type Workflow struct {
	ID           string                 `json:"id"`
	Type         WorkflowType           `json:"type"`
	CurrentPhase string                 `json:"current_phase"`
	Phases       []Phase                `json:"phases"`
	Progress     Progress               `json:"progress"`
	Timeline     Timeline               `json:"timeline"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

func NewWorkflow(id string, wtype WorkflowType, phases []PhaseSpec, now time.Time) *Workflow {
	built := make([]Phase, 0, len(phases))
	for _, spec := range phases {
		caps := make(map[string]CapabilityStatus, len(spec.Capabilities))
		for _, c := range spec.Capabilities {
			caps[c] = CapabilityPending
		}
		built = append(built, Phase{Name: spec.Name, Capabilities: caps})
	}

	w := &Workflow{
		ID:        id,
		Type:      wtype,
		Phases:    built,
		Timeline:  Timeline{Started: now},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(built) > 0 {
		w.CurrentPhase = built[0].Name
	}
	w.Recompute()
	return w
}

func (w *Workflow) PhaseIndex(name string) int {
	for i, p := range w.Phases {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func (w *Workflow) Phase(name string) *Phase {
	if i := w.PhaseIndex(name); i >= 0 {
		return &w.Phases[i]
	}
	return nil
}

// Recompute rebuilds the derived progress figures from the capability maps.
// Overall is always round(100 * completed / total); it is never cached.
func (w *Workflow) Recompute() {
	byPhase := make(map[string]int, len(w.Phases))
	total, completed := 0, 0

	for _, p := range w.Phases {
		phaseTotal, phaseCompleted := 0, 0
		for _, status := range p.Capabilities {
			phaseTotal++
			if status == CapabilityCompleted {
				phaseCompleted++
			}
		}
		total += phaseTotal
		completed += phaseCompleted
		byPhase[p.Name] = Percent(phaseCompleted, phaseTotal)
	}

	w.Progress = Progress{ByPhase: byPhase, Overall: Percent(completed, total)}
}

func (w *Workflow) Clone() *Workflow {
	clone := *w

	clone.Phases = make([]Phase, len(w.Phases))
	for i, p := range w.Phases {
		caps := make(map[string]CapabilityStatus, len(p.Capabilities))
		for k, v := range p.Capabilities {
			caps[k] = v
		}
		clone.Phases[i] = Phase{Name: p.Name, Capabilities: caps}
	}

	clone.Progress.ByPhase = make(map[string]int, len(w.Progress.ByPhase))
	for k, v := range w.Progress.ByPhase {
		clone.Progress.ByPhase[k] = v
	}

	clone.Timeline.Milestones = append([]Milestone(nil), w.Timeline.Milestones...)

	if w.Metadata != nil {
		clone.Metadata = make(map[string]interface{}, len(w.Metadata))
		for k, v := range w.Metadata {
			clone.Metadata[k] = v
		}
	}

	return &clone
}

func Percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// StatusLabel maps overall progress onto a coarse display band. The bands
// are not template-aware; a workflow with unevenly weighted phases can
// carry a label that lags its actual phase.
func StatusLabel(overall int) string {
	switch {
	case overall == 0:
		return "not_started"
	case overall < 25:
		return "planning"
	case overall < 50:
		return "development"
	case overall < 75:
		return "testing"
	case overall < 100:
		return "deployment"
	default:
		return "completed"
	}
}

type Summary struct {
	ProjectID        string         `json:"project_id"`
	CurrentPhase     string         `json:"current_phase"`
	Overall          int            `json:"overall"`
	ByPhase          map[string]int `json:"by_phase"`
	RecentMilestones []Milestone    `json:"recent_milestones"`
	Elapsed          time.Duration  `json:"elapsed"`
	Status           string         `json:"status"`
}

type Analytics struct {
	TotalWorkflows     int            `json:"total_workflows"`
	PhaseDistribution  map[string]int `json:"phase_distribution"`
	AvgOverall         float64        `json:"avg_overall"`
	AvgPhaseCompletion float64        `json:"avg_phase_completion"`
	UpdatedLast24h     int            `json:"updated_last_24h"`
}

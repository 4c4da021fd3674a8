package domain

import (
	"fmt"
	"time"
)

type AgentRole string

const (
	RoleCoordinator           AgentRole = "coordinator"
	RoleProductManager        AgentRole = "product_manager"
	RoleMarketResearcher      AgentRole = "market_researcher"
	RoleUXDesigner            AgentRole = "ux_designer"
	RoleBackendDeveloper      AgentRole = "backend_developer"
	RoleFrontendDeveloper     AgentRole = "frontend_developer"
	RoleIntegrationSpecialist AgentRole = "integration_specialist"
	RoleQAEngineer            AgentRole = "qa_engineer"
	RoleDevOpsEngineer        AgentRole = "devops_engineer"
	RoleContentStrategist     AgentRole = "content_strategist"
	RoleCommerceSpecialist    AgentRole = "commerce_specialist"
	RoleDataAnalyst           AgentRole = "data_analyst"
)

type CommunicationStyle struct {
	Tone      string `json:"tone"`
	Verbosity string `json:"verbosity"`
}

// AgentProfile is an immutable catalog entry describing a role's
// capabilities and behavioral profile. Runtime state lives in the registry,
// layered on top of the shared profile.
type AgentProfile struct {
	Role               AgentRole          `json:"role"`
	Name               string             `json:"name"`
	Capabilities       []string           `json:"capabilities"`
	CommunicationStyle CommunicationStyle `json:"communication_style"`
	DecisionBias       string             `json:"decision_bias"`
	StressResponses    []string           `json:"stress_responses"`
	CollaborationStyle string             `json:"collaboration_style"`
}

func (p AgentProfile) HasCapability(capability string) bool {
	for _, c := range p.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// StatusLine derives a short mood/status string from the profile and the
// agent's current load. Under heavy load the first stress response leaks
// into the line.
func (p AgentProfile) StatusLine(activeWorkflows int) string {
	switch {
	case activeWorkflows == 0:
		return fmt.Sprintf("%s (%s): idle, awaiting assignment", p.Name, p.Role)
	case activeWorkflows <= 2:
		return fmt.Sprintf("%s (%s): working %s on %d workflow(s)", p.Name, p.Role, p.CommunicationStyle.Tone, activeWorkflows)
	default:
		stress := "under pressure"
		if len(p.StressResponses) > 0 {
			stress = p.StressResponses[0]
		}
		return fmt.Sprintf("%s (%s): stretched across %d workflows, %s", p.Name, p.Role, activeWorkflows, stress)
	}
}

type AgentStats struct {
	Role            AgentRole     `json:"role"`
	ActiveWorkflows []string      `json:"active_workflows"`
	TasksCompleted  int64         `json:"tasks_completed"`
	SuccessRate     float64       `json:"success_rate"`
	AverageLatency  time.Duration `json:"average_latency"`
}

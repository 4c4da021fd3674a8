package domain

type PhaseSpec struct {
	Name         string   `json:"name" yaml:"name"`
	Capabilities []string `json:"capabilities" yaml:"capabilities"`
}

type WorkflowTemplate struct {
	Type          WorkflowType `json:"type" yaml:"type"`
	Phases        []PhaseSpec  `json:"phases" yaml:"phases"`
	RequiredRoles []AgentRole  `json:"required_roles" yaml:"required_roles"`
}

// DefaultPhaseTemplate is the six-phase template applied when a workflow is
// created without an explicit template.
func DefaultPhaseTemplate() []PhaseSpec {
	return []PhaseSpec{
		{Name: "discovery", Capabilities: []string{"market_research", "competitor_analysis", "strategy"}},
		{Name: "design", Capabilities: []string{"wireframes", "brand_identity", "user_flows"}},
		{Name: "development", Capabilities: []string{"api_development", "frontend_build", "integrations"}},
		{Name: "testing", Capabilities: []string{"unit_tests", "qa_review", "performance_audit"}},
		{Name: "deployment", Capabilities: []string{"infrastructure", "release_pipeline"}},
		{Name: "launch", Capabilities: []string{"go_live", "post_launch_review"}},
	}
}

func BuiltinTemplates() map[string]WorkflowTemplate {
	return map[string]WorkflowTemplate{
		"discovery": {
			Type: WorkflowTypeDiscovery,
			Phases: []PhaseSpec{
				{Name: "discovery", Capabilities: []string{"market_research", "competitor_analysis", "strategy"}},
				{Name: "validation", Capabilities: []string{"user_interviews", "mvp_scope", "feasibility_review"}},
				{Name: "handoff", Capabilities: []string{"opportunity_report", "roadmap_draft"}},
			},
			RequiredRoles: []AgentRole{
				RoleCoordinator, RoleMarketResearcher, RoleProductManager, RoleDataAnalyst,
			},
		},
		"commerce": {
			Type: WorkflowTypeCommerce,
			Phases: []PhaseSpec{
				{Name: "discovery", Capabilities: []string{"market_research", "product_sourcing"}},
				{Name: "design", Capabilities: []string{"storefront_design", "brand_identity"}},
				{Name: "development", Capabilities: []string{"catalog_setup", "payment_integration", "fulfillment_integration"}},
				{Name: "testing", Capabilities: []string{"checkout_qa", "load_testing"}},
				{Name: "launch", Capabilities: []string{"go_live", "post_launch_review"}},
			},
			RequiredRoles: []AgentRole{
				RoleCoordinator, RoleCommerceSpecialist, RoleUXDesigner,
				RoleBackendDeveloper, RoleIntegrationSpecialist, RoleQAEngineer,
			},
		},
		"content": {
			Type: WorkflowTypeContent,
			Phases: []PhaseSpec{
				{Name: "discovery", Capabilities: []string{"audience_research", "topic_planning"}},
				{Name: "production", Capabilities: []string{"editorial_calendar", "content_drafting", "asset_creation"}},
				{Name: "review", Capabilities: []string{"editorial_review", "compliance_check"}},
				{Name: "publishing", Capabilities: []string{"publish_schedule", "distribution", "performance_tracking"}},
			},
			RequiredRoles: []AgentRole{
				RoleCoordinator, RoleContentStrategist, RoleUXDesigner, RoleDataAnalyst,
			},
		},
		"hybrid": {
			Type:   WorkflowTypeHybrid,
			Phases: DefaultPhaseTemplate(),
			RequiredRoles: []AgentRole{
				RoleCoordinator, RoleProductManager, RoleMarketResearcher, RoleUXDesigner,
				RoleBackendDeveloper, RoleFrontendDeveloper, RoleIntegrationSpecialist,
				RoleQAEngineer, RoleDevOpsEngineer,
			},
		},
		"custom": {
			Type:          WorkflowTypeCustom,
			Phases:        DefaultPhaseTemplate(),
			RequiredRoles: []AgentRole{RoleCoordinator},
		},
	}
}

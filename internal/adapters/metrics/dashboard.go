package metrics

import (
	"time"

	"github.com/flashfusion/core/internal/domain"
)

type GroupStats struct {
	Duration domain.Aggregate `json:"duration"`
	Errors   int              `json:"errors"`
}

type SystemStats struct {
	Memory        domain.Aggregate `json:"memory"`
	Goroutines    domain.Aggregate `json:"goroutines"`
	LoopLag       domain.Aggregate `json:"loop_lag"`
	ResponseTime  domain.Aggregate `json:"response_time"`
	UptimeSeconds float64          `json:"uptime_seconds"`
}

// DashboardData is the single aggregation surface external dashboards
// consume: fixed-window aggregates per group plus the alert picture.
type DashboardData struct {
	System       SystemStats    `json:"system"`
	Agents       GroupStats     `json:"agents"`
	Handoffs     GroupStats     `json:"handoffs"`
	AIService    GroupStats     `json:"ai_service"`
	ActiveAlerts []domain.Alert `json:"active_alerts"`
	RecentAlerts []domain.Alert `json:"recent_alerts"`
	GeneratedAt  time.Time      `json:"generated_at"`
}

func (c *Collector) GetDashboardData(window time.Duration) DashboardData {
	uptime := c.GetAggregated("uptime_seconds", window)

	return DashboardData{
		System: SystemStats{
			Memory:        c.GetAggregated("memory_usage", window),
			Goroutines:    c.GetAggregated("goroutines", window),
			LoopLag:       c.GetAggregated("loop_lag_ms", window),
			ResponseTime:  c.GetAggregated("response_time", window),
			UptimeSeconds: uptime.Latest,
		},
		Agents: GroupStats{
			Duration: c.GetAggregated("agent_task_duration", window),
			Errors:   c.GetAggregated("agent_error", window).Count,
		},
		Handoffs: GroupStats{
			Duration: c.GetAggregated("handoff_duration", window),
			Errors:   c.GetAggregated("handoff_timeout", window).Count,
		},
		AIService: GroupStats{
			Duration: c.GetAggregated("ai_service_latency", window),
			Errors:   c.GetAggregated("ai_service_failure", window).Count,
		},
		ActiveAlerts: c.alerts.Active(),
		RecentAlerts: c.alerts.Recent(10),
		GeneratedAt:  time.Now(),
	}
}

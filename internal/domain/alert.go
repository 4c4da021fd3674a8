package domain

import "time"

type AlertLevel string

const (
	AlertLevelWarning  AlertLevel = "warning"
	AlertLevelCritical AlertLevel = "critical"
)

type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "active"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	AlertStatusResolved     AlertStatus = "resolved"
)

type Alert struct {
	ID        string            `json:"id"`
	Metric    string            `json:"metric"`
	Value     float64           `json:"value"`
	Threshold float64           `json:"threshold"`
	Level     AlertLevel        `json:"level"`
	Status    AlertStatus       `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

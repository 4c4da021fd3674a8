package metrics

import (
	"log/slog"
	"sync"
	"time"

	"github.com/flashfusion/core/internal/domain"
	"github.com/flashfusion/core/internal/ports"
	"github.com/google/uuid"
)

// AlertManager tracks the alert lifecycle. Repeated threshold breaches for
// the same metric append new alert records while an earlier one is still
// active; the full breach history is kept as an audit trail.
type AlertManager struct {
	logger *slog.Logger
	events ports.EventManager

	mu     sync.Mutex
	alerts []*domain.Alert
	byID   map[string]*domain.Alert
}

func NewAlertManager(events ports.EventManager, logger *slog.Logger) *AlertManager {
	if logger == nil {
		logger = slog.Default()
	}

	return &AlertManager{
		logger: logger.With("component", "alert-manager"),
		events: events,
		byID:   make(map[string]*domain.Alert),
	}
}

func (a *AlertManager) Trigger(metric string, value, threshold float64, level domain.AlertLevel, metadata map[string]string) domain.Alert {
	alert := &domain.Alert{
		ID:        uuid.New().String(),
		Metric:    metric,
		Value:     value,
		Threshold: threshold,
		Level:     level,
		Status:    domain.AlertStatusActive,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}

	a.mu.Lock()
	a.alerts = append(a.alerts, alert)
	a.byID[alert.ID] = alert
	a.mu.Unlock()

	a.logger.Warn("alert triggered",
		"metric", metric,
		"value", value,
		"threshold", threshold,
		"level", level)

	if a.events != nil {
		a.events.EmitAlertTriggered(&domain.AlertTriggeredEvent{Alert: *alert})
	}
	return *alert
}

func (a *AlertManager) Acknowledge(id string) error {
	a.mu.Lock()
	alert, ok := a.byID[id]
	if !ok {
		a.mu.Unlock()
		return domain.ErrNotFound
	}
	if alert.Status != domain.AlertStatusActive {
		a.mu.Unlock()
		return domain.ErrInvalidTransition
	}
	alert.Status = domain.AlertStatusAcknowledged
	a.mu.Unlock()

	if a.events != nil {
		a.events.EmitAlertAcknowledged(&domain.AlertAcknowledgedEvent{
			AlertID:        id,
			AcknowledgedAt: time.Now(),
		})
	}
	return nil
}

func (a *AlertManager) Resolve(id string) error {
	a.mu.Lock()
	alert, ok := a.byID[id]
	if !ok {
		a.mu.Unlock()
		return domain.ErrNotFound
	}
	if alert.Status == domain.AlertStatusResolved {
		a.mu.Unlock()
		return domain.ErrInvalidTransition
	}
	alert.Status = domain.AlertStatusResolved
	a.mu.Unlock()

	if a.events != nil {
		a.events.EmitAlertResolved(&domain.AlertResolvedEvent{
			AlertID:    id,
			ResolvedAt: time.Now(),
		})
	}
	return nil
}

func (a *AlertManager) Get(id string) (domain.Alert, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	alert, ok := a.byID[id]
	if !ok {
		return domain.Alert{}, false
	}
	return *alert, true
}

func (a *AlertManager) Active() []domain.Alert {
	a.mu.Lock()
	defer a.mu.Unlock()

	var active []domain.Alert
	for _, alert := range a.alerts {
		if alert.Status == domain.AlertStatusActive {
			active = append(active, *alert)
		}
	}
	return active
}

func (a *AlertManager) Recent(n int) []domain.Alert {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n > len(a.alerts) {
		n = len(a.alerts)
	}

	recent := make([]domain.Alert, 0, n)
	for _, alert := range a.alerts[len(a.alerts)-n:] {
		recent = append(recent, *alert)
	}
	return recent
}

package events

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/flashfusion/core/internal/domain"
	"github.com/google/uuid"
)

type Manager struct {
	logger *slog.Logger

	mu sync.RWMutex

	workflowCreatedHandlers    []func(*domain.WorkflowCreatedEvent)
	progressUpdatedHandlers    []func(*domain.ProgressUpdatedEvent)
	phaseAdvancedHandlers      []func(*domain.PhaseAdvancedEvent)
	milestoneAddedHandlers     []func(*domain.MilestoneAddedEvent)
	workflowCustomizedHandlers []func(*domain.WorkflowCustomizedEvent)
	metricRecordedHandlers     []func(*domain.MetricRecordedEvent)
	alertTriggeredHandlers     []func(*domain.AlertTriggeredEvent)
	alertAcknowledgedHandlers  []func(*domain.AlertAcknowledgedEvent)
	alertResolvedHandlers      []func(*domain.AlertResolvedEvent)

	genericHandlers []genericSubscription
}

type genericSubscription struct {
	id      string
	pattern string
	handler func(string, interface{})
}

func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		logger: logger.With("component", "event-manager"),
	}
}

func (m *Manager) OnWorkflowCreated(handler func(*domain.WorkflowCreatedEvent)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workflowCreatedHandlers = append(m.workflowCreatedHandlers, handler)
	return nil
}

func (m *Manager) OnProgressUpdated(handler func(*domain.ProgressUpdatedEvent)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progressUpdatedHandlers = append(m.progressUpdatedHandlers, handler)
	return nil
}

func (m *Manager) OnPhaseAdvanced(handler func(*domain.PhaseAdvancedEvent)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phaseAdvancedHandlers = append(m.phaseAdvancedHandlers, handler)
	return nil
}

func (m *Manager) OnMilestoneAdded(handler func(*domain.MilestoneAddedEvent)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.milestoneAddedHandlers = append(m.milestoneAddedHandlers, handler)
	return nil
}

func (m *Manager) OnWorkflowCustomized(handler func(*domain.WorkflowCustomizedEvent)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workflowCustomizedHandlers = append(m.workflowCustomizedHandlers, handler)
	return nil
}

func (m *Manager) OnMetricRecorded(handler func(*domain.MetricRecordedEvent)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metricRecordedHandlers = append(m.metricRecordedHandlers, handler)
	return nil
}

func (m *Manager) OnAlertTriggered(handler func(*domain.AlertTriggeredEvent)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alertTriggeredHandlers = append(m.alertTriggeredHandlers, handler)
	return nil
}

func (m *Manager) OnAlertAcknowledged(handler func(*domain.AlertAcknowledgedEvent)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alertAcknowledgedHandlers = append(m.alertAcknowledgedHandlers, handler)
	return nil
}

func (m *Manager) OnAlertResolved(handler func(*domain.AlertResolvedEvent)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alertResolvedHandlers = append(m.alertResolvedHandlers, handler)
	return nil
}

func (m *Manager) Subscribe(pattern string, handler func(string, interface{})) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.genericHandlers = append(m.genericHandlers, genericSubscription{
		id:      uuid.New().String(),
		pattern: pattern,
		handler: handler,
	})
	return nil
}

func (m *Manager) Unsubscribe(pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var filtered []genericSubscription
	for _, sub := range m.genericHandlers {
		if sub.pattern != pattern {
			filtered = append(filtered, sub)
		}
	}
	m.genericHandlers = filtered
	return nil
}

func (m *Manager) EmitWorkflowCreated(event *domain.WorkflowCreatedEvent) {
	m.mu.RLock()
	handlers := make([]func(*domain.WorkflowCreatedEvent), len(m.workflowCreatedHandlers))
	copy(handlers, m.workflowCreatedHandlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		handler := handler
		go m.safeCall(func() { handler(event) })
	}
	m.notifyGenericHandlers(domain.EventWorkflowCreated, event)
}

func (m *Manager) EmitProgressUpdated(event *domain.ProgressUpdatedEvent) {
	m.mu.RLock()
	handlers := make([]func(*domain.ProgressUpdatedEvent), len(m.progressUpdatedHandlers))
	copy(handlers, m.progressUpdatedHandlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		handler := handler
		go m.safeCall(func() { handler(event) })
	}
	m.notifyGenericHandlers(domain.EventProgressUpdated, event)
}

func (m *Manager) EmitPhaseAdvanced(event *domain.PhaseAdvancedEvent) {
	m.mu.RLock()
	handlers := make([]func(*domain.PhaseAdvancedEvent), len(m.phaseAdvancedHandlers))
	copy(handlers, m.phaseAdvancedHandlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		handler := handler
		go m.safeCall(func() { handler(event) })
	}
	m.notifyGenericHandlers(domain.EventPhaseAdvanced, event)
}

func (m *Manager) EmitMilestoneAdded(event *domain.MilestoneAddedEvent) {
	m.mu.RLock()
	handlers := make([]func(*domain.MilestoneAddedEvent), len(m.milestoneAddedHandlers))
	copy(handlers, m.milestoneAddedHandlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		handler := handler
		go m.safeCall(func() { handler(event) })
	}
	m.notifyGenericHandlers(domain.EventMilestoneAdded, event)
}

func (m *Manager) EmitWorkflowCustomized(event *domain.WorkflowCustomizedEvent) {
	m.mu.RLock()
	handlers := make([]func(*domain.WorkflowCustomizedEvent), len(m.workflowCustomizedHandlers))
	copy(handlers, m.workflowCustomizedHandlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		handler := handler
		go m.safeCall(func() { handler(event) })
	}
	m.notifyGenericHandlers(domain.EventWorkflowCustomized, event)
}

func (m *Manager) EmitMetricRecorded(event *domain.MetricRecordedEvent) {
	m.mu.RLock()
	handlers := make([]func(*domain.MetricRecordedEvent), len(m.metricRecordedHandlers))
	copy(handlers, m.metricRecordedHandlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		handler := handler
		go m.safeCall(func() { handler(event) })
	}
	m.notifyGenericHandlers(domain.EventMetricRecorded, event)
}

func (m *Manager) EmitAlertTriggered(event *domain.AlertTriggeredEvent) {
	m.mu.RLock()
	handlers := make([]func(*domain.AlertTriggeredEvent), len(m.alertTriggeredHandlers))
	copy(handlers, m.alertTriggeredHandlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		handler := handler
		go m.safeCall(func() { handler(event) })
	}
	m.notifyGenericHandlers(domain.EventAlertTriggered, event)
}

func (m *Manager) EmitAlertAcknowledged(event *domain.AlertAcknowledgedEvent) {
	m.mu.RLock()
	handlers := make([]func(*domain.AlertAcknowledgedEvent), len(m.alertAcknowledgedHandlers))
	copy(handlers, m.alertAcknowledgedHandlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		handler := handler
		go m.safeCall(func() { handler(event) })
	}
	m.notifyGenericHandlers(domain.EventAlertAcknowledged, event)
}

func (m *Manager) EmitAlertResolved(event *domain.AlertResolvedEvent) {
	m.mu.RLock()
	handlers := make([]func(*domain.AlertResolvedEvent), len(m.alertResolvedHandlers))
	copy(handlers, m.alertResolvedHandlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		handler := handler
		go m.safeCall(func() { handler(event) })
	}
	m.notifyGenericHandlers(domain.EventAlertResolved, event)
}

func (m *Manager) notifyGenericHandlers(event string, payload interface{}) {
	m.mu.RLock()
	var matching []func(string, interface{})
	for _, sub := range m.genericHandlers {
		if m.patternMatches(sub.pattern, event) {
			matching = append(matching, sub.handler)
		}
	}
	m.mu.RUnlock()

	for _, handler := range matching {
		handler := handler
		go m.safeCall(func() { handler(event, payload) })
	}
}

func (m *Manager) patternMatches(pattern, event string) bool {
	if pattern == "*" {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		prefix := strings.TrimSuffix(pattern, "*")
		return strings.HasPrefix(event, prefix)
	}
	return pattern == event
}

func (m *Manager) safeCall(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("event handler panicked", "panic", r)
		}
	}()
	fn()
}

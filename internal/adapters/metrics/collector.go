package metrics

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/flashfusion/core/internal/domain"
	"github.com/flashfusion/core/internal/ports"
)

const metricLogDayFormat = "2006-01-02"

// Collector keeps a bounded rolling buffer of observations, evaluates each
// one against configured thresholds, and forwards the critical subset to
// the durable per-day log. Persistence happens on a dedicated writer
// goroutine so Record never blocks on I/O.
type Collector struct {
	logger *slog.Logger
	events ports.EventManager
	log    ports.MetricLog
	alerts *AlertManager

	bufferSize int
	thresholds map[string]domain.Threshold
	critical   map[string]struct{}

	mu     sync.Mutex
	buffer []domain.Metric

	runMu     sync.Mutex
	running   bool
	cancel    context.CancelFunc
	done      chan struct{}
	persistCh chan domain.Metric
}

func NewCollector(config domain.MetricsConfig, log ports.MetricLog, alerts *AlertManager, events ports.EventManager, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}

	critical := make(map[string]struct{}, len(config.CriticalMetrics))
	for _, name := range config.CriticalMetrics {
		critical[name] = struct{}{}
	}

	queueSize := config.LogQueueSize
	if queueSize <= 0 {
		queueSize = 256
	}

	return &Collector{
		logger:     logger.With("component", "metrics-collector"),
		events:     events,
		log:        log,
		alerts:     alerts,
		bufferSize: config.BufferSize,
		thresholds: config.Thresholds,
		critical:   critical,
		persistCh:  make(chan domain.Metric, queueSize),
	}
}

func (c *Collector) Start(ctx context.Context) error {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	if c.running {
		return domain.ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	c.running = true

	go c.writeLoop(ctx)

	c.logger.Debug("metrics collector started")
	return nil
}

func (c *Collector) Stop() error {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	if !c.running {
		return domain.ErrNotStarted
	}

	c.cancel()
	<-c.done
	c.running = false

	c.logger.Debug("metrics collector stopped")
	return nil
}

func (c *Collector) writeLoop(ctx context.Context) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return
		case metric := <-c.persistCh:
			day := metric.Timestamp.UTC().Format(metricLogDayFormat)
			if err := c.log.AppendMetric(context.Background(), day, metric); err != nil {
				c.logger.Warn("failed to persist metric", "metric", metric.Name, "error", err)
			}
		}
	}
}

func (c *Collector) Record(name string, value float64, metadata map[string]string) {
	metric := domain.Metric{
		Name:      name,
		Value:     value,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}

	c.mu.Lock()
	c.buffer = append(c.buffer, metric)
	if len(c.buffer) > c.bufferSize {
		c.buffer = c.buffer[len(c.buffer)-c.bufferSize:]
	}
	c.mu.Unlock()

	c.checkThresholds(name, value, metadata)

	if _, ok := c.critical[name]; ok {
		select {
		case c.persistCh <- metric:
		default:
			c.logger.Warn("metric log queue full, dropping entry", "metric", name)
		}
	}

	if c.events != nil {
		c.events.EmitMetricRecorded(&domain.MetricRecordedEvent{Metric: metric})
	}
}

func (c *Collector) checkThresholds(name string, value float64, metadata map[string]string) {
	threshold, ok := c.thresholds[name]
	if !ok {
		return
	}

	switch {
	case value >= threshold.Critical:
		c.alerts.Trigger(name, value, threshold.Critical, domain.AlertLevelCritical, metadata)
	case value >= threshold.Warning:
		c.alerts.Trigger(name, value, threshold.Warning, domain.AlertLevelWarning, metadata)
	}
}

// GetMetrics returns buffered entries for the named metric within the
// trailing window, oldest first.
func (c *Collector) GetMetrics(name string, window time.Duration) []domain.Metric {
	cutoff := time.Now().Add(-window)

	c.mu.Lock()
	defer c.mu.Unlock()

	var matched []domain.Metric
	for _, m := range c.buffer {
		if m.Name == name && m.Timestamp.After(cutoff) {
			matched = append(matched, m)
		}
	}
	return matched
}

func (c *Collector) GetAggregated(name string, window time.Duration) domain.Aggregate {
	return domain.Aggregated(c.GetMetrics(name, window))
}

func (c *Collector) RecordAgentPerformance(role domain.AgentRole, operation string, duration time.Duration, success bool) {
	metadata := map[string]string{
		"agent":     string(role),
		"operation": operation,
		"success":   strconv.FormatBool(success),
	}

	c.Record("agent_task_duration", float64(duration.Milliseconds()), metadata)
	if !success {
		c.Record("agent_error", 1, metadata)
	}
}

func (c *Collector) RecordHandoffPerformance(from, to domain.AgentRole, duration time.Duration, success bool) {
	metadata := map[string]string{
		"from":    string(from),
		"to":      string(to),
		"success": strconv.FormatBool(success),
	}

	c.Record("handoff_duration", float64(duration.Milliseconds()), metadata)
	if !success {
		c.Record("handoff_timeout", 1, metadata)
	}
}

func (c *Collector) RecordAIServicePerformance(service, operation string, duration time.Duration, success bool) {
	metadata := map[string]string{
		"service":   service,
		"operation": operation,
		"success":   strconv.FormatBool(success),
	}

	c.Record("ai_service_latency", float64(duration.Milliseconds()), metadata)
	if !success {
		c.Record("ai_service_failure", 1, metadata)
	}
}

func (c *Collector) Alerts() *AlertManager {
	return c.alerts
}

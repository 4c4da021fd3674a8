package domain

import (
	"log/slog"
	"time"
)

type StorageBackend string

const (
	StorageBadger StorageBackend = "badger"
	StorageMemory StorageBackend = "memory"
)

type Config struct {
	DataDir string         `json:"data_dir" yaml:"data_dir"`
	Storage StorageBackend `json:"storage" yaml:"storage"`
	Logger  *slog.Logger   `json:"-" yaml:"-"`

	Workflow WorkflowConfig `json:"workflow" yaml:"workflow"`
	Metrics  MetricsConfig  `json:"metrics" yaml:"metrics"`

	// WorkflowTypes registered on top of the builtin templates.
	WorkflowTypes map[string]WorkflowTemplate `json:"workflow_types,omitempty" yaml:"workflow_types,omitempty"`
}

type WorkflowConfig struct {
	// AdvanceThreshold is the completion ratio at which a phase ratchets the
	// workflow forward. Forward-only; see core.WorkflowManager.
	AdvanceThreshold float64 `json:"advance_threshold" yaml:"advance_threshold"`
	RecentMilestones int     `json:"recent_milestones" yaml:"recent_milestones"`
}

type MetricsConfig struct {
	BufferSize      int                  `json:"buffer_size" yaml:"buffer_size"`
	SampleInterval  time.Duration        `json:"sample_interval" yaml:"sample_interval"`
	DashboardWindow time.Duration        `json:"dashboard_window" yaml:"dashboard_window"`
	LogQueueSize    int                  `json:"log_queue_size" yaml:"log_queue_size"`
	Thresholds      map[string]Threshold `json:"thresholds" yaml:"thresholds"`
	CriticalMetrics []string             `json:"critical_metrics" yaml:"critical_metrics"`
}

func (c *Config) Validate() error {
	if c.Logger == nil {
		return NewConfigError("logger", ErrInvalidInput)
	}
	if c.Storage != StorageBadger && c.Storage != StorageMemory {
		return NewConfigError("storage", ErrInvalidInput)
	}
	if c.Storage == StorageBadger && c.DataDir == "" {
		return NewConfigError("data_dir", ErrInvalidInput)
	}
	if c.Workflow.AdvanceThreshold <= 0 || c.Workflow.AdvanceThreshold > 1 {
		return NewConfigError("workflow.advance_threshold", ErrInvalidInput)
	}
	if c.Metrics.BufferSize <= 0 {
		return NewConfigError("metrics.buffer_size", ErrInvalidInput)
	}
	if c.Metrics.SampleInterval <= 0 {
		return NewConfigError("metrics.sample_interval", ErrInvalidInput)
	}
	for name, th := range c.Metrics.Thresholds {
		if th.Warning > th.Critical {
			return NewConfigError("metrics.thresholds."+name, ErrInvalidInput)
		}
	}
	return nil
}

func (c *Config) WithStorage(backend StorageBackend) *Config {
	c.Storage = backend
	return c
}

func (c *Config) WithThreshold(metric string, warning, critical float64) *Config {
	if c.Metrics.Thresholds == nil {
		c.Metrics.Thresholds = make(map[string]Threshold)
	}
	c.Metrics.Thresholds[metric] = Threshold{Warning: warning, Critical: critical}
	return c
}

func (c *Config) WithSampleInterval(interval time.Duration) *Config {
	c.Metrics.SampleInterval = interval
	return c
}

func (c *Config) WithWorkflowType(name string, template WorkflowTemplate) *Config {
	if c.WorkflowTypes == nil {
		c.WorkflowTypes = make(map[string]WorkflowTemplate)
	}
	c.WorkflowTypes[name] = template
	return c
}

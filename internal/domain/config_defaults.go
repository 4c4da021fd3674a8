package domain

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

func DefaultConfig() *Config {
	return &Config{
		Storage:  StorageBadger,
		Workflow: DefaultWorkflowConfig(),
		Metrics:  DefaultMetricsConfig(),
	}
}

func DefaultWorkflowConfig() WorkflowConfig {
	return WorkflowConfig{
		AdvanceThreshold: 0.8,
		RecentMilestones: 5,
	}
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		BufferSize:      1000,
		SampleInterval:  30 * time.Second,
		DashboardWindow: time.Hour,
		LogQueueSize:    256,
		Thresholds: map[string]Threshold{
			"memory_usage":       {Warning: 400 << 20, Critical: 500 << 20},
			"response_time":      {Warning: 1000, Critical: 5000},
			"handoff_duration":   {Warning: 30000, Critical: 60000},
			"ai_service_latency": {Warning: 2000, Critical: 10000},
			"agent_error":        {Warning: 1, Critical: 5},
		},
		CriticalMetrics: []string{
			"agent_error",
			"handoff_timeout",
			"ai_service_failure",
			"system_error",
			"memory_usage",
			"response_time",
		},
	}
}

func NewConfigFromSimple(dataDir string, logger *slog.Logger) *Config {
	config := DefaultConfig()
	config.DataDir = dataDir
	config.Logger = logger

	if logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return config
}

// LoadConfig reads a YAML config file and fills any unset field from the
// defaults.
func LoadConfig(path string, logger *slog.Logger) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError("file", fmt.Errorf("read %s: %w", path, err))
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, NewConfigError("file", fmt.Errorf("parse %s: %w", path, err))
	}

	if err := mergo.Merge(&config, *DefaultConfig()); err != nil {
		return nil, NewConfigError("defaults", err)
	}

	config.Logger = logger
	if logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &config, nil
}

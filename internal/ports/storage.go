package ports

import (
	"context"

	"github.com/flashfusion/core/internal/domain"
)

type WorkflowStore interface {
	SaveWorkflow(ctx context.Context, workflow *domain.Workflow) error
	LoadWorkflow(ctx context.Context, projectID string) (*domain.Workflow, error)
	DeleteWorkflow(ctx context.Context, projectID string) error

	SaveSharedData(ctx context.Context, key string, payload []byte) error
	LoadSharedData(ctx context.Context, key string) ([]byte, error)
	PurgeSharedData(ctx context.Context) error
}

// MetricLog is the durable per-day append log for the critical metric
// subset. Day keys use the YYYY-MM-DD form.
type MetricLog interface {
	AppendMetric(ctx context.Context, day string, metric domain.Metric) error
	ReadMetrics(ctx context.Context, day string) ([]domain.Metric, error)
}

type Store interface {
	WorkflowStore
	MetricLog
	Close() error
}

package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/flashfusion/core/internal/domain"
	"github.com/flashfusion/core/internal/xjson"
)

// Memory mirrors the badger adapter's semantics over plain maps. Values are
// stored marshaled so callers never share memory with the store.
type Memory struct {
	mu        sync.RWMutex
	workflows map[string][]byte
	shared    map[string][]byte
	metrics   map[string][][]byte
}

func NewMemory() *Memory {
	return &Memory{
		workflows: make(map[string][]byte),
		shared:    make(map[string][]byte),
		metrics:   make(map[string][][]byte),
	}
}

func (m *Memory) SaveWorkflow(ctx context.Context, workflow *domain.Workflow) error {
	data, err := xjson.Marshal(workflow)
	if err != nil {
		return domain.NewStorageError("save", workflow.ID, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.workflows[workflow.ID] = data
	return nil
}

func (m *Memory) LoadWorkflow(ctx context.Context, projectID string) (*domain.Workflow, error) {
	m.mu.RLock()
	data, ok := m.workflows[projectID]
	m.mu.RUnlock()

	if !ok {
		return nil, domain.ErrNotFound
	}

	var workflow domain.Workflow
	if err := xjson.Unmarshal(data, &workflow); err != nil {
		return nil, domain.NewStorageError("load", projectID, err)
	}
	return &workflow, nil
}

func (m *Memory) DeleteWorkflow(ctx context.Context, projectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.workflows, projectID)
	return nil
}

func (m *Memory) SaveSharedData(ctx context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shared[key] = append([]byte(nil), payload...)
	return nil
}

func (m *Memory) LoadSharedData(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.shared[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) PurgeSharedData(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shared = make(map[string][]byte)
	return nil
}

func (m *Memory) AppendMetric(ctx context.Context, day string, metric domain.Metric) error {
	data, err := xjson.Marshal(metric)
	if err != nil {
		return domain.NewStorageError("append", fmt.Sprintf("metriclog:%s", day), err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics[day] = append(m.metrics[day], data)
	return nil
}

func (m *Memory) ReadMetrics(ctx context.Context, day string) ([]domain.Metric, error) {
	m.mu.RLock()
	entries := m.metrics[day]
	m.mu.RUnlock()

	metrics := make([]domain.Metric, 0, len(entries))
	for _, data := range entries {
		var metric domain.Metric
		if err := xjson.Unmarshal(data, &metric); err != nil {
			return nil, domain.NewStorageError("read", fmt.Sprintf("metriclog:%s", day), err)
		}
		metrics = append(metrics, metric)
	}
	return metrics, nil
}

func (m *Memory) Close() error {
	return nil
}

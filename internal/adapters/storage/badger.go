package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v3"
	"github.com/flashfusion/core/internal/domain"
	"github.com/flashfusion/core/internal/xjson"
)

const (
	workflowPrefix  = "workflow:"
	sharedPrefix    = "shared:"
	metricLogPrefix = "metriclog:"
	metricSeqKey    = "seq:metriclog"
)

type Badger struct {
	db     *badger.DB
	seq    *badger.Sequence
	logger *slog.Logger
}

func NewBadger(dir string, logger *slog.Logger) (*Badger, error) {
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR)
	return open(opts, logger)
}

// NewBadgerInMemory opens a store that lives entirely in memory. Used by
// tests and by deployments that opt out of durability.
func NewBadgerInMemory(logger *slog.Logger) (*Badger, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR)
	return open(opts, logger)
}

func open(opts badger.Options, logger *slog.Logger) (*Badger, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, domain.NewStorageError("open", opts.Dir, err)
	}

	seq, err := db.GetSequence([]byte(metricSeqKey), 64)
	if err != nil {
		db.Close()
		return nil, domain.NewStorageError("open", metricSeqKey, err)
	}

	return &Badger{
		db:     db,
		seq:    seq,
		logger: logger.With("component", "storage"),
	}, nil
}

func (b *Badger) SaveWorkflow(ctx context.Context, workflow *domain.Workflow) error {
	key := workflowPrefix + workflow.ID

	data, err := xjson.Marshal(workflow)
	if err != nil {
		return domain.NewStorageError("save", key, err)
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return domain.NewStorageError("save", key, err)
	}
	return nil
}

func (b *Badger) LoadWorkflow(ctx context.Context, projectID string) (*domain.Workflow, error) {
	key := workflowPrefix + projectID

	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.NewStorageError("load", key, err)
	}

	var workflow domain.Workflow
	if err := xjson.Unmarshal(data, &workflow); err != nil {
		return nil, domain.NewStorageError("load", key, err)
	}
	return &workflow, nil
}

func (b *Badger) DeleteWorkflow(ctx context.Context, projectID string) error {
	key := workflowPrefix + projectID
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return domain.NewStorageError("delete", key, err)
	}
	return nil
}

func (b *Badger) SaveSharedData(ctx context.Context, key string, payload []byte) error {
	fullKey := sharedPrefix + key
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(fullKey), payload)
	})
	if err != nil {
		return domain.NewStorageError("save", fullKey, err)
	}
	return nil
}

func (b *Badger) LoadSharedData(ctx context.Context, key string) ([]byte, error) {
	fullKey := sharedPrefix + key

	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(fullKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.NewStorageError("load", fullKey, err)
	}
	return data, nil
}

func (b *Badger) PurgeSharedData(ctx context.Context) error {
	var keysToDelete [][]byte

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sharedPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keysToDelete = append(keysToDelete, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return domain.NewStorageError("purge", sharedPrefix, err)
	}

	return b.db.Update(func(txn *badger.Txn) error {
		for _, key := range keysToDelete {
			if err := txn.Delete(key); err != nil {
				return domain.NewStorageError("purge", string(key), err)
			}
		}
		return nil
	})
}

func (b *Badger) AppendMetric(ctx context.Context, day string, metric domain.Metric) error {
	seq, err := b.seq.Next()
	if err != nil {
		return domain.NewStorageError("append", metricLogPrefix+day, err)
	}

	key := fmt.Sprintf("%s%s:%012d", metricLogPrefix, day, seq)
	data, err := xjson.Marshal(metric)
	if err != nil {
		return domain.NewStorageError("append", key, err)
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return domain.NewStorageError("append", key, err)
	}
	return nil
}

func (b *Badger) ReadMetrics(ctx context.Context, day string) ([]domain.Metric, error) {
	var metrics []domain.Metric

	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(metricLogPrefix + day + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			data, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var metric domain.Metric
			if err := xjson.Unmarshal(data, &metric); err != nil {
				b.logger.Warn("skipping corrupt metric log entry", "key", string(it.Item().Key()), "error", err)
				continue
			}
			metrics = append(metrics, metric)
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewStorageError("read", metricLogPrefix+day, err)
	}
	return metrics, nil
}

func (b *Badger) Close() error {
	if err := b.seq.Release(); err != nil {
		b.logger.Warn("failed to release metric sequence", "error", err)
	}
	return b.db.Close()
}

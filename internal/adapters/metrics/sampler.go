package metrics

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/flashfusion/core/internal/domain"
)

// Sampler collects process-level metrics on a fixed interval, independent
// of workflow activity. It records through the same Collector entry point
// as every other caller and therefore never touches persistence directly.
type Sampler struct {
	collector *Collector
	interval  time.Duration
	logger    *slog.Logger

	runMu   sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewSampler(collector *Collector, interval time.Duration, logger *slog.Logger) *Sampler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Sampler{
		collector: collector,
		interval:  interval,
		logger:    logger.With("component", "sampler"),
	}
}

func (s *Sampler) Start(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.running {
		return domain.ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.loop(ctx)

	s.logger.Debug("sampler started", "interval", s.interval)
	return nil
}

func (s *Sampler) Stop() error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if !s.running {
		return domain.ErrNotStarted
	}

	s.cancel()
	<-s.done
	s.running = false
	return nil
}

func (s *Sampler) loop(ctx context.Context) {
	defer close(s.done)

	started := time.Now()
	var lastPauseTotal uint64
	lastTick := time.Now()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)

			s.collector.Record("memory_usage", float64(ms.HeapAlloc), nil)
			s.collector.Record("memory_sys", float64(ms.Sys), nil)
			s.collector.Record("goroutines", float64(runtime.NumGoroutine()), nil)

			pauseDelta := ms.PauseTotalNs - lastPauseTotal
			lastPauseTotal = ms.PauseTotalNs
			s.collector.Record("gc_pause_ns", float64(pauseDelta), nil)

			// Tick lag approximates scheduler delay under load.
			lag := now.Sub(lastTick) - s.interval
			lastTick = now
			if lag < 0 {
				lag = 0
			}
			s.collector.Record("loop_lag_ms", float64(lag.Milliseconds()), nil)

			s.collector.Record("uptime_seconds", time.Since(started).Seconds(), nil)
		}
	}
}

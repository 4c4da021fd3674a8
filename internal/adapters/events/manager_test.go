package events

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashfusion/core/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestManager_TypedDispatch(t *testing.T) {
	manager := NewManager(testLogger())

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	var seen []string

	require.NoError(t, manager.OnPhaseAdvanced(func(event *domain.PhaseAdvancedEvent) {
		mu.Lock()
		seen = append(seen, "first:"+event.To)
		mu.Unlock()
		wg.Done()
	}))
	require.NoError(t, manager.OnPhaseAdvanced(func(event *domain.PhaseAdvancedEvent) {
		mu.Lock()
		seen = append(seen, "second:"+event.To)
		mu.Unlock()
		wg.Done()
	}))

	manager.EmitPhaseAdvanced(&domain.PhaseAdvancedEvent{
		ProjectID: "proj-1",
		From:      "discovery",
		To:        "design",
	})

	waitOrFail(t, &wg)

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"first:design", "second:design"}, seen)
}

func TestManager_PatternMatching(t *testing.T) {
	manager := &Manager{}

	tests := []struct {
		pattern string
		event   string
		matches bool
	}{
		{"*", "anything", true},
		{"workflow:*", "workflow:created", true},
		{"workflow:*", "workflow:customized", true},
		{"workflow:*", "alert:triggered", false},
		{"alert:triggered", "alert:triggered", true},
		{"alert:triggered", "alert:resolved", false},
	}

	for _, tt := range tests {
		result := manager.patternMatches(tt.pattern, tt.event)
		if result != tt.matches {
			t.Errorf("patternMatches(%q, %q) = %v, want %v", tt.pattern, tt.event, result, tt.matches)
		}
	}
}

func TestManager_GenericSubscription(t *testing.T) {
	manager := NewManager(testLogger())

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	var events []string

	require.NoError(t, manager.Subscribe("alert:*", func(event string, payload interface{}) {
		mu.Lock()
		events = append(events, event)
		mu.Unlock()
		wg.Done()
	}))

	manager.EmitAlertTriggered(&domain.AlertTriggeredEvent{Alert: domain.Alert{ID: "a1"}})
	manager.EmitAlertResolved(&domain.AlertResolvedEvent{AlertID: "a1"})
	manager.EmitWorkflowCreated(&domain.WorkflowCreatedEvent{ProjectID: "proj-1"})

	waitOrFail(t, &wg)

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{domain.EventAlertTriggered, domain.EventAlertResolved}, events)
}

func TestManager_Unsubscribe(t *testing.T) {
	manager := NewManager(testLogger())

	fired := make(chan string, 4)
	require.NoError(t, manager.Subscribe("*", func(event string, payload interface{}) {
		fired <- event
	}))
	require.NoError(t, manager.Unsubscribe("*"))

	manager.EmitMetricRecorded(&domain.MetricRecordedEvent{Metric: domain.Metric{Name: "response_time"}})

	select {
	case event := <-fired:
		t.Fatalf("handler fired after unsubscribe: %s", event)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestManager_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	manager := NewManager(testLogger())

	var wg sync.WaitGroup
	wg.Add(1)

	require.NoError(t, manager.OnMilestoneAdded(func(event *domain.MilestoneAddedEvent) {
		panic("handler bug")
	}))
	require.NoError(t, manager.OnMilestoneAdded(func(event *domain.MilestoneAddedEvent) {
		wg.Done()
	}))

	manager.EmitMilestoneAdded(&domain.MilestoneAddedEvent{ProjectID: "proj-1"})

	waitOrFail(t, &wg)
}

func waitOrFail(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for handlers")
	}
}

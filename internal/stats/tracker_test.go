package stats

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/vitrinecms/vitrine/internal/model"
	"github.com/vitrinecms/vitrine/internal/store"
)

func newTestTracker(t *testing.T) (*Tracker, *store.Store) {
	t.Helper()
	st, err := store.New(store.Config{})
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(st, logger, time.Hour), st
}

func TestFlushFoldsCountsIntoStats(t *testing.T) {
	tracker, st := newTestTracker(t)
	ctx := context.Background()

	tracker.Record("home")
	tracker.Record("home")
	tracker.Record("projects")
	tracker.Flush(ctx)

	doc, err := st.GetSingleton(ctx, model.CollectionStats)
	if err != nil {
		t.Fatalf("GetSingleton: %v", err)
	}
	payload := doc.Payload()

	views, ok := payload["views"].(map[string]interface{})
	if !ok {
		t.Fatalf("views = %T, want map", payload["views"])
	}
	if views["home"] != float64(2) {
		t.Errorf("views[home] = %v, want 2", views["home"])
	}
	if views["projects"] != float64(1) {
		t.Errorf("views[projects] = %v, want 1", views["projects"])
	}
	if payload["total_views"] != float64(3) {
		t.Errorf("total_views = %v, want 3", payload["total_views"])
	}
}

func TestFlushAccumulatesAcrossBatches(t *testing.T) {
	tracker, st := newTestTracker(t)
	ctx := context.Background()

	tracker.Record("home")
	tracker.Flush(ctx)
	tracker.Record("home")
	tracker.Flush(ctx)

	doc, err := st.GetSingleton(ctx, model.CollectionStats)
	if err != nil {
		t.Fatalf("GetSingleton: %v", err)
	}
	views := doc.Payload()["views"].(map[string]interface{})
	if views["home"] != float64(2) {
		t.Errorf("views[home] = %v, want 2", views["home"])
	}
}

func TestFlushPreservesOperatorFields(t *testing.T) {
	tracker, st := newTestTracker(t)
	ctx := context.Background()

	if _, err := st.UpsertSingleton(ctx, model.CollectionStats, map[string]interface{}{
		"github_stars": 42,
	}); err != nil {
		t.Fatalf("UpsertSingleton: %v", err)
	}

	tracker.Record("home")
	tracker.Flush(ctx)

	doc, err := st.GetSingleton(ctx, model.CollectionStats)
	if err != nil {
		t.Fatalf("GetSingleton: %v", err)
	}
	payload := doc.Payload()
	if payload["github_stars"] != float64(42) {
		t.Errorf("github_stars = %v, want 42", payload["github_stars"])
	}
	if payload["total_views"] != float64(1) {
		t.Errorf("total_views = %v, want 1", payload["total_views"])
	}
}

func TestRecordIgnoresEmptyPage(t *testing.T) {
	tracker, st := newTestTracker(t)
	ctx := context.Background()

	tracker.Record("")
	tracker.Flush(ctx)

	if _, err := st.GetSingleton(ctx, model.CollectionStats); err == nil {
		t.Error("expected no stats document after empty-page record")
	}
}

func TestRecordConcurrent(t *testing.T) {
	tracker, st := newTestTracker(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tracker.Record("home")
			}
		}()
	}
	wg.Wait()
	tracker.Flush(ctx)

	doc, err := st.GetSingleton(ctx, model.CollectionStats)
	if err != nil {
		t.Fatalf("GetSingleton: %v", err)
	}
	if got := doc.Payload()["total_views"]; got != float64(1000) {
		t.Errorf("total_views = %v, want 1000", got)
	}
}

func TestShutdownFlushesPending(t *testing.T) {
	tracker, st := newTestTracker(t)

	tracker.Start()
	tracker.Record("home")
	tracker.Shutdown()

	doc, err := st.GetSingleton(context.Background(), model.CollectionStats)
	if err != nil {
		t.Fatalf("GetSingleton after shutdown: %v", err)
	}
	if got := doc.Payload()["total_views"]; got != float64(1) {
		t.Errorf("total_views = %v, want 1", got)
	}
}

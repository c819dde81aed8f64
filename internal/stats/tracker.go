// Package stats counts page views in-process and periodically folds the
// counts into the site's stats document. Counting stays off the request
// path: handlers record a view in memory and the background loop does the
// store write.
package stats

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vitrinecms/vitrine/internal/model"
	"github.com/vitrinecms/vitrine/internal/store"
)

// DefaultFlushInterval is how often pending view counts are persisted.
const DefaultFlushInterval = 1 * time.Minute

// Tracker accumulates page-view counts and flushes them into the stats
// document on an interval.
type Tracker struct {
	store    *store.Store
	logger   *slog.Logger
	interval time.Duration

	mu      sync.Mutex
	pending map[string]int64

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Tracker flushing every interval; interval <= 0 means
// DefaultFlushInterval.
func New(st *store.Store, logger *slog.Logger, interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	return &Tracker{
		store:    st,
		logger:   logger,
		interval: interval,
		pending:  map[string]int64{},
	}
}

// Record counts one view of the given page. Safe for concurrent use; never
// blocks on the store.
func (t *Tracker) Record(page string) {
	if page == "" {
		return
	}
	t.mu.Lock()
	t.pending[page]++
	t.mu.Unlock()
}

// Start begins the background flush loop. Non-blocking.
func (t *Tracker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.flush(context.Background())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Shutdown stops the loop and persists any remaining counts.
func (t *Tracker) Shutdown() {
	if t.cancel != nil {
		t.cancel()
	}
	t.wg.Wait()
	t.flush(context.Background())
}

// Flush persists pending counts immediately. Exposed for tests.
func (t *Tracker) Flush(ctx context.Context) {
	t.flush(ctx)
}

func (t *Tracker) flush(ctx context.Context) {
	t.mu.Lock()
	if len(t.pending) == 0 {
		t.mu.Unlock()
		return
	}
	counts := t.pending
	t.pending = map[string]int64{}
	t.mu.Unlock()

	payload := map[string]interface{}{}
	if doc, err := t.store.GetSingleton(ctx, model.CollectionStats); err == nil {
		payload = doc.Payload()
	}

	views, _ := payload["views"].(map[string]interface{})
	if views == nil {
		views = map[string]interface{}{}
	}
	var total int64
	for page, n := range counts {
		prev, _ := views[page].(float64) // JSON numbers decode as float64
		views[page] = int64(prev) + n
		total += n
	}
	prevTotal, _ := payload["total_views"].(float64)
	payload["views"] = views
	payload["total_views"] = int64(prevTotal) + total

	if _, err := t.store.UpsertSingleton(ctx, model.CollectionStats, payload); err != nil {
		// Drop the batch rather than block; view counts are best effort.
		t.logger.Warn("stats flush failed", "error", err)
	}
}

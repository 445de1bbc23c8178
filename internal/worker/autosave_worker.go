package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/repository"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/logger"
)

// AutosaveConfig holds autosave worker settings
type AutosaveConfig struct {
	// FlushInterval is how often dirty drafts are flushed to Postgres
	FlushInterval time.Duration
	// BatchSize caps how many drafts one flush cycle handles
	BatchSize int
}

// DefaultAutosaveConfig returns sensible defaults
func DefaultAutosaveConfig() AutosaveConfig {
	return AutosaveConfig{
		FlushInterval: 2 * time.Second,
		BatchSize:     100,
	}
}

// AutosaveStats tracks flush statistics
type AutosaveStats struct {
	CyclesRun     int64
	DraftsFlushed int64
	FlushErrors   int64
	LastRunAt     time.Time
}

// AutosaveWorker periodically flushes dirty drafts from the store to the
// durable draft repository. Edits mark a draft dirty in the store; this
// worker is the debounce that turns a burst of edits into one write.
type AutosaveWorker struct {
	config AutosaveConfig
	store  repository.DraftStore
	drafts repository.DraftRepository
	log    *logger.Logger

	mu    sync.Mutex
	stats AutosaveStats
}

// NewAutosaveWorker creates a new autosave worker
func NewAutosaveWorker(config AutosaveConfig, store repository.DraftStore, drafts repository.DraftRepository, log *logger.Logger) *AutosaveWorker {
	if config.FlushInterval <= 0 {
		config.FlushInterval = DefaultAutosaveConfig().FlushInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultAutosaveConfig().BatchSize
	}
	return &AutosaveWorker{
		config: config,
		store:  store,
		drafts: drafts,
		log:    log,
	}
}

// Start runs the flush loop until the context is cancelled
func (w *AutosaveWorker) Start(ctx context.Context) {
	w.log.Info("autosave worker started",
		zap.Duration("flush_interval", w.config.FlushInterval),
		zap.Int("batch_size", w.config.BatchSize))

	ticker := time.NewTicker(w.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Final flush so edits made just before shutdown survive
			if err := w.FlushOnce(context.Background()); err != nil {
				w.log.Warn("final autosave flush failed", zap.Error(err))
			}
			w.log.Info("autosave worker stopped")
			return
		case <-ticker.C:
			if err := w.FlushOnce(ctx); err != nil {
				w.log.Warn("autosave flush failed", zap.Error(err))
			}
		}
	}
}

// FlushOnce flushes all currently dirty drafts to the durable repository
func (w *AutosaveWorker) FlushOnce(ctx context.Context) error {
	ids, err := w.store.DirtyIDs(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.stats.CyclesRun++
	w.stats.LastRunAt = time.Now()
	w.mu.Unlock()

	if len(ids) == 0 {
		return nil
	}
	if len(ids) > w.config.BatchSize {
		ids = ids[:w.config.BatchSize]
	}

	// The worker never writes the draft back to the store: that would
	// race with user edits saved after the Get below. It only clears the
	// dirty marker, and only while the stored version still matches the
	// snapshot it flushed; a draft edited mid-flush stays queued.
	flushed := 0
	for _, id := range ids {
		draft, err := w.store.Get(ctx, id)
		if err != nil {
			w.recordError()
			w.log.Warn("failed to load dirty draft", zap.String("draft_id", id), zap.Error(err))
			continue
		}
		if draft == nil {
			// Draft expired or was deleted, nothing left to flush
			if err := w.store.ClearDirty(ctx, id); err != nil {
				w.log.Warn("failed to clear dirty flag", zap.String("draft_id", id), zap.Error(err))
			}
			continue
		}

		if err := w.drafts.Upsert(ctx, draft); err != nil {
			w.recordError()
			w.log.Warn("failed to flush draft", zap.String("draft_id", id), zap.Error(err))
			continue
		}

		cleared, err := w.store.ClearDirtyIfVersion(ctx, id, draft.Version)
		if err != nil {
			w.log.Warn("failed to clear dirty flag", zap.String("draft_id", id), zap.Error(err))
		} else if !cleared {
			w.log.Debug("draft edited during flush, left dirty", zap.String("draft_id", id))
		}
		flushed++
	}

	if flushed > 0 {
		w.mu.Lock()
		w.stats.DraftsFlushed += int64(flushed)
		w.mu.Unlock()

		w.log.Debug("autosave flush completed", zap.Int("flushed", flushed))
	}
	return nil
}

func (w *AutosaveWorker) recordError() {
	w.mu.Lock()
	w.stats.FlushErrors++
	w.mu.Unlock()
}

// Stats returns a snapshot of flush statistics
func (w *AutosaveWorker) Stats() AutosaveStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

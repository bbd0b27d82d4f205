package storage

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/crusher-sewa/materials-api/internal/api/metrics"
	"github.com/crusher-sewa/materials-api/internal/core/ports"
)

const (
	defaultCleanerWorkers = 2
	cleanerBuffer         = 64
	cleanerMaxRetries     = 3
	cleanerRetryDelay     = 2 * time.Second
)

// Cleaner retries removal of stored images whose synchronous unlink failed.
// The request path enqueues and moves on; workers retry in the background.
type Cleaner struct {
	store ports.ImageStore
	ch    chan string
	n     int
	log   zerolog.Logger
}

// NewCleaner creates a Cleaner with numWorkers workers. If numWorkers <= 0,
// defaultCleanerWorkers is used.
func NewCleaner(store ports.ImageStore, numWorkers int, log zerolog.Logger) *Cleaner {
	if numWorkers <= 0 {
		numWorkers = defaultCleanerWorkers
	}
	return &Cleaner{
		store: store,
		ch:    make(chan string, cleanerBuffer),
		n:     numWorkers,
		log:   log,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (c *Cleaner) Start(ctx context.Context) {
	for i := 0; i < c.n; i++ {
		go c.runWorker(ctx, i)
	}
}

// Enqueue hands a stored-image URL to the workers. When the buffer is full
// the URL is dropped with a log line; cleanup is best-effort by contract.
func (c *Cleaner) Enqueue(url string) {
	select {
	case c.ch <- url:
	default:
		c.log.Warn().Str("image_url", url).Msg("cleanup queue full, dropping")
	}
}

func (c *Cleaner) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case url, ok := <-c.ch:
			if !ok {
				return
			}
			c.removeWithRetry(ctx, id, url)
		}
	}
}

func (c *Cleaner) removeWithRetry(ctx context.Context, workerID int, url string) {
	var err error
	for attempt := 1; attempt <= cleanerMaxRetries; attempt++ {
		if err = c.store.Remove(url); err == nil {
			c.log.Debug().Str("image_url", url).Int("worker_id", workerID).Msg("orphan image removed")
			return
		}
		if attempt == cleanerMaxRetries {
			break
		}
		metrics.ImageCleanupRetriesTotal.Inc()
		select {
		case <-ctx.Done():
			return
		case <-time.After(cleanerRetryDelay):
		}
	}
	c.log.Error().Err(err).
		Str("image_url", url).
		Int("worker_id", workerID).
		Msg("orphan image removal abandoned")
}

// ABOUTME: Browser pool bounds concurrent headless browser sessions with a fixed worker set
// ABOUTME: Fetches queue behind busy workers and callers await their result on a per-job channel

package workers

import (
	"context"
	"sync"

	"competitor-monitor-api/core/domain"
	"competitor-monitor-api/core/interfaces"
)

// FetchJob represents a single page fetch waiting for a worker
type FetchJob struct {
	URL      string
	Context  context.Context
	ResultCh chan<- FetchResult
}

// FetchResult carries the outcome of a FetchJob
type FetchResult struct {
	Page domain.ParsedPage
	Err  error
}

// BrowserPool runs page fetches on a fixed number of workers
type BrowserPool struct {
	source     interfaces.PageSource
	logger     interfaces.Logger
	jobQueue   chan *FetchJob
	maxWorkers int
	queueSize  int
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.RWMutex
	running    bool
}

// worker represents an individual worker goroutine
type worker struct {
	id       int
	jobQueue <-chan *FetchJob
	source   interfaces.PageSource
	logger   interfaces.Logger
	ctx      context.Context
	wg       *sync.WaitGroup
}

// PoolConfig holds configuration for the browser pool
type PoolConfig struct {
	MaxWorkers int
	QueueSize  int
}

// DefaultPoolConfig returns the default pool configuration
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxWorkers: 2,
		QueueSize:  32,
	}
}

// NewBrowserPool creates a pool that fetches through source
func NewBrowserPool(source interfaces.PageSource, logger interfaces.Logger, config PoolConfig) *BrowserPool {
	ctx, cancel := context.WithCancel(context.Background())

	if config.MaxWorkers <= 0 {
		config.MaxWorkers = DefaultPoolConfig().MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultPoolConfig().QueueSize
	}

	return &BrowserPool{
		source:     source,
		logger:     logger,
		jobQueue:   make(chan *FetchJob, config.QueueSize),
		maxWorkers: config.MaxWorkers,
		queueSize:  config.QueueSize,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start starts the worker pool
func (bp *BrowserPool) Start() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.running {
		return nil
	}

	for i := 0; i < bp.maxWorkers; i++ {
		w := &worker{
			id:       i,
			jobQueue: bp.jobQueue,
			source:   bp.source,
			logger:   bp.logger,
			ctx:      bp.ctx,
			wg:       &bp.wg,
		}
		bp.wg.Add(1)
		go w.run()
	}

	bp.running = true
	bp.logger.Info("Browser pool started", map[string]interface{}{
		"workers":    bp.maxWorkers,
		"queue_size": bp.queueSize,
	})
	return nil
}

// Stop stops the worker pool. Fetches already running finish first; queued
// jobs are abandoned and their callers see ErrPoolNotRunning.
func (bp *BrowserPool) Stop() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if !bp.running {
		return nil
	}

	bp.cancel()
	bp.wg.Wait()
	bp.running = false

	// Fail anything left in the queue so no caller waits forever
	for {
		select {
		case job := <-bp.jobQueue:
			job.ResultCh <- FetchResult{Err: ErrPoolNotRunning}
		default:
			bp.logger.Info("Browser pool stopped", nil)
			return nil
		}
	}
}

// Fetch implements interfaces.PageSource. It blocks while the queue is full
// and returns ctx.Err() if the caller gives up first.
func (bp *BrowserPool) Fetch(ctx context.Context, url string) (domain.ParsedPage, error) {
	bp.mu.RLock()
	if !bp.running {
		bp.mu.RUnlock()
		return domain.ParsedPage{}, ErrPoolNotRunning
	}

	resultCh := make(chan FetchResult, 1)
	job := &FetchJob{URL: url, Context: ctx, ResultCh: resultCh}

	select {
	case bp.jobQueue <- job:
		bp.mu.RUnlock()
	case <-ctx.Done():
		bp.mu.RUnlock()
		return domain.ParsedPage{}, ctx.Err()
	case <-bp.ctx.Done():
		bp.mu.RUnlock()
		return domain.ParsedPage{}, ErrPoolNotRunning
	}

	select {
	case result := <-resultCh:
		return result.Page, result.Err
	case <-ctx.Done():
		return domain.ParsedPage{}, ctx.Err()
	}
}

// run is the main loop for each worker
func (w *worker) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case job := <-w.jobQueue:
			w.processJob(job)
		}
	}
}

// processJob runs one fetch. A job whose caller already gave up is skipped;
// once started, the fetch is detached from the caller's cancellation and
// runs to completion under its own timeouts. ResultCh is buffered so an
// abandoned caller never blocks the worker.
func (w *worker) processJob(job *FetchJob) {
	if err := job.Context.Err(); err != nil {
		job.ResultCh <- FetchResult{Err: err}
		return
	}

	w.logger.Debug("Worker fetching page", map[string]interface{}{
		"worker": w.id,
		"url":    job.URL,
	})
	page, err := w.source.Fetch(context.WithoutCancel(job.Context), job.URL)
	job.ResultCh <- FetchResult{Page: page, Err: err}
}

// Error definitions
var (
	ErrPoolNotRunning = &WorkerError{Message: "browser pool is not running"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}

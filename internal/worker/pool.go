// Package worker runs game classification across a fixed set of goroutines.
// Each worker handles one game at a time; results arrive in completion
// order, not submission order.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
	"github.com/lgbarn/pgn-endings-go/internal/classify"
)

// WorkItem is one game queued for classification.
type WorkItem struct {
	Record chess.GameRecord
	Seq    int // Submission sequence number
}

// ProcessResult is the outcome for one WorkItem.
type ProcessResult struct {
	Result classify.Result
	Seq    int
	Err    error // Structural record error; replay failures live in Result
}

// ProcessFunc classifies a single work item.
type ProcessFunc func(item WorkItem) ProcessResult

// ClassifierFunc adapts a Classifier to a ProcessFunc.
func ClassifierFunc(c *classify.Classifier) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		res, err := c.Classify(item.Record)
		return ProcessResult{Result: res, Seq: item.Seq, Err: err}
	}
}

// Pool manages the worker goroutines and their channels.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    atomic.Bool
	closeOnce   sync.Once
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool. Default: 1 worker, buffer size of 64.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  64,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create channels after options are applied
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit queues a work item, blocking while the buffer is full. It returns
// the context error if ctx is cancelled first.
func (p *Pool) Submit(ctx context.Context, item WorkItem) error {
	select {
	case p.workChan <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop makes workers discard queued items instead of classifying them.
// Close must still be called to release the workers.
func (p *Pool) Stop() {
	p.stopFlag.Store(true)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return p.stopFlag.Load()
}

// Close closes the work channel and waits for all workers to finish, then
// closes the result channel. Only the producer calls Close, and a consumer
// must be draining Results meanwhile.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.workChan)
		p.wg.Wait()
		close(p.resultChan)
	})
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

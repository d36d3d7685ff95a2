// Package processing runs the batch classification pipeline: records flow
// from a source through de-duplication and checkpoint skipping into the
// worker pool, and results flow into a writer.
package processing

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lgbarn/pgn-endings-go/internal/checkpoint"
	"github.com/lgbarn/pgn-endings-go/internal/chess"
	"github.com/lgbarn/pgn-endings-go/internal/classify"
	"github.com/lgbarn/pgn-endings-go/internal/config"
	"github.com/lgbarn/pgn-endings-go/internal/errors"
	"github.com/lgbarn/pgn-endings-go/internal/hashing"
	"github.com/lgbarn/pgn-endings-go/internal/ingest"
	"github.com/lgbarn/pgn-endings-go/internal/obslog"
	"github.com/lgbarn/pgn-endings-go/internal/output"
	"github.com/lgbarn/pgn-endings-go/internal/worker"
)

// markBatch is the number of results written between checkpoint commits.
const markBatch = 256

type runner struct {
	store  checkpoint.Store
	logger *zap.Logger
	runID  string
	dedup  bool
}

// Option configures Run.
type Option func(*runner)

// WithCheckpoint skips games already in store and marks finished games.
func WithCheckpoint(store checkpoint.Store) Option {
	return func(r *runner) { r.store = store }
}

// WithLogger sets the run logger. The default is obslog.L().
func WithLogger(l *zap.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(r *runner) {
		if id != "" {
			r.runID = id
		}
	}
}

// WithDedup turns duplicate-ID dropping on or off. It is on by default for
// Run and off for ClassifyAll.
func WithDedup(on bool) Option {
	return func(r *runner) { r.dedup = on }
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// filterCounter is implemented by sources that drop records before
// returning them.
type filterCounter interface {
	Read() int
	FilteredTotal() int
}

// Run classifies every record of src and writes one result per surviving
// record to w. Results are flushed, but w is left open.
//
// A record that breaks the input contract still yields a code 0 result and
// is counted as rejected; in strict mode it aborts the run instead. On
// cancellation, games already queued are finished and written.
func Run(ctx context.Context, cfg config.PipelineConfig, src ingest.Source, w output.ResultWriter, opts ...Option) (Stats, error) {
	r := &runner{logger: obslog.L(), runID: NewRunID(), dedup: true}
	for _, opt := range opts {
		opt(r)
	}
	logger := r.logger.With(zap.String("run_id", r.runID))

	start := time.Now()
	stats := Stats{RunID: r.runID}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	classifier := classify.New(classify.WithMaxPlies(cfg.MaxPlies), classify.WithLogger(logger))
	pool := worker.NewPool(worker.ClassifierFunc(classifier),
		worker.WithWorkers(cfg.Workers),
		worker.WithBufferSize(cfg.BufferSize),
	)
	pool.Start()

	feed := make(chan feedResult, 1)
	go func() {
		feed <- r.feed(ctx, src, pool, cfg.DedupCapacity)
		pool.Close()
	}()

	var (
		runErr  error
		pending []string
	)
	// commit marks the results the writer has made durable. Writers that
	// buffer up to a size boundary are only flushed at the end of the run.
	commit := func(final bool) error {
		durable := len(pending)
		if b, ok := w.(output.Buffering); ok && !final {
			durable -= b.Buffered()
		} else if err := w.Flush(); err != nil {
			return err
		}
		if durable <= 0 {
			return nil
		}
		if r.store != nil {
			if err := r.store.Mark(context.WithoutCancel(ctx), pending[:durable]...); err != nil {
				return fmt.Errorf("checkpoint: %w", err)
			}
		}
		pending = append(pending[:0], pending[durable:]...)
		return nil
	}

	for pr := range pool.Results() {
		if runErr != nil {
			continue
		}
		if pr.Err != nil {
			stats.Rejected++
			if cfg.Strict {
				runErr = pr.Err
				pool.Stop()
				cancel()
				continue
			}
		}
		if err := w.WriteResult(pr.Result); err != nil {
			runErr = fmt.Errorf("write %s: %w", pr.Result.ID, err)
			pool.Stop()
			cancel()
			continue
		}
		stats.add(pr.Result)
		pending = append(pending, pr.Result.ID)
		if len(pending) >= markBatch {
			if err := commit(false); err != nil {
				runErr = err
				pool.Stop()
				cancel()
			}
		}
	}

	fr := <-feed
	if err := commit(true); err != nil && runErr == nil {
		runErr = err
	}
	if runErr == nil {
		runErr = fr.err
	}

	stats.Read = fr.read
	stats.Filtered = fr.filtered
	stats.Duplicates = fr.duplicates
	stats.Skipped = fr.skipped
	stats.Elapsed = time.Since(start)
	stats.log(logger)
	return stats, runErr
}

type feedResult struct {
	read, filtered, duplicates, skipped int
	err                                 error
}

// feed reads src until EOF, submitting fresh records to the pool.
func (r *runner) feed(ctx context.Context, src ingest.Source, pool *worker.Pool, dedupCapacity int) (fr feedResult) {
	seen := hashing.NewThreadSafeDuplicateDetector(dedupCapacity)
	seq := 0
	full := false

	defer func() {
		if fc, ok := src.(filterCounter); ok {
			fr.read = fc.Read()
			fr.filtered = fc.FilteredTotal()
		}
	}()

	for {
		rec, err := src.Next(ctx)
		if stderrors.Is(err, io.EOF) {
			return fr
		}
		if err != nil {
			fr.err = err
			return fr
		}
		fr.read++

		if r.dedup && rec.ID != "" && seen.CheckAndAdd(&rec) {
			fr.duplicates++
			r.logger.Debug("duplicate game", zap.String("game_id", rec.ID),
				zap.Error(errors.ErrDuplicateGame))
			continue
		}
		if r.dedup && !full && seen.IsFull() {
			full = true
			r.logger.Warn("duplicate detector full, later ids are not remembered",
				zap.Int("unique", seen.UniqueCount()))
		}
		if r.store != nil && rec.ID != "" {
			done, err := r.store.Done(ctx, rec.ID)
			if err != nil {
				fr.err = fmt.Errorf("checkpoint: %w", err)
				return fr
			}
			if done {
				fr.skipped++
				continue
			}
		}

		if err := pool.Submit(ctx, worker.WorkItem{Record: rec, Seq: seq}); err != nil {
			fr.err = err
			return fr
		}
		seq++
	}
}

// ClassifyAll runs the pipeline over an in-memory batch and returns the
// results in completion order. Every record yields a result, repeated IDs
// included, unless WithDedup(true) is passed.
func ClassifyAll(ctx context.Context, cfg config.PipelineConfig, recs []chess.GameRecord, opts ...Option) ([]classify.Result, Stats, error) {
	w := &sliceWriter{}
	opts = append([]Option{WithDedup(false)}, opts...)
	stats, err := Run(ctx, cfg, &sliceSource{recs: recs}, w, opts...)
	return w.results, stats, err
}

type sliceSource struct {
	recs []chess.GameRecord
	pos  int
}

func (s *sliceSource) Next(ctx context.Context) (chess.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return chess.GameRecord{}, err
	}
	if s.pos >= len(s.recs) {
		return chess.GameRecord{}, io.EOF
	}
	s.pos++
	return s.recs[s.pos-1], nil
}

func (s *sliceSource) Close() error { return nil }

type sliceWriter struct {
	results []classify.Result
}

func (w *sliceWriter) WriteResult(res classify.Result) error {
	w.results = append(w.results, res)
	return nil
}

func (w *sliceWriter) Flush() error { return nil }
func (w *sliceWriter) Close() error { return nil }

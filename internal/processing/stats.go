package processing

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lgbarn/pgn-endings-go/internal/classify"
)

// Stats summarizes one pipeline run.
type Stats struct {
	RunID      string
	Read       int // records read from the source, before filtering
	Filtered   int
	Duplicates int
	Skipped    int // already marked in the checkpoint store
	Classified int // results written, including code 0
	Rejected   int // records that broke the input contract
	ByCode     [classify.NumEndCodes]int
	Elapsed    time.Duration
}

// Failed returns the number of code 0 results.
func (s *Stats) Failed() int {
	return s.ByCode[classify.Unknown]
}

func (s *Stats) add(res classify.Result) {
	s.Classified++
	switch {
	case res.Failed():
		s.ByCode[classify.Unknown]++
	case res.EndCode.Valid():
		s.ByCode[res.EndCode]++
	}
}

// MarshalLogObject lets the summary be logged with zap.Object.
func (s *Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("run_id", s.RunID)
	enc.AddInt("read", s.Read)
	enc.AddInt("filtered", s.Filtered)
	enc.AddInt("duplicates", s.Duplicates)
	enc.AddInt("skipped", s.Skipped)
	enc.AddInt("classified", s.Classified)
	enc.AddInt("rejected", s.Rejected)
	enc.AddInt("failed", s.Failed())
	enc.AddDuration("elapsed", s.Elapsed)
	return enc.AddObject("by_code", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		for _, code := range classify.AllEndCodes() {
			enc.AddInt(code.Reason(), s.ByCode[code])
		}
		return nil
	}))
}

func (s *Stats) log(logger *zap.Logger) {
	logger.Info("run finished", zap.Object("stats", s))
}

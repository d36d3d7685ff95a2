package ingest

import (
	"context"
	"io"
	"strings"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
	"github.com/lgbarn/pgn-endings-go/internal/config"
)

// Filter decides which records reach the classifier.
type Filter struct {
	excludeBots  bool
	excludeTerms map[string]bool
}

// NewFilter creates a Filter from its configuration. Termination labels
// compare case-insensitively.
func NewFilter(cfg config.FilterConfig) *Filter {
	f := &Filter{excludeBots: cfg.ExcludeBots, excludeTerms: make(map[string]bool)}
	for _, t := range cfg.ExcludeTerminations {
		f.excludeTerms[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return f
}

// Keep reports whether rec passes the filter, and if not, why.
func (f *Filter) Keep(rec *chess.GameRecord) (bool, string) {
	if f.excludeBots && rec.HasBot() {
		return false, "bot"
	}
	if f.excludeTerms[strings.ToLower(strings.TrimSpace(rec.Termination))] {
		return false, "termination"
	}
	return true, ""
}

// FilteredSource drops filtered records and stops after a sample limit.
type FilteredSource struct {
	src      Source
	filter   *Filter
	limit    int
	read     int
	returned int
	filtered map[string]int
}

// NewFilteredSource wraps src. A limit of 0 reads everything.
func NewFilteredSource(src Source, filter *Filter, limit int) *FilteredSource {
	return &FilteredSource{src: src, filter: filter, limit: limit, filtered: make(map[string]int)}
}

// Next returns the next record that passes the filter.
func (s *FilteredSource) Next(ctx context.Context) (chess.GameRecord, error) {
	for {
		if s.limit > 0 && s.returned >= s.limit {
			return chess.GameRecord{}, io.EOF
		}
		rec, err := s.src.Next(ctx)
		if err != nil {
			return rec, err
		}
		s.read++
		if ok, reason := s.filter.Keep(&rec); !ok {
			s.filtered[reason]++
			continue
		}
		s.returned++
		return rec, nil
	}
}

// Read returns the number of records read from the underlying source.
func (s *FilteredSource) Read() int {
	return s.read
}

// Filtered returns the number of dropped records by reason.
func (s *FilteredSource) Filtered() map[string]int {
	out := make(map[string]int, len(s.filtered))
	for k, v := range s.filtered {
		out[k] = v
	}
	return out
}

// FilteredTotal returns the number of dropped records.
func (s *FilteredSource) FilteredTotal() int {
	total := 0
	for _, v := range s.filtered {
		total += v
	}
	return total
}

// Close closes the underlying source.
func (s *FilteredSource) Close() error {
	return s.src.Close()
}

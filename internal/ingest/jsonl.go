package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
)

const maxJSONLine = 4 << 20

// JSONLSource reads one GameRecord JSON object per line.
type JSONLSource struct {
	scanner *bufio.Scanner
	closer  io.Closer
	line    int
}

// OpenJSONL opens a JSON Lines file, or stdin for "-".
func OpenJSONL(path string) (*JSONLSource, error) {
	if path == "-" {
		return NewJSONLSource(os.Stdin, io.NopCloser(os.Stdin)), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return NewJSONLSource(f, f), nil
}

// NewJSONLSource reads records from r. closer is closed by Close.
func NewJSONLSource(r io.Reader, closer io.Closer) *JSONLSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxJSONLine)
	return &JSONLSource{scanner: scanner, closer: closer}
}

// Next returns the next record. Blank lines are skipped.
func (s *JSONLSource) Next(ctx context.Context) (chess.GameRecord, error) {
	for {
		if err := ctx.Err(); err != nil {
			return chess.GameRecord{}, err
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return chess.GameRecord{}, err
			}
			return chess.GameRecord{}, io.EOF
		}
		s.line++
		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec chess.GameRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return chess.GameRecord{}, fmt.Errorf("line %d: %w", s.line, err)
		}
		return rec, nil
	}
}

// Close closes the underlying reader.
func (s *JSONLSource) Close() error {
	return s.closer.Close()
}

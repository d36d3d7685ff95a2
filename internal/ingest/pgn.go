package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
	"github.com/lgbarn/pgn-endings-go/internal/parser"
)

// PGNSource reads games from a PGN stream, optionally zstd-compressed.
type PGNSource struct {
	parser  *parser.Parser
	closers []io.Closer
	count   int
}

// OpenPGN opens a PGN file. Files ending in .zst are decompressed on the
// fly. "-" reads stdin.
func OpenPGN(path string) (*PGNSource, error) {
	if path == "-" {
		return NewPGNSource(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".zst") {
		src := NewPGNSource(bufio.NewReaderSize(f, 1<<16))
		src.closers = append(src.closers, f)
		return src, nil
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("zstd %s: %w", path, err)
	}
	src := NewPGNSource(dec)
	src.closers = append(src.closers, decoderCloser{dec}, f)
	return src, nil
}

// NewPGNSource reads games from r.
func NewPGNSource(r io.Reader) *PGNSource {
	return &PGNSource{parser: parser.NewParser(r)}
}

// Next returns the next game as a GameRecord.
func (s *PGNSource) Next(ctx context.Context) (chess.GameRecord, error) {
	_, rec, err := s.nextGame(ctx)
	return rec, err
}

func (s *PGNSource) nextGame(ctx context.Context) (*parser.Game, chess.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, chess.GameRecord{}, err
	}
	game, err := s.parser.ParseGame()
	if err != nil {
		return nil, chess.GameRecord{}, err
	}
	if game == nil {
		return nil, chess.GameRecord{}, io.EOF
	}
	s.count++
	rec := RecordFromGame(game)
	if rec.ID == "" {
		rec.ID = fmt.Sprintf("game-%d", s.count)
	}
	return game, rec, nil
}

// Close closes the decompressor and the file.
func (s *PGNSource) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type decoderCloser struct {
	dec *zstd.Decoder
}

func (d decoderCloser) Close() error {
	d.dec.Close()
	return nil
}

// RecordFromGame maps a parsed PGN game onto a GameRecord. The identifier
// is the last path segment of the Site tag.
func RecordFromGame(g *parser.Game) chess.GameRecord {
	return chess.GameRecord{
		ID:          chess.GameIDFromSite(g.Tag(chess.SiteTag)),
		Moves:       g.SANMoves(),
		Result:      g.Result,
		Termination: g.Tag(chess.TerminationTag),
		Mated:       g.Mated(),
		StartFEN:    g.Tag(chess.FENTag),
		White:       g.Tag(chess.WhiteTag),
		Black:       g.Tag(chess.BlackTag),
		WhiteTitle:  g.Tag(chess.WhiteTitleTag),
		BlackTitle:  g.Tag(chess.BlackTitleTag),
		WhiteElo:    parseElo(g.Tag(chess.WhiteEloTag)),
		BlackElo:    parseElo(g.Tag(chess.BlackEloTag)),
		Event:       g.Tag(chess.EventTag),
		UTCDate:     g.Tag(chess.UTCDateTag),
		UTCTime:     g.Tag(chess.UTCTimeTag),
		TimeControl: g.Tag(chess.TimeControlTag),
		Opening:     g.Tag(chess.OpeningTag),
	}
}

// parseElo returns 0 for missing or placeholder ratings such as "?".
func parseElo(s string) int32 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0
	}
	return int32(n)
}

// Movetext joins the main-line tokens of g as written, keeping check and
// mate markers.
func Movetext(g *parser.Game) string {
	return strings.Join(g.Moves, " ")
}

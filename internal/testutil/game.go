// Package testutil provides shared test utilities for the pgn-endings project.
package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
	"github.com/lgbarn/pgn-endings-go/internal/parser"
)

// Record builds a GameRecord from PGN movetext the way the ingest layer
// does: main-line tokens with suffixes stripped and the mate marker taken
// from the last move.
func Record(id, result, termination, movetext string) chess.GameRecord {
	return chess.GameRecord{
		ID:          id,
		Moves:       parser.Tokenize(movetext),
		Result:      result,
		Termination: termination,
		Mated:       parser.EndsWithMate(movetext),
	}
}

// RecordFromFEN is Record for a game that starts from fen.
func RecordFromFEN(id, result, termination, fen, movetext string) chess.GameRecord {
	rec := Record(id, result, termination, movetext)
	rec.StartFEN = fen
	return rec
}

// ParseTestGames parses a PGN string and returns all games found.
// Returns nil if parsing fails or no games are found.
func ParseTestGames(pgn string) []*parser.Game {
	games, err := parser.NewParser(strings.NewReader(pgn)).ParseAllGames()
	if err != nil || len(games) == 0 {
		return nil
	}
	return games
}

// MustParseGames parses a PGN string and returns all games found.
// It calls t.Fatal if parsing fails or no games are found.
func MustParseGames(t *testing.T, pgn string) []*parser.Game {
	t.Helper()
	games := ParseTestGames(pgn)
	if len(games) == 0 {
		t.Fatalf("failed to parse any games from PGN:\n%s", pgn)
	}
	return games
}

package parser

import (
	"fmt"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
	"github.com/lgbarn/pgn-endings-go/internal/engine"
	"github.com/lgbarn/pgn-endings-go/internal/errors"
)

// ParseMove resolves a SAN token against the position held by state. The
// token must match exactly one legal move; zero or several matches are a
// parse failure. A pawn reaching the last rank must name its promotion
// piece.
func ParseMove(token string, state *engine.GameState) (chess.Move, error) {
	n, err := DecodeMove(token)
	if err != nil {
		return chess.Move{}, err
	}
	return Resolve(n, state.LegalMoves())
}

// Resolve picks the single legal move matching a decoded token.
func Resolve(n Notation, legal []chess.Move) (chess.Move, error) {
	var found chess.Move
	matches := 0
	for _, m := range legal {
		if !n.matches(m) {
			continue
		}
		found = m
		matches++
	}

	switch matches {
	case 1:
		return found, nil
	case 0:
		return chess.Move{}, parseFailure(n.Text, "no legal move matches")
	default:
		return chess.Move{}, fmt.Errorf("%q: %d legal moves match: %w", n.Text, matches, errors.ErrParseFailure)
	}
}

func (n Notation) matches(m chess.Move) bool {
	if n.IsCastle() {
		return m.Flag == n.Castle
	}
	if m.IsCastle() || m.Piece != n.Piece || m.To != n.To {
		return false
	}
	if n.FromCol != 0 && m.From.Col != n.FromCol {
		return false
	}
	if n.FromRank != 0 && m.From.Rank != n.FromRank {
		return false
	}
	// A pawn token without an origin file is a push.
	if n.Piece == chess.Pawn && n.FromCol == 0 && m.From.Col != m.To.Col {
		return false
	}
	return m.Promoted == n.Promoted
}

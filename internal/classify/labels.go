package classify

import (
	"strings"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
)

// normalizeLabel lowercases a termination label and collapses whitespace.
func normalizeLabel(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}

var (
	labelNormal       = normalizeLabel(chess.TerminationNormal)
	labelTimeForfeit  = normalizeLabel(chess.TerminationTimeForfeit)
	labelInsufficient = normalizeLabel(chess.TerminationInsufficient)
)

// isRepetitionLabel reports whether a label allows a repetition draw.
func isRepetitionLabel(label string) bool {
	return label == labelNormal || strings.Contains(label, "repetition")
}

// isFiftyMoveLabel reports whether a label allows a fifty-move draw.
func isFiftyMoveLabel(label string) bool {
	return label == labelNormal || strings.Contains(label, "fifty") || strings.Contains(label, "50")
}

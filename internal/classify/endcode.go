// Package classify replays a game record and assigns it one of the
// termination end codes.
package classify

import "strings"

// EndCode is the closed set of termination categories.
type EndCode int

const (
	Unknown EndCode = iota
	Checkmate
	Resignation
	TimeoutWin
	TimeoutDrawInsufficient
	Stalemate
	ThreefoldRepetition
	FiftyMoveRule
	InsufficientClaimed
	InsufficientAutomatic
	AgreementDraw
	NumEndCodes // Sentinel, must be last
)

var endReasons = [NumEndCodes]string{
	Unknown:                 "unknown",
	Checkmate:               "checkmate",
	Resignation:             "resignation",
	TimeoutWin:              "timeout_win",
	TimeoutDrawInsufficient: "insufficient_material_timeout_draw",
	Stalemate:               "stalemate",
	ThreefoldRepetition:     "threefold_repetition",
	FiftyMoveRule:           "fifty_move_rule",
	InsufficientClaimed:     "insufficient_material_claimed",
	InsufficientAutomatic:   "insufficient_material_automatic",
	AgreementDraw:           "agreement_draw",
}

// Reason returns the canonical label for the code. Codes outside the
// enumeration map to "unknown".
func (c EndCode) Reason() string {
	if !c.Valid() {
		return endReasons[Unknown]
	}
	return endReasons[c]
}

// String implements fmt.Stringer.
func (c EndCode) String() string {
	return c.Reason()
}

// Valid reports whether c is one of the defined codes.
func (c EndCode) Valid() bool {
	return c >= Unknown && c < NumEndCodes
}

// ParseEndCode maps a canonical reason back to its code.
func ParseEndCode(reason string) (EndCode, bool) {
	reason = strings.ToLower(strings.TrimSpace(reason))
	for code, r := range endReasons {
		if r == reason {
			return EndCode(code), true
		}
	}
	return Unknown, false
}

// AllEndCodes returns every code in ascending order.
func AllEndCodes() []EndCode {
	codes := make([]EndCode, NumEndCodes)
	for i := range codes {
		codes[i] = EndCode(i)
	}
	return codes
}

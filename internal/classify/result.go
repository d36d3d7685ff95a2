package classify

import (
	"strings"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
)

// Result is the classification of one game. EndReason always equals
// EndCode.Reason().
type Result struct {
	ID        string  `json:"game_id"`
	EndCode   EndCode `json:"end_code"`
	EndReason string  `json:"end_reason"`
	Plies     int     `json:"plies"`
	Winner    string  `json:"winner"`
	IsDraw    bool    `json:"is_draw"`
	FinalFEN  string  `json:"final_fen,omitempty"`

	// Detail holds the replay failure for code 0 results.
	Detail string `json:"detail,omitempty"`
}

// Failed reports whether the game could not be classified.
func (r *Result) Failed() bool {
	return r.EndCode == Unknown
}

func (r *Result) setCode(code EndCode) {
	r.EndCode = code
	r.EndReason = code.Reason()
}

func colourName(c chess.Colour) string {
	return strings.ToLower(c.String())
}

// newResult fills the fields derived from the recorded result string.
func newResult(rec *chess.GameRecord) Result {
	res := Result{ID: rec.ID, IsDraw: rec.IsDraw()}
	if winner, ok := rec.Winner(); ok {
		res.Winner = colourName(winner)
	}
	res.setCode(Unknown)
	return res
}

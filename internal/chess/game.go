package chess

import "strings"

// GameRecord is one normalized game as handed to the classifier. Only ID,
// Moves, Result, Termination and Mated take part in classification; the
// remaining fields ride along from the ingest layer.
type GameRecord struct {
	ID          string   `json:"id" validate:"required"`
	Moves       []string `json:"moves"`
	Result      string   `json:"result" validate:"required,oneof=1-0 0-1 1/2-1/2"`
	Termination string   `json:"termination"`
	Mated       bool     `json:"mated"`

	// StartFEN is set for games that begin from a custom position.
	StartFEN string `json:"start_fen,omitempty"`

	White       string `json:"white,omitempty"`
	Black       string `json:"black,omitempty"`
	WhiteTitle  string `json:"white_title,omitempty"`
	BlackTitle  string `json:"black_title,omitempty"`
	WhiteElo    int32  `json:"white_elo,omitempty"`
	BlackElo    int32  `json:"black_elo,omitempty"`
	Event       string `json:"event,omitempty"`
	UTCDate     string `json:"utc_date,omitempty"`
	UTCTime     string `json:"utc_time,omitempty"`
	TimeControl string `json:"time_control,omitempty"`
	Opening     string `json:"opening,omitempty"`
}

// PlyCount returns the number of half-moves in the record.
func (g *GameRecord) PlyCount() int {
	return len(g.Moves)
}

// IsDraw reports whether the recorded result is a draw.
func (g *GameRecord) IsDraw() bool {
	return g.Result == Draw
}

// IsDecisive reports whether the recorded result names a winner.
func (g *GameRecord) IsDecisive() bool {
	return g.Result == WhiteWins || g.Result == BlackWins
}

// Winner returns the winning colour for a decisive result.
func (g *GameRecord) Winner() (Colour, bool) {
	switch g.Result {
	case WhiteWins:
		return White, true
	case BlackWins:
		return Black, true
	}
	return Black, false
}

// HasBot reports whether either player carries the BOT title.
func (g *GameRecord) HasBot() bool {
	return strings.EqualFold(g.WhiteTitle, TitleBot) || strings.EqualFold(g.BlackTitle, TitleBot)
}

// GameIDFromSite derives a game identifier from a Site tag such as
// "https://lichess.org/abcd1234": the last path segment.
func GameIDFromSite(site string) string {
	site = strings.TrimRight(strings.TrimSpace(site), "/")
	if i := strings.LastIndexByte(site, '/'); i >= 0 {
		return site[i+1:]
	}
	return site
}

package chess

import "testing"

func TestGameIDFromSite(t *testing.T) {
	tests := []struct {
		site string
		want string
	}{
		{"https://lichess.org/abcd1234", "abcd1234"},
		{"https://lichess.org/abcd1234/", "abcd1234"},
		{"abcd1234", "abcd1234"},
		{"", ""},
		{"  https://lichess.org/x9 ", "x9"},
	}
	for _, tt := range tests {
		t.Run(tt.site, func(t *testing.T) {
			if got := GameIDFromSite(tt.site); got != tt.want {
				t.Errorf("GameIDFromSite(%q) = %q; want %q", tt.site, got, tt.want)
			}
		})
	}
}

func TestGameRecordResult(t *testing.T) {
	tests := []struct {
		result   string
		draw     bool
		decisive bool
		winner   Colour
	}{
		{WhiteWins, false, true, White},
		{BlackWins, false, true, Black},
		{Draw, true, false, Black},
		{"*", false, false, Black},
	}
	for _, tt := range tests {
		t.Run(tt.result, func(t *testing.T) {
			g := &GameRecord{Result: tt.result}
			if g.IsDraw() != tt.draw {
				t.Errorf("IsDraw() = %v; want %v", g.IsDraw(), tt.draw)
			}
			if g.IsDecisive() != tt.decisive {
				t.Errorf("IsDecisive() = %v; want %v", g.IsDecisive(), tt.decisive)
			}
			winner, ok := g.Winner()
			if ok != tt.decisive || winner != tt.winner {
				t.Errorf("Winner() = (%v, %v); want (%v, %v)", winner, ok, tt.winner, tt.decisive)
			}
		})
	}
}

func TestHasBot(t *testing.T) {
	if (&GameRecord{WhiteTitle: "GM"}).HasBot() {
		t.Error("HasBot() = true for GM; want false")
	}
	if !(&GameRecord{BlackTitle: "BOT"}).HasBot() {
		t.Error("HasBot() = false for BOT; want true")
	}
}

func TestMoveUCI(t *testing.T) {
	m := Move{From: Sq('e', '7'), To: Sq('e', '8'), Piece: Pawn, Promoted: Queen, Flag: Promotion}
	if got := m.UCI(); got != "e7e8q" {
		t.Errorf("UCI() = %q; want e7e8q", got)
	}
	if !m.IsPromotion() || m.IsCastle() || m.IsCapture() {
		t.Errorf("flags wrong for %v", m)
	}
}

package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lgbarn/pgn-endings-go/internal/chess"
	pgnerrors "github.com/lgbarn/pgn-endings-go/internal/errors"
	"github.com/lgbarn/pgn-endings-go/internal/hashing"
)

// mv builds a move from long algebraic squares, e.g. mv(chess.Knight, "g1f3").
func mv(piece chess.Piece, uci string) chess.Move {
	from, _ := chess.ParseSquare(uci[0:2])
	to, _ := chess.ParseSquare(uci[2:4])
	m := chess.Move{From: from, To: to, Piece: piece, Promoted: chess.Empty}
	if len(uci) == 5 {
		m.Promoted = chess.PieceFromLetter(uci[4] - ('a' - 'A'))
	}
	return m
}

func mustState(t *testing.T, fen string) *GameState {
	t.Helper()
	s, err := NewGameStateFromFEN(fen)
	if err != nil {
		t.Fatalf("NewGameStateFromFEN(%q) failed: %v", fen, err)
	}
	return s
}

func applyAll(t *testing.T, s *GameState, moves ...chess.Move) Status {
	t.Helper()
	var st Status
	for i, m := range moves {
		var err error
		if st, err = s.Apply(m); err != nil {
			t.Fatalf("Apply(%s) at ply %d failed: %v", m.UCI(), i+1, err)
		}
	}
	return st
}

func TestGameState_Initial(t *testing.T) {
	s := NewGameState()
	want := Status{HasLegalMoves: true, LegalMoveCount: 20, RepetitionCount: 1}
	if diff := cmp.Diff(want, s.Status()); diff != "" {
		t.Errorf("initial Status() mismatch (-want +got):\n%s", diff)
	}
	if s.FEN() != InitialFEN {
		t.Errorf("FEN() = %q, want %q", s.FEN(), InitialFEN)
	}
}

func TestGameState_FoolsMate(t *testing.T) {
	s := NewGameState()
	st := applyAll(t, s,
		mv(chess.Pawn, "f2f3"),
		mv(chess.Pawn, "e7e5"),
		mv(chess.Pawn, "g2g4"),
		mv(chess.Queen, "d8h4"),
	)
	if !st.InCheck || st.HasLegalMoves {
		t.Errorf("Status = %+v, want in check with no legal moves", st)
	}
	if !st.Checkmate() || st.Stalemate() {
		t.Errorf("Checkmate() = %v, Stalemate() = %v", st.Checkmate(), st.Stalemate())
	}
	if s.Plies() != 4 {
		t.Errorf("Plies() = %d, want 4", s.Plies())
	}
}

func TestGameState_Stalemate(t *testing.T) {
	s := mustState(t, "7k/5Q2/8/6K1/8/8/8/8 w - - 0 1")
	st := applyAll(t, s, mv(chess.King, "g5g6"))
	if !st.Stalemate() || st.Checkmate() {
		t.Errorf("Status = %+v, want stalemate", st)
	}
}

func TestGameState_Repetition(t *testing.T) {
	s := NewGameState()
	shuffle := []chess.Move{
		mv(chess.Knight, "g1f3"), mv(chess.Knight, "g8f6"),
		mv(chess.Knight, "f3g1"), mv(chess.Knight, "f6g8"),
	}

	st := applyAll(t, s, shuffle...)
	if st.RepetitionCount != 2 {
		t.Errorf("after one cycle RepetitionCount = %d, want 2", st.RepetitionCount)
	}
	st = applyAll(t, s, shuffle[:3]...)
	if st.RepetitionCount != 2 {
		t.Errorf("Nf3 position RepetitionCount = %d, want 2", st.RepetitionCount)
	}
	st = applyAll(t, s, shuffle[3])
	if st.RepetitionCount != 3 {
		t.Errorf("after two cycles RepetitionCount = %d, want 3", st.RepetitionCount)
	}
	if got := len(s.History()); got != 9 {
		t.Errorf("len(History()) = %d, want 9", got)
	}
}

func TestGameState_RepetitionKeyIgnoresUnusableEnPassant(t *testing.T) {
	s := NewGameState()
	applyAll(t, s, mv(chess.Pawn, "e2e4"))

	board := s.Board()
	if !board.EnPassant {
		t.Fatal("expected en passant target after double push")
	}
	board.ClearEnPassant()
	if got, want := s.History()[1], hashing.PositionKey(board, false); got != want {
		t.Errorf("key after 1.e4 = %x, want %x (target without capturer)", got, want)
	}
}

func TestGameState_IllegalMoveLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name string
		move chess.Move
	}{
		{"pawn three squares", mv(chess.Pawn, "e2e5")},
		{"wrong piece", mv(chess.Bishop, "e2e4")},
		{"knight blocked square", mv(chess.Knight, "g1e2")},
		{"from empty square", mv(chess.Queen, "d4d5")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewGameState()
			before := s.FEN()
			_, err := s.Apply(tt.move)
			if !errors.Is(err, pgnerrors.ErrIllegalMove) {
				t.Fatalf("Apply() error = %v, want ErrIllegalMove", err)
			}
			if s.FEN() != before || s.Plies() != 0 {
				t.Errorf("state changed after illegal move: %s", s.FEN())
			}
		})
	}
}

func TestGameState_MoveIntoCheckIsIllegal(t *testing.T) {
	s := mustState(t, "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	if _, err := s.Apply(mv(chess.King, "e1f2")); !errors.Is(err, pgnerrors.ErrIllegalMove) {
		t.Errorf("Apply(Kf2) error = %v, want ErrIllegalMove", err)
	}
	if _, err := s.Apply(mv(chess.King, "e1e2")); err != nil {
		t.Errorf("Apply(Kxe2) error = %v, want nil", err)
	}
}

func TestGameState_CastlingRights(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []chess.Move
		want  chess.CastlingRights
	}{
		{
			name:  "rook captures rook",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			moves: []chess.Move{mv(chess.Rook, "a1a8")},
			want:  chess.WhiteKingside | chess.BlackKingside,
		},
		{
			name:  "king move",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			moves: []chess.Move{mv(chess.King, "e1f1")},
			want:  chess.BlackKingside | chess.BlackQueenside,
		},
		{
			name:  "castle kingside",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			moves: []chess.Move{mv(chess.King, "e1g1")},
			want:  chess.BlackKingside | chess.BlackQueenside,
		},
		{
			name:  "rook leaves and returns",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			moves: []chess.Move{mv(chess.Rook, "h1h2"), mv(chess.Rook, "h8h7"), mv(chess.Rook, "h2h1")},
			want:  chess.WhiteQueenside | chess.BlackQueenside,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustState(t, tt.fen)
			applyAll(t, s, tt.moves...)
			if got := s.Board().Castling; got != tt.want {
				t.Errorf("Castling = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGameState_CastleMovesRook(t *testing.T) {
	s := mustState(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
	applyAll(t, s, mv(chess.King, "e8c8"))
	want := "2kr3r/8/8/8/8/8/8/R3K2R w KQ - 1 2"
	if got := s.FEN(); got != want {
		t.Errorf("FEN() = %q, want %q", got, want)
	}
}

func TestGameState_EnPassantCapture(t *testing.T) {
	s := mustState(t, "rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 3")
	applyAll(t, s, mv(chess.Pawn, "d4e3"))
	board := s.Board()
	if board.Get('e', '4') != chess.Empty {
		t.Error("captured pawn still on e4")
	}
	if board.Get('e', '3') != chess.B(chess.Pawn) {
		t.Error("capturing pawn not on e3")
	}
	if board.HalfmoveClock != 0 {
		t.Errorf("HalfmoveClock = %d, want 0", board.HalfmoveClock)
	}
}

func TestGameState_Promotion(t *testing.T) {
	s := mustState(t, "8/P6k/8/8/8/8/8/4K3 w - - 0 1")
	if _, err := s.Apply(mv(chess.Pawn, "a7a8")); !errors.Is(err, pgnerrors.ErrIllegalMove) {
		t.Errorf("promotion without piece: error = %v, want ErrIllegalMove", err)
	}
	applyAll(t, s, mv(chess.Pawn, "a7a8n"))
	if got := s.Board().Get('a', '8'); got != chess.W(chess.Knight) {
		t.Errorf("a8 = %v, want white knight", got)
	}
}

func TestGameState_FiftyMoveClock(t *testing.T) {
	s := mustState(t, "4k3/8/8/8/8/8/7P/R3K3 w - - 98 80")
	st := applyAll(t, s, mv(chess.Rook, "a1a2"))
	if st.FiftyMoveReached {
		t.Error("FiftyMoveReached at clock 99")
	}
	st = applyAll(t, s, mv(chess.King, "e8d8"))
	if !st.FiftyMoveReached {
		t.Errorf("FiftyMoveReached = false at clock %d", s.Board().HalfmoveClock)
	}
	applyAll(t, s, mv(chess.Pawn, "h2h3"))
	if got := s.Board().HalfmoveClock; got != 0 {
		t.Errorf("HalfmoveClock after pawn move = %d, want 0", got)
	}
}

func TestGameState_InsufficientMaterialAfterCapture(t *testing.T) {
	s := mustState(t, "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1")
	st := applyAll(t, s, mv(chess.King, "e1d2"))
	if !st.InsufficientMaterial {
		t.Error("InsufficientMaterial = false after KxR leaves bare kings")
	}
	if !st.HasLegalMoves {
		t.Error("bare kings still have legal moves")
	}
}

func TestGameState_RejectsPositionWithSideNotToMoveInCheck(t *testing.T) {
	_, err := NewGameStateFromFEN("4k3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	if !errors.Is(err, pgnerrors.ErrInvalidFEN) {
		t.Errorf("error = %v, want ErrInvalidFEN", err)
	}
}

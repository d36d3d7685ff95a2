package engine

import (
	"errors"
	"testing"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
	pgnerrors "github.com/lgbarn/pgn-endings-go/internal/errors"
)

func TestNewBoardFromFEN(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		wantErr bool
		checkFn func(*chess.Board) bool
	}{
		{
			name: "initial position",
			fen:  InitialFEN,
			checkFn: func(b *chess.Board) bool {
				return b.Get('e', '1') == chess.W(chess.King) &&
					b.Get('e', '8') == chess.B(chess.King) &&
					b.Get('e', '2') == chess.W(chess.Pawn) &&
					b.Get('e', '7') == chess.B(chess.Pawn) &&
					b.ToMove == chess.White &&
					b.Castling == chess.AllCastling
			},
		},
		{
			name: "after 1.e4",
			fen:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			checkFn: func(b *chess.Board) bool {
				return b.Get('e', '4') == chess.W(chess.Pawn) &&
					b.Get('e', '2') == chess.Empty &&
					b.ToMove == chess.Black &&
					b.EnPassant &&
					b.EPCol == 'e' &&
					b.EPRank == '3'
			},
		},
		{
			name: "no castling rights",
			fen:  "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w - - 0 1",
			checkFn: func(b *chess.Board) bool {
				return b.Castling == chess.NoCastling
			},
		},
		{
			name: "clocks",
			fen:  "4k3/8/8/8/8/8/8/4K3 b - - 37 90",
			checkFn: func(b *chess.Board) bool {
				return b.HalfmoveClock == 37 && b.MoveNumber == 90 && b.BKingCol == 'e' && b.BKingRank == '8'
			},
		},
		{name: "empty string", fen: "", wantErr: true},
		{name: "seven ranks", fen: "8/8/8/8/8/8/8 w - - 0 1", wantErr: true},
		{name: "short rank", fen: "4k3/8/8/8/8/8/8/4K2 w - - 0 1", wantErr: true},
		{name: "bad piece", fen: "4k3/8/8/8/8/8/8/4X3 w - - 0 1", wantErr: true},
		{name: "two white kings", fen: "4k3/8/8/8/8/8/8/3KK3 w - - 0 1", wantErr: true},
		{name: "bad side", fen: "4k3/8/8/8/8/8/8/4K3 x - - 0 1", wantErr: true},
		{name: "chess960 castling", fen: "4k3/8/8/8/8/8/8/4K3 w Hh - 0 1", wantErr: true},
		{name: "bad en passant rank", fen: "4k3/8/8/8/8/8/8/4K3 w - e4 0 1", wantErr: true},
		{name: "bad clock", fen: "4k3/8/8/8/8/8/8/4K3 w - - x 1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoardFromFEN(tt.fen)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBoardFromFEN(%q) error = %v, wantErr %v", tt.fen, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, pgnerrors.ErrInvalidFEN) {
					t.Errorf("error %v does not wrap ErrInvalidFEN", err)
				}
				return
			}
			if tt.checkFn != nil && !tt.checkFn(board) {
				t.Errorf("NewBoardFromFEN(%q) board check failed", tt.fen)
			}
		})
	}
}

func TestBoardToFEN_RoundTrip(t *testing.T) {
	fens := []string{
		InitialFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K3 b - - 99 120",
		"r3k3/8/8/8/8/8/8/4K2R w Kq - 3 30",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			board, err := NewBoardFromFEN(fen)
			if err != nil {
				t.Fatalf("NewBoardFromFEN(%q) failed: %v", fen, err)
			}
			if got := BoardToFEN(board); got != fen {
				t.Errorf("BoardToFEN() = %q, want %q", got, fen)
			}
		})
	}
}

func TestNewInitialBoardMatchesFEN(t *testing.T) {
	if got := BoardToFEN(NewInitialBoard()); got != InitialFEN {
		t.Errorf("BoardToFEN(NewInitialBoard()) = %q, want %q", got, InitialFEN)
	}
}

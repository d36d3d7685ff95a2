// Package hashing provides position keys for repetition counting and
// duplicate detection for game identifiers.
package hashing

import "github.com/lgbarn/pgn-endings-go/internal/chess"

// zobristTable holds one random key per (coloured piece, square) plus keys
// for side to move, castling rights and en-passant file.
type zobristTable struct {
	pieces    [2][chess.NumPieceValues][chess.BoardSize * chess.BoardSize]uint64
	blackMove uint64
	castling  [16]uint64
	epFile    [chess.BoardSize]uint64
}

var zobrist = newZobristTable(0x9E3779B97F4A7C15)

// splitmix64 gives a fixed, platform-independent key sequence so that keys
// are stable across runs.
func splitmix64(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func newZobristTable(seed uint64) *zobristTable {
	t := &zobristTable{}
	state := seed
	for c := 0; c < 2; c++ {
		for p := chess.Pawn; p <= chess.King; p++ {
			for sq := range t.pieces[c][p] {
				t.pieces[c][p][sq] = splitmix64(&state)
			}
		}
	}
	t.blackMove = splitmix64(&state)
	for i := range t.castling {
		t.castling[i] = splitmix64(&state)
	}
	for i := range t.epFile {
		t.epFile[i] = splitmix64(&state)
	}
	return t
}

// PlacementHash hashes piece placement only.
func PlacementHash(board *chess.Board) uint64 {
	var h uint64
	for col := chess.Hedge; col < chess.Hedge+chess.BoardSize; col++ {
		for rank := chess.Hedge; rank < chess.Hedge+chess.BoardSize; rank++ {
			p := board.GetByIndex(col, rank)
			if !chess.IsOccupied(p) {
				continue
			}
			sq := (col-chess.Hedge)*chess.BoardSize + (rank - chess.Hedge)
			h ^= zobrist.pieces[chess.ExtractColour(p)][chess.ExtractPiece(p)][sq]
		}
	}
	return h
}

// PositionKey returns the repetition key of a position: placement, side to
// move, castling rights and, when includeEP is set, the en-passant file.
// Callers pass includeEP only when an en-passant capture is actually legal.
func PositionKey(board *chess.Board, includeEP bool) uint64 {
	h := PlacementHash(board)
	if board.ToMove == chess.Black {
		h ^= zobrist.blackMove
	}
	h ^= zobrist.castling[board.Castling&chess.AllCastling]
	if includeEP && board.EnPassant {
		h ^= zobrist.epFile[board.EPCol-chess.ColBase]
	}
	return h
}

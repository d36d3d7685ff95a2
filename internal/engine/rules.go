package engine

import "github.com/lgbarn/pgn-endings-go/internal/chess"

// material summarizes one side's non-king pieces.
type material struct {
	pawns, knights, rooks, queens int
	lightBishops, darkBishops     int
}

func (m material) bishops() int { return m.lightBishops + m.darkBishops }

func (m material) minors() int { return m.knights + m.bishops() }

func (m material) heavyOrPawn() bool { return m.pawns+m.rooks+m.queens > 0 }

func countMaterial(board *chess.Board) (white, black material) {
	for rank := chess.Rank(chess.FirstRank); rank <= chess.Rank(chess.LastRank); rank++ {
		for col := chess.Col(chess.FirstCol); col <= chess.Col(chess.LastCol); col++ {
			piece := board.Get(col, rank)
			if !chess.IsOccupied(piece) {
				continue
			}
			m := &black
			if chess.ExtractColour(piece) == chess.White {
				m = &white
			}
			switch chess.ExtractPiece(piece) {
			case chess.Pawn:
				m.pawns++
			case chess.Knight:
				m.knights++
			case chess.Bishop:
				if chess.Sq(col, rank).IsLight() {
					m.lightBishops++
				} else {
					m.darkBishops++
				}
			case chess.Rook:
				m.rooks++
			case chess.Queen:
				m.queens++
			}
		}
	}
	return white, black
}

// HasInsufficientMaterial returns true if neither side retains enough
// material to mate, which is an automatic draw:
// - K vs K
// - K+B vs K or K+N vs K
// - K+B vs K+B with both bishops on the same square colour
func HasInsufficientMaterial(board *chess.Board) bool {
	white, black := countMaterial(board)
	if white.heavyOrPawn() || black.heavyOrPawn() {
		return false
	}

	switch {
	case white.minors() == 0 && black.minors() == 0:
		return true
	case white.minors() == 0 && black.minors() == 1,
		black.minors() == 0 && white.minors() == 1:
		return true
	case white.minors() == 1 && black.minors() == 1 && white.bishops() == 1 && black.bishops() == 1:
		return white.lightBishops == black.lightBishops
	}
	return false
}

// CanForceMate reports whether the given side has material that can force
// mate against a bare king: any pawn, rook or queen, bishops on both square
// colours, or bishop and knight together.
func CanForceMate(board *chess.Board, colour chess.Colour) bool {
	m, other := countMaterial(board)
	if colour == chess.Black {
		m = other
	}
	switch {
	case m.heavyOrPawn():
		return true
	case m.lightBishops > 0 && m.darkBishops > 0:
		return true
	case m.bishops() > 0 && m.knights > 0:
		return true
	}
	return false
}

package engine

import "github.com/lgbarn/pgn-endings-go/internal/chess"

var (
	knightOffsets  = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets    = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs   = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs   = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	allSlidingDirs = append(append([][2]int{}, diagonalDirs...), straightDirs...)
)

// offset returns the square displaced by (dc, dr). The result may lie off
// the board; Board.Get reports such squares as Off.
func offset(col chess.Col, rank chess.Rank, dc, dr int) (chess.Col, chess.Rank) {
	return chess.Col(int(col) + dc), chess.Rank(int(rank) + dr)
}

// IsInCheck returns true if the given colour's king is in check.
// A side without a king is never in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	king := board.KingSquare(colour)
	if board.At(king) != chess.MakeColouredPiece(colour, chess.King) {
		var ok bool
		king, ok = findKing(board, colour)
		if !ok {
			return false
		}
	}
	return IsSquareAttacked(board, king.Col, king.Rank, colour.Opposite())
}

// findKing finds the king of the given colour on the board.
func findKing(board *chess.Board, colour chess.Colour) (chess.Square, bool) {
	king := chess.MakeColouredPiece(colour, chess.King)
	for col := chess.Col('a'); col <= 'h'; col++ {
		for rank := chess.Rank('1'); rank <= '8'; rank++ {
			if board.Get(col, rank) == king {
				return chess.Sq(col, rank), true
			}
		}
	}
	return chess.Square{}, false
}

// IsSquareAttacked returns true if the square is attacked by the given colour.
func IsSquareAttacked(board *chess.Board, col chess.Col, rank chess.Rank, byColour chess.Colour) bool {
	// Pawns attack from one rank behind, relative to their direction of travel.
	pawn := chess.MakeColouredPiece(byColour, chess.Pawn)
	pawnRank := -chess.ColourOffset(byColour)
	for _, dc := range []int{-1, 1} {
		if board.Get(offset(col, rank, dc, pawnRank)) == pawn {
			return true
		}
	}

	knight := chess.MakeColouredPiece(byColour, chess.Knight)
	for _, o := range knightOffsets {
		if board.Get(offset(col, rank, o[0], o[1])) == knight {
			return true
		}
	}

	king := chess.MakeColouredPiece(byColour, chess.King)
	for _, o := range kingOffsets {
		if board.Get(offset(col, rank, o[0], o[1])) == king {
			return true
		}
	}

	queen := chess.MakeColouredPiece(byColour, chess.Queen)
	if rayAttacked(board, col, rank, diagonalDirs, chess.MakeColouredPiece(byColour, chess.Bishop), queen) {
		return true
	}
	return rayAttacked(board, col, rank, straightDirs, chess.MakeColouredPiece(byColour, chess.Rook), queen)
}

// rayAttacked walks each direction until the first occupied square and
// reports whether it holds one of the two given sliders.
func rayAttacked(board *chess.Board, col chess.Col, rank chess.Rank, dirs [][2]int, slider, queen chess.Piece) bool {
	for _, dir := range dirs {
		c, r := offset(col, rank, dir[0], dir[1])
		for {
			piece := board.Get(c, r)
			if piece == chess.Empty {
				c, r = offset(c, r, dir[0], dir[1])
				continue
			}
			if piece == slider || piece == queen {
				return true
			}
			break // Blocked or off the board
		}
	}
	return false
}

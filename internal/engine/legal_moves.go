package engine

import "github.com/lgbarn/pgn-endings-go/internal/chess"

var promotionPieces = []chess.Piece{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// LegalMoves returns every legal move for the side to move.
func LegalMoves(board *chess.Board) []chess.Move {
	colour := board.ToMove
	pseudo := pseudoLegalMoves(board, colour)
	legal := pseudo[:0]
	for _, m := range pseudo {
		if tryMove(board, m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(board *chess.Board) bool {
	for _, m := range pseudoLegalMoves(board, board.ToMove) {
		if tryMove(board, m) {
			return true
		}
	}
	return false
}

// tryMove makes a move on a copied board and reports whether it leaves the
// mover's king safe.
func tryMove(board *chess.Board, m chess.Move) bool {
	testBoard := board.Copy()
	colour := testBoard.ToMove
	makeMove(testBoard, m)
	return !IsInCheck(testBoard, colour)
}

// pseudoLegalMoves generates moves that obey piece movement rules but may
// leave the mover's king in check. Castling is only generated when the king
// does not start, pass or land on an attacked square.
func pseudoLegalMoves(board *chess.Board, colour chess.Colour) []chess.Move {
	moves := make([]chess.Move, 0, 48)
	for col := chess.Col('a'); col <= 'h'; col++ {
		for rank := chess.Rank('1'); rank <= '8'; rank++ {
			piece := board.Get(col, rank)
			if !chess.IsOccupied(piece) || chess.ExtractColour(piece) != colour {
				continue
			}
			from := chess.Sq(col, rank)
			switch chess.ExtractPiece(piece) {
			case chess.Pawn:
				moves = appendPawnMoves(moves, board, from, colour)
			case chess.Knight:
				moves = appendStepMoves(moves, board, from, chess.Knight, colour, knightOffsets)
			case chess.Bishop:
				moves = appendSlidingMoves(moves, board, from, chess.Bishop, colour, diagonalDirs)
			case chess.Rook:
				moves = appendSlidingMoves(moves, board, from, chess.Rook, colour, straightDirs)
			case chess.Queen:
				moves = appendSlidingMoves(moves, board, from, chess.Queen, colour, allSlidingDirs)
			case chess.King:
				moves = appendStepMoves(moves, board, from, chess.King, colour, kingOffsets)
				moves = appendCastlingMoves(moves, board, from, colour)
			}
		}
	}
	return moves
}

// target classifies a destination square for a piece of the given colour.
// ok is false for off-board squares and squares held by our own pieces.
func target(board *chess.Board, col chess.Col, rank chess.Rank, colour chess.Colour) (captured chess.Piece, ok bool) {
	p := board.Get(col, rank)
	switch {
	case p == chess.Off:
		return chess.Empty, false
	case p == chess.Empty:
		return chess.Empty, true
	case chess.ExtractColour(p) == colour:
		return chess.Empty, false
	default:
		return chess.ExtractPiece(p), true
	}
}

func newMove(from, to chess.Square, piece, captured chess.Piece) chess.Move {
	flag := chess.Normal
	if captured != chess.Empty {
		flag = chess.Capture
	}
	return chess.Move{From: from, To: to, Piece: piece, Captured: captured, Promoted: chess.Empty, Flag: flag}
}

func appendStepMoves(moves []chess.Move, board *chess.Board, from chess.Square, piece chess.Piece, colour chess.Colour, offsets [][2]int) []chess.Move {
	for _, o := range offsets {
		col, rank := offset(from.Col, from.Rank, o[0], o[1])
		if captured, ok := target(board, col, rank, colour); ok {
			moves = append(moves, newMove(from, chess.Sq(col, rank), piece, captured))
		}
	}
	return moves
}

func appendSlidingMoves(moves []chess.Move, board *chess.Board, from chess.Square, piece chess.Piece, colour chess.Colour, dirs [][2]int) []chess.Move {
	for _, dir := range dirs {
		col, rank := offset(from.Col, from.Rank, dir[0], dir[1])
		for {
			captured, ok := target(board, col, rank, colour)
			if !ok {
				break
			}
			moves = append(moves, newMove(from, chess.Sq(col, rank), piece, captured))
			if captured != chess.Empty {
				break
			}
			col, rank = offset(col, rank, dir[0], dir[1])
		}
	}
	return moves
}

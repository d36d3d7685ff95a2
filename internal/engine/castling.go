package engine

import "github.com/lgbarn/pgn-endings-go/internal/chess"

// castlingCorners maps squares to the rights lost when a piece leaves or
// arrives there: the king's home square and the four rook corners.
var castlingCorners = map[chess.Square]chess.CastlingRights{
	chess.Sq('e', '1'): chess.WhiteKingside | chess.WhiteQueenside,
	chess.Sq('h', '1'): chess.WhiteKingside,
	chess.Sq('a', '1'): chess.WhiteQueenside,
	chess.Sq('e', '8'): chess.BlackKingside | chess.BlackQueenside,
	chess.Sq('h', '8'): chess.BlackKingside,
	chess.Sq('a', '8'): chess.BlackQueenside,
}

// updateCastlingRights revokes rights when the king or a rook moves, or a
// rook is captured on its home square.
func updateCastlingRights(board *chess.Board, m chess.Move) {
	board.Castling &^= castlingCorners[m.From]
	board.Castling &^= castlingCorners[m.To]
}

// appendCastlingMoves generates castling for a king on its home square.
// The king may not castle out of, through or into check.
func appendCastlingMoves(moves []chess.Move, board *chess.Board, from chess.Square, colour chess.Colour) []chess.Move {
	home := chess.HomeRank(colour)
	if from != chess.Sq('e', home) {
		return moves
	}
	enemy := colour.Opposite()
	rook := chess.MakeColouredPiece(colour, chess.Rook)

	if board.Castling.Has(chess.KingsideRight(colour)) &&
		board.Get('h', home) == rook &&
		board.Get('f', home) == chess.Empty && board.Get('g', home) == chess.Empty &&
		!anyAttacked(board, home, enemy, 'e', 'f', 'g') {
		moves = append(moves, chess.Move{
			From: from, To: chess.Sq('g', home), Piece: chess.King,
			Captured: chess.Empty, Promoted: chess.Empty, Flag: chess.CastleKingside,
		})
	}

	if board.Castling.Has(chess.QueensideRight(colour)) &&
		board.Get('a', home) == rook &&
		board.Get('b', home) == chess.Empty && board.Get('c', home) == chess.Empty && board.Get('d', home) == chess.Empty &&
		!anyAttacked(board, home, enemy, 'e', 'd', 'c') {
		moves = append(moves, chess.Move{
			From: from, To: chess.Sq('c', home), Piece: chess.King,
			Captured: chess.Empty, Promoted: chess.Empty, Flag: chess.CastleQueenside,
		})
	}
	return moves
}

func anyAttacked(board *chess.Board, rank chess.Rank, by chess.Colour, cols ...chess.Col) bool {
	for _, col := range cols {
		if IsSquareAttacked(board, col, rank, by) {
			return true
		}
	}
	return false
}

// castleRookSquares returns the rook's origin and destination for a castle.
func castleRookSquares(m chess.Move) (from, to chess.Square) {
	rank := m.From.Rank
	if m.Flag == chess.CastleKingside {
		return chess.Sq('h', rank), chess.Sq('f', rank)
	}
	return chess.Sq('a', rank), chess.Sq('d', rank)
}

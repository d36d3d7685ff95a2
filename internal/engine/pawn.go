package engine

import "github.com/lgbarn/pgn-endings-go/internal/chess"

// pawnStartRank is the rank from which a pawn may advance two squares.
func pawnStartRank(colour chess.Colour) chess.Rank {
	if colour == chess.White {
		return '2'
	}
	return '7'
}

// appendPawnMoves generates pushes, double pushes, captures, en passant and
// promotions for the pawn on from.
func appendPawnMoves(moves []chess.Move, board *chess.Board, from chess.Square, colour chess.Colour) []chess.Move {
	dir := chess.ColourOffset(colour)
	promoRank := chess.PromotionRank(colour)

	col, rank := offset(from.Col, from.Rank, 0, dir)
	if board.Get(col, rank) == chess.Empty {
		moves = appendPawnMove(moves, from, chess.Sq(col, rank), chess.Empty, promoRank)
		if from.Rank == pawnStartRank(colour) {
			col2, rank2 := offset(from.Col, from.Rank, 0, 2*dir)
			if board.Get(col2, rank2) == chess.Empty {
				moves = append(moves, newMove(from, chess.Sq(col2, rank2), chess.Pawn, chess.Empty))
			}
		}
	}

	for _, dc := range []int{-1, 1} {
		col, rank := offset(from.Col, from.Rank, dc, dir)
		to := chess.Sq(col, rank)
		p := board.Get(col, rank)
		switch {
		case chess.IsOccupied(p) && chess.ExtractColour(p) != colour:
			moves = appendPawnMove(moves, from, to, chess.ExtractPiece(p), promoRank)
		case p == chess.Empty && board.EnPassant && col == board.EPCol && rank == board.EPRank:
			moves = append(moves, chess.Move{
				From: from, To: to, Piece: chess.Pawn,
				Captured: chess.Pawn, Promoted: chess.Empty, Flag: chess.EnPassant,
			})
		}
	}
	return moves
}

// appendPawnMove adds a single pawn move, expanding it into the four
// promotion choices when the pawn reaches its last rank.
func appendPawnMove(moves []chess.Move, from, to chess.Square, captured chess.Piece, promoRank chess.Rank) []chess.Move {
	if to.Rank != promoRank {
		return append(moves, newMove(from, to, chess.Pawn, captured))
	}
	for _, promoted := range promotionPieces {
		moves = append(moves, chess.Move{
			From: from, To: to, Piece: chess.Pawn,
			Captured: captured, Promoted: promoted, Flag: chess.Promotion,
		})
	}
	return moves
}

// HasLegalEnPassant reports whether the side to move can legally capture en
// passant. Only then does the target square count towards repetition.
func HasLegalEnPassant(board *chess.Board) bool {
	if !board.EnPassant {
		return false
	}
	colour := board.ToMove
	pawn := chess.MakeColouredPiece(colour, chess.Pawn)
	ep := chess.Sq(board.EPCol, board.EPRank)
	for _, dc := range []int{-1, 1} {
		col, rank := offset(ep.Col, ep.Rank, dc, -chess.ColourOffset(colour))
		if board.Get(col, rank) != pawn {
			continue
		}
		m := chess.Move{
			From: chess.Sq(col, rank), To: ep, Piece: chess.Pawn,
			Captured: chess.Pawn, Promoted: chess.Empty, Flag: chess.EnPassant,
		}
		if tryMove(board, m) {
			return true
		}
	}
	return false
}

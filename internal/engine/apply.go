package engine

import "github.com/lgbarn/pgn-endings-go/internal/chess"

// makeMove applies a move that is known to be pseudo-legal. It updates
// placement, king locations, castling rights, en-passant target, clocks
// and the side to move. No legality checking is done here.
func makeMove(board *chess.Board, m chess.Move) {
	colour := board.ToMove
	moving := chess.MakeColouredPiece(colour, m.Piece)

	switch m.Flag {
	case chess.CastleKingside, chess.CastleQueenside:
		rookFrom, rookTo := castleRookSquares(m)
		board.Set(rookFrom.Col, rookFrom.Rank, chess.Empty)
		board.Set(rookTo.Col, rookTo.Rank, chess.MakeColouredPiece(colour, chess.Rook))
	case chess.EnPassant:
		// The captured pawn sits beside the moving pawn, not on the target.
		board.Set(m.To.Col, m.From.Rank, chess.Empty)
	}

	board.Set(m.From.Col, m.From.Rank, chess.Empty)
	if m.Flag == chess.Promotion {
		board.Set(m.To.Col, m.To.Rank, chess.MakeColouredPiece(colour, m.Promoted))
	} else {
		board.Set(m.To.Col, m.To.Rank, moving)
	}
	if m.Piece == chess.King {
		board.SetKingSquare(colour, m.To)
	}

	updateCastlingRights(board, m)

	board.ClearEnPassant()
	if m.Piece == chess.Pawn && abs(int(m.To.Rank)-int(m.From.Rank)) == 2 {
		board.EnPassant = true
		board.EPCol = m.From.Col
		board.EPRank = chess.Rank((int(m.From.Rank) + int(m.To.Rank)) / 2)
	}

	if m.Piece == chess.Pawn || m.IsCapture() {
		board.HalfmoveClock = 0
	} else {
		board.HalfmoveClock++
	}
	if colour == chess.Black {
		board.MoveNumber++
	}
	board.ToMove = colour.Opposite()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

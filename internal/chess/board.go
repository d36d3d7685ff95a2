package chess

// Board represents a chess position together with the game-state scalars
// needed to apply the rules: side to move, castling rights, en-passant
// target and the move clocks.
type Board struct {
	// The board squares with a hedge of 2 around for knight move calculation.
	// board[col][rank] where col and rank are 0-11 (with hedge).
	Squares [Hedge + BoardSize + Hedge][Hedge + BoardSize + Hedge]Piece

	// Who has the next move.
	ToMove Colour

	// The full-move number, incremented after Black moves.
	MoveNumber uint

	Castling CastlingRights

	// Keep track of where the two kings are for check detection.
	WKingCol  Col
	WKingRank Rank
	BKingCol  Col
	BKingRank Rank

	// Set only immediately after a two-square pawn advance. EPCol and EPRank
	// name the square passed over.
	EnPassant bool
	EPRank    Rank
	EPCol     Col

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock uint
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	b := &Board{
		ToMove:     White,
		MoveNumber: 1,
	}
	// Initialize all squares to Off (hedge) or Empty
	for col := 0; col < Hedge+BoardSize+Hedge; col++ {
		for rank := 0; rank < Hedge+BoardSize+Hedge; rank++ {
			if col >= Hedge && col < Hedge+BoardSize &&
				rank >= Hedge && rank < Hedge+BoardSize {
				b.Squares[col][rank] = Empty
			} else {
				b.Squares[col][rank] = Off
			}
		}
	}
	return b
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	for col := Hedge; col < Hedge+BoardSize; col++ {
		for rank := Hedge; rank < Hedge+BoardSize; rank++ {
			b.Squares[col][rank] = Empty
		}
	}

	backRank := []Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < BoardSize; col++ {
		b.Squares[col+Hedge][Hedge] = W(backRank[col])
		b.Squares[col+Hedge][Hedge+1] = W(Pawn)
		b.Squares[col+Hedge][Hedge+6] = B(Pawn)
		b.Squares[col+Hedge][Hedge+7] = B(backRank[col])
	}

	b.WKingCol, b.WKingRank = 'e', '1'
	b.BKingCol, b.BKingRank = 'e', '8'

	b.Castling = AllCastling
	b.ToMove = White
	b.MoveNumber = 1
	b.EnPassant = false
	b.HalfmoveClock = 0
}

// Get returns the piece at the given coordinates (using char coords 'a'-'h', '1'-'8').
func (b *Board) Get(col Col, rank Rank) Piece {
	c := ColConvert(col)
	r := RankConvert(rank)
	if c == 0 || r == 0 {
		return Off
	}
	return b.Squares[c][r]
}

// Set places a piece at the given coordinates.
func (b *Board) Set(col Col, rank Rank, piece Piece) {
	c := ColConvert(col)
	r := RankConvert(rank)
	if c != 0 && r != 0 {
		b.Squares[c][r] = piece
	}
}

// At returns the piece on a square.
func (b *Board) At(sq Square) Piece {
	return b.Get(sq.Col, sq.Rank)
}

// GetByIndex returns the piece at the given board array indices.
func (b *Board) GetByIndex(col, rank int) Piece {
	return b.Squares[col][rank]
}

// KingSquare returns where the king of the given colour stands.
func (b *Board) KingSquare(colour Colour) Square {
	if colour == White {
		return Sq(b.WKingCol, b.WKingRank)
	}
	return Sq(b.BKingCol, b.BKingRank)
}

// SetKingSquare records the location of a king.
func (b *Board) SetKingSquare(colour Colour, sq Square) {
	if colour == White {
		b.WKingCol, b.WKingRank = sq.Col, sq.Rank
	} else {
		b.BKingCol, b.BKingRank = sq.Col, sq.Rank
	}
}

// EPSquare returns the en-passant target, if one is set.
func (b *Board) EPSquare() (Square, bool) {
	if !b.EnPassant {
		return Square{}, false
	}
	return Sq(b.EPCol, b.EPRank), true
}

// ClearEnPassant removes the en-passant target.
func (b *Board) ClearEnPassant() {
	b.EnPassant = false
	b.EPCol = 0
	b.EPRank = 0
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// Count returns how many of the given coloured piece are on the board.
func (b *Board) Count(colouredPiece Piece) int {
	n := 0
	for col := Hedge; col < Hedge+BoardSize; col++ {
		for rank := Hedge; rank < Hedge+BoardSize; rank++ {
			if b.Squares[col][rank] == colouredPiece {
				n++
			}
		}
	}
	return n
}

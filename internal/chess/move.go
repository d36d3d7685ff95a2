package chess

// MoveFlag categorizes a fully resolved move.
type MoveFlag int

const (
	Normal MoveFlag = iota
	Capture
	CastleKingside
	CastleQueenside
	EnPassant
	Promotion
)

var moveFlagNames = [...]string{"normal", "capture", "castle-kingside", "castle-queenside", "en-passant", "promotion"}

// String returns the string representation of a move flag.
func (f MoveFlag) String() string {
	if f >= 0 && int(f) < len(moveFlagNames) {
		return moveFlagNames[f]
	}
	return "unknown"
}

// Move is a fully disambiguated move. It is a value type and is never
// mutated after construction.
type Move struct {
	From Square
	To   Square

	// The piece type being moved.
	Piece Piece

	// The piece type captured (Empty if no capture). For en passant this is Pawn.
	Captured Piece

	// The piece type promoted to (Empty if not a promotion). A promoting
	// capture carries the Promotion flag and a non-empty Captured.
	Promoted Piece

	Flag MoveFlag
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m.Captured != Empty && m.Captured != Off
}

// IsPromotion returns true if this move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Flag == Promotion
}

// IsCastle returns true if this move is a castling move.
func (m Move) IsCastle() bool {
	return m.Flag == CastleKingside || m.Flag == CastleQueenside
}

// UCI returns the long algebraic form of the move, e.g. "e7e8q".
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	if m.Promoted != Empty && m.Promoted != Off {
		s += string(m.Promoted.Letter() + ('a' - 'A'))
	}
	return s
}

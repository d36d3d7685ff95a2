package parser

import (
	"fmt"
	"strings"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
	"github.com/lgbarn/pgn-endings-go/internal/errors"
)

// Notation is the syntactic content of one SAN token, before it is
// resolved against a position.
type Notation struct {
	Text string

	// Piece is Pawn for pawn moves and King for castling.
	Piece chess.Piece

	// Origin markers; zero when the token does not give them.
	FromCol  chess.Col
	FromRank chess.Rank

	To chess.Square

	Capture   bool
	Promoted  chess.Piece // Empty unless the token names a promotion piece
	Castle    chess.MoveFlag
	EnPassant bool // explicit "ep" / "e.p." suffix
	Check     bool
	Mate      bool
}

// IsCastle reports whether the token is a castling move.
func (n Notation) IsCastle() bool {
	return n.Castle == chess.CastleKingside || n.Castle == chess.CastleQueenside
}

// isCol returns true if c is a valid column (file) character.
func isCol(c byte) bool {
	return c >= chess.FirstCol && c <= chess.LastCol
}

// isRank returns true if c is a valid rank character.
func isRank(c byte) bool {
	return c >= chess.FirstRank && c <= chess.LastRank
}

// isCapture returns true if c is a capture or separator character.
func isCapture(c byte) bool {
	return c == 'x' || c == 'X' || c == ':'
}

// isCastlingChar returns true if c is a castling character.
func isCastlingChar(c byte) bool {
	return c == 'O' || c == '0' || c == 'o'
}

// decoder walks a token one character at a time.
type decoder struct {
	s   string
	pos int
}

func (d *decoder) cur() byte {
	if d.pos >= len(d.s) {
		return 0
	}
	return d.s[d.pos]
}

func (d *decoder) peek(n int) byte {
	if d.pos+n >= len(d.s) {
		return 0
	}
	return d.s[d.pos+n]
}

func (d *decoder) advance() {
	if d.pos < len(d.s) {
		d.pos++
	}
}

func (d *decoder) rest() string {
	if d.pos >= len(d.s) {
		return ""
	}
	return d.s[d.pos:]
}

func parseFailure(token, format string, args ...any) error {
	return fmt.Errorf("%q: %s: %w", token, fmt.Sprintf(format, args...), errors.ErrParseFailure)
}

// DecodeMove decodes a SAN token. It accepts the forms produced by common
// PGN writers: "e4", "exd5", "e8=Q", "Nf3", "Nbd7", "R1e2", "Qh4xe1",
// "O-O", "0-0-0", long algebraic "Ng1f3", with optional check, mate and
// annotation suffixes. A promotion marker without a piece letter is a
// parse failure.
func DecodeMove(token string) (Notation, error) {
	n := Notation{Text: token, Promoted: chess.Empty, Castle: chess.Normal}
	if token == "" {
		return n, parseFailure(token, "empty token")
	}
	d := &decoder{s: token}

	switch c := d.cur(); {
	case isCol(c):
		n.Piece = chess.Pawn
		if err := decodeSquares(d, &n); err != nil {
			return n, err
		}
		if err := decodePromotion(d, &n); err != nil {
			return n, err
		}
	case chess.PieceFromLetter(c) != chess.Empty && c != 'P':
		n.Piece = chess.PieceFromLetter(c)
		d.advance()
		if err := decodeSquares(d, &n); err != nil {
			return n, err
		}
	case c == 'P' && isCol(d.peek(1)):
		// Explicit pawn letter, as some writers emit.
		n.Piece = chess.Pawn
		d.advance()
		if err := decodeSquares(d, &n); err != nil {
			return n, err
		}
		if err := decodePromotion(d, &n); err != nil {
			return n, err
		}
	case isCastlingChar(c):
		if err := decodeCastle(d, &n); err != nil {
			return n, err
		}
	default:
		return n, parseFailure(token, "unrecognised move")
	}

	if err := decodeSuffix(d, &n); err != nil {
		return n, err
	}
	return n, nil
}

// decodeSquares reads the origin markers, capture marker and destination.
// The last file/rank pair in the token is the destination; anything before
// it is an origin marker.
func decodeSquares(d *decoder, n *Notation) error {
	var cols []chess.Col
	var ranks []chess.Rank
	var order []byte // 'c' or 'r', in reading order

	for {
		c := d.cur()
		switch {
		case c == 'e' && (d.peek(1) == 'p' || d.peek(1) == '.'):
			return assignSquares(n, cols, ranks, order)
		case isCol(c):
			cols = append(cols, chess.Col(c))
			order = append(order, 'c')
		case isRank(c):
			ranks = append(ranks, chess.Rank(c))
			order = append(order, 'r')
		case isCapture(c):
			n.Capture = true
		case c == '-' && isCol(d.peek(1)):
			// Long algebraic separator, e.g. "e2-e4".
		default:
			return assignSquares(n, cols, ranks, order)
		}
		d.advance()
	}
}

func assignSquares(n *Notation, cols []chess.Col, ranks []chess.Rank, order []byte) error {
	k := len(order)
	if k < 2 || order[k-2] != 'c' || order[k-1] != 'r' {
		return parseFailure(n.Text, "missing destination square")
	}
	n.To = chess.Sq(cols[len(cols)-1], ranks[len(ranks)-1])

	switch origin := string(order[:k-2]); origin {
	case "":
	case "c":
		n.FromCol = cols[0]
	case "r":
		n.FromRank = ranks[0]
	case "cr":
		n.FromCol, n.FromRank = cols[0], ranks[0]
	default:
		return parseFailure(n.Text, "malformed origin %q", origin)
	}
	if n.Piece == chess.Pawn && n.FromRank != 0 && n.FromCol == 0 {
		return parseFailure(n.Text, "pawn move with rank-only origin")
	}
	return nil
}

// decodePromotion reads "=Q", "Q" or "=q" after a pawn destination.
func decodePromotion(d *decoder, n *Notation) error {
	explicit := d.cur() == '='
	if explicit {
		d.advance()
	}
	c := d.cur()
	if explicit && c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	piece := chess.PieceFromLetter(c)
	switch {
	case piece == chess.Empty || piece == chess.Pawn || piece == chess.King:
		if explicit {
			return parseFailure(n.Text, "promotion without a valid piece")
		}
		return nil
	case n.To.Rank != chess.FirstRank && n.To.Rank != chess.LastRank:
		return parseFailure(n.Text, "promotion off the last rank")
	}
	n.Promoted = piece
	d.advance()
	return nil
}

// decodeCastle reads "O-O", "O-O-O" and the zero and lowercase variants.
func decodeCastle(d *decoder, n *Notation) error {
	count := 0
	for isCastlingChar(d.cur()) {
		count++
		d.advance()
		if d.cur() == '-' && isCastlingChar(d.peek(1)) {
			d.advance()
		}
	}
	n.Piece = chess.King
	switch count {
	case 2:
		n.Castle = chess.CastleKingside
	case 3:
		n.Castle = chess.CastleQueenside
	default:
		return parseFailure(n.Text, "malformed castling")
	}
	return nil
}

// decodeSuffix accepts check and mate markers, an en passant marker and
// annotation glyphs such as "!?".
func decodeSuffix(d *decoder, n *Notation) error {
	rest := d.rest()
	if strings.HasPrefix(rest, "e.p.") || strings.HasPrefix(rest, "ep") {
		if n.Piece != chess.Pawn || !n.Capture {
			return parseFailure(n.Text, "en passant marker on a non-capture")
		}
		n.EnPassant = true
		rest = strings.TrimPrefix(strings.TrimPrefix(rest, "e.p."), "ep")
	}
	for _, c := range []byte(rest) {
		switch c {
		case '+':
			n.Check = true
		case '#':
			n.Mate = true
		case '!', '?':
		default:
			return parseFailure(n.Text, "trailing %q", rest)
		}
	}
	return nil
}

package engine

import (
	"fmt"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
	"github.com/lgbarn/pgn-endings-go/internal/errors"
	"github.com/lgbarn/pgn-endings-go/internal/hashing"
)

// FiftyMovePlies is the half-move clock value at which the fifty-move rule
// is reached.
const FiftyMovePlies = 100

// Status holds the flags derived from a position after a move. Every field
// is a pure function of the position and its history.
type Status struct {
	InCheck        bool
	HasLegalMoves  bool
	LegalMoveCount int

	// RepetitionCount is how often the current position has occurred,
	// including now. Threefold repetition is reached at 3.
	RepetitionCount int

	InsufficientMaterial bool
	FiftyMoveReached     bool
}

// Checkmate reports no legal moves while in check.
func (s Status) Checkmate() bool {
	return !s.HasLegalMoves && s.InCheck
}

// Stalemate reports no legal moves while not in check.
func (s Status) Stalemate() bool {
	return !s.HasLegalMoves && !s.InCheck
}

// GameState is the full replay state of one game. It is owned by a single
// replay session and never shared.
type GameState struct {
	board   *chess.Board
	legal   []chess.Move
	history []uint64
	counts  map[uint64]int
	status  Status
	plies   int
}

// NewGameState creates a state at the standard initial position.
func NewGameState() *GameState {
	return newGameState(NewInitialBoard())
}

// NewGameStateFromFEN creates a state from a FEN position. The side not to
// move must not be in check.
func NewGameStateFromFEN(fen string) (*GameState, error) {
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	if IsInCheck(board, board.ToMove.Opposite()) {
		return nil, fmt.Errorf("side not to move is in check: %w", errors.ErrInvalidFEN)
	}
	return newGameState(board), nil
}

func newGameState(board *chess.Board) *GameState {
	s := &GameState{
		board:  board,
		counts: make(map[uint64]int),
	}
	s.refresh()
	return s
}

// refresh records the current position in the history and recomputes the
// legal move list and status flags.
func (s *GameState) refresh() {
	s.legal = LegalMoves(s.board)

	key := hashing.PositionKey(s.board, HasLegalEnPassant(s.board))
	s.history = append(s.history, key)
	s.counts[key]++

	s.status = Status{
		InCheck:              IsInCheck(s.board, s.board.ToMove),
		HasLegalMoves:        len(s.legal) > 0,
		LegalMoveCount:       len(s.legal),
		RepetitionCount:      s.counts[key],
		InsufficientMaterial: HasInsufficientMaterial(s.board),
		FiftyMoveReached:     s.board.HalfmoveClock >= FiftyMovePlies,
	}
}

// Apply plays a move. The move must match one of the legal moves of the
// current position by origin, destination, piece and promotion; the legal
// move's own capture and flag details are used. Illegal moves return an
// error wrapping errors.ErrIllegalMove and leave the state unchanged.
func (s *GameState) Apply(m chess.Move) (Status, error) {
	legal, ok := s.match(m)
	if !ok {
		return s.status, fmt.Errorf("%s %s: %w", m.Piece, m.UCI(), errors.ErrIllegalMove)
	}
	makeMove(s.board, legal)
	s.plies++
	s.refresh()
	return s.status, nil
}

func (s *GameState) match(m chess.Move) (chess.Move, bool) {
	promoted := m.Promoted
	if promoted == chess.Off {
		promoted = chess.Empty
	}
	for _, l := range s.legal {
		if l.From == m.From && l.To == m.To && l.Piece == m.Piece && l.Promoted == promoted {
			return l, true
		}
	}
	return chess.Move{}, false
}

// LegalMoves returns the legal moves of the current position. The slice
// must not be modified.
func (s *GameState) LegalMoves() []chess.Move {
	return s.legal
}

// Status returns the flags of the current position.
func (s *GameState) Status() Status {
	return s.status
}

// Board returns a copy of the current board.
func (s *GameState) Board() *chess.Board {
	return s.board.Copy()
}

// ToMove returns the side to move.
func (s *GameState) ToMove() chess.Colour {
	return s.board.ToMove
}

// Plies returns the number of moves applied since the state was created.
func (s *GameState) Plies() int {
	return s.plies
}

// FEN returns the current position in FEN.
func (s *GameState) FEN() string {
	return BoardToFEN(s.board)
}

// History returns the repetition keys of every position reached, oldest
// first, starting with the initial position.
func (s *GameState) History() []uint64 {
	return append([]uint64(nil), s.history...)
}

// CanForceMate reports whether colour has mating material in the current
// position.
func (s *GameState) CanForceMate(colour chess.Colour) bool {
	return CanForceMate(s.board, colour)
}

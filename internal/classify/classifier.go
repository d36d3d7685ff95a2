package classify

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
	"github.com/lgbarn/pgn-endings-go/internal/engine"
	"github.com/lgbarn/pgn-endings-go/internal/errors"
	"github.com/lgbarn/pgn-endings-go/internal/parser"
)

// DefaultMaxPlies caps the replay of a single game.
const DefaultMaxPlies = 1024

var validate = validator.New()

// Classifier assigns end codes to game records. It holds no per-game state
// and is safe for concurrent use.
type Classifier struct {
	maxPlies int
	logger   *zap.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithMaxPlies sets the replay cap. Values below 1 keep the default.
func WithMaxPlies(n int) Option {
	return func(c *Classifier) {
		if n > 0 {
			c.maxPlies = n
		}
	}
}

// WithLogger sets the logger used for replay failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Classifier.
func New(opts ...Option) *Classifier {
	c := &Classifier{maxPlies: DefaultMaxPlies, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxPlies returns the replay cap.
func (c *Classifier) MaxPlies() int {
	return c.maxPlies
}

// Classify replays rec and returns its classification. The error is
// non-nil only when the record itself is malformed (missing identifier or
// an unrecognised result); the result then carries code 0. Replay failures
// are reported through a code 0 result with Detail set.
func (c *Classifier) Classify(rec chess.GameRecord) (Result, error) {
	res := newResult(&rec)
	if err := validateRecord(&rec); err != nil {
		res.Detail = err.Error()
		c.logger.Debug("invalid record", zap.String("game_id", rec.ID), zap.Error(err))
		return res, err
	}

	state, err := c.replay(&rec)
	if state != nil {
		res.Plies = state.Plies()
		res.FinalFEN = state.FEN()
	}
	if err != nil {
		res.Detail = err.Error()
		c.logger.Debug("replay failed",
			zap.String("game_id", rec.ID),
			zap.Int("ply", res.Plies),
			zap.Int("tokens", rec.PlyCount()),
			zap.Error(err))
		return res, nil
	}

	code, err := decide(&rec, state)
	if err != nil {
		res.Detail = err.Error()
		return res, nil
	}
	res.setCode(code)
	if code == Checkmate {
		res.IsDraw = false
		res.Winner = colourName(state.ToMove().Opposite())
	}
	return res, nil
}

func validateRecord(rec *chess.GameRecord) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var details []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			details = append(details, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	} else {
		details = append(details, err.Error())
	}
	return &errors.GameError{
		Err:    errors.Wrap(errors.ErrInvalidRecord, strings.Join(details, "; ")),
		GameID: rec.ID,
	}
}

// replay drives every token through the parser and the board. The returned
// state is the last position reached, also on failure.
func (c *Classifier) replay(rec *chess.GameRecord) (*engine.GameState, error) {
	state := engine.NewGameState()
	if rec.StartFEN != "" {
		var err error
		if state, err = engine.NewGameStateFromFEN(rec.StartFEN); err != nil {
			return nil, &errors.GameError{Err: err, GameID: rec.ID}
		}
	}

	for i, raw := range rec.Moves {
		token := parser.StripSuffix(strings.TrimSpace(raw))
		if token == "" {
			continue
		}
		ply := state.Plies() + 1
		fail := func(err error) (*engine.GameState, error) {
			return state, &errors.GameError{Err: err, GameID: rec.ID, PlyNum: ply, MoveText: raw}
		}

		if state.Plies() >= c.maxPlies {
			return fail(errors.Wrapf(errors.ErrTruncatedGame, "exceeds %d plies", c.maxPlies))
		}
		if status := state.Status(); !status.HasLegalMoves || status.InsufficientMaterial {
			return fail(errors.Wrapf(errors.ErrTruncatedGame, "%d moves after the game ended", len(rec.Moves)-i))
		}

		m, err := parser.ParseMove(token, state)
		if err != nil {
			return fail(err)
		}
		if _, err := state.Apply(m); err != nil {
			return fail(err)
		}
	}
	return state, nil
}

// decide applies the end-of-game precedence to the final position.
func decide(rec *chess.GameRecord, state *engine.GameState) (EndCode, error) {
	status := state.Status()
	label := normalizeLabel(rec.Termination)
	drawn := rec.IsDraw()

	switch {
	case status.Checkmate():
		return Checkmate, nil
	case status.Stalemate():
		return Stalemate, nil
	case rec.Mated:
		return Unknown, &errors.GameError{
			Err:    errors.Wrap(errors.ErrTruncatedGame, "mate marker on a position that is not mate"),
			GameID: rec.ID,
		}
	case drawn && status.RepetitionCount >= 3 && isRepetitionLabel(label):
		return ThreefoldRepetition, nil
	case drawn && status.FiftyMoveReached && isFiftyMoveLabel(label):
		return FiftyMoveRule, nil
	case drawn && label == labelInsufficient &&
		!state.CanForceMate(chess.White) && !state.CanForceMate(chess.Black):
		return InsufficientClaimed, nil
	case drawn && status.InsufficientMaterial:
		return InsufficientAutomatic, nil
	}

	switch {
	case rec.IsDecisive() && label == labelTimeForfeit:
		return TimeoutWin, nil
	case rec.IsDecisive() && label == labelNormal:
		return Resignation, nil
	case drawn && label == labelTimeForfeit:
		return TimeoutDrawInsufficient, nil
	case drawn:
		return AgreementDraw, nil
	}
	return Unknown, &errors.GameError{
		Err:    errors.Wrapf(errors.ErrTruncatedGame, "decisive result with termination %q", rec.Termination),
		GameID: rec.ID,
	}
}

package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSentinelErrors_Are(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"ErrInvalidFEN", ErrInvalidFEN, ErrInvalidFEN},
		{"ErrParseFailure", ErrParseFailure, ErrParseFailure},
		{"ErrIllegalMove", ErrIllegalMove, ErrIllegalMove},
		{"ErrTruncatedGame", ErrTruncatedGame, ErrTruncatedGame},
		{"ErrInvalidRecord", ErrInvalidRecord, ErrInvalidRecord},
		{"ErrInvalidConfig", ErrInvalidConfig, ErrInvalidConfig},
		{"ErrDuplicateGame", ErrDuplicateGame, ErrDuplicateGame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !Is(tt.err, tt.sentinel) {
				t.Errorf("Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	if errors.Is(ErrParseFailure, ErrIllegalMove) || errors.Is(ErrIllegalMove, ErrTruncatedGame) {
		t.Error("replay failure sentinels must be distinct")
	}
}

func TestGameError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *GameError
		contains []string
		want     string
	}{
		{
			name: "full context",
			err: &GameError{
				Err:      ErrIllegalMove,
				GameID:   "abcd1234",
				PlyNum:   12,
				MoveText: "Nxe5",
			},
			contains: []string{"game abcd1234", "ply 12", "Nxe5", "illegal move"},
		},
		{
			name:     "minimal context",
			err:      &GameError{Err: ErrParseFailure, GameID: "g1"},
			contains: []string{"game g1", "parse failure"},
		},
		{
			name: "no context",
			err:  &GameError{Err: ErrTruncatedGame},
			want: "truncated game",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("GameError.Error() = %q, should contain %q", msg, s)
				}
			}
			if tt.want != "" && msg != tt.want {
				t.Errorf("GameError.Error() = %q, want %q", msg, tt.want)
			}
		})
	}
}

func TestGameError_As(t *testing.T) {
	gameErr := &GameError{
		Err:      ErrIllegalMove,
		GameID:   "g3",
		PlyNum:   24,
		MoveText: "O-O-O",
	}
	wrapped := fmt.Errorf("processing failed: %w", gameErr)

	var extracted *GameError
	if !As(wrapped, &extracted) {
		t.Fatal("As() could not extract GameError")
	}
	if extracted.PlyNum != 24 {
		t.Errorf("PlyNum = %d, want 24", extracted.PlyNum)
	}
	if !Is(wrapped, ErrIllegalMove) {
		t.Error("Is(wrapped, ErrIllegalMove) = false, want true")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should be nil")
	}
	wrapped := Wrapf(ErrInvalidFEN, "parsing %q", "8/8")
	if !Is(wrapped, ErrInvalidFEN) {
		t.Error("Wrapf should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), `parsing "8/8"`) {
		t.Errorf("Wrapf should include context, got %q", wrapped.Error())
	}
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

package config

import (
	"fmt"
	"strings"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
	"github.com/lgbarn/pgn-endings-go/internal/errors"
)

// FilterConfig holds the intake filters applied before classification.
type FilterConfig struct {
	// ExcludeBots drops games where either player carries the BOT title.
	ExcludeBots bool `yaml:"exclude_bots"`

	// ExcludeTerminations drops games whose termination label is listed.
	ExcludeTerminations []string `yaml:"exclude_terminations"`
}

// NewFilterConfig drops bot games and games that did not finish over the
// board.
func NewFilterConfig() *FilterConfig {
	return &FilterConfig{
		ExcludeBots: true,
		ExcludeTerminations: []string{
			chess.TerminationUnterminated,
			chess.TerminationRulesInfraction,
			chess.TerminationAbandoned,
		},
	}
}

// Validate checks that the filter configuration is valid.
func (f *FilterConfig) Validate() error {
	for _, t := range f.ExcludeTerminations {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("empty termination in exclude list: %w", errors.ErrInvalidConfig)
		}
	}
	return nil
}

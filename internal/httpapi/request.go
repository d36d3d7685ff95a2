package httpapi

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
	"github.com/lgbarn/pgn-endings-go/internal/parser"
)

var validate = validator.New()

// MoveList accepts either PGN movetext ("1. e4 e5 2. Nf3") or a JSON
// array of SAN tokens.
type MoveList struct {
	Tokens []string
	Mated  bool
}

// UnmarshalJSON decodes a string or an array of strings.
func (m *MoveList) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		m.set(text)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("moves must be a string or a list of strings")
	}
	m.set(strings.Join(list, " "))
	return nil
}

func (m *MoveList) set(movetext string) {
	m.Tokens = parser.Tokenize(movetext)
	m.Mated = parser.EndsWithMate(movetext)
}

// ClassifyRequest is the body of POST /v1/classify.
type ClassifyRequest struct {
	ID          string   `json:"id" validate:"required,max=128"`
	Moves       MoveList `json:"moves"`
	Result      string   `json:"result" validate:"required,oneof=1-0 0-1 1/2-1/2"`
	Termination string   `json:"termination" validate:"max=64"`
	// Mated overrides the mate marker read from the moves.
	Mated    *bool  `json:"mated,omitempty"`
	StartFEN string `json:"start_fen,omitempty" validate:"max=128"`
}

// Record converts the request into a GameRecord.
func (r *ClassifyRequest) Record() chess.GameRecord {
	mated := r.Moves.Mated
	if r.Mated != nil {
		mated = *r.Mated
	}
	return chess.GameRecord{
		ID:          r.ID,
		Moves:       r.Moves.Tokens,
		Result:      r.Result,
		Termination: r.Termination,
		Mated:       mated,
		StartFEN:    r.StartFEN,
	}
}

// BatchRequest is the body of POST /v1/classify/batch.
type BatchRequest struct {
	Games []ClassifyRequest `json:"games" validate:"required,min=1,max=1000,dive"`
}

// ErrorResponse is returned for every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// describe renders validation failures as one line per field.
func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	var details strings.Builder
	for _, fe := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", field))
		case "oneof":
			details.WriteString(fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		case "max":
			if fe.Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must have at most %s entries", field, fe.Param()))
			}
		case "min":
			details.WriteString(fmt.Sprintf("%s must have at least %s entries", field, fe.Param()))
		default:
			details.WriteString(fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return details.String()
}

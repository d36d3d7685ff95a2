package parser

import (
	"io"
	"strings"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
)

// Game is one PGN game: its tags, the main-line move tokens as written,
// and the terminating result.
type Game struct {
	Tags      map[string]string
	Moves     []string
	Result    string
	StartLine uint
}

// Tag returns the value of a known tag, or "" when it is absent.
func (g *Game) Tag(name chess.TagName) string {
	return g.Tags[name.String()]
}

// SANMoves returns the main-line tokens with check, mate and annotation
// suffixes removed.
func (g *Game) SANMoves() []string {
	moves := make([]string, len(g.Moves))
	for i, m := range g.Moves {
		moves[i] = StripSuffix(m)
	}
	return moves
}

// Mated reports whether the last main-line move carries a mate marker.
func (g *Game) Mated() bool {
	return lastHasMate(g.Moves)
}

// Parser reads PGN games from a stream.
type Parser struct {
	lexer        *Lexer
	currentToken Token
	started      bool
}

// NewParser creates a new parser for the given reader.
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
}

// ParseGame parses the next game from the input.
// Returns nil if no more games are available.
func (p *Parser) ParseGame() (*Game, error) {
	if !p.started {
		p.nextToken()
		p.started = true
	}

	p.skipToNextGame()
	if p.currentToken.Type == EOFToken {
		return nil, p.lexer.Err()
	}

	game := &Game{Tags: make(map[string]string), StartLine: p.currentToken.Line}
	p.parseOptTagList(game)
	p.parseMoveText(game)

	if result := game.Tags[chess.ResultTag.String()]; game.Result == "" && result != "" {
		game.Result = result
	}
	return game, p.lexer.Err()
}

// skipToNextGame skips tokens until the start of a game is found.
func (p *Parser) skipToNextGame() {
	for {
		switch p.currentToken.Type {
		case EOFToken, TagToken, MoveToken, MoveNumber:
			return
		default:
			p.nextToken()
		}
	}
}

// parseOptTagList parses zero or more tags.
func (p *Parser) parseOptTagList(game *Game) {
	for p.currentToken.Type == TagToken {
		name := p.currentToken.Text
		p.nextToken()
		if p.currentToken.Type == StringToken {
			game.Tags[name] = p.currentToken.Text
			p.nextToken()
		}
	}
}

// parseMoveText collects main-line moves up to the terminating result.
// Variations are skipped. A tag at depth zero starts the next game.
func (p *Parser) parseMoveText(game *Game) {
	depth := 0
	for {
		switch p.currentToken.Type {
		case EOFToken:
			return
		case TagToken:
			if depth == 0 {
				return
			}
		case TerminatingResult:
			if depth == 0 {
				game.Result = p.currentToken.Text
				p.nextToken()
				return
			}
		case RAVStart:
			depth++
		case RAVEnd:
			if depth > 0 {
				depth--
			}
		case MoveToken:
			if depth == 0 {
				game.Moves = append(game.Moves, p.currentToken.Text)
			}
		}
		p.nextToken()
	}
}

// ParseAllGames parses all games from the input.
func (p *Parser) ParseAllGames() ([]*Game, error) {
	var games []*Game
	for {
		game, err := p.ParseGame()
		if err != nil {
			return games, err
		}
		if game == nil {
			return games, nil
		}
		games = append(games, game)
	}
}

// mainLine returns the raw main-line move tokens of a movetext fragment.
func mainLine(movetext string) []string {
	p := NewParser(strings.NewReader(movetext))
	game := &Game{Tags: map[string]string{}}
	p.nextToken()
	p.started = true
	for p.currentToken.Type != EOFToken {
		p.parseMoveText(game)
		if p.currentToken.Type == TagToken {
			p.nextToken()
		}
	}
	return game.Moves
}

// Tokenize splits movetext into main-line SAN tokens. Move numbers,
// results, NAGs, comments and variations are dropped, and trailing check,
// mate and annotation marks are stripped from each move.
func Tokenize(movetext string) []string {
	moves := mainLine(movetext)
	for i, m := range moves {
		moves[i] = StripSuffix(m)
	}
	return moves
}

// EndsWithMate reports whether the last main-line move of movetext is
// marked as mate.
func EndsWithMate(movetext string) bool {
	return lastHasMate(mainLine(movetext))
}

// StripSuffix removes trailing check, mate and annotation marks.
func StripSuffix(token string) string {
	return strings.TrimRight(token, "+#!?")
}

func lastHasMate(moves []string) bool {
	if len(moves) == 0 {
		return false
	}
	return strings.Contains(strings.TrimRight(moves[len(moves)-1], "!?"), "#")
}

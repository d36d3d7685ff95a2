package parser

import (
	"bufio"
	"io"
	"strings"
)

// Character classes used by the lexer.
type charClass uint8

const (
	classOther charClass = iota
	classSpace
	classDigit
	classMove
)

var chTab [256]charClass

func init() {
	for _, c := range []byte{' ', '\t', '\r', '\n', '\f', '\v'} {
		chTab[c] = classSpace
	}
	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = classDigit
	}
	for c := byte('a'); c <= 'z'; c++ {
		chTab[c] = classMove
		chTab[c-'a'+'A'] = classMove
	}
	for _, c := range []byte{'-', '=', ':', '+', '#', '!', '?'} {
		chTab[c] = classMove
	}
}

// isMoveChar reports whether c may appear inside a move token.
func isMoveChar(c byte) bool {
	return chTab[c] == classMove || chTab[c] == classDigit
}

// Lexer tokenizes PGN input line by line.
type Lexer struct {
	reader  *bufio.Reader
	line    string
	pos     int
	lineNum uint
	eof     bool
	err     error
}

// NewLexer creates a new lexer for the given reader.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{reader: bufio.NewReader(r)}
}

// Err returns the first read error other than io.EOF.
func (l *Lexer) Err() error {
	return l.err
}

// readLine reads the next line from input.
func (l *Lexer) readLine() bool {
	if l.eof {
		return false
	}
	line, err := l.reader.ReadString('\n')
	if err != nil {
		l.eof = true
		if err != io.EOF {
			l.err = err
		}
		if line == "" {
			return false
		}
	}
	l.line = line
	l.pos = 0
	l.lineNum++
	return true
}

func (l *Lexer) currentChar() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

func (l *Lexer) advance() {
	if l.pos < len(l.line) {
		l.pos++
	}
}

func (l *Lexer) token(t TokenType, text string) Token {
	return Token{Type: t, Text: text, Line: l.lineNum}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	for {
		if l.pos >= len(l.line) {
			if !l.readLine() {
				return l.token(EOFToken, "")
			}
			// Escape mechanism: a line starting with % is ignored.
			if strings.HasPrefix(l.line, "%") {
				l.pos = len(l.line)
				continue
			}
		}

		c := l.currentChar()
		switch {
		case chTab[c] == classSpace:
			l.advance()
		case c == ';':
			text := strings.TrimRight(l.line[l.pos+1:], "\r\n")
			l.pos = len(l.line)
			return l.token(CommentToken, text)
		case c == '[':
			l.advance()
			return l.gatherTag()
		case c == ']' || c == '.':
			l.advance()
		case c == '"':
			l.advance()
			return l.gatherString()
		case c == '{':
			l.advance()
			return l.gatherComment()
		case c == '(':
			l.advance()
			return l.token(RAVStart, "(")
		case c == ')':
			l.advance()
			return l.token(RAVEnd, ")")
		case c == '$':
			l.advance()
			return l.gatherNAG()
		case c == '!' || c == '?':
			return l.token(NAGToken, l.gatherWhile(func(b byte) bool { return b == '!' || b == '?' }))
		case c == '*':
			l.advance()
			return l.token(TerminatingResult, "*")
		case chTab[c] == classDigit:
			return l.gatherNumeric()
		case chTab[c] == classMove:
			return l.token(MoveToken, l.gatherWhile(isMoveChar))
		default:
			l.advance()
			return l.token(ErrorToken, string(c))
		}
	}
}

func (l *Lexer) gatherWhile(accept func(byte) bool) string {
	start := l.pos
	for l.pos < len(l.line) && accept(l.line[l.pos]) {
		l.pos++
	}
	return l.line[start:l.pos]
}

// gatherTag reads the tag name following '['.
func (l *Lexer) gatherTag() Token {
	l.gatherWhile(func(b byte) bool { return chTab[b] == classSpace })
	name := l.gatherWhile(func(b byte) bool {
		return chTab[b] == classMove || chTab[b] == classDigit || b == '_'
	})
	if name == "" {
		return l.token(ErrorToken, "[")
	}
	return l.token(TagToken, name)
}

// gatherString reads a quoted tag value. Strings do not span lines.
func (l *Lexer) gatherString() Token {
	var sb strings.Builder
	for l.pos < len(l.line) {
		c := l.line[l.pos]
		l.pos++
		switch {
		case c == '"':
			return l.token(StringToken, sb.String())
		case c == '\\' && l.pos < len(l.line):
			sb.WriteByte(l.line[l.pos])
			l.pos++
		case c == '\n' || c == '\r':
		default:
			sb.WriteByte(c)
		}
	}
	return l.token(StringToken, sb.String())
}

// gatherComment reads a brace comment, which may span lines.
func (l *Lexer) gatherComment() Token {
	var sb strings.Builder
	for {
		if i := strings.IndexByte(l.line[l.pos:], '}'); i >= 0 {
			sb.WriteString(l.line[l.pos : l.pos+i])
			l.pos += i + 1
			return l.token(CommentToken, strings.TrimSpace(sb.String()))
		}
		sb.WriteString(l.line[l.pos:])
		if !l.readLine() {
			return l.token(CommentToken, strings.TrimSpace(sb.String()))
		}
	}
}

func (l *Lexer) gatherNAG() Token {
	digits := l.gatherWhile(func(b byte) bool { return chTab[b] == classDigit })
	return l.token(NAGToken, "$"+digits)
}

// gatherNumeric reads a move number, a result, or a castling move written
// with zeros.
func (l *Lexer) gatherNumeric() Token {
	text := l.gatherWhile(func(b byte) bool {
		return chTab[b] == classDigit || b == '-' || b == '/'
	})
	switch {
	case text == "1-0" || text == "0-1" || text == "1/2-1/2":
		return l.token(TerminatingResult, text)
	case strings.HasPrefix(text, "0-0"):
		return l.token(MoveToken, text+l.gatherWhile(isMoveChar))
	case strings.Trim(text, "0123456789") == "":
		l.gatherWhile(func(b byte) bool { return b == '.' })
		return l.token(MoveNumber, text)
	}
	return l.token(ErrorToken, text)
}

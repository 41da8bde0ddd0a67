package lexer

import "strings"

const (
	UnterminatedString  = "unterminated string"
	UnterminatedComment = "unterminated block comment"
)

type Lexer struct {
	input        string // input string to be tokenized
	length       int    // length of the input string
	position     int    // current position in the input string
	line         int    // current line number for error reporting
	column       int    // current column number for error reporting
	currentToken Token  // last token produced
}

// Create a new lexer instance
func NewLexer(s string) *Lexer {
	return &Lexer{
		input:        s,
		length:       len(s),
		position:     0,
		line:         1,
		column:       1,
		currentToken: Token{},
	}
}

// Get the next token from the input
func (l *Lexer) NextToken() Token {
	if tok, ok := l.skipWhitespace(); !ok {
		l.currentToken = tok
		return tok
	}

	// End of input
	if l.position >= l.length {
		tok := NewToken(EOF, "", "", l.currentPosition())
		l.currentToken = tok
		return tok
	}

	// Regex match the first token it sees from the remaining input from current position to the end
	remaining := l.input[l.position:]
	token_type, lexeme, matched := MatchToken(remaining)

	if !matched || token_type == EOF {
		if token_type == EOF && lexeme != "" {
			l.advance(len(lexeme))
			return l.NextToken()
		}

		pos := l.currentPosition()
		char := string(l.input[l.position])
		if char == `"` || char == "'" {
			// an opening quote that never closes swallows the rest of the input
			rest := l.input[l.position:]
			l.advance(len(rest))
			tok := NewToken(ILLEGAL, rest, UnterminatedString, pos)
			l.currentToken = tok
			return tok
		}

		l.advance(1)

		tok := NewToken(ILLEGAL, char, "", pos)
		l.currentToken = tok
		return tok
	}

	var literal string
	switch token_type {
	case NUM:
		literal = lexeme
	case TRUE:
		literal = "true"
	case FALSE:
		literal = "false"
	case STR:
		literal = unquote(lexeme)
	default:
		literal = lexeme
	}

	tok := NewToken(token_type, lexeme, literal, l.currentPosition())
	l.advance(len(lexeme))
	l.currentToken = tok

	return tok
}

// View next token without advancing the position
func (l *Lexer) Peek() Token {
	// save state
	cpos := l.position
	cline := l.line
	ccol := l.column
	ctok := l.currentToken

	token := l.NextToken()

	// restore state
	l.position = cpos
	l.line = cline
	l.column = ccol
	l.currentToken = ctok

	return token
}

// Tokens drains the lexer, returning every token up to and including EOF
func (l *Lexer) Tokens() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

// Check if there are more characters to read
func (l *Lexer) HasMore() bool {
	return l.position < l.length
}

// Skip whitespace and comments. Returns an ILLEGAL token and false when a
// block comment is left open.
func (l *Lexer) skipWhitespace() (Token, bool) {
	for l.position < l.length {
		ch := l.input[l.position]

		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			l.advance(1)

		} else if ch == '#' || (l.position+1 < l.length && ch == '/' && l.input[l.position+1] == '/') {
			// line comments
			end := strings.IndexByte(l.input[l.position:], '\n')
			if end < 0 {
				end = l.length - l.position
			}
			l.advance(end)

		} else if l.position+1 < l.length && ch == '/' && l.input[l.position+1] == '*' {
			// block comments
			pos := l.currentPosition()
			end := strings.Index(l.input[l.position+2:], "*/")
			if end < 0 {
				rest := l.input[l.position:]
				l.advance(len(rest))
				return NewToken(ILLEGAL, rest, UnterminatedComment, pos), false
			}
			l.advance(end + 4)

		} else {
			break
		}
	}

	return Token{}, true
}

// Advance the lexer position by n characters
func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.position >= l.length {
			break
		}

		if l.input[l.position] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}

		l.position++
	}
}

// Get the current position of the lexer
func (l *Lexer) currentPosition() Position {
	return Position{
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}
}

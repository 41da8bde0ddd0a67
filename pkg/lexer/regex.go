package lexer

import (
	"regexp"
	"strings"
)

type tokenRegex struct {
	Pattern *regexp.Regexp
}

func newTokenRegex(raw string) tokenRegex {
	return tokenRegex{regexp.MustCompile(raw)}
}

// Token regex patterns. Keywords are not listed: they are matched as
// identifiers and then looked up in Keywords.
var tokenRegexes = map[TokenType]tokenRegex{
	LE:  newTokenRegex(`^<=`),
	GE:  newTokenRegex(`^>=`),
	EQ:  newTokenRegex(`^==`),
	NE:  newTokenRegex(`^!=`),
	AND: newTokenRegex(`^&&`),
	OR:  newTokenRegex(`^\|\|`),
	NOT: newTokenRegex(`^!`),

	ASSIGN: newTokenRegex(`^=`),
	PLUS:   newTokenRegex(`^\+`),
	MINUS:  newTokenRegex(`^-`),
	MULT:   newTokenRegex(`^\*`),
	DIV:    newTokenRegex(`^/`),
	MOD:    newTokenRegex(`^%`),
	LT:     newTokenRegex(`^<`),
	GT:     newTokenRegex(`^>`),

	SEMICOLON: newTokenRegex(`^;`),
	COMMA:     newTokenRegex(`^,`),
	COLON:     newTokenRegex(`^:`),
	DOT:       newTokenRegex(`^\.`),
	LPAREN:    newTokenRegex(`^\(`),
	RPAREN:    newTokenRegex(`^\)`),
	LBRACE:    newTokenRegex(`^\{`),
	RBRACE:    newTokenRegex(`^\}`),
	LSBRACE:   newTokenRegex(`^\[`),
	RSBRACE:   newTokenRegex(`^\]`),

	NUM: newTokenRegex(`^\d+(\.\d+)?([eE][+-]?\d+)?`),
	STR: newTokenRegex(`^("([^"\\]|\\[\s\S])*"|'([^'\\]|\\[\s\S])*')`),
	ID:  newTokenRegex(`^[a-zA-Z_][a-zA-Z0-9_]*`),
}

var (
	whitespaceRegex   = regexp.MustCompile(`^\s+`)
	commentRegex      = regexp.MustCompile(`^(//|#).*`)
	blockCommentRegex = regexp.MustCompile(`^/\*[\s\S]*?\*/`)
)

// Token precedence order for matching (longer patterns first)
var tokenPrecedenceOrder = []TokenType{
	LE, GE, EQ, NE, AND, OR, NOT, ASSIGN, PLUS,
	MINUS, MULT, DIV, MOD, LT, GT, SEMICOLON, COMMA, COLON, DOT,
	LPAREN, RPAREN, LBRACE, RBRACE, LSBRACE,
	RSBRACE, NUM, STR, ID,
}

// Match the longest token at the start of the string
func MatchToken(s string) (TokenType, string, bool) {
	if s == "" {
		return EOF, "", false
	} else if match := whitespaceRegex.FindString(s); match != "" {
		return EOF, match, true
	} else if match := blockCommentRegex.FindString(s); match != "" {
		return EOF, match, true
	} else if match := commentRegex.FindString(s); match != "" {
		return EOF, match, true
	}

	for _, tokenType := range tokenPrecedenceOrder {
		if regex, ok := tokenRegexes[tokenType]; ok {
			if match := regex.Pattern.FindString(s); match != "" {
				if tokenType == ID {
					if kw, ok := IsKeyword(match); ok {
						return kw, match, true
					}
				}
				return tokenType, match, true
			}
		}
	}

	return ILLEGAL, string(s[0]), false
}

// unquote strips the surrounding quotes of a string literal and resolves escapes.
// Unknown escapes are kept verbatim, backslash included.
func unquote(lexeme string) string {
	body := lexeme[1 : len(lexeme)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' || i+1 >= len(body) {
			sb.WriteByte(ch)
			continue
		}

		i++
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case '\\':
			sb.WriteByte('\\')
		case '\'':
			sb.WriteByte('\'')
		case '"':
			sb.WriteByte('"')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(body[i])
		}
	}

	return sb.String()
}

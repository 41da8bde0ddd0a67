package parser

import (
	"fmt"
	"minilang/pkg/color"
	"minilang/pkg/lexer"
)

// handleTerminalError is called when the current token doesn't match the expected one.
// It only reports an error. It does NOT advance tokens.
func (p *Parser) handleTerminalError(expected lexer.TokenType) {
	// Heuristic: if we expected ';' but current token clearly starts a new statement,
	// closes a block, or ends input, report "Missing semicolon".
	if expected == lexer.SEMICOLON && p.isStatementBoundary(p.currentToken.Type) {
		p.addError("Missing semicolon")
		return
	}

	// Specific: declaration without identifier like `var = 42;`
	if expected == lexer.ID && p.currentToken.Type == lexer.ASSIGN {
		p.addError("Missing identifier")
		return
	}

	// Default contextual error
	p.addContextualError(expected.String())
}

// addError records a parsing error at the current token
func (p *Parser) addError(msg string) {
	p.addErrorAt(p.currentToken, msg)
}

// addErrorAt records a parsing error with the location of tok
func (p *Parser) addErrorAt(tok lexer.Token, msg string) {
	if len(p.errors) == 0 && p.isEndOfInput(tok) {
		p.incomplete = true
	}

	pos := tok.Pos
	formatted := color.RedText(msg) + " at " + color.YellowText(fmt.Sprintf("Line: %d, Column %d", pos.Line, pos.Column))
	p.errors = append(p.errors, formatted)
}

// Errors returns the list of parsing errors
func (p *Parser) Errors() []string {
	return p.errors
}

// isEndOfInput reports whether tok means the source stopped mid-construct
func (p *Parser) isEndOfInput(tok lexer.Token) bool {
	if tok.Type == lexer.EOF {
		return true
	}
	return tok.Type == lexer.ILLEGAL &&
		(tok.Literal == lexer.UnterminatedString || tok.Literal == lexer.UnterminatedComment)
}

// isStatementBoundary checks if a token type indicates the start of a new statement or block boundary
func (p *Parser) isStatementBoundary(t lexer.TokenType) bool {
	switch t {
	case lexer.VAR, lexer.IF, lexer.WHILE, lexer.FOR, lexer.RETURN, lexer.CONTINUE, lexer.BREAK,
		lexer.THROW, lexer.TRY, lexer.CLASS, lexer.FUNC, lexer.ELSE, lexer.RBRACE, lexer.EOF:
		return true
	default:
		return t.IsTypeKeyword()
	}
}

// addContextualError generates a contextual error message based on expected and current token
func (p *Parser) addContextualError(expected string) {
	current := p.currentToken
	p.addError(p.categorizeError(expected, current))
}

// categorizeError provides a specific error message based on expected symbol and current token
func (p *Parser) categorizeError(expected string, current lexer.Token) string {
	// Lexical problems take priority over whatever was expected
	if current.Type == lexer.ILLEGAL {
		switch current.Literal {
		case lexer.UnterminatedString:
			return "Unterminated string"
		case lexer.UnterminatedComment:
			return "Unterminated block comment"
		}
		return fmt.Sprintf("Unexpected character '%s'", current.Lexeme)
	}

	// Delimiters
	switch expected {
	case ")":
		return "Missing closing parenthesis"
	case "}":
		return "Missing closing brace"
	case "]":
		return "Missing closing bracket"
	case "{":
		return "Missing opening brace"
	case ";":
		return "Missing semicolon"
	case ":":
		return "Missing colon"
	case "(":
		if current.Type == lexer.LBRACE {
			return "Wrong bracket type - expected parenthesis"
		}
		return "Missing opening parenthesis"
	}

	// Identifiers and literals
	switch expected {
	case "identifier":
		if current.Type == lexer.ASSIGN || current.Type == lexer.SEMICOLON {
			return "Missing identifier"
		}
		if current.Type.GetCategory() == lexer.KEYWORD {
			return "Cannot use reserved keyword as identifier"
		}
		return "Expected identifier"
	case "string literal":
		if current.Type == lexer.ID {
			return "Missing quotes around string"
		}
		return "Expected string"
	}

	// Expressions missing before ) or ; or ]
	if expected == "expression" {
		switch current.Type {
		case lexer.SEMICOLON, lexer.RPAREN, lexer.RSBRACE, lexer.COMMA:
			return "Missing expression"
		case lexer.EOF:
			return "Unexpected end of input"
		}
		return fmt.Sprintf("Unexpected token '%s'", current.Lexeme)
	}

	if current.Type == lexer.EOF {
		return fmt.Sprintf("Expected '%s' before end of input", expected)
	}

	return "Syntax error"
}

package lexer_test

import (
	"minilang/pkg/lexer"
	"testing"
)

func TestNumbers(t *testing.T) {
	tests := []struct {
		input       string
		expected    lexer.TokenType
		description string
	}{
		{"42", lexer.NUM, "integer"},
		{"0", lexer.NUM, "zero"},

		{"3.14", lexer.NUM, "simple float"},
		{"0.5", lexer.NUM, "float starting with zero"},
		{"123.456", lexer.NUM, "multi-digit float"},

		{"1e5", lexer.NUM, "scientific notation with e"},
		{"1e+5", lexer.NUM, "scientific notation with e+"},
		{"1e-5", lexer.NUM, "scientific notation with e-"},
		{"2.5e10", lexer.NUM, "float with scientific notation"},
		{"3.14E-2", lexer.NUM, "float with negative exponent E"},

		{"0.0", lexer.NUM, "zero as float"},
		{"1000000", lexer.NUM, "large integer"},
	}

	for _, test := range tests {
		tokenType, lexeme, matched := lexer.MatchToken(test.input)
		if !matched {
			t.Errorf("Failed to match %s (%s)", test.input, test.description)
		}
		if tokenType != test.expected {
			t.Errorf("Input %s (%s): expected %s, got %s", test.input, test.description, test.expected, tokenType)
		}
		if lexeme != test.input {
			t.Errorf("Input %s (%s): expected lexeme %s, got %s", test.input, test.description, test.input, lexeme)
		}
	}
}

func TestNumberStopsAtMemberDot(t *testing.T) {
	tokens := lexer.NewLexer("1.x").Tokens()
	want := []lexer.TokenType{lexer.NUM, lexer.DOT, lexer.ID, lexer.EOF}
	for i, tt := range want {
		if tokens[i].Type != tt {
			t.Errorf("Token %d: expected %s, got %s", i, tt, tokens[i].Type)
		}
	}
}

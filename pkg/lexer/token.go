package lexer

import (
	"fmt"
)

type TokenType int
type TokenCategory int

type Token struct {
	Type    TokenType // Type of the token
	Lexeme  string    // Actual string from source code
	Literal string    // Literal value (if applicable), empty string if not
	Pos     Position  // Position in source code
}

// NewToken creates a new Token instance
func NewToken(tokenType TokenType, lexeme string, literal string, Pos Position) Token {
	return Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: literal,
		Pos:     Pos,
	}
}

// Line returns the source line the token starts on
func (t Token) Line() int {
	return t.Pos.Line
}

const (
	NONE TokenCategory = iota
	KEYWORD
	IDENTIFIER
	LITERAL
	OPERATOR
	DELIMITER
)

const (
	EOF TokenType = iota // End of file

	VAR      // var
	FUNC     // func
	RETURN   // return
	IF       // if
	ELSE     // else
	WHILE    // while
	FOR      // for
	BREAK    // break
	CONTINUE // continue
	CLASS    // class
	THIS     // this
	SUPER    // super
	EXTENDS  // extends
	THROW    // throw
	TRY      // try
	CATCH    // catch
	AND      // && or and
	OR       // || or or
	NOT      // ! or not
	TRUE     // true
	FALSE    // false
	NIL      // nil
	INT      // int
	FLOAT    // float
	BOOL     // bool
	STRING   // string
	ARRAY    // array
	DICT     // dict
	OBJECT   // object

	ID  // id (identifier)
	NUM // num (number)
	STR // string literal

	ASSIGN // =
	PLUS   // +
	MINUS  // -
	MULT   // *
	DIV    // /
	MOD    // %
	LT     // <
	GT     // >
	LE     // <=
	GE     // >=
	EQ     // ==
	NE     // !=

	SEMICOLON // ;
	COMMA     // ,
	COLON     // :
	DOT       // .
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LSBRACE   // [
	RSBRACE   // ]

	ILLEGAL // illegal token
)

var Keywords = map[string]TokenType{
	"var":      VAR,
	"func":     FUNC,
	"return":   RETURN,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"break":    BREAK,
	"continue": CONTINUE,
	"class":    CLASS,
	"this":     THIS,
	"super":    SUPER,
	"extends":  EXTENDS,
	"throw":    THROW,
	"try":      TRY,
	"catch":    CATCH,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
	"true":     TRUE,
	"false":    FALSE,
	"nil":      NIL,
	"int":      INT,
	"float":    FLOAT,
	"bool":     BOOL,
	"string":   STRING,
	"array":    ARRAY,
	"dict":     DICT,
	"object":   OBJECT,
}

var tokenNames = map[TokenType]string{
	VAR:       "var",
	FUNC:      "func",
	RETURN:    "return",
	IF:        "if",
	ELSE:      "else",
	WHILE:     "while",
	FOR:       "for",
	BREAK:     "break",
	CONTINUE:  "continue",
	CLASS:     "class",
	THIS:      "this",
	SUPER:     "super",
	EXTENDS:   "extends",
	THROW:     "throw",
	TRY:       "try",
	CATCH:     "catch",
	AND:       "&&",
	OR:        "||",
	NOT:       "!",
	TRUE:      "true",
	FALSE:     "false",
	NIL:       "nil",
	INT:       "int",
	FLOAT:     "float",
	BOOL:      "bool",
	STRING:    "string",
	ARRAY:     "array",
	DICT:      "dict",
	OBJECT:    "object",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LSBRACE:   "[",
	RSBRACE:   "]",
	SEMICOLON: ";",
	COMMA:     ",",
	COLON:     ":",
	DOT:       ".",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	MULT:      "*",
	DIV:       "/",
	MOD:       "%",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	EQ:        "==",
	NE:        "!=",
	ID:        "identifier",
	NUM:       "number",
	STR:       "string literal",
	ILLEGAL:   "illegal",
	EOF:       "end of input",
}

// String returns a string representation of the Token
func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("T_{%s, %v, nil, %s}",
			t.Type, t.Lexeme, t.Pos.String())
	}

	return fmt.Sprintf("T_{%s, %v, %q, %s}",
		t.Type, t.Lexeme, t.Literal, t.Pos.String())
}

// String returns a string representation of the TokenType
func (t TokenType) String() string {
	if str, ok := tokenNames[t]; ok {
		return str
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// GetCategory returns the category of the token
func (t TokenType) GetCategory() TokenCategory {
	switch {
	case t >= VAR && t <= OBJECT:
		return KEYWORD
	case t == ID:
		return IDENTIFIER
	case t == NUM || t == STR:
		return LITERAL
	case t >= ASSIGN && t <= NE:
		return OPERATOR
	case t >= SEMICOLON && t <= RSBRACE:
		return DELIMITER
	default:
		return NONE
	}
}

// IsTypeKeyword reports whether the token names a declarable type
func (t TokenType) IsTypeKeyword() bool {
	switch t {
	case INT, FLOAT, BOOL, STRING, ARRAY, DICT, OBJECT:
		return true
	default:
		return false
	}
}

// IsKeyword checks if the given identifier is a keyword and returns its TokenType if it is
func IsKeyword(identifier string) (TokenType, bool) {
	tokenType, ok := Keywords[identifier]
	return tokenType, ok
}

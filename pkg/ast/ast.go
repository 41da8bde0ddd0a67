// Package ast holds the syntax tree produced by the parser and walked by the
// interpreter. Every node records the source line it started on.
package ast

import "minilang/pkg/lexer"

// Loc is the source line of a node. It is embedded in every node.
type Loc int

func (l Loc) Line() int { return int(l) }

type Node interface {
	Line() int
}

type Expr interface {
	Node
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

// TypeName is a declared type annotation. TypeNone means "var" (unchecked).
type TypeName int

const (
	TypeNone TypeName = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeString
	TypeArray
	TypeDict
	TypeObject
)

var typeNames = [...]string{"var", "int", "float", "bool", "string", "array", "dict", "object"}

func (t TypeName) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// TypeFromToken maps a type keyword to its TypeName
func TypeFromToken(t lexer.TokenType) TypeName {
	switch t {
	case lexer.INT:
		return TypeInt
	case lexer.FLOAT:
		return TypeFloat
	case lexer.BOOL:
		return TypeBool
	case lexer.STRING:
		return TypeString
	case lexer.ARRAY:
		return TypeArray
	case lexer.DICT:
		return TypeDict
	case lexer.OBJECT:
		return TypeObject
	default:
		return TypeNone
	}
}

type Program struct {
	Stmts []Stmt
}

// Expressions

type (
	IntLit struct {
		Loc
		Value int64
	}

	FloatLit struct {
		Loc
		Value float64
	}

	StringLit struct {
		Loc
		Value string
	}

	BoolLit struct {
		Loc
		Value bool
	}

	NilLit struct {
		Loc
	}

	Variable struct {
		Loc
		Name string
	}

	Unary struct {
		Loc
		Op    lexer.TokenType
		Right Expr
	}

	Binary struct {
		Loc
		Op          lexer.TokenType
		Left, Right Expr
	}

	// Logical is a short-circuiting && or ||
	Logical struct {
		Loc
		Op          lexer.TokenType
		Left, Right Expr
	}

	Call struct {
		Loc
		Callee Expr
		Args   []Expr
	}

	ArrayLit struct {
		Loc
		Elems []Expr
	}

	// DictLit keeps keys in source order; Keys[i] maps to Values[i]
	DictLit struct {
		Loc
		Keys   []string
		Values []Expr
	}

	Index struct {
		Loc
		Target Expr
		Index  Expr
	}

	Member struct {
		Loc
		Object Expr
		Name   string
	}

	// Assign targets a Variable, Index or Member
	Assign struct {
		Loc
		Target Expr
		Value  Expr
	}

	This struct {
		Loc
	}

	Super struct {
		Loc
		Method string
	}
)

func (*IntLit) exprNode()    {}
func (*FloatLit) exprNode()  {}
func (*StringLit) exprNode() {}
func (*BoolLit) exprNode()   {}
func (*NilLit) exprNode()    {}
func (*Variable) exprNode()  {}
func (*Unary) exprNode()     {}
func (*Binary) exprNode()    {}
func (*Logical) exprNode()   {}
func (*Call) exprNode()      {}
func (*ArrayLit) exprNode()  {}
func (*DictLit) exprNode()   {}
func (*Index) exprNode()     {}
func (*Member) exprNode()    {}
func (*Assign) exprNode()    {}
func (*This) exprNode()      {}
func (*Super) exprNode()     {}

// Statements

type (
	Block struct {
		Loc
		Stmts []Stmt
	}

	ExprStmt struct {
		Loc
		X Expr
	}

	If struct {
		Loc
		Cond Expr
		Then Stmt
		Else Stmt // nil when absent
	}

	While struct {
		Loc
		Cond Expr
		Body Stmt
	}

	// For is the C-style loop. Init, Cond and Incr may each be nil.
	For struct {
		Loc
		Init Stmt
		Cond Expr
		Incr Expr
		Body Stmt
	}

	ForEach struct {
		Loc
		Var      string
		Type     TypeName
		Iterable Expr
		Body     Stmt
	}

	Param struct {
		Name string
		Type TypeName
	}

	Func struct {
		Loc
		Name   string
		Params []Param
		Body   *Block
	}

	Class struct {
		Loc
		Name       string
		Superclass *Variable // nil when the class has no superclass
		Methods    []*Func
	}

	Return struct {
		Loc
		Value Expr // nil for a bare return
	}

	Break struct {
		Loc
	}

	Continue struct {
		Loc
	}

	VarDecl struct {
		Loc
		Name string
		Type TypeName
		Init Expr // nil when absent
	}

	Throw struct {
		Loc
		Value Expr
	}

	Try struct {
		Loc
		Body    *Block
		Name    string
		Handler *Block
	}
)

func (*Block) stmtNode()    {}
func (*ExprStmt) stmtNode() {}
func (*If) stmtNode()       {}
func (*While) stmtNode()    {}
func (*For) stmtNode()      {}
func (*ForEach) stmtNode()  {}
func (*Func) stmtNode()     {}
func (*Class) stmtNode()    {}
func (*Return) stmtNode()   {}
func (*Break) stmtNode()    {}
func (*Continue) stmtNode() {}
func (*VarDecl) stmtNode()  {}
func (*Throw) stmtNode()    {}
func (*Try) stmtNode()      {}

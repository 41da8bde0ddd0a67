package ast

import (
	"strconv"
	"strings"
)

// String renders an expression fully parenthesised, e.g. (+ 1 (* 2 3)).
// It is used by parser tests and debug logging.
func String(e Expr) string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e Expr) {
	switch n := e.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *IntLit:
		sb.WriteString(strconv.FormatInt(n.Value, 10))
	case *FloatLit:
		sb.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *StringLit:
		sb.WriteString(strconv.Quote(n.Value))
	case *BoolLit:
		sb.WriteString(strconv.FormatBool(n.Value))
	case *NilLit:
		sb.WriteString("nil")
	case *Variable:
		sb.WriteString(n.Name)
	case *This:
		sb.WriteString("this")
	case *Super:
		sb.WriteString("super." + n.Method)
	case *Unary:
		sb.WriteString("(" + n.Op.String() + " ")
		writeExpr(sb, n.Right)
		sb.WriteString(")")
	case *Binary:
		writeOp(sb, n.Op.String(), n.Left, n.Right)
	case *Logical:
		writeOp(sb, n.Op.String(), n.Left, n.Right)
	case *Assign:
		writeOp(sb, "=", n.Target, n.Value)
	case *Call:
		sb.WriteString("(call ")
		writeExpr(sb, n.Callee)
		for _, a := range n.Args {
			sb.WriteString(" ")
			writeExpr(sb, a)
		}
		sb.WriteString(")")
	case *Index:
		writeOp(sb, "[]", n.Target, n.Index)
	case *Member:
		sb.WriteString("(. ")
		writeExpr(sb, n.Object)
		sb.WriteString(" " + n.Name + ")")
	case *ArrayLit:
		sb.WriteString("[")
		for i, el := range n.Elems {
			if i > 0 {
				sb.WriteString(" ")
			}
			writeExpr(sb, el)
		}
		sb.WriteString("]")
	case *DictLit:
		sb.WriteString("{")
		for i, k := range n.Keys {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(strconv.Quote(k) + ":")
			writeExpr(sb, n.Values[i])
		}
		sb.WriteString("}")
	default:
		sb.WriteString("?")
	}
}

func writeOp(sb *strings.Builder, op string, l, r Expr) {
	sb.WriteString("(" + op + " ")
	writeExpr(sb, l)
	sb.WriteString(" ")
	writeExpr(sb, r)
	sb.WriteString(")")
}

// Package constexpr evaluates the integer constant expressions used for
// enum discriminants and array lengths.
//
// Expressions use Go syntax: integer and rune literals in any base,
// named constants, parentheses, unary + - ^ and the binary operators
// + - * / % << >> & | ^ &^. Arithmetic is exact (arbitrary precision),
// so range checks happen after evaluation.
//
// This package is internal to the resolver.
package constexpr

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/token"
)

// MaxShift bounds shift counts so a hostile expression cannot allocate
// an enormous integer.
const MaxShift = 512

// Lookup resolves a named constant.
type Lookup func(name string) (int64, bool)

// Eval parses and evaluates expr. The result is always an integer value.
func Eval(expr string, lookup Lookup) (constant.Value, error) {
	if expr == "" {
		return nil, fmt.Errorf("empty expression")
	}
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", expr, err)
	}
	return eval(node, lookup)
}

// Render returns the canonical decimal text of an integer value.
func Render(v constant.Value) string {
	return v.ExactString()
}

// Uint64 returns v when it is a non-negative integer no larger than limit.
func Uint64(v constant.Value, limit uint64) (uint64, bool) {
	if constant.Sign(v) < 0 {
		return 0, false
	}
	u, exact := constant.Uint64Val(v)
	if !exact || u > limit {
		return 0, false
	}
	return u, true
}

// InRange reports whether lo <= v <= hi.
func InRange(v constant.Value, lo int64, hi uint64) bool {
	return constant.Compare(v, token.GEQ, constant.MakeInt64(lo)) &&
		constant.Compare(v, token.LEQ, constant.MakeUint64(hi))
}

func eval(node ast.Expr, lookup Lookup) (constant.Value, error) {
	switch n := node.(type) {
	case *ast.BasicLit:
		return literal(n)
	case *ast.Ident:
		if lookup != nil {
			if v, ok := lookup(n.Name); ok {
				return constant.MakeInt64(v), nil
			}
		}
		return nil, fmt.Errorf("undefined constant %q", n.Name)
	case *ast.ParenExpr:
		return eval(n.X, lookup)
	case *ast.UnaryExpr:
		return unary(n, lookup)
	case *ast.BinaryExpr:
		return binary(n, lookup)
	default:
		return nil, fmt.Errorf("unsupported expression %T", node)
	}
}

func literal(n *ast.BasicLit) (constant.Value, error) {
	switch n.Kind {
	case token.INT, token.CHAR:
		v := constant.MakeFromLiteral(n.Value, n.Kind, 0)
		if v.Kind() == constant.Unknown {
			return nil, fmt.Errorf("malformed literal %s", n.Value)
		}
		return constant.ToInt(v), nil
	default:
		return nil, fmt.Errorf("non-integer literal %s", n.Value)
	}
}

func unary(n *ast.UnaryExpr, lookup Lookup) (constant.Value, error) {
	x, err := eval(n.X, lookup)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case token.ADD, token.SUB, token.XOR:
		return constant.UnaryOp(n.Op, x, 0), nil
	default:
		return nil, fmt.Errorf("unsupported unary operator %s", n.Op)
	}
}

func binary(n *ast.BinaryExpr, lookup Lookup) (constant.Value, error) {
	x, err := eval(n.X, lookup)
	if err != nil {
		return nil, err
	}
	y, err := eval(n.Y, lookup)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case token.ADD, token.SUB, token.MUL, token.AND, token.OR, token.XOR, token.AND_NOT:
		return constant.BinaryOp(x, n.Op, y), nil
	case token.QUO, token.REM:
		if constant.Sign(y) == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		op := n.Op
		if op == token.QUO {
			// QUO_ASSIGN selects truncated integer division
			op = token.QUO_ASSIGN
		}
		return constant.BinaryOp(x, op, y), nil
	case token.SHL, token.SHR:
		s, ok := Uint64(y, MaxShift)
		if !ok {
			return nil, fmt.Errorf("shift count %s out of range", y.ExactString())
		}
		return constant.Shift(x, n.Op, uint(s)), nil
	default:
		return nil, fmt.Errorf("unsupported operator %s", n.Op)
	}
}

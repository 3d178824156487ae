package chql

import (
	"fmt"
	"strings"

	"github.com/zoobzio/chql/internal/types"
)

// Expr wraps an AST expression node. Construction errors are carried in
// the Expr and surface when it is handed to a Builder.
type Expr struct {
	node types.Expr
	err  error
}

// Node returns the underlying AST node.
func (e Expr) Node() types.Expr {
	return e.node
}

// Err returns the construction error, if any.
func (e Expr) Err() error {
	return e.err
}

// TryCol creates a column reference from "name" or "table.name",
// returning an error if either part is not a valid identifier.
func TryCol(name string) (Expr, error) {
	if name == "*" {
		return Expr{node: types.Column{Name: "*"}}, nil
	}
	table, column := "", name
	if dot := strings.IndexByte(name, '.'); dot != -1 {
		table, column = name[:dot], name[dot+1:]
		if !isValidSQLIdentifier(table) {
			return Expr{}, fmt.Errorf("invalid column: %q is not a valid table qualifier", table)
		}
	}
	if column != "*" && !isValidSQLIdentifier(column) {
		return Expr{}, fmt.Errorf("invalid column: %q is not a valid identifier", column)
	}
	return Expr{node: types.Column{Table: table, Name: column}}, nil
}

// Col creates a column reference. Panics if name is invalid.
func Col(name string) Expr {
	e, err := TryCol(name)
	if err != nil {
		panic(err)
	}
	return e
}

// TCol creates a column reference qualified by a table or alias.
func TCol(table, name string) Expr {
	return Col(table + "." + name)
}

// Star is the unqualified "*".
func Star() Expr {
	return Expr{node: types.Column{Name: "*"}}
}

// V wraps a Go value as a bound value.
func V(v any) Expr {
	return Expr{node: types.Value{Raw: v}}
}

// Null is the NULL keyword.
func Null() Expr {
	return Expr{node: types.Null}
}

// CurrentTimestamp is the CURRENT_TIMESTAMP keyword.
func CurrentTimestamp() Expr {
	return Expr{node: types.CurrentTimestamp}
}

// Tuple is a parenthesized list of expressions.
func Tuple(items ...any) Expr {
	exprs, err := operands(items)
	return Expr{node: types.Tuple{Exprs: exprs}, err: err}
}

// operand converts v to an AST node: Expr values unwrap, builders become
// subqueries, raw nodes pass through and anything else is a bound value.
func operand(v any) (types.Expr, error) {
	switch x := v.(type) {
	case Expr:
		return x.node, x.err
	case *Builder:
		if x.err != nil {
			return nil, x.err
		}
		return types.SubQuery{Stmt: x.stmt}, nil
	case types.Expr:
		return x, nil
	default:
		return types.Value{Raw: v}, nil
	}
}

func operands(vs []any) ([]types.Expr, error) {
	exprs := make([]types.Expr, 0, len(vs))
	for _, v := range vs {
		node, err := operand(v)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, node)
	}
	return exprs, nil
}

// Binary combines e and right with op.
func (e Expr) Binary(op types.BinOper, right any) Expr {
	if e.err != nil {
		return e
	}
	node, err := operand(right)
	if err != nil {
		return Expr{err: err}
	}
	return Expr{node: types.Binary{Left: e.node, Right: node, Op: op}}
}

// Eq is e = v.
func (e Expr) Eq(v any) Expr { return e.Binary(types.OpEqual, v) }

// Ne is e <> v.
func (e Expr) Ne(v any) Expr { return e.Binary(types.OpNotEqual, v) }

// Lt is e < v.
func (e Expr) Lt(v any) Expr { return e.Binary(types.OpSmallerThan, v) }

// Lte is e <= v.
func (e Expr) Lte(v any) Expr { return e.Binary(types.OpSmallerThanOrEqual, v) }

// Gt is e > v.
func (e Expr) Gt(v any) Expr { return e.Binary(types.OpGreaterThan, v) }

// Gte is e >= v.
func (e Expr) Gte(v any) Expr { return e.Binary(types.OpGreaterThanOrEqual, v) }

// Like is e LIKE pattern.
func (e Expr) Like(pattern any) Expr { return e.Binary(types.OpLike, pattern) }

// NotLike is e NOT LIKE pattern.
func (e Expr) NotLike(pattern any) Expr { return e.Binary(types.OpNotLike, pattern) }

// ILike is the case-insensitive LIKE.
func (e Expr) ILike(pattern any) Expr { return e.Binary(types.OpILike, pattern) }

// NotILike is the negated case-insensitive LIKE.
func (e Expr) NotILike(pattern any) Expr { return e.Binary(types.OpNotILike, pattern) }

// Matches is the text-search match operator (@@).
func (e Expr) Matches(v any) Expr { return e.Binary(types.OpMatches, v) }

// Contains is the containment operator (@>).
func (e Expr) Contains(v any) Expr { return e.Binary(types.OpContains, v) }

// Contained is the contained-by operator (<@).
func (e Expr) Contained(v any) Expr { return e.Binary(types.OpContained, v) }

// Concat is the concatenation operator (||).
func (e Expr) Concat(v any) Expr { return e.Binary(types.OpConcatenate, v) }

// Similar is the trigram similarity operator (%).
func (e Expr) Similar(v any) Expr { return e.Binary(types.OpSimilarity, v) }

// WordSimilar is the word similarity operator (<%).
func (e Expr) WordSimilar(v any) Expr { return e.Binary(types.OpWordSimilarity, v) }

// StrictWordSimilar is the strict word similarity operator (<<%).
func (e Expr) StrictWordSimilar(v any) Expr { return e.Binary(types.OpStrictWordSimilarity, v) }

// SimilarityDistance is the similarity distance operator (<->).
func (e Expr) SimilarityDistance(v any) Expr { return e.Binary(types.OpSimilarityDistance, v) }

// WordSimilarityDistance is the word similarity distance operator (<<->).
func (e Expr) WordSimilarityDistance(v any) Expr {
	return e.Binary(types.OpWordSimilarityDistance, v)
}

// StrictWordSimilarityDistance is the strict word similarity distance operator (<<<->).
func (e Expr) StrictWordSimilarityDistance(v any) Expr {
	return e.Binary(types.OpStrictWordSimilarityDistance, v)
}

// In is e IN (values...).
func (e Expr) In(values ...any) Expr { return e.Binary(types.OpIn, Tuple(values...)) }

// NotIn is e NOT IN (values...).
func (e Expr) NotIn(values ...any) Expr { return e.Binary(types.OpNotIn, Tuple(values...)) }

// InSubquery is e IN (subquery).
func (e Expr) InSubquery(b *Builder) Expr { return e.Binary(types.OpIn, b) }

// NotInSubquery is e NOT IN (subquery).
func (e Expr) NotInSubquery(b *Builder) Expr { return e.Binary(types.OpNotIn, b) }

// Between is e BETWEEN low AND high.
func (e Expr) Between(low, high any) Expr {
	return e.Binary(types.OpBetween, rangeOf(low, high))
}

// NotBetween is e NOT BETWEEN low AND high.
func (e Expr) NotBetween(low, high any) Expr {
	return e.Binary(types.OpNotBetween, rangeOf(low, high))
}

// rangeOf is the "low AND high" operand of BETWEEN.
func rangeOf(low, high any) Expr {
	lo, err := operand(low)
	if err != nil {
		return Expr{err: err}
	}
	return Expr{node: lo}.Binary(types.OpAnd, high)
}

// IsNull is e IS NULL.
func (e Expr) IsNull() Expr { return e.Binary(types.OpIs, types.Null) }

// IsNotNull is e IS NOT NULL.
func (e Expr) IsNotNull() Expr { return e.Binary(types.OpIsNot, types.Null) }

// Add is e + v.
func (e Expr) Add(v any) Expr { return e.Binary(types.OpAdd, v) }

// Sub is e - v.
func (e Expr) Sub(v any) Expr { return e.Binary(types.OpSub, v) }

// Mul is e * v.
func (e Expr) Mul(v any) Expr { return e.Binary(types.OpMul, v) }

// Div is e / v.
func (e Expr) Div(v any) Expr { return e.Binary(types.OpDiv, v) }

// Mod is e % v.
func (e Expr) Mod(v any) Expr { return e.Binary(types.OpMod, v) }

// And is e AND v.
func (e Expr) And(v any) Expr { return e.Binary(types.OpAnd, v) }

// Or is e OR v.
func (e Expr) Or(v any) Expr { return e.Binary(types.OpOr, v) }

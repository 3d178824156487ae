package chql

import "github.com/zoobzio/chql/internal/types"

// All groups expressions with AND.
func All(items ...Expr) Expr {
	return group(types.All, items)
}

// Any groups expressions with OR.
func Any(items ...Expr) Expr {
	return group(types.Any, items)
}

func group(kind types.ConditionKind, items []Expr) Expr {
	cond := types.Condition{Kind: kind, Items: make([]types.Expr, 0, len(items))}
	for _, item := range items {
		if item.err != nil {
			return Expr{err: item.err}
		}
		cond.Items = append(cond.Items, item.node)
	}
	return Expr{node: cond}
}

// Not negates e. Condition groups are negated in place, anything else is
// wrapped in a NOT operator.
func Not(e Expr) Expr {
	if e.err != nil {
		return e
	}
	if cond, ok := e.node.(types.Condition); ok {
		cond.Negate = !cond.Negate
		return Expr{node: cond}
	}
	return Expr{node: types.Unary{Expr: e.node, Op: types.OpNot}}
}

// Exists is EXISTS (subquery).
func Exists(b *Builder) Expr {
	if b.err != nil {
		return Expr{err: b.err}
	}
	return Expr{node: types.Exists{SubQuery: types.SubQuery{Stmt: b.stmt}}}
}

// asCondition lifts a node to a condition group.
func asCondition(node types.Expr) types.Condition {
	if cond, ok := node.(types.Condition); ok {
		return cond
	}
	return types.Condition{Kind: types.All, Items: []types.Expr{node}}
}

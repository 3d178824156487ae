package chql

import (
	"fmt"

	"github.com/zoobzio/chql/internal/render"
	"github.com/zoobzio/chql/internal/types"
)

// Builder provides a fluent API for constructing SELECT statements.
// The first error is kept and every later call becomes a no-op.
type Builder struct {
	stmt *types.SelectStatement
	err  error
}

// Select creates a new SELECT query builder reading from t.
func Select(t types.Table) *Builder {
	table := t
	return &Builder{stmt: &types.SelectStatement{From: &table}}
}

// SelectNoFrom creates a SELECT builder without a FROM clause.
func SelectNoFrom() *Builder {
	return &Builder{stmt: &types.SelectStatement{}}
}

// Statement returns the AST built so far.
func (b *Builder) Statement() *types.SelectStatement {
	return b.stmt
}

// Err returns the first construction error.
func (b *Builder) Err() error {
	return b.err
}

// Columns appends expressions to the select list.
func (b *Builder) Columns(cols ...Expr) *Builder {
	if b.err != nil {
		return b
	}
	for _, col := range cols {
		if col.err != nil {
			b.err = col.err
			return b
		}
		b.stmt.Columns = append(b.stmt.Columns, types.SelectExpr{Expr: col.node})
	}
	return b
}

// ColumnAs appends e to the select list under alias.
func (b *Builder) ColumnAs(e Expr, alias string) *Builder {
	if b.err != nil {
		return b
	}
	if e.err != nil {
		b.err = e.err
		return b
	}
	if !isValidSQLIdentifier(alias) {
		b.err = fmt.Errorf("invalid alias: %q is not a valid identifier", alias)
		return b
	}
	b.stmt.Columns = append(b.stmt.Columns, types.SelectExpr{Expr: e.node, Alias: alias})
	return b
}

// Distinct adds SELECT DISTINCT.
func (b *Builder) Distinct() *Builder {
	return b.distinct(types.Distinct, nil)
}

// DistinctAll adds SELECT ALL.
func (b *Builder) DistinctAll() *Builder {
	return b.distinct(types.DistinctAll, nil)
}

// DistinctRow adds SELECT DISTINCTROW. Dialects without it render nothing.
func (b *Builder) DistinctRow() *Builder {
	return b.distinct(types.DistinctRow, nil)
}

// DistinctOn adds SELECT DISTINCT ON (cols). Every argument must be a column.
func (b *Builder) DistinctOn(cols ...Expr) *Builder {
	if b.err != nil {
		return b
	}
	columns := make([]types.Column, 0, len(cols))
	for _, c := range cols {
		if c.err != nil {
			b.err = c.err
			return b
		}
		col, ok := c.node.(types.Column)
		if !ok {
			b.err = fmt.Errorf("DISTINCT ON requires column references, got %T", c.node)
			return b
		}
		columns = append(columns, col)
	}
	return b.distinct(types.DistinctOn, columns)
}

func (b *Builder) distinct(kind types.DistinctKind, cols []types.Column) *Builder {
	if b.err != nil {
		return b
	}
	b.stmt.Distinct = &types.SelectDistinct{Kind: kind, Columns: cols}
	return b
}

// Join adds an INNER JOIN.
func (b *Builder) Join(t types.Table, on Expr) *Builder {
	return b.join(types.InnerJoin, t, on)
}

// LeftJoin adds a LEFT JOIN.
func (b *Builder) LeftJoin(t types.Table, on Expr) *Builder {
	return b.join(types.LeftJoin, t, on)
}

// RightJoin adds a RIGHT JOIN.
func (b *Builder) RightJoin(t types.Table, on Expr) *Builder {
	return b.join(types.RightJoin, t, on)
}

// FullJoin adds a FULL OUTER JOIN.
func (b *Builder) FullJoin(t types.Table, on Expr) *Builder {
	return b.join(types.FullOuterJoin, t, on)
}

// CrossJoin adds a CROSS JOIN.
func (b *Builder) CrossJoin(t types.Table) *Builder {
	if b.err != nil {
		return b
	}
	b.stmt.Joins = append(b.stmt.Joins, types.Join{Table: t, Type: types.CrossJoin})
	return b
}

func (b *Builder) join(kind types.JoinType, t types.Table, on Expr) *Builder {
	if b.err != nil {
		return b
	}
	if on.err != nil {
		b.err = on.err
		return b
	}
	if on.node == nil {
		b.err = fmt.Errorf("%s requires an ON condition", kind)
		return b
	}
	cond := asCondition(on.node)
	b.stmt.Joins = append(b.stmt.Joins, types.Join{Table: t, Type: kind, On: &cond})
	return b
}

// Where adds a condition. Repeated calls are combined with AND.
func (b *Builder) Where(e Expr) *Builder {
	if b.err != nil {
		return b
	}
	if e.err != nil {
		b.err = e.err
		return b
	}
	b.stmt.Where = and(b.stmt.Where, e.node)
	return b
}

// GroupBy appends GROUP BY expressions.
func (b *Builder) GroupBy(exprs ...Expr) *Builder {
	if b.err != nil {
		return b
	}
	for _, e := range exprs {
		if e.err != nil {
			b.err = e.err
			return b
		}
		b.stmt.GroupBy = append(b.stmt.GroupBy, e.node)
	}
	return b
}

// Having adds a HAVING condition. Repeated calls are combined with AND.
func (b *Builder) Having(e Expr) *Builder {
	if b.err != nil {
		return b
	}
	if e.err != nil {
		b.err = e.err
		return b
	}
	b.stmt.Having = and(b.stmt.Having, e.node)
	return b
}

// and merges node into an existing AND group, or starts one.
func and(existing *types.Condition, node types.Expr) *types.Condition {
	if existing == nil {
		cond := asCondition(node)
		return &cond
	}
	if existing.Kind != types.All || existing.Negate {
		wrapped := types.Condition{Kind: types.All, Items: []types.Expr{*existing}}
		existing = &wrapped
	}
	merged := existing.Add(node)
	return &merged
}

// OrderBy adds an ORDER BY item.
func (b *Builder) OrderBy(e Expr, dir types.Direction) *Builder {
	return b.order(e, types.Order{Direction: dir}, types.NullsDefault)
}

// OrderByNulls adds an ORDER BY item with explicit NULLS FIRST or LAST.
func (b *Builder) OrderByNulls(e Expr, dir types.Direction, nulls types.NullOrdering) *Builder {
	return b.order(e, types.Order{Direction: dir}, nulls)
}

// OrderByField sorts rows by the position of e's value in values.
func (b *Builder) OrderByField(e Expr, values ...any) *Builder {
	if b.err != nil {
		return b
	}
	if len(values) == 0 {
		b.err = fmt.Errorf("ORDER BY field list requires at least one value")
		return b
	}
	field := make([]types.Value, 0, len(values))
	for _, v := range values {
		field = append(field, types.Value{Raw: v})
	}
	return b.order(e, types.Order{Field: field}, types.NullsDefault)
}

func (b *Builder) order(e Expr, order types.Order, nulls types.NullOrdering) *Builder {
	if b.err != nil {
		return b
	}
	if e.err != nil {
		b.err = e.err
		return b
	}
	b.stmt.Orders = append(b.stmt.Orders, types.OrderExpr{Expr: e.node, Order: order, Nulls: nulls})
	return b
}

// Limit sets the LIMIT clause.
func (b *Builder) Limit(n uint64) *Builder {
	if b.err != nil {
		return b
	}
	b.stmt.Limit = &types.Value{Raw: n}
	return b
}

// Offset sets the OFFSET clause.
func (b *Builder) Offset(n uint64) *Builder {
	if b.err != nil {
		return b
	}
	b.stmt.Offset = &types.Value{Raw: n}
	return b
}

// Build renders the query with r's placeholders and returns the SQL with
// its bind values.
func (b *Builder) Build(r Renderer) (*QueryResult, error) {
	if b.err != nil {
		return nil, b.err
	}
	return render.Build(r, b.stmt)
}

// MustBuild builds the query and panics on error.
func (b *Builder) MustBuild(r Renderer) *QueryResult {
	result, err := b.Build(r)
	if err != nil {
		panic(err)
	}
	return result
}

// String renders the query with every value inlined as a literal.
func (b *Builder) String(r Renderer) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	return render.Inline(r, b.stmt)
}

package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zoobzio/chql/internal/types"
)

// timestampLayout is how time.Time literals are written inline.
const timestampLayout = "2006-01-02 15:04:05.999999"

// Engine walks a statement and writes SQL, deferring to its Dialect at
// every hook point.
type Engine struct {
	dialect Dialect
}

// NewEngine creates an engine for d.
func NewEngine(d Dialect) *Engine {
	return &Engine{dialect: d}
}

// Build renders stmt with placeholders and returns the SQL with its bind values.
func Build(d Dialect, stmt *types.SelectStatement) (*types.QueryResult, error) {
	if err := stmt.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AST: %w", err)
	}
	w := NewWriter()
	NewEngine(d).Select(stmt, w)
	if err := w.Err(); err != nil {
		return nil, err
	}
	values := w.Values()
	if values == nil {
		values = []any{}
	}
	return &types.QueryResult{SQL: w.String(), Values: values}, nil
}

// Inline renders stmt with every value written as a literal.
func Inline(d Dialect, stmt *types.SelectStatement) (string, error) {
	if err := stmt.Validate(); err != nil {
		return "", fmt.Errorf("invalid AST: %w", err)
	}
	w := NewInlineWriter()
	NewEngine(d).Select(stmt, w)
	if err := w.Err(); err != nil {
		return "", err
	}
	return w.String(), nil
}

// Select writes a full SELECT statement.
func (e *Engine) Select(stmt *types.SelectStatement, w *Writer) {
	w.WriteString("SELECT ")

	if stmt.Distinct != nil {
		before := w.Len()
		e.dialect.PrepareSelectDistinct(e, *stmt.Distinct, w)
		if w.Len() > before {
			w.WriteString(" ")
		}
	}

	if len(stmt.Columns) == 0 {
		w.WriteString("*")
	}
	for i, sel := range stmt.Columns {
		if i > 0 {
			w.WriteString(", ")
		}
		e.Expr(sel.Expr, w)
		if sel.Alias != "" {
			w.WriteString(" AS ")
			w.WriteString(e.QuoteIdentifier(sel.Alias))
		}
	}

	if stmt.From != nil {
		w.WriteString(" FROM ")
		e.TableRef(*stmt.From, w)
	}

	for _, join := range stmt.Joins {
		w.WriteString(" ")
		w.WriteString(string(join.Type))
		w.WriteString(" ")
		e.TableRef(join.Table, w)
		// CROSS JOIN has no ON clause
		if join.Type != types.CrossJoin && join.On != nil {
			w.WriteString(" ON ")
			e.Condition(*join.On, w, false)
		}
	}

	if stmt.Where != nil {
		w.WriteString(" WHERE ")
		e.Condition(*stmt.Where, w, false)
	}

	if len(stmt.GroupBy) > 0 {
		w.WriteString(" GROUP BY ")
		for i, expr := range stmt.GroupBy {
			if i > 0 {
				w.WriteString(", ")
			}
			e.Expr(expr, w)
		}
	}

	if stmt.Having != nil {
		w.WriteString(" HAVING ")
		e.Condition(*stmt.Having, w, false)
	}

	if len(stmt.Orders) > 0 {
		w.WriteString(" ORDER BY ")
		for i, order := range stmt.Orders {
			if i > 0 {
				w.WriteString(", ")
			}
			e.dialect.PrepareOrderExpr(e, order, w)
		}
	}

	if stmt.Limit != nil {
		w.WriteString(" LIMIT ")
		e.Value(*stmt.Limit, w)
	}

	if stmt.Offset != nil {
		w.WriteString(" OFFSET ")
		e.Value(*stmt.Offset, w)
	}
}

// SelectDistinctCommon writes ALL, DISTINCT or DISTINCTROW. DISTINCT ON has
// no generic form and fails the render.
func (e *Engine) SelectDistinctCommon(distinct types.SelectDistinct, w *Writer) {
	switch distinct.Kind {
	case types.DistinctAll:
		w.WriteString("ALL")
	case types.Distinct:
		w.WriteString("DISTINCT")
	case types.DistinctRow:
		w.WriteString("DISTINCTROW")
	default:
		w.Fail(NewUnsupportedFeatureError(e.dialect.Name(), "DISTINCT ON", "group by the key columns instead"))
	}
}

// BinOperCommon writes the token of a standard operator. Vendor operators
// fail the render.
func (e *Engine) BinOperCommon(op types.BinOper, w *Writer) {
	token, ok := commonOperators[op]
	if !ok {
		w.Fail(NewUnsupportedFeatureError(e.dialect.Name(), op.String()+" operator"))
		return
	}
	w.WriteString(token)
}

var commonOperators = map[types.BinOper]string{
	types.OpAnd:                "AND",
	types.OpOr:                 "OR",
	types.OpEqual:              "=",
	types.OpNotEqual:           "<>",
	types.OpLike:               "LIKE",
	types.OpNotLike:            "NOT LIKE",
	types.OpIs:                 "IS",
	types.OpIsNot:              "IS NOT",
	types.OpIn:                 "IN",
	types.OpNotIn:              "NOT IN",
	types.OpBetween:            "BETWEEN",
	types.OpNotBetween:         "NOT BETWEEN",
	types.OpSmallerThan:        "<",
	types.OpGreaterThan:        ">",
	types.OpSmallerThanOrEqual: "<=",
	types.OpGreaterThanOrEqual: ">=",
	types.OpAdd:                "+",
	types.OpSub:                "-",
	types.OpMul:                "*",
	types.OpDiv:                "/",
	types.OpMod:                "%",
}

// OrderExprCommon writes an ORDER BY item. NULLS FIRST/LAST is emulated
// with a leading "expr IS NULL" sort key; a value list becomes a CASE.
func (e *Engine) OrderExprCommon(order types.OrderExpr, w *Writer) {
	switch order.Nulls {
	case types.NullsFirst:
		e.Expr(order.Expr, w)
		w.WriteString(" IS NULL DESC, ")
	case types.NullsLast:
		e.Expr(order.Expr, w)
		w.WriteString(" IS NULL ASC, ")
	}

	if !order.Order.IsField() {
		e.Expr(order.Expr, w)
		w.WriteString(" ")
		if order.Order.Direction == "" {
			w.WriteString(string(types.ASC))
		} else {
			w.WriteString(string(order.Order.Direction))
		}
		return
	}

	w.WriteString("CASE ")
	for i, v := range order.Order.Field {
		w.WriteString("WHEN ")
		e.Expr(order.Expr, w)
		w.WriteString("=")
		e.Value(v, w)
		w.WriteString(" THEN ")
		w.WriteString(strconv.Itoa(i))
		w.WriteString(" ")
	}
	w.WriteString("ELSE ")
	w.WriteString(strconv.Itoa(len(order.Order.Field)))
	w.WriteString(" END")
}

// QuoteIdentifier wraps name in the dialect's quote character, doubling
// any embedded quote characters.
func (e *Engine) QuoteIdentifier(name string) string {
	q := string(e.dialect.QuoteChar())
	return q + strings.ReplaceAll(name, q, q+q) + q
}

// ColumnRef writes a possibly qualified column reference.
func (e *Engine) ColumnRef(col types.Column, w *Writer) {
	if col.Table != "" {
		w.WriteString(e.QuoteIdentifier(col.Table))
		w.WriteString(".")
	}
	if col.Name == "*" {
		w.WriteString("*")
		return
	}
	w.WriteString(e.QuoteIdentifier(col.Name))
}

// TableRef writes a table with its alias.
func (e *Engine) TableRef(table types.Table, w *Writer) {
	w.WriteString(e.QuoteIdentifier(table.Name))
	if table.Alias != "" {
		w.WriteString(" AS ")
		w.WriteString(e.QuoteIdentifier(table.Alias))
	}
}

// Condition writes a condition group. A nested or negated group is
// parenthesized when it has more than one item or its only item is an
// AND/OR binary.
func (e *Engine) Condition(cond types.Condition, w *Writer, nested bool) {
	if len(cond.Items) == 0 {
		w.Fail(fmt.Errorf("empty condition group"))
		return
	}

	multi := len(cond.Items) > 1
	if cond.Negate {
		w.WriteString("NOT ")
	}
	paren := (nested || cond.Negate) && (multi || isLogical(cond.Items[0]))
	if paren {
		w.WriteString("(")
	}
	for i, item := range cond.Items {
		if i > 0 {
			w.WriteString(" ")
			w.WriteString(string(cond.Kind))
			w.WriteString(" ")
		}
		if multi && isLogical(item) {
			w.WriteString("(")
			e.Expr(item, w)
			w.WriteString(")")
			continue
		}
		e.Expr(item, w)
	}
	if paren {
		w.WriteString(")")
	}
}

// Expr writes any expression node.
func (e *Engine) Expr(expr types.Expr, w *Writer) {
	switch x := expr.(type) {
	case types.Column:
		e.ColumnRef(x, w)
	case types.Value:
		e.Value(x, w)
	case types.Keyword:
		w.WriteString(string(x))
	case types.Binary:
		e.binary(x, w)
	case types.Unary:
		w.WriteString(string(x.Op))
		w.WriteString(" ")
		_, isBinary := x.Expr.(types.Binary)
		e.operand(x.Expr, w, isBinary)
	case types.Func:
		e.function(x, w)
	case types.Tuple:
		w.WriteString("(")
		for i, item := range x.Exprs {
			if i > 0 {
				w.WriteString(", ")
			}
			e.Expr(item, w)
		}
		w.WriteString(")")
	case types.SubQuery:
		w.WriteString("(")
		if x.Stmt != nil {
			e.dialect.PrepareQueryStatement(e, x.Stmt, w)
		}
		w.WriteString(")")
	case types.Exists:
		w.WriteString("EXISTS ")
		e.Expr(x.SubQuery, w)
	case types.Condition:
		e.Condition(x, w, true)
	case nil:
		w.Fail(fmt.Errorf("nil expression"))
	default:
		w.Fail(fmt.Errorf("unknown expression type: %T", x))
	}
}

func (e *Engine) binary(b types.Binary, w *Writer) {
	if empty, ok := b.Right.(types.Tuple); ok && len(empty.Exprs) == 0 {
		switch b.Op {
		case types.OpIn:
			w.WriteString("1 = 2")
			return
		case types.OpNotIn:
			w.WriteString("1 = 1")
			return
		}
	}

	// BETWEEN's right side is "low AND high" and is never parenthesized.
	between := b.Op == types.OpBetween || b.Op == types.OpNotBetween
	e.operand(b.Left, w, operandParen(b.Op, b.Left, false))
	w.WriteString(" ")
	e.dialect.PrepareBinOper(e, b.Op, w)
	w.WriteString(" ")
	e.operand(b.Right, w, !between && operandParen(b.Op, b.Right, true))
}

// operandParen reports whether child must be parenthesized to keep its
// grouping under parent. Mixed AND/OR is always grouped. Otherwise a
// looser child is grouped, as is an equal one on the right of a
// non-associative operator or on either side of a comparison.
func operandParen(parent types.BinOper, child types.Expr, right bool) bool {
	prec, op, ok := precedenceOf(child)
	if !ok {
		return false
	}
	if isLogicalOp(parent) && isLogicalOp(op) {
		return op != parent
	}
	pp := parent.Precedence()
	switch {
	case prec < pp:
		return true
	case prec > pp:
		return false
	case pp == types.PrecComparison || pp == types.PrecOther:
		return true
	case right:
		return op != parent || !parent.Associative()
	}
	return false
}

// precedenceOf returns the binding of expr as it will be written. Nodes
// that are atomic or parenthesize themselves report ok=false.
func precedenceOf(expr types.Expr) (prec int, op types.BinOper, ok bool) {
	switch x := expr.(type) {
	case types.Binary:
		if empty, isTuple := x.Right.(types.Tuple); isTuple && len(empty.Exprs) == 0 &&
			(x.Op == types.OpIn || x.Op == types.OpNotIn) {
			return types.PrecComparison, types.OpEqual, true
		}
		return x.Op.Precedence(), x.Op, true
	case types.Unary:
		return types.PrecNot, 0, true
	case types.Condition:
		if len(x.Items) != 1 {
			return 0, 0, false
		}
		if x.Negate {
			return types.PrecNot, 0, true
		}
		if isLogical(x.Items[0]) {
			return 0, 0, false
		}
		return precedenceOf(x.Items[0])
	}
	return 0, 0, false
}

func (e *Engine) operand(expr types.Expr, w *Writer, paren bool) {
	if !paren {
		e.Expr(expr, w)
		return
	}
	w.WriteString("(")
	e.Expr(expr, w)
	w.WriteString(")")
}

func (e *Engine) function(f types.Func, w *Writer) {
	switch f.Name {
	case types.FuncIfNull:
		w.WriteString(e.dialect.IfNullFunction())
	case types.FuncCountDistinct:
		w.WriteString("COUNT(DISTINCT ")
		e.args(f.Args, w)
		w.WriteString(")")
		return
	default:
		w.WriteString(string(f.Name))
	}
	w.WriteString("(")
	if f.Name == types.FuncCount && len(f.Args) == 0 {
		w.WriteString("*")
	}
	e.args(f.Args, w)
	w.WriteString(")")
}

func (e *Engine) args(args []types.Expr, w *Writer) {
	for i, arg := range args {
		if i > 0 {
			w.WriteString(", ")
		}
		e.Expr(arg, w)
	}
}

// Value writes a bound value: a placeholder in collect mode, a literal
// in inline mode.
func (e *Engine) Value(v types.Value, w *Writer) {
	if !supported(v.Raw) {
		w.Fail(UnsupportedValueError{Value: v.Raw})
		return
	}
	if w.Inline() {
		e.Literal(v, w)
		return
	}
	marker, numbered := e.dialect.Placeholder()
	w.pushPlaceholder(v.Raw, marker, numbered)
}

// Literal writes v as SQL literal text.
func (e *Engine) Literal(v types.Value, w *Writer) {
	switch x := v.Raw.(type) {
	case nil:
		w.WriteString("NULL")
	case bool:
		if x {
			w.WriteString("TRUE")
		} else {
			w.WriteString("FALSE")
		}
	case int:
		w.WriteString(strconv.FormatInt(int64(x), 10))
	case int8:
		w.WriteString(strconv.FormatInt(int64(x), 10))
	case int16:
		w.WriteString(strconv.FormatInt(int64(x), 10))
	case int32:
		w.WriteString(strconv.FormatInt(int64(x), 10))
	case int64:
		w.WriteString(strconv.FormatInt(x, 10))
	case uint:
		w.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint8:
		w.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint16:
		w.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint32:
		w.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint64:
		w.WriteString(strconv.FormatUint(x, 10))
	case float32:
		w.WriteString(strconv.FormatFloat(float64(x), 'g', -1, 32))
	case float64:
		w.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	case string:
		e.dialect.WriteStringQuoted(x, w)
	case []byte:
		w.WriteString(fmt.Sprintf("x'%X'", x))
	case time.Time:
		e.dialect.WriteStringQuoted(x.Format(timestampLayout), w)
	default:
		w.Fail(UnsupportedValueError{Value: v.Raw})
	}
}

func supported(v any) bool {
	switch v.(type) {
	case nil, bool, string, []byte, time.Time,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// isLogical reports whether expr is an AND/OR binary. Conditions
// parenthesize themselves and are not included.
func isLogical(expr types.Expr) bool {
	b, ok := expr.(types.Binary)
	return ok && isLogicalOp(b.Op)
}

func isLogicalOp(op types.BinOper) bool {
	return op == types.OpAnd || op == types.OpOr
}

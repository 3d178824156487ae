package render

import "github.com/zoobzio/chql/internal/types"

// Base supplies the generic implementation of the overridable hooks.
// Dialects embed it and shadow the methods they need to change.
type Base struct{}

// PrepareSelectDistinct renders ALL, DISTINCT and DISTINCTROW.
func (Base) PrepareSelectDistinct(e *Engine, distinct types.SelectDistinct, w *Writer) {
	e.SelectDistinctCommon(distinct, w)
}

// PrepareBinOper renders the standard operator tokens.
func (Base) PrepareBinOper(e *Engine, op types.BinOper, w *Writer) {
	e.BinOperCommon(op, w)
}

// PrepareQueryStatement renders the nested SELECT.
func (Base) PrepareQueryStatement(e *Engine, stmt *types.SelectStatement, w *Writer) {
	e.Select(stmt, w)
}

// PrepareOrderExpr renders an ORDER BY item, emulating NULLS ordering.
func (Base) PrepareOrderExpr(e *Engine, order types.OrderExpr, w *Writer) {
	e.OrderExprCommon(order, w)
}

// WriteStringQuoted escapes s and wraps it in single quotes.
func (Base) WriteStringQuoted(s string, w *Writer) {
	w.WriteString("'" + EscapeString(s) + "'")
}

// IfNullFunction returns IFNULL.
func (Base) IfNullFunction() string {
	return "IFNULL"
}

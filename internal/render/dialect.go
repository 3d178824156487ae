// Package render turns a query AST into SQL text for a Dialect.
//
// The Engine owns the traversal and the generic SQL for every clause. A
// Dialect customizes output through a small set of hooks; embedding Base
// gives a dialect the generic behavior for every hook it does not override.
package render

import "github.com/zoobzio/chql/internal/types"

// Dialect is the set of hooks a SQL dialect supplies to the Engine.
type Dialect interface {
	// Name identifies the dialect in errors.
	Name() string

	// QuoteChar is the identifier delimiter, used to open and close.
	QuoteChar() byte

	// Placeholder returns the bind marker and whether placeholders are
	// numbered ($1, $2) rather than anonymous (?).
	Placeholder() (marker string, numbered bool)

	// PrepareSelectDistinct writes the modifier after SELECT. Writing
	// nothing omits the modifier.
	PrepareSelectDistinct(e *Engine, distinct types.SelectDistinct, w *Writer)

	// PrepareBinOper writes the token for a binary operator.
	PrepareBinOper(e *Engine, op types.BinOper, w *Writer)

	// PrepareQueryStatement writes a nested statement inside the
	// parentheses of a subquery expression.
	PrepareQueryStatement(e *Engine, stmt *types.SelectStatement, w *Writer)

	// PrepareOrderExpr writes one ORDER BY item.
	PrepareOrderExpr(e *Engine, order types.OrderExpr, w *Writer)

	// WriteStringQuoted writes s as a string literal.
	WriteStringQuoted(s string, w *Writer)

	// IfNullFunction is the name of the two-argument null fallback function.
	IfNullFunction() string
}

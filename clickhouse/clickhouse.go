// Package clickhouse provides the ClickHouse dialect renderer for chql.
//
// It renders through the generic engine and overrides only what differs:
// double-quoted identifiers, $n placeholders, DISTINCT ON, the vendor
// pattern/containment/similarity operators, E'...' strings and COALESCE.
package clickhouse

import (
	"strings"

	"github.com/zoobzio/chql/internal/render"
	"github.com/zoobzio/chql/internal/types"
)

// Renderer implements the ClickHouse dialect.
//
// ORDER BY is not overridden, so NULLS FIRST/LAST and value
// list orderings use the generic emulation.
type Renderer struct {
	render.Base
}

// New creates a new ClickHouse renderer.
func New() *Renderer {
	return &Renderer{}
}

var _ render.Dialect = (*Renderer)(nil)

// Name returns the dialect name.
func (r *Renderer) Name() string {
	return "ClickHouse"
}

// QuoteChar returns the identifier quote.
func (r *Renderer) QuoteChar() byte {
	return '"'
}

// Placeholder returns "$" with numbering, so each bound value gets its
// own index.
func (r *Renderer) Placeholder() (string, bool) {
	return "$", true
}

// PrepareSelectDistinct renders ALL, DISTINCT and DISTINCT ON (...).
// DISTINCTROW has no equivalent and renders nothing.
func (r *Renderer) PrepareSelectDistinct(e *render.Engine, distinct types.SelectDistinct, w *render.Writer) {
	switch distinct.Kind {
	case types.DistinctAll:
		w.WriteString("ALL")
	case types.Distinct:
		w.WriteString("DISTINCT")
	case types.DistinctOn:
		w.WriteString("DISTINCT ON (")
		for i, col := range distinct.Columns {
			if i > 0 {
				w.WriteString(", ")
			}
			e.ColumnRef(col, w)
		}
		w.WriteString(")")
	}
}

// PrepareBinOper renders the vendor operators and defers the rest.
func (r *Renderer) PrepareBinOper(e *render.Engine, op types.BinOper, w *render.Writer) {
	if token, ok := vendorOperators[op]; ok {
		w.WriteString(token)
		return
	}
	e.BinOperCommon(op, w)
}

var vendorOperators = map[types.BinOper]string{
	types.OpILike:                        "ILIKE",
	types.OpNotILike:                     "NOT ILIKE",
	types.OpMatches:                      "@@",
	types.OpContains:                     "@>",
	types.OpContained:                    "<@",
	types.OpConcatenate:                  "||",
	types.OpSimilarity:                   "%",
	types.OpWordSimilarity:               "<%",
	types.OpStrictWordSimilarity:         "<<%",
	types.OpSimilarityDistance:           "<->",
	types.OpWordSimilarityDistance:       "<<->",
	types.OpStrictWordSimilarityDistance: "<<<->",
}

// PrepareQueryStatement renders nothing: nested statements are not
// emitted by this dialect, leaving the surrounding parentheses empty.
func (r *Renderer) PrepareQueryStatement(_ *render.Engine, _ *types.SelectStatement, _ *render.Writer) {
}

// WriteStringQuoted escapes s and single-quotes it, adding the E prefix
// when the escaped text contains a backslash.
func (r *Renderer) WriteStringQuoted(s string, w *render.Writer) {
	escaped := render.EscapeString(s)
	if strings.Contains(escaped, `\`) {
		w.WriteString("E'" + escaped + "'")
		return
	}
	w.WriteString("'" + escaped + "'")
}

// IfNullFunction returns COALESCE.
func (r *Renderer) IfNullFunction() string {
	return "COALESCE"
}

// Render renders stmt with $n placeholders and its bind values.
func (r *Renderer) Render(stmt *types.SelectStatement) (*types.QueryResult, error) {
	return render.Build(r, stmt)
}

// RenderInline renders stmt with literal values, ready to send over HTTP.
func (r *Renderer) RenderInline(stmt *types.SelectStatement) (string, error) {
	return render.Inline(r, stmt)
}

// Package generic provides the default SQL dialect: backtick identifiers,
// anonymous ? placeholders and no vendor extensions.
package generic

import (
	"github.com/zoobzio/chql/internal/render"
	"github.com/zoobzio/chql/internal/types"
)

// Renderer implements the generic dialect using every default hook.
type Renderer struct {
	render.Base
}

// New creates a new generic renderer.
func New() *Renderer {
	return &Renderer{}
}

var _ render.Dialect = (*Renderer)(nil)

// Name returns the dialect name.
func (r *Renderer) Name() string {
	return "generic"
}

// QuoteChar returns the backtick.
func (r *Renderer) QuoteChar() byte {
	return '`'
}

// Placeholder returns the anonymous "?" marker.
func (r *Renderer) Placeholder() (string, bool) {
	return "?", false
}

// Render renders stmt with ? placeholders and its bind values.
func (r *Renderer) Render(stmt *types.SelectStatement) (*types.QueryResult, error) {
	return render.Build(r, stmt)
}

// RenderInline renders stmt with literal values.
func (r *Renderer) RenderInline(stmt *types.SelectStatement) (string, error) {
	return render.Inline(r, stmt)
}

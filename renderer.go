package chql

import "github.com/zoobzio/chql/internal/render"

// Renderer is a SQL dialect: the hooks the generic renderer calls where
// dialects differ. Implementations embed Base and override what they need.
type Renderer = render.Dialect

package types

// Table represents a table reference with an optional alias.
type Table struct {
	Name  string
	Alias string
}

package chql

import (
	"fmt"

	"github.com/zoobzio/chql/internal/types"
)

// TryT creates a table reference, returning an error if invalid.
func TryT(name string, alias ...string) (types.Table, error) {
	if !isValidSQLIdentifier(name) {
		return types.Table{}, fmt.Errorf("invalid table: %q is not a valid identifier", name)
	}

	t := types.Table{Name: name}
	if len(alias) > 0 {
		if len(alias) > 1 {
			return types.Table{}, fmt.Errorf("only one alias allowed")
		}
		// Enforce single lowercase letter for aliases
		if !isValidTableAlias(alias[0]) {
			return types.Table{}, fmt.Errorf("table alias must be single lowercase letter (a-z), got: %s", alias[0])
		}
		t.Alias = alias[0]
	}
	return t, nil
}

// T creates a table reference.
func T(name string, alias ...string) types.Table {
	table, err := TryT(name, alias...)
	if err != nil {
		panic(err)
	}
	return table
}

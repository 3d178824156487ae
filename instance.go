package chql

import (
	"fmt"

	"github.com/zoobzio/chql/internal/types"
	"github.com/zoobzio/dbml"
)

// Instance validates table and column references against a DBML schema.
type Instance struct {
	// Internal indexes for fast validation
	tables  map[string]*dbml.Table
	columns map[string]map[string]*dbml.Column // table -> column -> definition
}

// NewFromDBML creates a new Instance from a DBML project.
func NewFromDBML(project *dbml.Project) (*Instance, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	i := &Instance{
		tables:  make(map[string]*dbml.Table),
		columns: make(map[string]map[string]*dbml.Column),
	}

	for _, table := range project.Tables {
		i.tables[table.Name] = table
		i.columns[table.Name] = make(map[string]*dbml.Column)
		for _, col := range table.Columns {
			i.columns[table.Name][col.Name] = col
		}
	}

	return i, nil
}

// validateTable checks if a table exists in the schema.
func (i *Instance) validateTable(name string) error {
	if _, ok := i.tables[name]; !ok {
		return fmt.Errorf("table '%s' not found in schema", name)
	}
	return nil
}

// validateColumn checks a column reference. A qualifier must be a table
// alias or a known table; a table-qualified column must belong to it.
func (i *Instance) validateColumn(ref string) error {
	qualifier, name := "", ref
	if dot := lastDotIndex(ref); dot != -1 {
		qualifier, name = ref[:dot], ref[dot+1:]
	}

	if qualifier != "" {
		if cols, ok := i.columns[qualifier]; ok {
			if _, ok := cols[name]; ok || name == "*" {
				return nil
			}
			return fmt.Errorf("column '%s' not found in table '%s'", name, qualifier)
		}
		if !isValidTableAlias(qualifier) {
			return fmt.Errorf("qualifier must be a single-letter alias (a-z) or a table name, got: %s", qualifier)
		}
	}
	if name == "*" {
		return nil
	}

	for _, cols := range i.columns {
		if _, ok := cols[name]; ok {
			return nil
		}
	}
	return fmt.Errorf("column '%s' not found in schema", ref)
}

// TryT creates a validated table reference, returning an error if invalid.
func (i *Instance) TryT(name string, alias ...string) (types.Table, error) {
	if err := i.validateTable(name); err != nil {
		return types.Table{}, fmt.Errorf("invalid table: %w", err)
	}
	return TryT(name, alias...)
}

// T creates a validated table reference.
func (i *Instance) T(name string, alias ...string) types.Table {
	t, err := i.TryT(name, alias...)
	if err != nil {
		panic(err)
	}
	return t
}

// TryC creates a validated column reference, returning an error if invalid.
func (i *Instance) TryC(ref string) (Expr, error) {
	if err := i.validateColumn(ref); err != nil {
		return Expr{}, fmt.Errorf("invalid column: %w", err)
	}
	return TryCol(ref)
}

// C creates a validated column reference.
func (i *Instance) C(ref string) Expr {
	e, err := i.TryC(ref)
	if err != nil {
		panic(err)
	}
	return e
}

// isValidTableAlias checks if a string is a valid single-letter table alias.
func isValidTableAlias(alias string) bool {
	return len(alias) == 1 && alias[0] >= 'a' && alias[0] <= 'z'
}

// lastDotIndex finds the last dot in a string.
func lastDotIndex(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}

// isValidSQLIdentifier checks if a string is a valid SQL identifier.
func isValidSQLIdentifier(s string) bool {
	if s == "" {
		return false
	}

	// Must start with letter or underscore
	first := s[0]
	if !((first >= 'a' && first <= 'z') ||
		(first >= 'A' && first <= 'Z') ||
		first == '_') {
		return false
	}

	// Rest must be alphanumeric or underscore
	for i := 1; i < len(s); i++ {
		ch := s[i]
		if !((ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') ||
			ch == '_') {
			return false
		}
	}
	return true
}

// Package chql builds SELECT statements for ClickHouse and renders them
// through pluggable SQL dialects.
//
// The package produces an Abstract Syntax Tree (AST) from fluent builder
// calls. A dialect renders the tree either with positional placeholders
// and bind values, or inline with literal values for transports that
// only accept SQL text, such as the ClickHouse HTTP interface.
//
// # Basic Usage
//
//	query := chql.Select(chql.T("users")).
//		Columns(chql.Col("name")).
//		Where(chql.Col("name").Eq("serega")).
//		Limit(10)
//
//	result, err := query.Build(clickhouse.New())
//	// result.SQL:    SELECT "name" FROM "users" WHERE "name" = $1 LIMIT $2
//	// result.Values: []any{"serega", uint64(10)}
//
//	sql, err := query.String(clickhouse.New())
//	// SELECT "name" FROM "users" WHERE "name" = 'serega' LIMIT 10
//
// # Dialects
//
// A dialect is a set of hooks over a generic renderer. Available dialects:
// clickhouse, generic.
//
// # Schema-Validated Usage
//
// For stricter references, create an Instance from a DBML schema:
//
//	instance, err := chql.NewFromDBML(project)
//	if err != nil {
//		return err
//	}
//
//	// These panic if the table/column doesn't exist in the schema
//	users := instance.T("users")
//	name := instance.C("name")
package chql

import (
	"github.com/zoobzio/chql/internal/render"
	"github.com/zoobzio/chql/internal/types"
)

// SelectStatement is the AST of a SELECT query.
type SelectStatement = types.SelectStatement

// QueryResult contains the rendered SQL and its bind values.
type QueryResult = types.QueryResult

// Table is a table reference.
type Table = types.Table

// Engine walks an AST on behalf of a Dialect.
type Engine = render.Engine

// Writer is the output buffer passed to dialect hooks.
type Writer = render.Writer

// Base provides the generic behavior of every overridable dialect hook.
type Base = render.Base

// UnsupportedFeatureError indicates a feature not supported by a dialect.
type UnsupportedFeatureError = render.UnsupportedFeatureError

// UnsupportedValueError indicates a bound value with no SQL representation.
type UnsupportedValueError = render.UnsupportedValueError

// Direction represents sort direction.
type Direction = types.Direction

// Re-export direction constants for public API.
const (
	ASC  = types.ASC
	DESC = types.DESC
)

// NullOrdering controls where NULLs sort.
type NullOrdering = types.NullOrdering

// Re-export nulls ordering constants for public API.
const (
	NullsFirst = types.NullsFirst
	NullsLast  = types.NullsLast
)

// JoinType represents the type of SQL join.
type JoinType = types.JoinType

// Re-export join constants for public API.
const (
	InnerJoin     = types.InnerJoin
	LeftJoin      = types.LeftJoin
	RightJoin     = types.RightJoin
	FullOuterJoin = types.FullOuterJoin
	CrossJoin     = types.CrossJoin
)

package types

import "fmt"

// Direction represents sort direction.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// NullOrdering controls where NULLs sort in an ORDER BY item.
type NullOrdering int

const (
	NullsDefault NullOrdering = iota
	NullsFirst
	NullsLast
)

// Order is either a direction or an explicit list of values whose
// position defines the sort order.
type Order struct {
	Direction Direction
	Field     []Value
}

// IsField reports whether the order is an explicit value list.
func (o Order) IsField() bool {
	return len(o.Field) > 0
}

// OrderExpr represents one ORDER BY item.
type OrderExpr struct {
	Expr  Expr
	Order Order
	Nulls NullOrdering
}

// DistinctKind enumerates the SELECT DISTINCT variants.
type DistinctKind int

const (
	DistinctAll DistinctKind = iota
	Distinct
	DistinctRow
	DistinctOn
)

// SelectDistinct represents the modifier between SELECT and the select list.
type SelectDistinct struct {
	Kind    DistinctKind
	Columns []Column // only for DistinctOn
}

// JoinType represents the type of SQL join.
type JoinType string

const (
	InnerJoin     JoinType = "INNER JOIN"
	LeftJoin      JoinType = "LEFT JOIN"
	RightJoin     JoinType = "RIGHT JOIN"
	FullOuterJoin JoinType = "FULL OUTER JOIN"
	CrossJoin     JoinType = "CROSS JOIN"
)

// Join represents a SQL JOIN clause.
type Join struct {
	On    *Condition
	Table Table
	Type  JoinType
}

// SelectExpr is one item of the select list.
type SelectExpr struct {
	Expr  Expr
	Alias string
}

// Limits enforced by Validate.
const (
	MaxJoinCount      = 16
	MaxConditionDepth = 16
	MaxSubqueryDepth  = 3
)

// SelectStatement is the root of the query AST. Renderers only read it.
//
//nolint:govet // fieldalignment: clause order is easier to follow
type SelectStatement struct {
	Distinct *SelectDistinct
	Columns  []SelectExpr
	From     *Table
	Joins    []Join
	Where    *Condition
	GroupBy  []Expr
	Having   *Condition
	Orders   []OrderExpr
	Limit    *Value
	Offset   *Value
}

// Validate performs structural validation of the statement.
func (s *SelectStatement) Validate() error {
	return s.validate(0)
}

func (s *SelectStatement) validate(depth int) error {
	if depth > MaxSubqueryDepth {
		return fmt.Errorf("maximum subquery depth (%d) exceeded", MaxSubqueryDepth)
	}
	if s.From != nil && s.From.Name == "" {
		return fmt.Errorf("target table is required")
	}
	if s.From == nil && len(s.Joins) > 0 {
		return fmt.Errorf("JOIN requires a FROM table")
	}
	if len(s.Joins) > MaxJoinCount {
		return fmt.Errorf("too many JOINs: %d (max %d)", len(s.Joins), MaxJoinCount)
	}
	for i, j := range s.Joins {
		if j.Table.Name == "" {
			return fmt.Errorf("join %d: table is required", i)
		}
		if j.Type != CrossJoin && j.On == nil {
			return fmt.Errorf("%s requires an ON condition", j.Type)
		}
	}
	if s.Having != nil && len(s.GroupBy) == 0 {
		return fmt.Errorf("HAVING requires GROUP BY")
	}
	if s.Distinct != nil && s.Distinct.Kind == DistinctOn && len(s.Distinct.Columns) == 0 {
		return fmt.Errorf("DISTINCT ON requires at least one column")
	}
	conditions := []*Condition{s.Where, s.Having}
	for _, j := range s.Joins {
		conditions = append(conditions, j.On)
	}
	for _, c := range conditions {
		if c == nil {
			continue
		}
		if err := validateExpr(*c, 0, depth); err != nil {
			return err
		}
	}
	for _, sel := range s.Columns {
		if err := validateExpr(sel.Expr, 0, depth); err != nil {
			return err
		}
	}
	for _, g := range s.GroupBy {
		if err := validateExpr(g, 0, depth); err != nil {
			return err
		}
	}
	for _, o := range s.Orders {
		if err := validateExpr(o.Expr, 0, depth); err != nil {
			return err
		}
	}
	return nil
}

func validateExpr(e Expr, condDepth, queryDepth int) error {
	switch x := e.(type) {
	case Condition:
		if condDepth > MaxConditionDepth {
			return fmt.Errorf("maximum condition depth (%d) exceeded", MaxConditionDepth)
		}
		if len(x.Items) == 0 {
			return fmt.Errorf("empty condition group")
		}
		for _, item := range x.Items {
			if err := validateExpr(item, condDepth+1, queryDepth); err != nil {
				return err
			}
		}
	case Binary:
		if err := validateExpr(x.Left, condDepth, queryDepth); err != nil {
			return err
		}
		return validateExpr(x.Right, condDepth, queryDepth)
	case Unary:
		return validateExpr(x.Expr, condDepth, queryDepth)
	case Func:
		for _, arg := range x.Args {
			if err := validateExpr(arg, condDepth, queryDepth); err != nil {
				return err
			}
		}
	case Tuple:
		for _, item := range x.Exprs {
			if err := validateExpr(item, condDepth, queryDepth); err != nil {
				return err
			}
		}
	case Exists:
		return validateExpr(x.SubQuery, condDepth, queryDepth)
	case SubQuery:
		if x.Stmt == nil {
			return fmt.Errorf("subquery statement is required")
		}
		return x.Stmt.validate(queryDepth + 1)
	}
	return nil
}

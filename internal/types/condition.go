package types

// ConditionKind represents how the items of a condition are combined.
type ConditionKind string

const (
	All ConditionKind = "AND"
	Any ConditionKind = "OR"
)

// Condition is a group of boolean expressions joined by AND or OR.
// Groups nest; a nested group with more than one item is parenthesized.
type Condition struct {
	Kind   ConditionKind
	Items  []Expr
	Negate bool
}

func (Condition) isExpr() {}

// Add returns a copy of the condition with e appended.
func (c Condition) Add(e Expr) Condition {
	items := make([]Expr, 0, len(c.Items)+1)
	items = append(items, c.Items...)
	c.Items = append(items, e)
	return c
}

package types

import (
	"strings"
	"testing"
)

// =============================================================================
// Operator Tests
// =============================================================================

func TestBinOper_Precedence(t *testing.T) {
	tests := map[BinOper]int{
		OpOr:                 PrecOr,
		OpAnd:                PrecAnd,
		OpEqual:              PrecComparison,
		OpIn:                 PrecComparison,
		OpBetween:            PrecComparison,
		OpIs:                 PrecComparison,
		OpILike:              PrecComparison,
		OpMatches:            PrecComparison,
		OpContains:           PrecOther,
		OpConcatenate:        PrecOther,
		OpSimilarityDistance: PrecOther,
		OpAdd:                PrecAdditive,
		OpSub:                PrecAdditive,
		OpMul:                PrecMultiplicative,
		OpMod:                PrecMultiplicative,
	}
	for op, want := range tests {
		if got := op.Precedence(); got != want {
			t.Errorf("%s.Precedence() = %d, want %d", op, got, want)
		}
	}
}

func TestBinOper_Associative(t *testing.T) {
	for _, op := range []BinOper{OpAnd, OpOr, OpAdd, OpMul, OpConcatenate} {
		if !op.Associative() {
			t.Errorf("%s.Associative() = false, want true", op)
		}
	}
	for _, op := range []BinOper{OpSub, OpDiv, OpMod, OpEqual, OpSmallerThan, OpLike} {
		if op.Associative() {
			t.Errorf("%s.Associative() = true, want false", op)
		}
	}
}

func TestBinOper_IsVendor(t *testing.T) {
	standard := []BinOper{
		OpAnd, OpOr, OpEqual, OpNotEqual, OpLike, OpNotLike, OpIs, OpIsNot,
		OpIn, OpNotIn, OpBetween, OpNotBetween, OpSmallerThan, OpGreaterThan,
		OpSmallerThanOrEqual, OpGreaterThanOrEqual, OpAdd, OpSub, OpMul, OpDiv, OpMod,
	}
	for _, op := range standard {
		if op.IsVendor() {
			t.Errorf("%s.IsVendor() = true, want false", op)
		}
	}

	vendor := []BinOper{
		OpILike, OpNotILike, OpMatches, OpContains, OpContained, OpConcatenate,
		OpSimilarity, OpWordSimilarity, OpStrictWordSimilarity,
		OpSimilarityDistance, OpWordSimilarityDistance, OpStrictWordSimilarityDistance,
	}
	for _, op := range vendor {
		if !op.IsVendor() {
			t.Errorf("%s.IsVendor() = false, want true", op)
		}
	}
}

func TestBinOper_String(t *testing.T) {
	tests := map[BinOper]string{
		OpEqual:                        "Equal",
		OpILike:                        "ILike",
		OpStrictWordSimilarityDistance: "StrictWordSimilarityDistance",
		BinOper(0):                     "UNKNOWN",
		BinOper(999):                   "UNKNOWN",
	}
	for op, want := range tests {
		if got := op.String(); got != want {
			t.Errorf("BinOper(%d).String() = %q, want %q", int(op), got, want)
		}
	}
}

// =============================================================================
// Condition Tests
// =============================================================================

func TestCondition_Add(t *testing.T) {
	base := Condition{Kind: All, Items: make([]Expr, 1, 4)}
	base.Items[0] = Column{Name: "a"}

	first := base.Add(Column{Name: "b"})
	second := base.Add(Column{Name: "c"})

	if len(base.Items) != 1 {
		t.Fatalf("original modified: %d items", len(base.Items))
	}
	if got := first.Items[1].(Column).Name; got != "b" {
		t.Errorf("first.Items[1] = %q, want %q", got, "b")
	}
	if got := second.Items[1].(Column).Name; got != "c" {
		t.Errorf("second.Items[1] = %q, want %q (shared backing array)", got, "c")
	}
	if first.Kind != All {
		t.Errorf("Kind = %q, want %q", first.Kind, All)
	}
}

func TestCondition_AddKeepsNegate(t *testing.T) {
	c := Condition{Kind: Any, Negate: true}.Add(Column{Name: "a"})
	if !c.Negate {
		t.Error("Negate lost after Add")
	}
}

// =============================================================================
// Order Tests
// =============================================================================

func TestOrder_IsField(t *testing.T) {
	if (Order{Direction: ASC}).IsField() {
		t.Error("direction order reported as field order")
	}
	if !(Order{Field: []Value{{Raw: "x"}}}).IsField() {
		t.Error("value list order not reported as field order")
	}
}

// =============================================================================
// SelectStatement.Validate() Tests
// =============================================================================

func users() *Table {
	return &Table{Name: "users"}
}

func eq(name string, v any) Expr {
	return Binary{Left: Column{Name: name}, Op: OpEqual, Right: Value{Raw: v}}
}

func TestValidate_Valid(t *testing.T) {
	where := Condition{Kind: All, Items: []Expr{eq("id", 1)}}
	stmt := &SelectStatement{
		From:    users(),
		Columns: []SelectExpr{{Expr: Column{Name: "id"}}},
		Where:   &where,
	}
	if err := stmt.Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestValidate_NoFrom(t *testing.T) {
	stmt := &SelectStatement{Columns: []SelectExpr{{Expr: Value{Raw: 1}}}}
	if err := stmt.Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	on := Condition{Kind: All, Items: []Expr{eq("id", 1)}}
	empty := Condition{Kind: All}

	tooMany := make([]Join, MaxJoinCount+1)
	for i := range tooMany {
		tooMany[i] = Join{Type: CrossJoin, Table: Table{Name: "t"}}
	}

	tests := []struct {
		name string
		stmt *SelectStatement
		want string
	}{
		{
			name: "empty table name",
			stmt: &SelectStatement{From: &Table{}},
			want: "target table is required",
		},
		{
			name: "join without from",
			stmt: &SelectStatement{Joins: []Join{{Type: CrossJoin, Table: Table{Name: "t"}}}},
			want: "JOIN requires a FROM table",
		},
		{
			name: "too many joins",
			stmt: &SelectStatement{From: users(), Joins: tooMany},
			want: "too many JOINs",
		},
		{
			name: "join without table",
			stmt: &SelectStatement{From: users(), Joins: []Join{{Type: InnerJoin, On: &on}}},
			want: "join 0: table is required",
		},
		{
			name: "inner join without on",
			stmt: &SelectStatement{From: users(), Joins: []Join{{Type: InnerJoin, Table: Table{Name: "t"}}}},
			want: "INNER JOIN requires an ON condition",
		},
		{
			name: "having without group by",
			stmt: &SelectStatement{From: users(), Having: &on},
			want: "HAVING requires GROUP BY",
		},
		{
			name: "distinct on without columns",
			stmt: &SelectStatement{From: users(), Distinct: &SelectDistinct{Kind: DistinctOn}},
			want: "DISTINCT ON requires at least one column",
		},
		{
			name: "empty where group",
			stmt: &SelectStatement{From: users(), Where: &empty},
			want: "empty condition group",
		},
		{
			name: "nil subquery",
			stmt: &SelectStatement{From: users(), Columns: []SelectExpr{{Expr: SubQuery{}}}},
			want: "subquery statement is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stmt.Validate()
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValidate_ConditionDepth(t *testing.T) {
	cond := Condition{Kind: All, Items: []Expr{eq("id", 1)}}
	for i := 0; i <= MaxConditionDepth+1; i++ {
		cond = Condition{Kind: All, Items: []Expr{cond}}
	}
	stmt := &SelectStatement{From: users(), Where: &cond}

	err := stmt.Validate()
	if err == nil || !strings.Contains(err.Error(), "maximum condition depth") {
		t.Errorf("error = %v, want condition depth error", err)
	}
}

func TestValidate_SubqueryDepth(t *testing.T) {
	nest := func(inner *SelectStatement) *SelectStatement {
		where := Condition{Kind: All, Items: []Expr{Exists{SubQuery: SubQuery{Stmt: inner}}}}
		return &SelectStatement{From: users(), Where: &where}
	}

	stmt := &SelectStatement{From: users()}
	for i := 0; i < MaxSubqueryDepth; i++ {
		stmt = nest(stmt)
	}
	if err := stmt.Validate(); err != nil {
		t.Fatalf("depth %d rejected: %v", MaxSubqueryDepth, err)
	}

	stmt = nest(stmt)
	err := stmt.Validate()
	if err == nil || !strings.Contains(err.Error(), "maximum subquery depth") {
		t.Errorf("error = %v, want subquery depth error", err)
	}
}

func TestValidate_NestedSubqueryErrorsSurface(t *testing.T) {
	inner := &SelectStatement{From: &Table{}}
	where := Condition{Kind: All, Items: []Expr{
		Binary{Left: Column{Name: "id"}, Op: OpIn, Right: SubQuery{Stmt: inner}},
	}}
	stmt := &SelectStatement{From: users(), Where: &where}

	err := stmt.Validate()
	if err == nil || err.Error() != "target table is required" {
		t.Errorf("error = %v, want nested validation error", err)
	}
}

func TestValidate_EveryClause(t *testing.T) {
	deep := Condition{Kind: All, Items: []Expr{eq("id", 1)}}
	for i := 0; i <= MaxConditionDepth+1; i++ {
		deep = Condition{Kind: All, Items: []Expr{deep}}
	}
	bad := SubQuery{Stmt: &SelectStatement{From: &Table{}}}

	tests := []struct {
		name string
		stmt *SelectStatement
		want string
	}{
		{
			name: "join on condition depth",
			stmt: &SelectStatement{From: users(), Joins: []Join{{Type: InnerJoin, Table: Table{Name: "t"}, On: &deep}}},
			want: "maximum condition depth",
		},
		{
			name: "join on subquery",
			stmt: &SelectStatement{From: users(), Joins: []Join{{
				Type:  LeftJoin,
				Table: Table{Name: "t"},
				On:    &Condition{Kind: All, Items: []Expr{Binary{Left: Column{Name: "id"}, Op: OpIn, Right: bad}}},
			}}},
			want: "target table is required",
		},
		{
			name: "group by subquery",
			stmt: &SelectStatement{From: users(), GroupBy: []Expr{bad}},
			want: "target table is required",
		},
		{
			name: "order by condition depth",
			stmt: &SelectStatement{From: users(), Orders: []OrderExpr{{Expr: deep}}},
			want: "maximum condition depth",
		},
		{
			name: "order by empty group",
			stmt: &SelectStatement{From: users(), Orders: []OrderExpr{{Expr: Condition{Kind: Any}}}},
			want: "empty condition group",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stmt.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

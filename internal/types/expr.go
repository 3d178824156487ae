package types

// Expr is any node that renders to a SQL expression.
type Expr interface {
	isExpr()
}

// Column references a column, optionally qualified by a table or alias.
// A Name of "*" renders as the unquoted asterisk.
type Column struct {
	Table string
	Name  string
}

// Value is a literal bound into the query. Renderers emit either a
// placeholder or, in inline mode, the literal text.
type Value struct {
	Raw any
}

// Binary is Left <Op> Right.
type Binary struct {
	Left  Expr
	Right Expr
	Op    BinOper
}

// Unary is <Op> Expr.
type Unary struct {
	Expr Expr
	Op   UnOper
}

// FuncName identifies a SQL function. FuncIfNull is resolved by the dialect.
type FuncName string

const (
	FuncIfNull        FuncName = "IFNULL"
	FuncCount         FuncName = "COUNT"
	FuncCountDistinct FuncName = "COUNT_DISTINCT"
	FuncSum           FuncName = "SUM"
	FuncAvg           FuncName = "AVG"
	FuncMin           FuncName = "MIN"
	FuncMax           FuncName = "MAX"
	FuncLower         FuncName = "LOWER"
	FuncUpper         FuncName = "UPPER"
	FuncAbs           FuncName = "ABS"
)

// Func is a function call.
type Func struct {
	Name FuncName
	Args []Expr
}

// Tuple is a parenthesized, comma-separated expression list.
type Tuple struct {
	Exprs []Expr
}

// SubQuery is a nested SELECT used as an expression.
type SubQuery struct {
	Stmt *SelectStatement
}

// Keyword is a bare SQL keyword used as an expression.
type Keyword string

const (
	Null             Keyword = "NULL"
	CurrentTimestamp Keyword = "CURRENT_TIMESTAMP"
)

// Exists is EXISTS (subquery).
type Exists struct {
	SubQuery SubQuery
}

func (Column) isExpr()   {}
func (Value) isExpr()    {}
func (Binary) isExpr()   {}
func (Unary) isExpr()    {}
func (Func) isExpr()     {}
func (Tuple) isExpr()    {}
func (SubQuery) isExpr() {}
func (Exists) isExpr()   {}
func (Keyword) isExpr()  {}

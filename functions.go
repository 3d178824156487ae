package chql

import "github.com/zoobzio/chql/internal/types"

func call(name types.FuncName, args ...any) Expr {
	exprs, err := operands(args)
	if err != nil {
		return Expr{err: err}
	}
	return Expr{node: types.Func{Name: name, Args: exprs}}
}

// IfNull returns v when e is NULL. The function name is chosen by the
// dialect: IFNULL by default, COALESCE for ClickHouse.
func IfNull(e, v any) Expr { return call(types.FuncIfNull, e, v) }

// Count is COUNT(e), or COUNT(*) without arguments.
func Count(e ...any) Expr { return call(types.FuncCount, e...) }

// CountDistinct is COUNT(DISTINCT e).
func CountDistinct(e any) Expr { return call(types.FuncCountDistinct, e) }

// Sum is SUM(e).
func Sum(e any) Expr { return call(types.FuncSum, e) }

// Avg is AVG(e).
func Avg(e any) Expr { return call(types.FuncAvg, e) }

// Min is MIN(e).
func Min(e any) Expr { return call(types.FuncMin, e) }

// Max is MAX(e).
func Max(e any) Expr { return call(types.FuncMax, e) }

// Lower is LOWER(e).
func Lower(e any) Expr { return call(types.FuncLower, e) }

// Upper is UPPER(e).
func Upper(e any) Expr { return call(types.FuncUpper, e) }

// Abs is ABS(e).
func Abs(e any) Expr { return call(types.FuncAbs, e) }

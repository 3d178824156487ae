package types

// BinOper represents a binary operator in an expression.
type BinOper int

// Standard operators.
const (
	OpAnd BinOper = iota + 1
	OpOr
	OpEqual
	OpNotEqual
	OpLike
	OpNotLike
	OpIs
	OpIsNot
	OpIn
	OpNotIn
	OpBetween
	OpNotBetween
	OpSmallerThan
	OpGreaterThan
	OpSmallerThanOrEqual
	OpGreaterThanOrEqual
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

// Vendor operators: pattern matching, containment and trigram similarity.
// Dialects without an equivalent reject them.
const (
	OpILike BinOper = iota + 100
	OpNotILike
	OpMatches
	OpContains
	OpContained
	OpConcatenate
	OpSimilarity
	OpWordSimilarity
	OpStrictWordSimilarity
	OpSimilarityDistance
	OpWordSimilarityDistance
	OpStrictWordSimilarityDistance
)

// IsVendor reports whether the operator is one of the vendor operators.
func (op BinOper) IsVendor() bool {
	return op >= OpILike && op <= OpStrictWordSimilarityDistance
}

// Binding strength of operators, loosest first.
const (
	PrecOr = iota + 1
	PrecAnd
	PrecNot
	PrecComparison
	PrecOther
	PrecAdditive
	PrecMultiplicative
)

// Precedence returns how tightly the operator binds its operands.
// Vendor operators other than the pattern matches bind between
// comparison and arithmetic.
func (op BinOper) Precedence() int {
	switch op {
	case OpOr:
		return PrecOr
	case OpAnd:
		return PrecAnd
	case OpAdd, OpSub:
		return PrecAdditive
	case OpMul, OpDiv, OpMod:
		return PrecMultiplicative
	case OpILike, OpNotILike, OpMatches:
		return PrecComparison
	}
	if op.IsVendor() {
		return PrecOther
	}
	return PrecComparison
}

// Associative reports whether (a op b) op c equals a op (b op c).
func (op BinOper) Associative() bool {
	switch op {
	case OpAnd, OpOr, OpAdd, OpMul, OpConcatenate:
		return true
	}
	return false
}

// String returns a stable name for diagnostics.
func (op BinOper) String() string {
	if name, ok := binOperNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}

var binOperNames = map[BinOper]string{
	OpAnd:                          "And",
	OpOr:                           "Or",
	OpEqual:                        "Equal",
	OpNotEqual:                     "NotEqual",
	OpLike:                         "Like",
	OpNotLike:                      "NotLike",
	OpIs:                           "Is",
	OpIsNot:                        "IsNot",
	OpIn:                           "In",
	OpNotIn:                        "NotIn",
	OpBetween:                      "Between",
	OpNotBetween:                   "NotBetween",
	OpSmallerThan:                  "SmallerThan",
	OpGreaterThan:                  "GreaterThan",
	OpSmallerThanOrEqual:           "SmallerThanOrEqual",
	OpGreaterThanOrEqual:           "GreaterThanOrEqual",
	OpAdd:                          "Add",
	OpSub:                          "Sub",
	OpMul:                          "Mul",
	OpDiv:                          "Div",
	OpMod:                          "Mod",
	OpILike:                        "ILike",
	OpNotILike:                     "NotILike",
	OpMatches:                      "Matches",
	OpContains:                     "Contains",
	OpContained:                    "Contained",
	OpConcatenate:                  "Concatenate",
	OpSimilarity:                   "Similarity",
	OpWordSimilarity:               "WordSimilarity",
	OpStrictWordSimilarity:         "StrictWordSimilarity",
	OpSimilarityDistance:           "SimilarityDistance",
	OpWordSimilarityDistance:       "WordSimilarityDistance",
	OpStrictWordSimilarityDistance: "StrictWordSimilarityDistance",
}

// UnOper represents a unary operator.
type UnOper string

const (
	OpNot UnOper = "NOT"
)

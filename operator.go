package chql

import "github.com/zoobzio/chql/internal/types"

// BinOper represents a binary operator.
type BinOper = types.BinOper

// Re-export operator constants for public API.
const (
	// Standard operators.
	OpAnd                = types.OpAnd
	OpOr                 = types.OpOr
	OpEqual              = types.OpEqual
	OpNotEqual           = types.OpNotEqual
	OpLike               = types.OpLike
	OpNotLike            = types.OpNotLike
	OpIs                 = types.OpIs
	OpIsNot              = types.OpIsNot
	OpIn                 = types.OpIn
	OpNotIn              = types.OpNotIn
	OpBetween            = types.OpBetween
	OpNotBetween         = types.OpNotBetween
	OpSmallerThan        = types.OpSmallerThan
	OpGreaterThan        = types.OpGreaterThan
	OpSmallerThanOrEqual = types.OpSmallerThanOrEqual
	OpGreaterThanOrEqual = types.OpGreaterThanOrEqual
	OpAdd                = types.OpAdd
	OpSub                = types.OpSub
	OpMul                = types.OpMul
	OpDiv                = types.OpDiv
	OpMod                = types.OpMod

	// Vendor operators.
	OpILike                        = types.OpILike
	OpNotILike                     = types.OpNotILike
	OpMatches                      = types.OpMatches
	OpContains                     = types.OpContains
	OpContained                    = types.OpContained
	OpConcatenate                  = types.OpConcatenate
	OpSimilarity                   = types.OpSimilarity
	OpWordSimilarity               = types.OpWordSimilarity
	OpStrictWordSimilarity         = types.OpStrictWordSimilarity
	OpSimilarityDistance           = types.OpSimilarityDistance
	OpWordSimilarityDistance       = types.OpWordSimilarityDistance
	OpStrictWordSimilarityDistance = types.OpStrictWordSimilarityDistance
)

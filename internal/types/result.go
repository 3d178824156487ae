package types

// QueryResult is a rendered query: SQL text and the bind values for its
// placeholders, in placeholder order.
type QueryResult struct {
	SQL    string
	Values []any
}

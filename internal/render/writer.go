package render

import (
	"strconv"
	"strings"
)

// Writer accumulates SQL text and bind values for a single render.
//
// In collect mode every pushed value becomes a placeholder and is appended
// to Values. In inline mode values are written as literals and no bind
// values are produced. The first error reported through Fail sticks.
type Writer struct {
	sql    strings.Builder
	values []any
	err    error
	inline bool
}

// NewWriter creates a writer that collects bind values.
func NewWriter() *Writer {
	return &Writer{}
}

// NewInlineWriter creates a writer that renders values as literals.
func NewInlineWriter() *Writer {
	return &Writer{inline: true}
}

// WriteString appends s.
func (w *Writer) WriteString(s string) {
	w.sql.WriteString(s)
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.sql.Len()
}

// Inline reports whether values are rendered as literals.
func (w *Writer) Inline() bool {
	return w.inline
}

// Fail records err unless an earlier error is already recorded.
func (w *Writer) Fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

// Err returns the first recorded error.
func (w *Writer) Err() error {
	return w.err
}

// String returns the SQL written so far.
func (w *Writer) String() string {
	return w.sql.String()
}

// Values returns the collected bind values in placeholder order.
func (w *Writer) Values() []any {
	return w.values
}

// pushPlaceholder appends v and writes its placeholder. Numbered dialects
// get a fresh index for every occurrence, even for repeated values.
func (w *Writer) pushPlaceholder(v any, marker string, numbered bool) {
	w.values = append(w.values, v)
	w.sql.WriteString(marker)
	if numbered {
		w.sql.WriteString(strconv.Itoa(len(w.values)))
	}
}

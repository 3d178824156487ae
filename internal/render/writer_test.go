package render

import (
	"errors"
	"testing"
)

func TestWriter_AnonymousPlaceholders(t *testing.T) {
	w := NewWriter()
	w.WriteString("a = ")
	w.pushPlaceholder(1, "?", false)
	w.WriteString(" AND b = ")
	w.pushPlaceholder("x", "?", false)

	if got := w.String(); got != "a = ? AND b = ?" {
		t.Errorf("String() = %q", got)
	}
	if got := w.Values(); len(got) != 2 || got[0] != 1 || got[1] != "x" {
		t.Errorf("Values() = %v", got)
	}
}

func TestWriter_NumberedPlaceholdersNeverReuse(t *testing.T) {
	w := NewWriter()
	for i := 0; i < 3; i++ {
		if i > 0 {
			w.WriteString(", ")
		}
		w.pushPlaceholder(7, "$", true)
	}

	if got := w.String(); got != "$1, $2, $3" {
		t.Errorf("String() = %q, want %q", got, "$1, $2, $3")
	}
	if got := len(w.Values()); got != 3 {
		t.Errorf("len(Values()) = %d, want 3", got)
	}
}

func TestWriter_Modes(t *testing.T) {
	if NewWriter().Inline() {
		t.Error("NewWriter() is inline")
	}
	if !NewInlineWriter().Inline() {
		t.Error("NewInlineWriter() is not inline")
	}
}

func TestWriter_FirstErrorSticks(t *testing.T) {
	first := errors.New("first")
	w := NewWriter()
	if w.Err() != nil {
		t.Fatal("fresh writer has an error")
	}

	w.Fail(first)
	w.Fail(errors.New("second"))

	if !errors.Is(w.Err(), first) {
		t.Errorf("Err() = %v, want %v", w.Err(), first)
	}
}

func TestWriter_Len(t *testing.T) {
	w := NewWriter()
	w.WriteString("SELECT ")
	if w.Len() != 7 {
		t.Errorf("Len() = %d, want 7", w.Len())
	}
}

package render

import "testing"

func TestEscapeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"empty", "", ""},
		{"single quote", "O'Brien", `O\'Brien`},
		{"double quote", `say "hi"`, `say \"hi\"`},
		{"backslash", `a\b`, `a\\b`},
		{"nul", "a\x00b", `a\0b`},
		{"control characters", "\b\f\n\r\t", `\b\f\n\r\t`},
		{"unicode untouched", "héllo ✓", "héllo ✓"},
		{"injection attempt", "'; DROP TABLE users; --", `\'; DROP TABLE users; --`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeString(tt.in); got != tt.want {
				t.Errorf("EscapeString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

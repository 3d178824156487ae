// Package testing provides test utilities for chql.
package testing

import (
	"reflect"
	"strings"
	"testing"

	"github.com/zoobzio/chql"
	"github.com/zoobzio/dbml"
)

// TestInstance creates a schema-validated instance for testing.
// Includes users, events, sessions and page_views tables.
func TestInstance(t *testing.T) *chql.Instance {
	t.Helper()

	project := dbml.NewProject("analytics")

	// Users table
	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "UInt64"))
	users.AddColumn(dbml.NewColumn("username", "String"))
	users.AddColumn(dbml.NewColumn("email", "String"))
	users.AddColumn(dbml.NewColumn("age", "UInt8"))
	users.AddColumn(dbml.NewColumn("active", "Bool"))
	users.AddColumn(dbml.NewColumn("created_at", "DateTime"))
	project.AddTable(users)

	// Events table
	events := dbml.NewTable("events")
	events.AddColumn(dbml.NewColumn("id", "UUID"))
	events.AddColumn(dbml.NewColumn("user_id", "UInt64"))
	events.AddColumn(dbml.NewColumn("kind", "LowCardinality(String)"))
	events.AddColumn(dbml.NewColumn("payload", "String"))
	events.AddColumn(dbml.NewColumn("created_at", "DateTime64(3)"))
	project.AddTable(events)

	// Sessions table
	sessions := dbml.NewTable("sessions")
	sessions.AddColumn(dbml.NewColumn("id", "UUID"))
	sessions.AddColumn(dbml.NewColumn("user_id", "UInt64"))
	sessions.AddColumn(dbml.NewColumn("started_at", "DateTime"))
	sessions.AddColumn(dbml.NewColumn("duration", "UInt32"))
	project.AddTable(sessions)

	// Page views table
	views := dbml.NewTable("page_views")
	views.AddColumn(dbml.NewColumn("session_id", "UUID"))
	views.AddColumn(dbml.NewColumn("path", "String"))
	views.AddColumn(dbml.NewColumn("referrer", "Nullable(String)"))
	views.AddColumn(dbml.NewColumn("viewed_at", "DateTime"))
	project.AddTable(views)

	instance, err := chql.NewFromDBML(project)
	if err != nil {
		t.Fatalf("Failed to create test instance: %v", err)
	}
	return instance
}

// AssertSQL compares expected and actual SQL, reporting detailed differences.
func AssertSQL(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected: %s\nActual:   %s", expected, actual)
	}
}

// AssertValues checks bind values in placeholder order.
func AssertValues(t *testing.T, expected, actual []any) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Errorf("Value count mismatch: expected %d, got %d\nExpected: %#v\nActual: %#v",
			len(expected), len(actual), expected, actual)
		return
	}
	for i := range expected {
		if !reflect.DeepEqual(expected[i], actual[i]) {
			t.Errorf("Value %d mismatch: expected %#v (%T), got %#v (%T)",
				i, expected[i], expected[i], actual[i], actual[i])
		}
	}
}

// AssertRender builds b with r and checks both the SQL and its bind values.
func AssertRender(t *testing.T, b *chql.Builder, r chql.Renderer, expected string, values ...any) {
	t.Helper()
	result, err := b.Build(r)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	AssertSQL(t, expected, result.SQL)
	if values == nil {
		values = []any{}
	}
	AssertValues(t, values, result.Values)
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertErrorContains checks that error message contains substring.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertPanics verifies that a function panics.
func AssertPanics(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic but function completed normally")
		}
	}()
	fn()
}

// AssertPanicsWithMessage verifies that a function panics with a specific message.
func AssertPanicsWithMessage(t *testing.T, fn func(), substr string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("Expected panic containing %q but function completed normally", substr)
			return
		}
		var msg string
		switch v := r.(type) {
		case error:
			msg = v.Error()
		case string:
			msg = v
		default:
			t.Errorf("Panic value is not string or error: %T", r)
			return
		}
		if !strings.Contains(msg, substr) {
			t.Errorf("Expected panic containing %q, got: %s", substr, msg)
		}
	}()
	fn()
}

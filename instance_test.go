package chql_test

import (
	"strings"
	"testing"

	"github.com/zoobzio/chql"
	"github.com/zoobzio/chql/clickhouse"
	"github.com/zoobzio/dbml"
)

func createInstance(t *testing.T) *chql.Instance {
	t.Helper()

	project := dbml.NewProject("test")
	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "UInt64"))
	users.AddColumn(dbml.NewColumn("name", "String"))
	users.AddColumn(dbml.NewColumn("age", "UInt8"))
	project.AddTable(users)

	events := dbml.NewTable("events")
	events.AddColumn(dbml.NewColumn("id", "UInt64"))
	events.AddColumn(dbml.NewColumn("user_id", "UInt64"))
	events.AddColumn(dbml.NewColumn("kind", "LowCardinality(String)"))
	project.AddTable(events)

	instance, err := chql.NewFromDBML(project)
	if err != nil {
		t.Fatalf("Failed to create instance: %v", err)
	}
	return instance
}

func TestNewFromDBMLNil(t *testing.T) {
	if _, err := chql.NewFromDBML(nil); err == nil {
		t.Error("Expected error for nil project")
	}
}

func TestInstanceTables(t *testing.T) {
	instance := createInstance(t)

	if _, err := instance.TryT("users"); err != nil {
		t.Errorf("Expected users to be valid, got: %v", err)
	}
	if _, err := instance.TryT("users", "u"); err != nil {
		t.Errorf("Expected alias u to be valid, got: %v", err)
	}

	invalid := []struct {
		name  string
		table string
		alias []string
	}{
		{"unknown table", "accounts", nil},
		{"long alias", "users", []string{"usr"}},
		{"uppercase alias", "users", []string{"U"}},
		{"two aliases", "users", []string{"u", "v"}},
		{"injection", "users; DROP TABLE users", nil},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := instance.TryT(tt.table, tt.alias...); err == nil {
				t.Errorf("Expected error for %q %v", tt.table, tt.alias)
			}
		})
	}
}

func TestInstanceColumns(t *testing.T) {
	instance := createInstance(t)

	valid := []string{"name", "user_id", "users.name", "e.kind", "u.*", "*"}
	for _, ref := range valid {
		if _, err := instance.TryC(ref); err != nil {
			t.Errorf("Expected %q to be valid, got: %v", ref, err)
		}
	}

	invalid := []string{"password", "users.kind", "evt.kind", "name OR 1=1", "id; DROP TABLE users"}
	for _, ref := range invalid {
		if _, err := instance.TryC(ref); err == nil {
			t.Errorf("Expected %q to be rejected", ref)
		}
	}
}

func TestInstancePanics(t *testing.T) {
	instance := createInstance(t)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Expected panic")
		}
		if !strings.Contains(r.(error).Error(), "not found in schema") {
			t.Errorf("Unexpected panic: %v", r)
		}
	}()
	instance.C("password")
}

func TestInstanceQuery(t *testing.T) {
	instance := createInstance(t)

	sql, err := chql.Select(instance.T("users", "u")).
		Columns(instance.C("u.name")).
		Join(instance.T("events", "e"), instance.C("e.user_id").Eq(instance.C("u.id"))).
		Where(instance.C("e.kind").Eq("login")).
		String(clickhouse.New())
	if err != nil {
		t.Fatalf("String() error = %v", err)
	}

	expected := `SELECT "u"."name" FROM "users" AS "u" INNER JOIN "events" AS "e" ON "e"."user_id" = "u"."id" WHERE "e"."kind" = 'login'`
	if sql != expected {
		t.Errorf("SQL mismatch:\nExpected: %s\nActual:   %s", expected, sql)
	}
}

// Package integration provides integration tests for chql using real databases.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/modules/mariadb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/zoobzio/chql/client"
)

const (
	clickhouseImage    = "clickhouse/clickhouse-server:24.8-alpine"
	clickhouseUser     = "chql"
	clickhousePassword = "chql"
	clickhouseDatabase = "chql_test"
)

// ClickHouseContainer holds a running server and a client configured for it.
type ClickHouseContainer struct {
	container *clickhouse.ClickHouseContainer
	client    *client.Client
	cfg       client.Config
}

// PostgresContainer holds a running PostgreSQL server and a connection to it.
type PostgresContainer struct {
	container *postgres.PostgresContainer
	conn      *pgx.Conn
}

// MariaDBContainer holds a running MariaDB server and a pool for it.
type MariaDBContainer struct {
	container *mariadb.MariaDBContainer
	db        *sql.DB
}

// Shared containers - lazily initialized
var (
	sharedClickHouse *ClickHouseContainer
	sharedPostgres   *PostgresContainer
	sharedMariaDB    *MariaDBContainer

	clickhouseOnce sync.Once
	postgresOnce   sync.Once
	mariadbOnce    sync.Once
)

// TestMain runs the suite and tears down any shared container that was started.
func TestMain(m *testing.M) {
	code := m.Run()

	ctx := context.Background()

	if sharedClickHouse != nil && sharedClickHouse.container != nil {
		_ = sharedClickHouse.container.Terminate(ctx)
	}

	if sharedPostgres != nil {
		if sharedPostgres.conn != nil {
			_ = sharedPostgres.conn.Close(ctx)
		}
		if sharedPostgres.container != nil {
			_ = sharedPostgres.container.Terminate(ctx)
		}
	}

	if sharedMariaDB != nil {
		if sharedMariaDB.db != nil {
			_ = sharedMariaDB.db.Close()
		}
		if sharedMariaDB.container != nil {
			_ = sharedMariaDB.container.Terminate(ctx)
		}
	}

	os.Exit(code)
}

// getPostgres returns the shared PostgreSQL container, starting it if needed.
func getPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}

	postgresOnce.Do(func() {
		ctx := context.Background()

		container, err := postgres.Run(ctx,
			"docker.io/postgres:16-alpine",
			postgres.WithDatabase("chql_test"),
			postgres.WithUsername("test"),
			postgres.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second),
			),
		)
		if err != nil {
			log.Fatalf("Failed to start postgres container: %v", err)
		}

		connStr, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			log.Fatalf("Failed to get connection string: %v", err)
		}

		conn, err := pgx.Connect(ctx, connStr)
		if err != nil {
			log.Fatalf("Failed to connect to postgres: %v", err)
		}

		sharedPostgres = &PostgresContainer{container: container, conn: conn}
	})

	return sharedPostgres
}

// getMariaDB returns the shared MariaDB container, starting it if needed.
func getMariaDB(t *testing.T) *MariaDBContainer {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MariaDB integration test in short mode")
	}

	mariadbOnce.Do(func() {
		ctx := context.Background()

		container, err := mariadb.Run(ctx,
			"docker.io/mariadb:11",
			mariadb.WithDatabase("chql_test"),
			mariadb.WithUsername("test"),
			mariadb.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("mariadbd: ready for connections").
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			log.Fatalf("Failed to start mariadb container: %v", err)
		}

		connStr, err := container.ConnectionString(ctx)
		if err != nil {
			log.Fatalf("Failed to get connection string: %v", err)
		}

		db, err := sql.Open("mysql", connStr)
		if err != nil {
			log.Fatalf("Failed to connect to mariadb: %v", err)
		}

		// Wait for connection to be ready
		for i := 0; i < 30; i++ {
			if err := db.Ping(); err == nil {
				break
			}
			time.Sleep(time.Second)
		}

		sharedMariaDB = &MariaDBContainer{container: container, db: db}
	})

	return sharedMariaDB
}

// getClickHouse returns the shared ClickHouse container, starting it if needed.
func getClickHouse(t *testing.T) *ClickHouseContainer {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping ClickHouse integration test in short mode")
	}

	clickhouseOnce.Do(func() {
		ctx := context.Background()

		container, err := clickhouse.Run(ctx,
			clickhouseImage,
			clickhouse.WithUsername(clickhouseUser),
			clickhouse.WithPassword(clickhousePassword),
			clickhouse.WithDatabase(clickhouseDatabase),
			testcontainers.WithWaitStrategy(
				wait.ForHTTP("/ping").
					WithPort("8123/tcp").
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			log.Fatalf("Failed to start clickhouse container: %v", err)
		}

		host, err := container.Host(ctx)
		if err != nil {
			log.Fatalf("Failed to get container host: %v", err)
		}
		port, err := container.MappedPort(ctx, "8123/tcp")
		if err != nil {
			log.Fatalf("Failed to get HTTP port: %v", err)
		}

		cfg := client.Config{
			Username: clickhouseUser,
			Password: clickhousePassword,
			Database: clickhouseDatabase,
			URL:      fmt.Sprintf("http://%s:%s", host, port.Port()),
		}
		c, err := client.New(cfg)
		if err != nil {
			log.Fatalf("Failed to create client: %v", err)
		}

		sharedClickHouse = &ClickHouseContainer{
			container: container,
			client:    c,
			cfg:       cfg,
		}
	})

	return sharedClickHouse
}

// Exec runs a statement that returns no rows, such as DDL or INSERT.
func (c *ClickHouseContainer) Exec(t *testing.T, stmt string) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, client.Endpoint(c.cfg), bytes.NewBufferString(stmt))
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set(client.UserHeader, c.cfg.Username)
	req.Header.Set(client.KeyHeader, c.cfg.Password)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, stmt)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Failed to execute SQL: %s\nSQL: %s", body, stmt)
	}
}

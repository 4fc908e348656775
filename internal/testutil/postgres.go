//go:build integration
// +build integration

// Package testutil starts throwaway dependencies for integration tests.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/portfoli/db"
)

const (
	pgUser     = "postgres"
	pgPassword = "postgres"
	pgDatabase = "portfoli"
)

// Postgres is a running, migrated container.
type Postgres struct {
	DB       *sql.DB
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// StartPostgres spins up a Postgres container, applies the embedded
// migrations and registers cleanup on t.
func StartPostgres(t *testing.T) *Postgres {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       pgDatabase,
			"POSTGRES_USER":     pgUser,
			"POSTGRES_PASSWORD": pgPassword,
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port.Port(), pgUser, pgPassword, pgDatabase)
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, host, port.Port(), pgDatabase)
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if err := conn.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	return &Postgres{
		DB:       conn,
		DSN:      dsn,
		Host:     host,
		Port:     port.Int(),
		User:     pgUser,
		Password: pgPassword,
		Database: pgDatabase,
	}
}

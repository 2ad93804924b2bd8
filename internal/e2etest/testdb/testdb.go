package testdb

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
)

// DSNEnv points at a PostgreSQL server the suite may create throwaway
// databases on. When unset, DB-backed tests are skipped.
const DSNEnv = "TEST_DATABASE_URI"

// TestDBInstance is a database created for one test run and dropped after.
type TestDBInstance struct {
	DSN string

	name  string
	admin *pgx.Conn
}

func NewTestDBInstance() (*TestDBInstance, error) {
	adminDSN := os.Getenv(DSNEnv)
	if adminDSN == "" {
		return nil, fmt.Errorf("%s is not set", DSNEnv)
	}

	ctx := context.Background()
	admin, err := pgx.Connect(ctx, adminDSN)
	if err != nil {
		return nil, fmt.Errorf("connecting to test server: %w", err)
	}

	name := fmt.Sprintf("orders_test_%d", time.Now().UnixNano())
	_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
	if err != nil {
		_ = admin.Close(ctx)
		return nil, fmt.Errorf("creating database %s: %w", name, err)
	}

	u, err := url.Parse(adminDSN)
	if err != nil {
		_ = admin.Close(ctx)
		return nil, fmt.Errorf("parsing %s: %w", DSNEnv, err)
	}
	u.Path = "/" + name

	return &TestDBInstance{DSN: u.String(), name: name, admin: admin}, nil
}

// Down drops the test database. Pools on DSN must be closed first.
func (t *TestDBInstance) Down() {
	ctx := context.Background()
	_, _ = t.admin.Exec(ctx, "DROP DATABASE IF EXISTS "+t.name)
	_ = t.admin.Close(ctx)
}

package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPool trả về pool trỏ vào một schema riêng đã apply db/schema.sql.
// Skip test nếu TEST_POSTGRES_DSN không được set. Schema bị drop khi test kết thúc.
func PostgresPool(tb testing.TB) *pgxpool.Pool {
	tb.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		tb.Skip("TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	schema := "test_" + uuid.NewString()[:8]

	admin, err := pgxpool.New(ctx, dsn)
	if err != nil {
		tb.Fatalf("connect postgres: %v", err)
	}
	if _, err := admin.Exec(ctx, fmt.Sprintf(`CREATE SCHEMA %s`, schema)); err != nil {
		admin.Close()
		tb.Fatalf("create schema: %v", err)
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		tb.Fatalf("parse dsn: %v", err)
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = schema

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		tb.Fatalf("connect postgres: %v", err)
	}

	tb.Cleanup(func() {
		pool.Close()
		_, _ = admin.Exec(ctx, fmt.Sprintf(`DROP SCHEMA %s CASCADE`, schema))
		admin.Close()
	})

	ddl, err := os.ReadFile(schemaPath())
	if err != nil {
		tb.Fatalf("read schema.sql: %v", err)
	}
	if _, err := pool.Exec(ctx, string(ddl)); err != nil {
		tb.Fatalf("apply schema.sql: %v", err)
	}
	return pool
}

func schemaPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "db", "schema.sql")
}

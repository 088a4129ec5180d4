package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"courseware-backend/internal/testutil"
)

// Integration test, chạy khi TEST_POSTGRES_DSN được set
func TestPostgresRepository(t *testing.T) {
	pool := testutil.PostgresPool(t)
	ctx := context.Background()

	suite.Run(t, &repositorySuite{
		newRepo: func() Repository { return NewPostgresRepository(pool) },
		seedCourse: func() uuid.UUID {
			id := uuid.New()
			now := time.Now().UTC()
			_, err := pool.Exec(ctx,
				`INSERT INTO courses (id, title, title_lower, status, is_deleted, created_at, updated_at)
				 VALUES ($1, $2, $2, 'Draft', FALSE, $3, $3)`,
				id, "course "+id.String()[:8], now,
			)
			require.NoError(t, err)
			return id
		},
	})
}

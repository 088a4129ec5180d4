package container

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courseware-backend/internal/config"
	"courseware-backend/internal/infrastructure/queue"
	"courseware-backend/pkg/cache"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "test", Environment: "test"},
		Storage: config.StorageConfig{Driver: driver, SQLitePath: ":memory:"},
		Redis:   config.RedisConfig{Enabled: false},
		JWT:     config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: 15},
		Queue:   config.QueueConfig{Enabled: false},
		Cache:   config.CacheConfig{SummaryTTL: time.Minute},
	}
}

func TestBuild_Memory(t *testing.T) {
	c, err := Build(testConfig(config.StorageDriverMemory))
	require.NoError(t, err)
	defer c.Cleanup()

	assert.IsType(t, &cache.MemoryCache{}, c.Cache)
	assert.IsType(t, queue.NoopEnqueuer{}, c.Enqueuer)
	assert.NotNil(t, c.JWTManager)
	assert.NotNil(t, c.CourseHandler)
	assert.NotNil(t, c.LessonHandler)

	status := c.HealthCheck(context.Background())
	assert.Equal(t, "healthy", status["database"])
	assert.Equal(t, "healthy", status["cache"])
}

func TestBuild_SQLiteEndToEnd(t *testing.T) {
	c, err := Build(testConfig(config.StorageDriverSQLite))
	require.NoError(t, err)
	defer c.Cleanup()
	ctx := context.Background()

	course, err := c.CourseService.Create(ctx, "C1", nil)
	require.NoError(t, err)

	_, err = c.LessonService.Create(ctx, course.ID, "L1", 1)
	require.NoError(t, err)
	require.NoError(t, c.CourseService.Publish(ctx, course.ID))

	summary, err := c.CourseService.GetSummary(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Published", string(summary.Status))
	assert.Equal(t, []string{"L1"}, summary.LessonTitles)

	assert.Equal(t, "healthy", c.HealthCheck(ctx)["database"])
}

func TestBuild_UnknownDriver(t *testing.T) {
	_, err := Build(testConfig("mongo"))
	assert.Error(t, err)
}

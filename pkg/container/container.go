package container

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"courseware-backend/internal/config"
	courseHandler "courseware-backend/internal/domains/course/handler"
	courseRepo "courseware-backend/internal/domains/course/repository"
	courseService "courseware-backend/internal/domains/course/service"
	lessonHandler "courseware-backend/internal/domains/lesson/handler"
	lessonRepo "courseware-backend/internal/domains/lesson/repository"
	lessonService "courseware-backend/internal/domains/lesson/service"
	infraCache "courseware-backend/internal/infrastructure/cache"
	"courseware-backend/internal/infrastructure/database"
	"courseware-backend/internal/infrastructure/queue"
	"courseware-backend/internal/shared/lock"
	"courseware-backend/pkg/cache"
	"courseware-backend/pkg/jwt"
	"courseware-backend/pkg/logger"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa tất cả dependencies của application.
// Thứ tự build: config → infrastructure → repositories → services → handlers
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB // nil khi STORAGE_DRIVER != postgres
	SQLite     *gorm.DB             // nil khi STORAGE_DRIVER != sqlite
	Cache      cache.Cache
	Enqueuer   queue.Enqueuer
	JWTManager *jwt.Manager

	// Lock theo course, dùng chung cho mọi thao tác ghi lesson
	CourseLocks *lock.KeyedMutex

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	CourseRepo courseRepo.Repository
	LessonRepo lessonRepo.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	CourseService courseService.Service
	LessonService lessonService.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	CourseHandler *courseHandler.CourseHandler
	LessonHandler *lessonHandler.LessonHandler
}

// NewContainer load config từ env rồi build toàn bộ dependency graph
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return Build(cfg)
}

// Build tạo container từ config có sẵn
func Build(cfg *config.Config) (*Container, error) {
	logger.Info("[Container] Initializing", map[string]interface{}{
		"environment": cfg.App.Environment,
		"storage":     cfg.Storage.Driver,
	})

	c := &Container{
		Config:      cfg,
		CourseLocks: lock.NewKeyedMutex(),
	}

	// STEP 1: storage + repositories
	if err := c.initStorage(); err != nil {
		c.Cleanup()
		return nil, err
	}

	// STEP 2: cache, queue, jwt
	c.initCache()
	c.initQueue()
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.AccessTokenTTL())

	// STEP 3: services
	c.initServices()

	// STEP 4: handlers
	c.initHandlers()

	logger.Info("[Container] Initialized successfully", nil)
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initStorage() error {
	switch c.Config.Storage.Driver {
	case config.StorageDriverPostgres:
		dbConfig, err := config.LoadDatabaseConfig(c.Config.Database)
		if err != nil {
			return fmt.Errorf("failed to load database config: %w", err)
		}

		db := database.NewPostgresDB(dbConfig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.HealthCheck(ctx); err != nil {
			db.Close()
			return fmt.Errorf("database health check failed: %w", err)
		}

		c.DB = db
		c.CourseRepo = courseRepo.NewPostgresRepository(db.Pool)
		c.LessonRepo = lessonRepo.NewPostgresRepository(db.Pool)

	case config.StorageDriverSQLite:
		db, err := database.OpenSQLite(c.Config.Storage.SQLitePath)
		if err != nil {
			return err
		}
		c.SQLite = db

		if err := courseRepo.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate courses: %w", err)
		}
		if err := lessonRepo.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate lessons: %w", err)
		}

		c.CourseRepo = courseRepo.NewGormRepository(db)
		c.LessonRepo = lessonRepo.NewGormRepository(db)

	case config.StorageDriverMemory:
		c.CourseRepo = courseRepo.NewMemoryRepository()
		c.LessonRepo = lessonRepo.NewMemoryRepository()

	default:
		return fmt.Errorf("unsupported storage driver %q", c.Config.Storage.Driver)
	}

	logger.Info("[Container] Repositories initialized", map[string]interface{}{
		"driver": c.Config.Storage.Driver,
	})
	return nil
}

// initCache dùng Redis nếu bật, lỗi kết nối Redis không critical
func (c *Container) initCache() {
	if !c.Config.Redis.Enabled {
		c.Cache = cache.NewMemoryCache()
		logger.Info("[Container] Using in-process cache", nil)
		return
	}

	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := redisCache.Connect(context.Background()); err != nil {
		logger.Warn("[Container] Redis connection failed (non-critical)", map[string]interface{}{
			"error": err.Error(),
		})
	}
	c.Cache = redisCache
}

func (c *Container) initQueue() {
	if !c.Config.Queue.Enabled {
		c.Enqueuer = queue.NoopEnqueuer{}
		return
	}
	c.Enqueuer = queue.NewAsynqEnqueuer(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
		c.Config.Queue.Queue,
	)
}

func (c *Container) initServices() {
	// Course repository cũng là CourseReader của lesson service
	c.LessonService = lessonService.NewLessonService(
		c.LessonRepo,
		c.CourseRepo,
		c.Cache,
		c.CourseLocks,
	)

	c.CourseService = courseService.NewCourseService(
		c.CourseRepo,
		c.LessonRepo,
		c.Cache,
		c.Enqueuer,
		c.Config.Cache.SummaryTTL,
	)
}

func (c *Container) initHandlers() {
	c.CourseHandler = courseHandler.NewCourseHandler(c.CourseService)
	c.LessonHandler = lessonHandler.NewLessonHandler(c.LessonService)
}

// ========================================
// HELPER METHODS
// ========================================

// HealthCheck kiểm tra store và cache, trả về trạng thái từng thành phần
func (c *Container) HealthCheck(ctx context.Context) map[string]interface{} {
	status := map[string]interface{}{
		"storage": c.Config.Storage.Driver,
	}

	switch {
	case c.DB != nil:
		if err := c.DB.HealthCheck(ctx); err != nil {
			status["database"] = "unhealthy: " + err.Error()
		} else {
			status["database"] = "healthy"
			status["pool"] = c.DB.Stats()
		}
	case c.SQLite != nil:
		sqlDB, err := c.SQLite.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			status["database"] = "unhealthy: " + err.Error()
		} else {
			status["database"] = "healthy"
		}
	default:
		status["database"] = "healthy"
	}

	if err := c.Cache.Ping(ctx); err != nil {
		status["cache"] = "unhealthy: " + err.Error()
	} else {
		status["cache"] = "healthy"
	}

	return status
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	logger.Info("[Container] Cleaning up resources", nil)

	if c.DB != nil {
		c.DB.Close()
	}

	if c.SQLite != nil {
		if err := database.CloseSQLite(c.SQLite); err != nil {
			logger.Error("[Container] Failed to close SQLite", err)
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("[Container] Failed to close Redis", err)
		}
	}

	if ae, ok := c.Enqueuer.(*queue.AsynqEnqueuer); ok {
		if err := ae.Close(); err != nil {
			logger.Error("[Container] Failed to close asynq client", err)
		}
	}
}

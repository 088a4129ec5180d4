package database

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"courseware-backend/pkg/logger"
)

// OpenSQLite mở embedded store (STORAGE_DRIVER=sqlite) qua gorm
// path = ":memory:" dùng cho test
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		// Map unique violation của driver sang gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// SQLite chỉ có một writer; ":memory:" còn tách DB theo từng connection
	sqlDB.SetMaxOpenConns(1)

	logger.Info("[DATABASE] SQLite store opened", map[string]interface{}{"path": path})
	return db, nil
}

// CloseSQLite đóng connection bên dưới gorm.DB
func CloseSQLite(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

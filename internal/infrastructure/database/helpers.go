package database

import (
	"courseware-backend/pkg/logger"
)

// PoolStats là snapshot thống kê connection pool, trả về ở health endpoint
type PoolStats struct {
	TotalConns    int32 `json:"total_connections"`
	IdleConns     int32 `json:"idle_connections"`
	AcquiredConns int32 `json:"acquired_connections"`
	MaxConns      int32 `json:"max_connections"`
}

// Stats trả về snapshot của connection pool statistics
func (db *PostgresDB) Stats() *PoolStats {
	if db.Pool == nil {
		return nil
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		TotalConns:    raw.TotalConns(),
		IdleConns:     raw.IdleConns(),
		AcquiredConns: raw.AcquiredConns(),
		MaxConns:      raw.MaxConns(),
	}
}

// Close đóng tất cả connections trong pool
// Safe to call multiple times
func (db *PostgresDB) Close() {
	if db.Pool == nil {
		return
	}

	db.Pool.Close()
	db.Pool = nil
	logger.Info("[DATABASE] Connection pool closed", nil)
}

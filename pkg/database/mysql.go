package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/wonny/gdpdash/pkg/config"
)

// MySQL wraps the sqlx handle used by the MySQL dataset source
type MySQL struct {
	DB *sqlx.DB
}

// NewMySQL opens a sqlx handle and verifies it
// DSN 형식: user:pass@tcp(host:3306)/dbname
func NewMySQL(ctx context.Context, cfg *config.Config) (*MySQL, error) {
	db, err := sqlx.ConnectContext(ctx, "mysql", cfg.Database.MySQLDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxConns)
	db.SetMaxIdleConns(cfg.Database.MinConns)
	db.SetConnMaxLifetime(cfg.Database.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.Database.MaxConnIdleTime)

	return &MySQL{DB: db}, nil
}

// Close closes the connection pool
func (m *MySQL) Close() {
	if m != nil && m.DB != nil {
		m.DB.Close()
	}
}

// HealthCheck pings MySQL and reports pool usage
func (m *MySQL) HealthCheck(ctx context.Context) (*HealthStatus, error) {
	status := &HealthStatus{
		Timestamp: time.Now(),
	}

	start := time.Now()
	if err := m.DB.PingContext(ctx); err != nil {
		status.Error = err.Error()
		return status, err
	}
	status.ResponseTime = time.Since(start)

	stats := m.DB.Stats()
	status.Stats = PoolStats{
		AcquiredConns: int32(stats.InUse),
		IdleConns:     int32(stats.Idle),
		MaxConns:      int32(stats.MaxOpenConnections),
		TotalConns:    int32(stats.OpenConnections),
	}

	status.Healthy = true
	return status, nil
}

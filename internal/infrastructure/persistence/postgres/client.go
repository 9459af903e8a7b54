// Package postgres 提供 PostgreSQL 数据库访问层实现
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"poem-tab-api/internal/config"
)

var tracer = otel.Tracer("postgres")

// Client PostgreSQL 客户端（GORM 版本）
type Client struct {
	db     *gorm.DB
	config *config.PostgresConfig
}

// NewClient 创建 PostgreSQL 客户端
func NewClient(cfg *config.PostgresConfig) (*Client, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	// 配置 GORM 日志
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// 验证连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{
		db:     db,
		config: cfg,
	}, nil
}

// DB 获取 GORM DB 实例
func (c *Client) DB() *gorm.DB {
	return c.db
}

// SqlDB 获取底层 sql.DB
func (c *Client) SqlDB() (*sql.DB, error) {
	return c.db.DB()
}

// Close 关闭数据库连接
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck 健康检查
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "postgres.HealthCheck")
	defer span.End()

	var result int
	err := c.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// Migrate 创建取诗历史表
func (c *Client) Migrate(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "postgres.Migrate")
	defer span.End()

	ddl := `
		CREATE TABLE IF NOT EXISTS fetch_records (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			language TEXT NOT NULL,
			source TEXT NOT NULL,
			route TEXT NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			fetched_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_fetch_records_fetched_at ON fetch_records (fetched_at DESC);
	`
	if err := c.db.WithContext(ctx).Exec(ddl).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to migrate fetch_records: %w", err)
	}
	return nil
}

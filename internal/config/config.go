// Package config 提供配置加载和管理功能
package config

import (
	"time"
)

// Config 应用配置根结构
type Config struct {
	App           AppConfig           `yaml:"app" mapstructure:"app"`
	Server        ServerConfig        `yaml:"server" mapstructure:"server"`
	Upstream      UpstreamConfig      `yaml:"upstream" mapstructure:"upstream"`
	Store         StoreConfig         `yaml:"store" mapstructure:"store"`
	Database      DatabaseConfig      `yaml:"database" mapstructure:"database"`
	History       HistoryConfig       `yaml:"history" mapstructure:"history"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
	Security      SecurityConfig      `yaml:"security" mapstructure:"security"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Version string `yaml:"version" mapstructure:"version"`
	Env     string `yaml:"env" mapstructure:"env"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTP HTTPServerConfig `yaml:"http" mapstructure:"http"`
}

// HTTPServerConfig HTTP 服务器配置
type HTTPServerConfig struct {
	Host         string        `yaml:"host" mapstructure:"host"`
	Port         int           `yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

// UpstreamConfig 上游诗词 API 配置
type UpstreamConfig struct {
	Jinrishici JinrishiciConfig `yaml:"jinrishici" mapstructure:"jinrishici"`
	PoetryDB   PoetryDBConfig   `yaml:"poetrydb" mapstructure:"poetrydb"`
}

// JinrishiciConfig 中文诗词 API 配置
type JinrishiciConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// RandomTimeout 随机诗词接口的显式取消超时
	RandomTimeout time.Duration `yaml:"random_timeout" mapstructure:"random_timeout"`
}

// PoetryDBConfig 英文诗词 API 配置
type PoetryDBConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Fields 查询返回的字段列表 (path 段)
	Fields string `yaml:"fields" mapstructure:"fields"`
	// Timeout 底层传输超时，英文接口没有单独的请求级取消
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// StoreConfig 状态存储配置
type StoreConfig struct {
	Redis RedisConfig `yaml:"redis" mapstructure:"redis"`
	// AssetTTL 附加资源缓存的过期时间
	AssetTTL time.Duration `yaml:"asset_ttl" mapstructure:"asset_ttl"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Host         string        `yaml:"host" mapstructure:"host"`
	Port         int           `yaml:"port" mapstructure:"port"`
	Password     string        `yaml:"password" mapstructure:"password"`
	DB           int           `yaml:"db" mapstructure:"db"`
	PoolSize     int           `yaml:"pool_size" mapstructure:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Postgres PostgresConfig `yaml:"postgres" mapstructure:"postgres"`
}

// PostgresConfig PostgreSQL 配置
type PostgresConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port"`
	User            string        `yaml:"user" mapstructure:"user"`
	Password        string        `yaml:"password" mapstructure:"password"`
	Database        string        `yaml:"database" mapstructure:"database"`
	SSLMode         string        `yaml:"ssl_mode" mapstructure:"ssl_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" mapstructure:"conn_max_idle_time"`
}

// HistoryConfig 取诗历史配置
type HistoryConfig struct {
	Enabled     bool          `yaml:"enabled" mapstructure:"enabled"`
	RecentLimit int           `yaml:"recent_limit" mapstructure:"recent_limit"`
	CacheTTL    time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// ObservabilityConfig 可观测性配置
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Tracing TracingConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	Output string `yaml:"output" mapstructure:"output"`
}

// TracingConfig 追踪配置
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Exporter   string  `yaml:"exporter" mapstructure:"exporter"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors" mapstructure:"cors"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerSecond int  `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int  `yaml:"burst" mapstructure:"burst"`
}

// CORSConfig CORS 配置
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods" mapstructure:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers" mapstructure:"allowed_headers"`
}

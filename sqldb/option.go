package sqldb

// 函数式选项模式

import (
	"go.uber.org/zap"
)

// 支持的驱动名称
const (
	SQLite = "sqlite"
	MySQL  = "mysql"
)

type options struct {
	logger   *zap.Logger
	driver   string
	sqlURL   string
	maxConns int
}

// 默认选项
var defaultOptions = options{
	logger:   zap.NewNop(),
	driver:   SQLite,
	maxConns: 16,
}

type Option func(opts *options)

// 配置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// 配置驱动，取值为sqlite或mysql
func WithDriver(driver string) Option {
	return func(opts *options) {
		opts.driver = driver
	}
}

// 配置连接串，SQLite为文件路径，MySQL为DSN
func WithConnURL(sqlURL string) Option {
	return func(opts *options) {
		opts.sqlURL = sqlURL
	}
}

// 配置MySQL连接池大小，小于1时保持默认值
func WithMaxConns(n int) Option {
	return func(opts *options) {
		if n > 0 {
			opts.maxConns = n
		}
	}
}

package sqlstorage

// 用于配置sql存储相关的选项，用于存储引擎的函数选择模式

import (
	"github.com/dszqbsm/jarchive/sqldb"
	"go.uber.org/zap"
)

type options struct {
	logger        *zap.Logger
	driver        string
	sqlUrl        string
	maxConns      int // MySQL连接池大小，SQLite固定为1
	BatchCount    int // 批量数
	CategoryCache int // 类别ID缓存的最大条目数
}

// 默认选项
var defaultOptions = options{
	logger:        zap.NewNop(),
	driver:        sqldb.SQLite,
	sqlUrl:        "clues.db",
	maxConns:      16,
	BatchCount:    100,
	CategoryCache: 4096,
}

type Option func(opts *options)

// 配置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// 配置数据库驱动
func WithDriver(driver string) Option {
	return func(opts *options) {
		opts.driver = driver
	}
}

// 配置数据库的链接url
func WithSqlUrl(sqlUrl string) Option {
	return func(opts *options) {
		opts.sqlUrl = sqlUrl
	}
}

// 配置批量处理的数量
func WithBatchCount(batchCount int) Option {
	return func(opts *options) {
		opts.BatchCount = batchCount
	}
}

func WithMaxConns(n int) Option {
	return func(opts *options) {
		opts.maxConns = n
	}
}

// 配置类别ID缓存的条目数，0表示不限制
func WithCategoryCache(size int) Option {
	return func(opts *options) {
		opts.CategoryCache = size
	}
}

package engine

import (
	"github.com/dszqbsm/jarchive/collector"
	"go.uber.org/zap"
)

type Option func(opts *options)

// 引擎配置选项
type options struct {
	WorkCount int               // 解析协程数，1表示严格顺序处理
	Loader    Loader            // 页面加载器
	Storage   collector.Storage // 存储引擎
	Logger    *zap.Logger       // 日志
	Seeds     []string          // 待处理的页面文件，顺序决定比赛ID
}

var defaultOptions = options{
	WorkCount: 1,
	Logger:    zap.NewNop(),
}

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.Logger = logger
	}
}

func WithLoader(loader Loader) Option {
	return func(opts *options) {
		opts.Loader = loader
	}
}

func WithStorage(storage collector.Storage) Option {
	return func(opts *options) {
		opts.Storage = storage
	}
}

func WithWorkCount(workCount int) Option {
	return func(opts *options) {
		opts.WorkCount = workCount
	}
}

func WithSeeds(seeds []string) Option {
	return func(opts *options) {
		opts.Seeds = seeds
	}
}

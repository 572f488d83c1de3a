package loader

import (
	"go.uber.org/zap"
)

type options struct {
	logger  *zap.Logger
	pattern string
	limit   int // 最多处理的文件数，0表示不限制
}

var defaultOptions = options{
	logger:  zap.NewNop(),
	pattern: DefaultPattern,
}

type Option func(opts *options)

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// 配置页面文件的匹配模式，为空时保持默认的*.html
func WithPattern(pattern string) Option {
	return func(opts *options) {
		if pattern != "" {
			opts.pattern = pattern
		}
	}
}

func WithLimit(limit int) Option {
	return func(opts *options) {
		opts.limit = limit
	}
}

package log

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Plugin = zapcore.Core

// 由一个或多个插件创建日志器，多个插件时日志同时写入每个插件
func NewLogger(plugins []Plugin, options ...zap.Option) *zap.Logger {
	var core zapcore.Core
	switch len(plugins) {
	case 0:
		core = zapcore.NewNopCore()
	case 1:
		core = plugins[0]
	default:
		core = zapcore.NewTee(plugins...)
	}
	return zap.New(core, append(defaultOptions(), options...)...)
}

func NewPlugin(enc zapcore.Encoder, writer zapcore.WriteSyncer, enabler zapcore.LevelEnabler) Plugin {
	return zapcore.NewCore(enc, writer, enabler)
}

func NewStdoutPlugin(enc zapcore.Encoder, enabler zapcore.LevelEnabler) Plugin {
	return NewPlugin(enc, zapcore.Lock(zapcore.AddSync(os.Stdout)), enabler)
}

// 控制台输出模式下标准输出留给线索记录，日志改写到标准错误
func NewStderrPlugin(enc zapcore.Encoder, enabler zapcore.LevelEnabler) Plugin {
	return NewPlugin(enc, zapcore.Lock(zapcore.AddSync(os.Stderr)), enabler)
}

// lumberjack没有暴露Sync，返回的closer需要在进程退出前关闭，保证内容刷到磁盘
func NewFilePlugin(enc zapcore.Encoder, filePath string, rotation Rotation, enabler zapcore.LevelEnabler) (Plugin, io.Closer) {
	writer := rotation.writer(filePath)
	return NewPlugin(enc, zapcore.AddSync(writer), enabler), writer
}

// 日志配置
type Config struct {
	Level    string // DEBUG、INFO、WARN、ERROR
	Format   string // json或console，默认json
	File     string // 为空时不写文件
	Stderr   bool   // 控制台日志写到标准错误
	Rotation Rotation
}

/*
输入日志配置，输出日志器、需要在退出前关闭的closer和一个error

控制台插件总是启用，配置了文件路径时再附加一个带轮转的文件插件
*/
func New(cfg Config) (*zap.Logger, io.Closer, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		l, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, err
		}
		level = l
	}

	enc, err := NewEncoder(cfg.Format)
	if err != nil {
		return nil, nil, err
	}
	console := NewStdoutPlugin(enc, level)
	if cfg.Stderr {
		console = NewStderrPlugin(enc, level)
	}
	plugins := []Plugin{console}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		var file Plugin
		file, closer = NewFilePlugin(enc.Clone(), cfg.File, cfg.Rotation, level)
		plugins = append(plugins, file)
	}
	return NewLogger(plugins), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

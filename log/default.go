package log

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 日志编码格式
const (
	JSONFormat    = "json"
	ConsoleFormat = "console"
)

// 级别大写，时间使用ISO8601格式，调用位置只保留包名和文件名
func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}

/*
输入编码格式，输出编码器和一个error

默认输出JSON，便于批处理结束后统计被跳过的线索；console格式适合在终端里直接阅读
*/
func NewEncoder(format string) (zapcore.Encoder, error) {
	switch strings.ToLower(format) {
	case "", JSONFormat:
		return zapcore.NewJSONEncoder(encoderConfig()), nil
	case ConsoleFormat:
		return zapcore.NewConsoleEncoder(encoderConfig()), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// 记录调用位置，DPanic及以上级别附带堆栈
func defaultOptions() []zap.Option {
	var stackTraceLevel zap.LevelEnablerFunc = func(level zapcore.Level) bool {
		return level >= zapcore.DPanicLevel
	}
	return []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(stackTraceLevel),
	}
}

// 日志文件轮转策略，字段为0时使用默认值
type Rotation struct {
	MaxSize    int // 单个文件的最大MB数
	MaxBackups int // 保留的历史文件数
	MaxAge     int // 历史文件保留天数，0表示不按时间清理
}

var DefaultRotation = Rotation{
	MaxSize:    100,
	MaxBackups: 5,
}

// 按轮转策略创建写入filePath的lumberjack日志器，历史文件使用本地时间命名并压缩
func (r Rotation) writer(filePath string) *lumberjack.Logger {
	if r.MaxSize <= 0 {
		r.MaxSize = DefaultRotation.MaxSize
	}
	if r.MaxBackups <= 0 {
		r.MaxBackups = DefaultRotation.MaxBackups
	}
	return &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    r.MaxSize,
		MaxBackups: r.MaxBackups,
		MaxAge:     r.MaxAge,
		LocalTime:  true,
		Compress:   true,
	}
}

package parse

import (
	"errors"
	"os"

	"github.com/dszqbsm/jarchive/loader"
	"github.com/dszqbsm/jarchive/log"
	"github.com/dszqbsm/jarchive/sqldb"
	"github.com/go-micro/plugins/v4/config/encoder/toml"
	"go-micro.dev/v4/config"
	"go-micro.dev/v4/config/reader"
	"go-micro.dev/v4/config/reader/json"
	"go-micro.dev/v4/config/source"
	"go-micro.dev/v4/config/source/file"
)

// 批处理配置，依次由默认值、配置文件、命令行参数覆盖
type Config struct {
	LogLevel      string
	LogFormat     string // json或console
	LogFile       string
	LogMaxSize    int // 单个日志文件的最大MB数
	LogMaxBackups int
	Dir           string // 存档目录
	Pattern       string // 页面文件的匹配模式
	Limit         int    // 最多处理的文件数，0表示全部
	Driver        string
	SqlURL        string // SQLite文件路径或MySQL DSN
	Stdout        bool   // 输出到标准输出而不写数据库
	BatchCount    int
	MaxConns      int // MySQL连接池大小
	CategoryCache int // 类别ID缓存的条目数
	WorkCount     int
}

var defaultConfig = Config{
	LogLevel:      "INFO",
	LogFormat:     log.JSONFormat,
	LogMaxSize:    log.DefaultRotation.MaxSize,
	LogMaxBackups: log.DefaultRotation.MaxBackups,
	Dir:           "j-archive",
	Pattern:       loader.DefaultPattern,
	Driver:        sqldb.SQLite,
	SqlURL:        "clues.db",
	BatchCount:    100,
	MaxConns:      16,
	CategoryCache: 4096,
	WorkCount:     1,
}

/*
输入配置文件路径，输出配置和一个error

通过toml加载配置，文件不存在时直接使用默认值
*/
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	enc := toml.NewEncoder()
	c, err := config.NewConfig(config.WithReader(json.NewReader(reader.WithEncoder(enc))))
	if err != nil {
		return cfg, err
	}
	if err := c.Load(file.NewSource(
		file.WithPath(path),
		source.WithEncoder(enc),
	)); err != nil {
		return cfg, err
	}

	cfg.LogLevel = c.Get("logLevel").String(cfg.LogLevel)
	cfg.LogFormat = c.Get("logFormat").String(cfg.LogFormat)
	cfg.LogFile = c.Get("logFile").String(cfg.LogFile)
	cfg.LogMaxSize = c.Get("logMaxSize").Int(cfg.LogMaxSize)
	cfg.LogMaxBackups = c.Get("logMaxBackups").Int(cfg.LogMaxBackups)
	cfg.Dir = c.Get("input", "dir").String(cfg.Dir)
	cfg.Pattern = c.Get("input", "pattern").String(cfg.Pattern)
	cfg.Limit = c.Get("input", "limit").Int(cfg.Limit)
	cfg.Driver = c.Get("storage", "driver").String(cfg.Driver)
	cfg.SqlURL = c.Get("storage", "sqlURL").String(cfg.SqlURL)
	cfg.Stdout = c.Get("storage", "stdout").Bool(cfg.Stdout)
	cfg.BatchCount = c.Get("storage", "batchCount").Int(cfg.BatchCount)
	cfg.MaxConns = c.Get("storage", "maxConns").Int(cfg.MaxConns)
	cfg.CategoryCache = c.Get("storage", "categoryCache").Int(cfg.CategoryCache)
	cfg.WorkCount = c.Get("engine", "workCount").Int(cfg.WorkCount)
	return cfg, nil
}

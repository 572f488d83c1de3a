package parse

import (
	"os"

	"github.com/dszqbsm/jarchive/collector"
	"github.com/dszqbsm/jarchive/engine"
	"github.com/dszqbsm/jarchive/loader"
	"github.com/dszqbsm/jarchive/log"
	"github.com/dszqbsm/jarchive/sqlstorage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ParseCmd = &cobra.Command{
	Use:   "parse",
	Short: "parse archived games and store their clues.",
	Long:  "parse every game page in a directory and store the clues in a SQL database, or print them with --stdout.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd, &cfg)
		return Run(cfg)
	},
}

var (
	configPath string
	flagValues Config
)

func init() {
	f := ParseCmd.Flags()
	f.StringVarP(&configPath, "config", "c", "config.toml", "the toml config file")
	f.StringVarP(&flagValues.Dir, "dir", "d", defaultConfig.Dir, "the directory containing the game files")
	f.IntVarP(&flagValues.Limit, "number-of-files", "n", 0, "the number of files to parse")
	f.StringVarP(&flagValues.SqlURL, "filename", "f", defaultConfig.SqlURL, "the filename for the SQLite database, or the MySQL DSN")
	f.StringVar(&flagValues.Driver, "driver", defaultConfig.Driver, "the sql driver: sqlite or mysql")
	f.BoolVar(&flagValues.Stdout, "stdout", false, "output the clues to stdout and not a database")
	f.IntVarP(&flagValues.WorkCount, "workers", "w", defaultConfig.WorkCount, "the number of goroutines parsing pages")
	f.StringVar(&flagValues.LogLevel, "log-level", defaultConfig.LogLevel, "the log level")
}

// 只有显式传入的命令行参数才覆盖配置文件
func applyFlags(cmd *cobra.Command, cfg *Config) {
	f := cmd.Flags()
	if f.Changed("dir") {
		cfg.Dir = flagValues.Dir
	}
	if f.Changed("number-of-files") {
		cfg.Limit = flagValues.Limit
	}
	if f.Changed("filename") {
		cfg.SqlURL = flagValues.SqlURL
	}
	if f.Changed("driver") {
		cfg.Driver = flagValues.Driver
	}
	if f.Changed("stdout") {
		cfg.Stdout = flagValues.Stdout
	}
	if f.Changed("workers") {
		cfg.WorkCount = flagValues.WorkCount
	}
	if f.Changed("log-level") {
		cfg.LogLevel = flagValues.LogLevel
	}
}

/*
输入批处理配置，输出一个error

初始化日志、页面加载器与存储引擎，由引擎完成整批页面的解析与写入。控制台模式下不建表，日志改写到标准错误
*/
func Run(cfg Config) error {
	logger, closer, err := log.New(log.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
		Stderr: cfg.Stdout,
		Rotation: log.Rotation{
			MaxSize:    cfg.LogMaxSize,
			MaxBackups: cfg.LogMaxBackups,
		},
	})
	if err != nil {
		return err
	}
	defer closer.Close()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	l := loader.New(
		loader.WithLogger(logger.Named("loader")),
		loader.WithPattern(cfg.Pattern),
		loader.WithLimit(cfg.Limit),
	)
	files, err := l.List(cfg.Dir)
	if err != nil {
		logger.Error("list game files failed", zap.String("dir", cfg.Dir), zap.Error(err))
		return err
	}

	var storage collector.Storage
	if cfg.Stdout {
		storage = collector.NewPrinter(os.Stdout)
	} else {
		s, err := sqlstorage.New(
			sqlstorage.WithDriver(cfg.Driver),
			sqlstorage.WithSqlUrl(cfg.SqlURL),
			sqlstorage.WithLogger(logger.Named("sqlDB")),
			sqlstorage.WithBatchCount(cfg.BatchCount),
			sqlstorage.WithMaxConns(cfg.MaxConns),
			sqlstorage.WithCategoryCache(cfg.CategoryCache),
		)
		if err != nil {
			logger.Error("create sqlstorage failed", zap.Error(err))
			return err
		}
		defer s.Close()
		storage = s
	}

	e := engine.NewEngine(
		engine.WithLoader(l),
		engine.WithStorage(storage),
		engine.WithLogger(logger.Named("engine")),
		engine.WithWorkCount(cfg.WorkCount),
		engine.WithSeeds(files),
	)
	_, err = e.Run()
	return err
}

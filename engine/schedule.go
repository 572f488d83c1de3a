package engine

import (
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/jarchive/parse/jarchive"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// 页面加载器，为引擎提供解析好的比赛页面
type Loader interface {
	Load(path string) (*goquery.Document, error)
}

// 一次批处理的统计信息
type Stats struct {
	Games    int // 成功解析的比赛数
	Skipped  int // 因无法读取或缺少播出日期而跳过的页面数
	Records  int // 写入存储的线索数
	Problems int // 被跳过的单条线索数
}

// 一个待解析的页面
type job struct {
	gameID int
	path   string
	out    chan<- parsed
}

// 单个页面的解析结果
type parsed struct {
	path   string
	result *jarchive.GameResult
	err    error
}

// 解析引擎，管理整个批处理流程
type Crawler struct {
	done chan struct{} // 批处理提前结束时通知调度与工作协程退出
	options
}

// 创建并初始化一个Crawler实例，通过传入不同的配置选项，可以灵活配置引擎的行为
func NewEngine(opts ...Option) *Crawler {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.WorkCount < 1 {
		options.WorkCount = 1
	}
	return &Crawler{options: options}
}

/*
无输入，输出统计信息和一个error

整批页面在一个事务中写入：开始前开启事务，全部写完后提交；存储或提交出错时回滚并返回错误，已写入的比赛不会被提交。
页面可以由多个工作协程并行解析，但写入始终按比赛ID顺序在当前协程中进行
*/
func (e *Crawler) Run() (*Stats, error) {
	if e.Loader == nil || e.Storage == nil {
		return nil, errors.New("engine needs a loader and a storage")
	}
	e.done = make(chan struct{})
	defer close(e.done)

	e.Logger.Info("parsing files", zap.Int("count", len(e.Seeds)), zap.Int("workers", e.WorkCount))
	if err := e.Storage.Begin(); err != nil {
		return nil, fmt.Errorf("begin batch: %w", err)
	}

	stats, err := e.HandleResult(e.Schedule())
	if err != nil {
		if rerr := e.Storage.Rollback(); rerr != nil {
			err = multierr.Append(err, fmt.Errorf("rollback: %w", rerr))
		}
		e.Logger.Error("batch rolled back", zap.Error(err))
		return stats, err
	}
	if err := e.Storage.Commit(); err != nil {
		err = fmt.Errorf("commit batch: %w", err)
		if rerr := e.Storage.Rollback(); rerr != nil {
			err = multierr.Append(err, fmt.Errorf("rollback: %w", rerr))
		}
		e.Logger.Error("batch rolled back", zap.Error(err))
		return stats, err
	}
	e.Logger.Info("all done",
		zap.Int("games", stats.Games),
		zap.Int("skipped", stats.Skipped),
		zap.Int("records", stats.Records),
		zap.Int("problems", stats.Problems),
	)
	return stats, nil
}

// 启动调度协程与工作协程，按种子顺序返回每个页面结果所在的通道
func (e *Crawler) Schedule() <-chan chan parsed {
	order := make(chan chan parsed, e.WorkCount)
	jobs := make(chan job)
	for i := 0; i < e.WorkCount; i++ {
		go e.CreateWork(jobs)
	}
	go func() {
		defer close(order)
		defer close(jobs)
		for i, path := range e.Seeds {
			out := make(chan parsed, 1)
			select {
			case jobs <- job{gameID: i + 1, path: path, out: out}:
			case <-e.done:
				return
			}
			select {
			case order <- out:
			case <-e.done:
				return
			}
		}
	}()
	return order
}

// 工作协程的核心逻辑：加载页面并解析整场比赛
func (e *Crawler) CreateWork(jobs <-chan job) {
	for j := range jobs {
		res := parsed{path: j.path}
		doc, err := e.Loader.Load(j.path)
		if err == nil {
			res.result, err = jarchive.ParseGame(doc, j.gameID)
		}
		res.err = err
		j.out <- res
	}
}

// 按顺序接收解析结果并写入存储，存储错误立即终止批处理
func (e *Crawler) HandleResult(order <-chan chan parsed) (*Stats, error) {
	stats := &Stats{}
	for out := range order {
		p := <-out
		if p.err != nil {
			stats.Skipped++
			e.Logger.Error("skip page", zap.String("file", p.path), zap.Error(p.err))
			continue
		}
		res := p.result
		if problems := multierr.Errors(res.Problems); len(problems) > 0 {
			stats.Problems += len(problems)
			e.Logger.Warn("unparseable clues skipped",
				zap.String("file", p.path),
				zap.Int("game", res.Game.ID),
				zap.Errors("problems", problems),
			)
		}
		for _, r := range res.Missing {
			e.Logger.Info("round not present", zap.String("file", p.path), zap.Stringer("round", r))
		}
		if err := e.Storage.Save(res.Records...); err != nil {
			return stats, fmt.Errorf("save game %d (%s): %w", res.Game.ID, p.path, err)
		}
		stats.Games++
		stats.Records += len(res.Records)
		e.Logger.Debug("game parsed",
			zap.Int("game", res.Game.ID),
			zap.String("airdate", res.Game.Airdate),
			zap.Int("clues", len(res.Records)),
		)
	}
	return stats, nil
}

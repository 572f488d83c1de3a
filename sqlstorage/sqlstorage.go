package sqlstorage

// 定义了ClueStore结构体及其方法，将线索记录写入SQL数据库：播出日期与类别幂等写入，线索事实行分批缓存后批量插入

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dszqbsm/jarchive/collector"
	"github.com/dszqbsm/jarchive/sqldb"
	"github.com/golang/groupcache/lru"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	airdateTable = sqldb.TableData{
		TableName: "airdates",
		ColumnNames: []sqldb.Field{
			{Title: "game_id", Type: "INTEGER NOT NULL"},
			{Title: "airdate", Type: "VARCHAR(32) NOT NULL"},
		},
		Constraints: []string{"UNIQUE(game_id, airdate)"},
	}
	categoryTable = sqldb.TableData{
		TableName: "categories",
		ColumnNames: []sqldb.Field{
			{Title: "name", Type: "VARCHAR(255) NOT NULL"},
		},
		Constraints: []string{"UNIQUE(name)"},
		AutoKey:     true,
	}
	clueTable = sqldb.TableData{
		TableName: "clues",
		ColumnNames: []sqldb.Field{
			{Title: "category_id", Type: "INTEGER NOT NULL"},
			{Title: "clue_text", Type: "TEXT"},
			{Title: "answer_text", Type: "TEXT"},
			{Title: "round", Type: "INTEGER NOT NULL"},
			{Title: "value", Type: "INTEGER NULL"}, // 决赛轮为NULL
			{Title: "airdate", Type: "VARCHAR(32) NOT NULL"},
		},
		AutoKey: true,
	}
)

// 待插入的一行线索
type clueRow struct {
	categoryID int64
	text       string
	answer     string
	round      collector.Round
	value      sql.NullInt64
	airdate    string
}

type ClueStore struct {
	dataDocker []clueRow  // 用于缓存待插入数据库的线索
	db         sqldb.DBer // 数据库操作接口
	mu         sync.Mutex // 保证同名类别的插入与查询是串行的
	categories *lru.Cache // 类别名到ID的缓存
	options
}

// ClueStore的构造函数，打开数据库并创建所需的表
func New(opts ...Option) (*ClueStore, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	db, err := sqldb.New(
		sqldb.WithDriver(options.driver),
		sqldb.WithConnURL(options.sqlUrl),
		sqldb.WithLogger(options.logger),
		sqldb.WithMaxConns(options.maxConns),
	)
	if err != nil {
		return nil, err
	}
	return initStore(db, options)
}

// 建表失败时关闭刚打开的连接
func initStore(db sqldb.DBer, options options) (*ClueStore, error) {
	s := newStore(db, options)
	if err := s.CreateTables(); err != nil {
		if cerr := s.Close(); cerr != nil {
			options.logger.Warn("close database failed", zap.Error(cerr))
		}
		return nil, err
	}
	return s, nil
}

func newStore(db sqldb.DBer, options options) *ClueStore {
	return &ClueStore{
		db:         db,
		categories: lru.New(options.CategoryCache),
		options:    options,
	}
}

func (s *ClueStore) CreateTables() error {
	for _, t := range []sqldb.TableData{airdateTable, categoryTable, clueTable} {
		if err := s.db.CreateTable(t); err != nil {
			return fmt.Errorf("create table %s: %w", t.TableName, err)
		}
	}
	return nil
}

// 开启批处理事务
func (s *ClueStore) Begin() error {
	return s.db.Begin()
}

/*
输入一个或多个线索记录，输出一个error

依次写入播出日期、解析类别ID并缓存线索行，缓存达到批量数时写入数据库；任何一步失败都直接返回，由调用方回滚事务
*/
func (s *ClueStore) Save(records ...collector.Record) error {
	for _, r := range records {
		c := r.Info()
		if err := s.UpsertAirdate(c.Game.ID, c.Game.Airdate); err != nil {
			return err
		}
		id, err := s.ResolveCategoryID(c.Category)
		if err != nil {
			return err
		}
		var value sql.NullInt64
		if v, ok := r.Value(); ok {
			value = sql.NullInt64{Int64: int64(v), Valid: true}
		}
		if err := s.InsertClue(id, c.Text, c.Answer, c.Round, value, c.Game.Airdate); err != nil {
			return err
		}
	}
	return nil
}

// 写入比赛与播出日期，已存在时不做任何修改
func (s *ClueStore) UpsertAirdate(gameID int, airdate string) error {
	t := airdateTable
	t.Args = []interface{}{gameID, airdate}
	t.Ignore = true
	if err := s.db.Insert(t); err != nil {
		return fmt.Errorf("upsert airdate %d %s: %w", gameID, airdate, err)
	}
	return nil
}

/*
输入类别名称，输出类别ID和一个error

类别不存在时先插入，再查询其ID；整个过程加锁，保证并发写入同名类别时ID唯一
*/
func (s *ClueStore) ResolveCategoryID(name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.categories.Get(name); ok {
		return id.(int64), nil
	}
	t := categoryTable
	t.Args = []interface{}{name}
	t.Ignore = true
	if err := s.db.Insert(t); err != nil {
		return 0, fmt.Errorf("insert category %q: %w", name, err)
	}
	id, err := s.db.SelectID(sqldb.TableData{
		TableName:   categoryTable.TableName,
		ColumnNames: []sqldb.Field{{Title: "name"}},
		Args:        []interface{}{name},
	})
	if err != nil {
		return 0, fmt.Errorf("select category %q: %w", name, err)
	}
	s.categories.Add(name, id)
	return id, nil
}

// 追加一行线索，线索不做去重，重复运行会产生重复的行
func (s *ClueStore) InsertClue(categoryID int64, text, answer string, round collector.Round, value sql.NullInt64, airdate string) error {
	s.dataDocker = append(s.dataDocker, clueRow{
		categoryID: categoryID,
		text:       text,
		answer:     answer,
		round:      round,
		value:      value,
		airdate:    airdate,
	})
	if len(s.dataDocker) >= s.BatchCount {
		return s.Flush()
	}
	return nil
}

// 将dataDocker中缓存的线索批量插入数据库，插入完成后清空缓存
func (s *ClueStore) Flush() error {
	if len(s.dataDocker) == 0 {
		return nil
	}
	defer func() {
		s.dataDocker = nil
	}()
	args := make([]interface{}, 0, len(s.dataDocker)*len(clueTable.ColumnNames))
	for _, row := range s.dataDocker {
		args = append(args, row.categoryID, row.text, row.answer, int(row.round), row.value, row.airdate)
	}
	t := clueTable
	t.Args = args
	t.DataCount = len(s.dataDocker)
	if err := s.db.Insert(t); err != nil {
		return fmt.Errorf("insert %d clues: %w", t.DataCount, err)
	}
	s.logger.Debug("flush clues", zap.Int("count", t.DataCount))
	return nil
}

// 写入剩余的线索并提交事务，剩余线索写入失败时回滚，不留下未结束的事务
func (s *ClueStore) Commit() error {
	if err := s.Flush(); err != nil {
		return multierr.Append(err, s.Rollback())
	}
	return s.db.Commit()
}

// 回滚事务，丢弃未写入的线索；回滚后缓存中的类别ID可能已不存在，因此一并清空
func (s *ClueStore) Rollback() error {
	s.dataDocker = nil
	s.mu.Lock()
	s.categories.Clear()
	s.mu.Unlock()
	// 提交失败时事务可能已经结束
	if err := s.db.Rollback(); err != nil && !errors.Is(err, sqldb.ErrNoTx) {
		return err
	}
	return nil
}

// 关闭底层数据库连接
func (s *ClueStore) Close() error {
	if c, ok := s.db.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

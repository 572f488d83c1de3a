package sqldb

// 定义了用于与SQLite/MySQL数据库进行交互的功能，包括创建表、插入数据、查询自增ID以及事务控制

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

var ErrNoTx = errors.New("no transaction in progress")

// 为数据库操作统一了规范
type DBer interface {
	/*
	   输入一个TableData实例，输出一个error

	   根据TableData中的列与约束构造CREATE TABLE IF NOT EXISTS语句并执行
	*/
	CreateTable(t TableData) error
	/*
	   输入一个TableData实例，输出一个error

	   构造形如INSERT INTO t(a,b) VALUES (?,?),(?,?);的语句并执行，Ignore为true时忽略唯一约束冲突
	*/
	Insert(t TableData) error
	/*
	   输入一个TableData实例，输出一个id和一个error

	   以ColumnNames为条件列、Args为条件值查询一行的id
	*/
	SelectID(t TableData) (int64, error)
	Begin() error
	Commit() error
	Rollback() error
}

// 执行语句的公共接口，*sql.DB与*sql.Tx都实现了它
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// sql数据库实例
type Sqldb struct {
	options
	dialect dialect
	db      *sql.DB
	tx      *sql.Tx
}

/*
无输入，输出一个error

打开数据库连接并通过ping测试连接是否正常。SQLite的内存库每个连接互相独立，因此SQLite只保留一个连接
*/
func (d *Sqldb) OpenDB() error {
	db, err := sql.Open(d.driver, d.sqlURL)
	if err != nil {
		return err
	}
	if d.driver == SQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(d.maxConns)
		db.SetMaxIdleConns(d.maxConns)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return err
	}
	d.db = db
	return nil
}

func (d *Sqldb) conn() execer {
	if d.tx != nil {
		return d.tx
	}
	return d.db
}

func (d *Sqldb) CreateTable(t TableData) error {
	sql, err := d.dialect.createSQL(t)
	if err != nil {
		return err
	}
	d.logger.Debug("create table", zap.String("sql", sql))
	_, err = d.conn().Exec(sql)
	return err
}

func (d *Sqldb) Insert(t TableData) error {
	sql, err := d.dialect.insertSQL(t)
	if err != nil {
		return err
	}
	d.logger.Debug("insert table", zap.String("sql", sql))
	_, err = d.conn().Exec(sql, t.Args...)
	return err
}

func (d *Sqldb) SelectID(t TableData) (int64, error) {
	sql, err := selectIDSQL(t)
	if err != nil {
		return 0, err
	}
	d.logger.Debug("select id", zap.String("sql", sql))
	var id int64
	if err := d.conn().QueryRow(sql, t.Args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// 开启事务，之后的所有语句都在该事务中执行，直到Commit或Rollback
func (d *Sqldb) Begin() error {
	if d.tx != nil {
		return errors.New("transaction already in progress")
	}
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	d.tx = tx
	return nil
}

func (d *Sqldb) Commit() error {
	if d.tx == nil {
		return ErrNoTx
	}
	defer func() {
		d.tx = nil
	}()
	return d.tx.Commit()
}

func (d *Sqldb) Rollback() error {
	if d.tx == nil {
		return ErrNoTx
	}
	defer func() {
		d.tx = nil
	}()
	return d.tx.Rollback()
}

func (d *Sqldb) Close() error {
	if d.tx != nil {
		if err := d.tx.Rollback(); err != nil {
			d.logger.Warn("rollback on close failed", zap.Error(err))
		}
		d.tx = nil
	}
	return d.db.Close()
}

// 表示数据库表中的一个字段，包含字段名和字段类型
type Field struct {
	Title string
	Type  string
}

// 表示要操作的数据库表的数据
type TableData struct {
	TableName   string
	ColumnNames []Field       // 标题字段
	Constraints []string      // 表级约束，如UNIQUE(a, b)
	Args        []interface{} // 数据
	DataCount   int           // 插入数据的数量
	AutoKey     bool
	Ignore      bool // 插入时忽略唯一约束冲突
}

func New(opts ...Option) (*Sqldb, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	dl, ok := dialects[options.driver]
	if !ok {
		return nil, fmt.Errorf("unsupported sql driver %q", options.driver)
	}
	d := &Sqldb{dialect: dl}
	d.options = options
	if err := d.OpenDB(); err != nil {
		return nil, err
	}
	return d, nil
}

type dialect struct {
	autoKey      string
	tableOptions string
	insertIgnore string
}

var dialects = map[string]dialect{
	SQLite: {
		autoKey:      `id INTEGER PRIMARY KEY AUTOINCREMENT,`,
		insertIgnore: `INSERT OR IGNORE INTO `,
	},
	MySQL: {
		autoKey:      `id INT(12) NOT NULL PRIMARY KEY AUTO_INCREMENT,`,
		// 按字节比较，与SQLite默认的BINARY排序一致
		tableOptions: ` ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`,
		insertIgnore: `INSERT IGNORE INTO `,
	},
}

func (dl dialect) createSQL(t TableData) (string, error) {
	if len(t.ColumnNames) == 0 {
		return "", errors.New("column can not be empty")
	}
	sql := `CREATE TABLE IF NOT EXISTS ` + t.TableName + " ("
	if t.AutoKey {
		sql += dl.autoKey
	}
	for _, t := range t.ColumnNames {
		sql += t.Title + ` ` + t.Type + `,`
	}
	for _, c := range t.Constraints {
		sql += c + `,`
	}
	sql = sql[:len(sql)-1] + `)` + dl.tableOptions + `;`
	return sql, nil
}

func (dl dialect) insertSQL(t TableData) (string, error) {
	if len(t.ColumnNames) == 0 {
		return "", errors.New("empty column")
	}
	count := t.DataCount
	if count == 0 {
		count = 1
	}
	if len(t.Args) != count*len(t.ColumnNames) {
		return "", fmt.Errorf("insert %s: %d args for %d rows of %d columns", t.TableName, len(t.Args), count, len(t.ColumnNames))
	}
	sql := `INSERT INTO ` + t.TableName + `(` // 初始化一个sql插入语句的前缀
	if t.Ignore {
		sql = dl.insertIgnore + t.TableName + `(`
	}
	for _, v := range t.ColumnNames {
		sql += v.Title + ","
	}
	sql = sql[:len(sql)-1] + `) VALUES `

	blank := ",(" + strings.Repeat(",?", len(t.ColumnNames))[1:] + ")" // 问号数量等于列的数量
	sql += strings.Repeat(blank, count)[1:] + `;`
	return sql, nil
}

func selectIDSQL(t TableData) (string, error) {
	if len(t.ColumnNames) == 0 || len(t.ColumnNames) != len(t.Args) {
		return "", errors.New("select needs one arg per column")
	}
	conds := make([]string, 0, len(t.ColumnNames))
	for _, v := range t.ColumnNames {
		conds = append(conds, v.Title+"=?")
	}
	return `SELECT id FROM ` + t.TableName + ` WHERE ` + strings.Join(conds, " AND ") + `;`, nil
}

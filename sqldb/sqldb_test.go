package sqldb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categoryTable = TableData{
	TableName:   "categories",
	ColumnNames: []Field{{Title: "name", Type: "VARCHAR(255) NOT NULL"}},
	Constraints: []string{"UNIQUE(name)"},
	AutoKey:     true,
}

func TestDialect_CreateSQL(t *testing.T) {
	got, err := dialects[SQLite].createSQL(categoryTable)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS categories (id INTEGER PRIMARY KEY AUTOINCREMENT,name VARCHAR(255) NOT NULL,UNIQUE(name));", got)

	got, err = dialects[MySQL].createSQL(categoryTable)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS categories (id INT(12) NOT NULL PRIMARY KEY AUTO_INCREMENT,name VARCHAR(255) NOT NULL,UNIQUE(name)) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin;", got)

	_, err = dialects[SQLite].createSQL(TableData{TableName: "empty"})
	assert.Error(t, err)
}

func TestDialect_InsertSQL(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		data    TableData
		want    string
		wantErr bool
	}{
		{
			name:    "single row",
			dialect: SQLite,
			data: TableData{TableName: "airdates", ColumnNames: []Field{{Title: "game_id"}, {Title: "airdate"}},
				Args: []interface{}{1, "2004-09-16"}},
			want: "INSERT INTO airdates(game_id,airdate) VALUES (?,?);",
		},
		{
			name:    "batch",
			dialect: SQLite,
			data: TableData{TableName: "airdates", ColumnNames: []Field{{Title: "game_id"}, {Title: "airdate"}},
				Args: []interface{}{1, "a", 2, "b"}, DataCount: 2},
			want: "INSERT INTO airdates(game_id,airdate) VALUES (?,?),(?,?);",
		},
		{
			name:    "sqlite ignore",
			dialect: SQLite,
			data:    TableData{TableName: "categories", ColumnNames: []Field{{Title: "name"}}, Args: []interface{}{"A"}, Ignore: true},
			want:    "INSERT OR IGNORE INTO categories(name) VALUES (?);",
		},
		{
			name:    "mysql ignore",
			dialect: MySQL,
			data:    TableData{TableName: "categories", ColumnNames: []Field{{Title: "name"}}, Args: []interface{}{"A"}, Ignore: true},
			want:    "INSERT IGNORE INTO categories(name) VALUES (?);",
		},
		{name: "no columns", dialect: SQLite, data: TableData{TableName: "x"}, wantErr: true},
		{
			name:    "arg count mismatch",
			dialect: SQLite,
			data:    TableData{TableName: "x", ColumnNames: []Field{{Title: "a"}, {Title: "b"}}, Args: []interface{}{1}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dialects[tt.dialect].insertSQL(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("insertSQL() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSqldb_SQLite(t *testing.T) {
	d, err := New(WithConnURL(":memory:"))
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.CreateTable(categoryTable))
	require.NoError(t, d.Begin())
	for i := 0; i < 2; i++ {
		require.NoError(t, d.Insert(TableData{
			TableName:   "categories",
			ColumnNames: []Field{{Title: "name"}},
			Args:        []interface{}{"HISTORY"},
			Ignore:      true,
		}))
	}
	id, err := d.SelectID(TableData{TableName: "categories", ColumnNames: []Field{{Title: "name"}}, Args: []interface{}{"HISTORY"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.NoError(t, d.Insert(TableData{
		TableName:   "categories",
		ColumnNames: []Field{{Title: "name"}},
		Args:        []interface{}{"History"},
		Ignore:      true,
	}))
	id, err = d.SelectID(TableData{TableName: "categories", ColumnNames: []Field{{Title: "name"}}, Args: []interface{}{"History"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), id, "category names are case sensitive")
	require.NoError(t, d.Rollback())

	_, err = d.SelectID(TableData{TableName: "categories", ColumnNames: []Field{{Title: "name"}}, Args: []interface{}{"HISTORY"}})
	assert.Error(t, err, "rolled back row must be gone")

	assert.ErrorIs(t, d.Commit(), ErrNoTx)
}

func TestWithMaxConns(t *testing.T) {
	opts := defaultOptions
	WithMaxConns(4)(&opts)
	assert.Equal(t, 4, opts.maxConns)
	WithMaxConns(0)(&opts)
	assert.Equal(t, 4, opts.maxConns)

	// SQLite的内存库只能有一个连接
	d, err := New(WithConnURL(":memory:"), WithMaxConns(8))
	require.NoError(t, err)
	defer d.Close()
	assert.Equal(t, 1, d.db.Stats().MaxOpenConnections)
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(WithDriver("oracle"))
	assert.Error(t, err)
}

package qbs

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var testDbName = "qbs_test"

func setupSqlite3Migration(t *testing.T) *Migration {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// every pooled connection would get its own in-memory database
	db.SetMaxOpenConns(1)
	mg := NewMigration(db, testDbName, NewSqlite3())
	t.Cleanup(func() { mg.Close() })
	return mg
}

func TestSqlite3CreateNationalizedTable(t *testing.T) {
	mg := setupSqlite3Migration(t)
	core, logs := observer.New(zap.DebugLevel)
	mg.SetLogger(zap.New(core))

	require.NoError(t, mg.CreateTableIfNotExists(new(nationalizedEntity)))
	columns, err := mg.dialect.columnsInTable(mg, "nationalized_entity")
	require.NoError(t, err)
	assert.Len(t, columns, 7)
	for _, c := range []string{"id", "nvarchar_att", "materialized_nclob_att", "nclob_att", "ncharacter_att", "nchar_arr_att", "nlongvarcharchar_att"} {
		assert.True(t, columns[c], c)
	}
	assert.NotZero(t, logs.FilterMessage("executing ddl").Len())
	assert.NotZero(t, logs.FilterMessage("resolved column type").Len())

	// running again is a no-op
	require.NoError(t, mg.CreateTableIfNotExists(new(nationalizedEntity)))
}

type addColumn struct {
	Prim   int64 `qbs:"pk"`
	First  string
	Last   string
	Amount int
}

func (table *addColumn) Indexes(indexes *Indexes) {
	indexes.AddUnique("first", "last")
}

func TestSqlite3AddColumnAndIndex(t *testing.T) {
	mg := setupSqlite3Migration(t)
	_, err := mg.db.Exec("CREATE TABLE `add_column` ( `prim` integer PRIMARY KEY AUTOINCREMENT NOT NULL, `first` text )")
	require.NoError(t, err)

	require.NoError(t, mg.CreateTableIfNotExists(new(addColumn)))
	columns, err := mg.dialect.columnsInTable(mg, new(addColumn))
	require.NoError(t, err)
	assert.Len(t, columns, 4)
	assert.True(t, columns["last"])
	assert.True(t, columns["amount"])

	exists, err := mg.dialect.indexExists(mg, "add_column", "add_column_first_last")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = mg.dialect.indexExists(mg, "add_column", "add_column_none")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = mg.db.Exec("INSERT INTO `add_column` (`first`, `last`, `amount`) VALUES ('a', 'b', 1)")
	require.NoError(t, err)
	_, err = mg.db.Exec("INSERT INTO `add_column` (`first`, `last`, `amount`) VALUES ('a', 'b', 2)")
	assert.Error(t, err, "unique index should reject duplicates")
}

func TestSqlite3RenamedColumn(t *testing.T) {
	mg := setupSqlite3Migration(t)
	_, err := mg.db.Exec("CREATE TABLE `add_column` ( `prim` integer PRIMARY KEY AUTOINCREMENT NOT NULL, `given` text )")
	require.NoError(t, err)
	assert.ErrorIs(t, mg.CreateTableIfNotExists(new(addColumn)), ErrColumnRenamed)
}

func TestSqlite3CharacterRoundTrip(t *testing.T) {
	mg := setupSqlite3Migration(t)
	require.NoError(t, mg.CreateTableIfNotExists(new(nationalizedEntity)))
	_, err := mg.db.Exec("INSERT INTO `nationalized_entity` (`nvarchar_att`, `nclob_att`, `ncharacter_att`) VALUES (?, ?, ?)",
		"Grüße", NClob("日本語テキスト"), Char('ß'))
	require.NoError(t, err)

	var s string
	var n NClob
	var c Char
	row := mg.db.QueryRow("SELECT `nvarchar_att`, `nclob_att`, `ncharacter_att` FROM `nationalized_entity`")
	require.NoError(t, row.Scan(&s, &n, &c))
	assert.Equal(t, "Grüße", s)
	assert.Equal(t, NClob("日本語テキスト"), n)
	assert.Equal(t, Char('ß'), c)
}

func TestDropTable(t *testing.T) {
	mg := setupSqlite3Migration(t)
	require.NoError(t, mg.CreateTableIfNotExists(new(addColumn)))
	require.NoError(t, mg.DropTable(new(addColumn)))
	columns, err := mg.dialect.columnsInTable(mg, new(addColumn))
	require.NoError(t, err)
	assert.Empty(t, columns)

	mg.dbName = "production"
	assert.ErrorIs(t, mg.DropTable(new(addColumn)), ErrNotTestDatabase)
}

func TestMigrationBindError(t *testing.T) {
	mg := setupSqlite3Migration(t)
	type bad struct {
		Id   int64
		Size int `qbs:"nationalized"`
	}
	assert.ErrorIs(t, mg.CreateTableIfNotExists(new(bad)), ErrNotCharacterData)
}

func TestWithMigration(t *testing.T) {
	dsn := &DataSourceName{DbName: "file:with_migration_test?mode=memory&cache=shared", Dialect: NewSqlite3()}
	err := WithMigration(dsn, func(mg *Migration) error {
		return mg.CreateTableIfNotExists(new(addColumn))
	})
	require.NoError(t, err)

	dsn = &DataSourceName{Dialect: NewSybase()}
	assert.ErrorIs(t, WithMigration(dsn, func(*Migration) error { return nil }), ErrDriverUnsupported)
}

package example

import (
	"database/sql"
	"testing"

	"github.com/klockla/qbs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata(t *testing.T) {
	md, err := Metadata(qbs.NewSqlServer())
	require.NoError(t, err)
	require.Len(t, md.EntityBindings(), 3)

	article := md.EntityBinding("Article")
	require.NotNil(t, article)
	assert.Same(t, qbs.StringNVarcharType, article.Property("Title").Type())
	assert.Same(t, qbs.StringType, article.Property("Slug").Type())
	assert.Same(t, qbs.MaterializedNClobType, article.Property("Body").Type())
	assert.Same(t, qbs.NTextType, article.Property("Summary").Type())
	assert.Same(t, qbs.CharacterNCharType, article.Property("Grade").Type())
	assert.Nil(t, article.Property("Author"))

	md, err = Metadata(qbs.NewPostgres())
	require.NoError(t, err)
	assert.Same(t, qbs.StringType, md.EntityBinding("Article").Property("Title").Type())
}

func TestCreateTables(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	mg := qbs.NewMigration(db, "example_test", qbs.NewSqlite3())
	defer mg.Close()
	require.NoError(t, CreateTables(mg))
	require.NoError(t, CreateTables(mg))
}

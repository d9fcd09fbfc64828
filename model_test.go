package qbs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver(d Dialect) *resolver {
	return newResolver(d, nil, nil)
}

func TestParseTags(t *testing.T) {
	fd := new(modelField)
	require.NoError(t, parseTags(fd, `fk:Author,size:64,notnull,default:'a:b',nationalized,lob,type:ntext`))
	assert.Equal(t, "Author", fd.fk)
	assert.Equal(t, 64, fd.size)
	assert.True(t, fd.notnull)
	assert.Equal(t, "'a:b'", fd.dfault)
	assert.True(t, fd.nationalized)
	assert.True(t, fd.lob)
	assert.Equal(t, "ntext", fd.typeName)

	assert.ErrorIs(t, parseTags(new(modelField), "wide"), ErrTagSyntax)
	assert.ErrorIs(t, parseTags(new(modelField), "size:big"), ErrTagSyntax)
	assert.ErrorIs(t, parseTags(new(modelField), "width:3"), ErrTagSyntax)
}

func TestFieldOmit(t *testing.T) {
	type schema struct {
		A string `qbs:"-"`
		B string
		c string
		M map[string]string
	}
	m, err := structPtrToModel(&schema{}, true, testResolver(NewMysql()))
	require.NoError(t, err)
	require.Len(t, m.fields, 1)
	assert.Equal(t, "b", m.fields[0].name)
}

type indexedTable struct {
	ColPrimary int64  `qbs:"pk"`
	ColNotNull string `qbs:"notnull,default:'banana'"`
	ColVarChar string `qbs:"size:64"`
	ColTime    time.Time
}

func (table *indexedTable) Indexes(indexes *Indexes) {
	indexes.Add("col_primary", "col_time")
	indexes.AddUnique("col_var_char", "col_time")
}

func TestStructToModel(t *testing.T) {
	m, err := structPtrToModel(new(indexedTable), true, testResolver(NewMysql()))
	require.NoError(t, err)
	assert.Equal(t, "indexed_table", m.table)
	assert.Equal(t, "col_primary", m.pk.name)
	assert.Len(t, m.fields, 4)
	require.Len(t, m.indexes, 2)
	assert.Equal(t, "col_primary_col_time", m.indexes[0].name)
	assert.False(t, m.indexes[0].unique)
	assert.Equal(t, "col_var_char_col_time", m.indexes[1].name)
	assert.True(t, m.indexes[1].unique)

	assert.Equal(t, "'banana'", m.fields[1].dfault)
	assert.Equal(t, 64, m.fields[2].size)
	assert.Same(t, TimestampType, m.fields[3].typ)
}

func TestStructToModelWithReference(t *testing.T) {
	type user struct {
		Id   int64
		Name string
	}
	type post struct {
		Id       int64
		AuthorId int64 `qbs:"fk:Author"`
		Author   *user
		EditorId int64
		Editor   *user
		Content  string
	}
	m, err := structPtrToModel(new(post), true, testResolver(NewMysql()))
	require.NoError(t, err)
	require.Len(t, m.refs, 2)
	ref := m.refs["Author"]
	require.NotNil(t, ref)
	assert.True(t, ref.foreignKey)
	assert.Equal(t, "author_id", ref.refKey)
	assert.Equal(t, "user", ref.model.table)
	assert.False(t, m.refs["Editor"].foreignKey)
	assert.Len(t, m.fields, 4)
}

func TestStructToModelBadReference(t *testing.T) {
	type broken struct {
		Id      int64
		OwnerId int64 `qbs:"fk:Owner"`
		Owner   string
	}
	_, err := structPtrToModel(new(broken), true, testResolver(NewMysql()))
	assert.ErrorIs(t, err, ErrReference)
}

func TestStructToModelCollectsErrors(t *testing.T) {
	type bad struct {
		A int       `qbs:"nationalized"`
		B bool      `qbs:"lob"`
		C string    `qbs:"type:nothing"`
		D string    `qbs:"coltype:uuid"`
		E struct{}
		F string    `qbs:"wide"`
		G time.Time `qbs:"nationalized"`
	}
	_, err := structPtrToModel(new(bad), true, testResolver(NewOracle()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotCharacterData)
	assert.ErrorIs(t, err, ErrLobNotApplicable)
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.ErrorIs(t, err, ErrUnsupportedField)
	assert.ErrorIs(t, err, ErrTagSyntax)
	assert.Contains(t, err.Error(), "bad.G")
}

func TestStructToModelRejectsNonStruct(t *testing.T) {
	res := testResolver(NewMysql())
	var s string
	_, err := structPtrToModel(&s, true, res)
	assert.ErrorIs(t, err, ErrNotStructPointer)
	p := new(indexedTable)
	_, err = structPtrToModel(&p, true, res)
	assert.ErrorIs(t, err, ErrNotStructPointer)
	_, err = structPtrToModel(indexedTable{}, true, res)
	assert.ErrorIs(t, err, ErrNotStructPointer)
}

type fakeInt int
type fakeTime time.Time

func TestColTypeOverride(t *testing.T) {
	type derived struct {
		DerivedInt     fakeInt  `qbs:"coltype:int"`
		DerivedTime    fakeTime `qbs:"coltype:timestamp"`
		DerivedVarChar fakeTime `qbs:"coltype:text,size:128"`
	}
	m, err := structPtrToModel(new(derived), true, testResolver(NewMysql()))
	require.NoError(t, err)
	assert.Same(t, IntegerType, m.fields[0].typ)
	assert.Same(t, TimestampType, m.fields[1].typ)
	assert.Same(t, StringType, m.fields[2].typ)
}

type namedTable struct {
	Id   int64
	Code string `qbs:"pk,size:8"`
}

func (*namedTable) TableName() string {
	return "codes"
}

func TestTableNamerAndStringPk(t *testing.T) {
	m, err := structPtrToModel(new(namedTable), true, testResolver(NewMysql()))
	require.NoError(t, err)
	assert.Equal(t, "codes", m.table)
	assert.Equal(t, "code", m.pk.name)
	assert.Equal(t, "codes", tableName("codes"))
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "ncharacter_att", toSnake("NcharacterAtt"))
	assert.Equal(t, "id", toSnake("Id"))
	assert.Equal(t, "NcharacterAtt", snakeToUpperCamel("ncharacter_att"))
}

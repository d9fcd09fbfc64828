package qbs

import (
	"database/sql"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoTypeDescriptorOf(t *testing.T) {
	type named string
	var s string
	cases := []struct {
		value interface{}
		want  *GoTypeDescriptor
	}{
		{"", GoString},
		{named(""), GoString},
		{&s, GoString},
		{sql.NullString{}, GoString},
		{Char('a'), GoChar},
		{[]Char{}, GoCharArray},
		{Clob(""), GoClob},
		{NClob(""), GoNClob},
		{true, GoBool},
		{sql.NullBool{}, GoBool},
		{int8(1), GoInt},
		{uint32(1), GoInt},
		{rune(1), GoInt},
		{1, GoInt64},
		{uint64(1), GoInt64},
		{sql.NullInt64{}, GoInt64},
		{1.5, GoFloat},
		{float32(1), GoFloat},
		{time.Time{}, GoTime},
		{[]byte{}, GoBytes},
		{[]string{}, nil},
		{struct{}{}, nil},
	}
	for _, c := range cases {
		assert.Same(t, c.want, goTypeDescriptorOf(reflect.TypeOf(c.value)), "%T", c.value)
	}
}

func TestNationalize(t *testing.T) {
	assert.Same(t, SqlNChar, SqlChar.Nationalize())
	assert.Same(t, SqlNVarchar, SqlVarchar.Nationalize())
	assert.Same(t, SqlLongNVarchar, SqlLongVarchar.Nationalize())
	assert.Same(t, SqlNClob, SqlClob.Nationalize())
	assert.Same(t, SqlNClob, SqlClobBinding.Nationalize())
	assert.Same(t, SqlNVarchar, SqlNVarchar.Nationalize())
	assert.Same(t, SqlBigInt, SqlBigInt.Nationalize())

	assert.True(t, SqlNClob.Nationalized())
	assert.True(t, SqlNClob.Lob())
	assert.False(t, SqlVarchar.Nationalized())
	assert.True(t, SqlClobBinding.Lob())
	assert.Equal(t, SqlClob.Code(), SqlClobBinding.Code())
	assert.NotSame(t, SqlClob, SqlClobBinding)
}

func TestCharacterValues(t *testing.T) {
	var c Char
	assert.NoError(t, c.Scan([]byte("é")))
	assert.Equal(t, Char('é'), c)
	assert.Error(t, c.Scan("ab"))
	assert.Error(t, c.Scan([]byte{0xff}))
	assert.Equal(t, Char('é'), c)
	v, err := c.Value()
	assert.NoError(t, err)
	assert.Equal(t, "é", v)
	assert.NoError(t, c.Scan(nil))
	assert.Equal(t, Char(0), c)

	var n NClob
	assert.NoError(t, n.Scan("日本語"))
	assert.Equal(t, NClob("日本語"), n)
	var cl Clob
	assert.Error(t, cl.Scan(42))
}

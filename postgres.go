package qbs

import (
	"database/sql"
	"fmt"
	"strings"
)

type postgres struct {
	base
}

func NewPostgres() Dialect {
	d := new(postgres)
	d.base.dialect = d
	return d
}

func (d postgres) Name() string {
	return "postgres"
}

func (d postgres) quote(s string) string {
	segs := strings.Split(s, ".")
	for i, v := range segs {
		segs[i] = `"` + v + `"`
	}
	return strings.Join(segs, ".")
}

func (d postgres) substituteMarkers(query string) string {
	return numberedMarkers(query, "$")
}

func (d postgres) sqlType(field *modelField) string {
	size := field.size
	switch field.typ.SqlType().Code() {
	case CodeBoolean:
		return "boolean"
	case CodeInteger:
		return "integer"
	case CodeBigInt:
		return "bigint"
	case CodeDouble:
		return "double precision"
	case CodeTimestamp:
		return "timestamp with time zone"
	case CodeVarBinary, CodeBlob:
		return "bytea"
	case CodeChar, CodeNChar:
		return fmt.Sprintf("char(%d)", charSize(size))
	case CodeVarchar, CodeNVarchar:
		return sizedOr("varchar(%d)", size, 65532, "text")
	case CodeLongVarchar, CodeLongNVarchar, CodeClob, CodeNClob:
		return "text"
	}
	panic("invalid sql type for field:" + field.name)
}

func (d postgres) indexExists(mg *Migration, tableName, indexName string) (bool, error) {
	var name string
	query := "SELECT indexname FROM pg_indexes WHERE tablename = ? AND indexname = ?"
	row := mg.db.QueryRow(d.substituteMarkers(query), tableName, indexName)
	err := row.Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return name != "", err
}

func (d postgres) columnsInTable(mg *Migration, table interface{}) (map[string]bool, error) {
	query := "SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_NAME = ?"
	return queryColumnNames(mg, d.substituteMarkers(query), tableName(table))
}

func (d postgres) primaryKeySql() string {
	return "bigserial PRIMARY KEY"
}

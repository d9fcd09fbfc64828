package qbs

import (
	"database/sql"
	"fmt"
	"strings"
)

type sqlserver struct {
	base
}

func NewSqlServer() Dialect {
	d := new(sqlserver)
	d.base.dialect = d
	return d
}

func (d sqlserver) Name() string {
	return "sqlserver"
}

func (d sqlserver) NationalizationSupport() NationalizationSupport {
	return Explicit
}

func (d sqlserver) quote(s string) string {
	return bracketQuote(s)
}

func (d sqlserver) substituteMarkers(query string) string {
	return numberedMarkers(query, "@p")
}

func (d sqlserver) sqlType(field *modelField) string {
	size := field.size
	switch field.typ.SqlType().Code() {
	case CodeBoolean:
		return "bit"
	case CodeInteger:
		return "int"
	case CodeBigInt:
		return "bigint"
	case CodeDouble:
		return "float"
	case CodeTimestamp:
		return "datetime2"
	case CodeVarBinary:
		return sizedOr("varbinary(%d)", size, 8001, "varbinary(max)")
	case CodeBlob:
		return "varbinary(max)"
	case CodeChar:
		return fmt.Sprintf("char(%d)", charSize(size))
	case CodeNChar:
		return fmt.Sprintf("nchar(%d)", charSize(size))
	case CodeVarchar:
		return sizedOr("varchar(%d)", size, 8001, "varchar(max)")
	case CodeNVarchar:
		return sizedOr("nvarchar(%d)", size, 4001, "nvarchar(max)")
	case CodeLongVarchar:
		return "text"
	case CodeLongNVarchar:
		return "ntext"
	case CodeClob:
		return "varchar(max)"
	case CodeNClob:
		return "nvarchar(max)"
	}
	panic("invalid sql type for field:" + field.name)
}

func (d sqlserver) createTableSql(model *model, ifNotExists bool) string {
	sql := d.base.createTableSql(model, false)
	if ifNotExists {
		return fmt.Sprintf("IF OBJECT_ID(N'%v', N'U') IS NULL %v", model.table, sql)
	}
	return sql
}

func (d sqlserver) addColumnSql(table string, field *modelField) string {
	return fmt.Sprintf("ALTER TABLE %v ADD %v %v", d.quote(table), d.quote(field.name), d.sqlType(field))
}

func (d sqlserver) indexExists(mg *Migration, tableName, indexName string) (bool, error) {
	var name string
	query := "SELECT name FROM sys.indexes WHERE object_id = OBJECT_ID(?) AND name = ?"
	row := mg.db.QueryRow(d.substituteMarkers(query), tableName, indexName)
	err := row.Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return name != "", err
}

func (d sqlserver) columnsInTable(mg *Migration, table interface{}) (map[string]bool, error) {
	query := "SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_CATALOG = ? AND TABLE_NAME = ?"
	return queryColumnNames(mg, d.substituteMarkers(query), mg.dbName, tableName(table))
}

func (d sqlserver) primaryKeySql() string {
	return "bigint IDENTITY(1,1) PRIMARY KEY"
}

func bracketQuote(s string) string {
	segs := strings.Split(s, ".")
	for i, v := range segs {
		segs[i] = "[" + v + "]"
	}
	return strings.Join(segs, ".")
}

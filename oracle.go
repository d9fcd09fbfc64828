package qbs

import (
	"database/sql"
	"fmt"
	"strings"
)

type oracle struct {
	base
}

func NewOracle() Dialect {
	d := new(oracle)
	d.base.dialect = d
	return d
}

func (d oracle) Name() string {
	return "oracle"
}

func (d oracle) NationalizationSupport() NationalizationSupport {
	return Explicit
}

func (d oracle) quote(s string) string {
	segs := strings.Split(s, ".")
	for i, v := range segs {
		segs[i] = `"` + v + `"`
	}
	return strings.Join(segs, ".")
}

func (d oracle) substituteMarkers(query string) string {
	return numberedMarkers(query, ":")
}

func (d oracle) sqlType(field *modelField) string {
	size := field.size
	switch field.typ.SqlType().Code() {
	case CodeBoolean:
		return "NUMBER(1)"
	case CodeInteger:
		return "NUMBER(10)"
	case CodeBigInt:
		return "NUMBER(19)"
	case CodeDouble:
		return "BINARY_DOUBLE"
	case CodeTimestamp:
		return "TIMESTAMP"
	case CodeVarBinary:
		return sizedOr("RAW(%d)", size, 2000, "BLOB")
	case CodeBlob:
		return "BLOB"
	case CodeChar:
		return fmt.Sprintf("CHAR(%d)", charSize(size))
	case CodeNChar:
		return fmt.Sprintf("NCHAR(%d)", charSize(size))
	case CodeVarchar:
		return sizedOr("VARCHAR2(%d)", size, 4000, "CLOB")
	case CodeNVarchar:
		// NVARCHAR2 length is in characters of up to two bytes
		return sizedOr("NVARCHAR2(%d)", size, 2000, "NCLOB")
	case CodeLongVarchar, CodeClob:
		return "CLOB"
	case CodeLongNVarchar, CodeNClob:
		return "NCLOB"
	}
	panic("invalid sql type for field:" + field.name)
}

// Oracle has no IF [NOT] EXISTS clause; the guarded forms run the statement
// in a PL/SQL block that swallows the matching error code.
func (d oracle) createTableSql(model *model, ifNotExists bool) string {
	sql := d.base.createTableSql(model, false)
	if ifNotExists {
		return plsqlIgnoring(sql, oraNameInUse)
	}
	return sql
}

func (d oracle) dropTableSql(table string) string {
	return plsqlIgnoring("DROP TABLE "+d.quote(table), oraTableNotFound)
}

const (
	oraNameInUse     = -955
	oraTableNotFound = -942
)

func plsqlIgnoring(stmt string, sqlCode int) string {
	return fmt.Sprintf(
		"BEGIN EXECUTE IMMEDIATE '%v'; EXCEPTION WHEN OTHERS THEN IF SQLCODE != %d THEN RAISE; END IF; END;",
		strings.ReplaceAll(stmt, "'", "''"),
		sqlCode,
	)
}

func (d oracle) addColumnSql(table string, field *modelField) string {
	return fmt.Sprintf("ALTER TABLE %v ADD (%v %v)", d.quote(table), d.quote(field.name), d.sqlType(field))
}

func (d oracle) indexExists(mg *Migration, tableName, indexName string) (bool, error) {
	var name string
	query := "SELECT INDEX_NAME FROM USER_INDEXES WHERE TABLE_NAME = ? AND INDEX_NAME = ?"
	row := mg.db.QueryRow(d.substituteMarkers(query), tableName, indexName)
	err := row.Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return name != "", err
}

func (d oracle) columnsInTable(mg *Migration, table interface{}) (map[string]bool, error) {
	query := "SELECT COLUMN_NAME FROM USER_TAB_COLUMNS WHERE TABLE_NAME = ?"
	return queryColumnNames(mg, d.substituteMarkers(query), tableName(table))
}

func (d oracle) primaryKeySql() string {
	return "NUMBER(19) GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
}

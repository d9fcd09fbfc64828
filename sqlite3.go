package qbs

import (
	"database/sql"
	"fmt"
)

type sqlite3 struct {
	base
}

func NewSqlite3() Dialect {
	d := new(sqlite3)
	d.base.dialect = d
	return d
}

func (d sqlite3) Name() string {
	return "sqlite3"
}

func (d sqlite3) sqlType(field *modelField) string {
	switch field.typ.SqlType().Code() {
	case CodeBoolean, CodeInteger, CodeBigInt:
		return "integer"
	case CodeDouble:
		return "real"
	case CodeVarBinary, CodeBlob:
		return "blob"
	case CodeTimestamp, CodeChar, CodeNChar, CodeVarchar, CodeNVarchar,
		CodeLongVarchar, CodeLongNVarchar, CodeClob, CodeNClob:
		return "text"
	}
	panic("invalid sql type for field:" + field.name)
}

func (d sqlite3) indexExists(mg *Migration, tableName string, indexName string) (bool, error) {
	rows, err := mg.db.Query("PRAGMA index_list('" + tableName + "')")
	if err != nil {
		return false, err
	}
	defer rows.Close()
	for rows.Next() {
		name, err := scanColumnAt(rows, 1)
		if err != nil {
			return false, err
		}
		if name == indexName {
			return true, nil
		}
	}
	return false, rows.Err()
}

func (d sqlite3) columnsInTable(mg *Migration, table interface{}) (map[string]bool, error) {
	tn := tableName(table)
	rows, err := mg.db.Query("PRAGMA table_info('" + tn + "')")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	columns := make(map[string]bool)
	for rows.Next() {
		name, err := scanColumnAt(rows, 1)
		if err != nil {
			return nil, err
		}
		columns[name] = true
	}
	return columns, rows.Err()
}

// scanColumnAt reads the current row and returns the column at index as text.
// PRAGMA result widths vary between sqlite versions.
func scanColumnAt(rows *sql.Rows, index int) (string, error) {
	cols, err := rows.Columns()
	if err != nil {
		return "", err
	}
	containers := make([]interface{}, len(cols))
	for i := range containers {
		var v interface{}
		containers[i] = &v
	}
	if err := rows.Scan(containers...); err != nil {
		return "", err
	}
	switch v := (*containers[index].(*interface{})).(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", nil
	default:
		return fmt.Sprint(v), nil
	}
}

func (d sqlite3) primaryKeySql() string {
	return "integer PRIMARY KEY AUTOINCREMENT NOT NULL"
}

package qbs

import (
	"database/sql"
	"fmt"
)

// sybase targets Adaptive Server Enterprise through a TDS driver that stores
// character data as Unicode and only binds clobs through its clob path.
type sybase struct {
	base
}

func NewSybase() Dialect {
	d := new(sybase)
	d.base.dialect = d
	return d
}

func (d sybase) Name() string {
	return "sybase"
}

func (d sybase) remapSqlType(desc *SqlTypeDescriptor) *SqlTypeDescriptor {
	if desc == SqlClob {
		return SqlClobBinding
	}
	return desc
}

func (d sybase) quote(s string) string {
	return bracketQuote(s)
}

func (d sybase) sqlType(field *modelField) string {
	size := field.size
	switch field.typ.SqlType().Code() {
	case CodeBoolean:
		return "bit"
	case CodeInteger:
		return "int"
	case CodeBigInt:
		return "bigint"
	case CodeDouble:
		return "double precision"
	case CodeTimestamp:
		return "datetime"
	case CodeVarBinary:
		return sizedOr("varbinary(%d)", size, 16385, "image")
	case CodeBlob:
		return "image"
	case CodeChar:
		return fmt.Sprintf("char(%d)", charSize(size))
	case CodeNChar:
		return fmt.Sprintf("nchar(%d)", charSize(size))
	case CodeVarchar:
		return sizedOr("varchar(%d)", size, 16385, "text")
	case CodeNVarchar:
		return sizedOr("nvarchar(%d)", size, 16385, "unitext")
	case CodeLongVarchar, CodeClob:
		return "text"
	case CodeLongNVarchar, CodeNClob:
		return "unitext"
	}
	panic("invalid sql type for field:" + field.name)
}

func (d sybase) createTableSql(model *model, ifNotExists bool) string {
	sql := d.base.createTableSql(model, false)
	if ifNotExists {
		return fmt.Sprintf("IF OBJECT_ID('%v') IS NULL %v", model.table, sql)
	}
	return sql
}

func (d sybase) dropTableSql(table string) string {
	return fmt.Sprintf("IF OBJECT_ID('%v') IS NOT NULL DROP TABLE %v", table, d.quote(table))
}

func (d sybase) addColumnSql(table string, field *modelField) string {
	return fmt.Sprintf("ALTER TABLE %v ADD %v %v NULL", d.quote(table), d.quote(field.name), d.sqlType(field))
}

func (d sybase) indexExists(mg *Migration, tableName, indexName string) (bool, error) {
	var name string
	row := mg.db.QueryRow("SELECT name FROM sysindexes WHERE id = OBJECT_ID(?) AND name = ?", tableName, indexName)
	err := row.Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return name != "", err
}

func (d sybase) columnsInTable(mg *Migration, table interface{}) (map[string]bool, error) {
	return queryColumnNames(mg, "SELECT name FROM syscolumns WHERE id = OBJECT_ID(?)", tableName(table))
}

func (d sybase) primaryKeySql() string {
	return "numeric(19,0) IDENTITY PRIMARY KEY"
}

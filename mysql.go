package qbs

import (
	"database/sql"
	"fmt"
)

type mysql struct {
	base
}

func NewMysql() Dialect {
	d := new(mysql)
	d.base.dialect = d
	return d
}

func DefaultMysqlDataSourceName(dbName string) *DataSourceName {
	dsn := new(DataSourceName)
	dsn.Dialect = NewMysql()
	dsn.Username = "root"
	dsn.DbName = dbName
	dsn.Append("loc", "Local")
	dsn.Append("charset", "utf8mb4")
	dsn.Append("parseTime", "true")
	return dsn
}

func (d mysql) Name() string {
	return "mysql"
}

func (d mysql) sqlType(field *modelField) string {
	size := field.size
	switch field.typ.SqlType().Code() {
	case CodeBoolean:
		return "boolean"
	case CodeInteger:
		return "int"
	case CodeBigInt:
		return "bigint"
	case CodeDouble:
		return "double"
	case CodeTimestamp:
		return "timestamp"
	case CodeVarBinary:
		return sizedOr("varbinary(%d)", size, 65532, "longblob")
	case CodeBlob:
		return "longblob"
	case CodeChar:
		return fmt.Sprintf("char(%d)", charSize(size))
	case CodeNChar:
		return fmt.Sprintf("nchar(%d)", charSize(size))
	case CodeVarchar:
		return sizedOr("varchar(%d)", size, 65532, "longtext")
	case CodeNVarchar:
		return sizedOr("nvarchar(%d)", size, 65532, "longtext")
	case CodeLongVarchar, CodeLongNVarchar, CodeClob, CodeNClob:
		return "longtext"
	}
	panic("invalid sql type for field:" + field.name)
}

func (d mysql) indexExists(mg *Migration, tableName, indexName string) (bool, error) {
	var name string
	row := mg.db.QueryRow("SELECT INDEX_NAME FROM INFORMATION_SCHEMA.STATISTICS "+
		"WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND INDEX_NAME = ?", mg.dbName, tableName, indexName)
	err := row.Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return name != "", err
}

func (d mysql) primaryKeySql() string {
	return "bigint PRIMARY KEY AUTO_INCREMENT"
}

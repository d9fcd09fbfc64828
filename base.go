package qbs

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

type base struct {
	dialect Dialect
}

func (d base) NationalizationSupport() NationalizationSupport {
	return Implicit
}

func (d base) remapSqlType(desc *SqlTypeDescriptor) *SqlTypeDescriptor {
	return desc
}

func (d base) substituteMarkers(query string) string {
	return query
}

func (d base) quote(s string) string {
	buf := new(bytes.Buffer)
	buf.WriteByte('`')
	segs := strings.Split(s, ".")
	buf.WriteString(segs[0])
	for i := 1; i < len(segs); i++ {
		buf.WriteString("`.`")
		buf.WriteString(segs[i])
	}
	buf.WriteByte('`')
	return buf.String()
}

func (d base) createTableSql(model *model, ifNotExists bool) string {
	a := []string{"CREATE TABLE "}
	if ifNotExists {
		a = append(a, "IF NOT EXISTS ")
	}
	a = append(a, d.dialect.quote(model.table), " ( ")
	for i, field := range model.fields {
		b := []string{
			d.dialect.quote(field.name),
		}
		if field.pk {
			b = append(b, d.primaryKeyColumn(field))
		} else {
			b = append(b, d.dialect.sqlType(field))
			if field.notnull {
				b = append(b, "NOT NULL")
			}
			if x := field.dfault; x != "" {
				b = append(b, "DEFAULT "+x)
			}
		}
		a = append(a, strings.Join(b, " "))
		if i < len(model.fields)-1 {
			a = append(a, ", ")
		}
	}
	for _, v := range model.refs {
		if v.foreignKey {
			a = append(a, ", FOREIGN KEY (", d.dialect.quote(v.refKey), ") REFERENCES ")
			a = append(a, d.dialect.quote(v.model.table), " (", d.dialect.quote(v.model.pk.name), ") ON DELETE CASCADE")
		}
	}
	a = append(a, " )")
	return strings.Join(a, "")
}

// primaryKeyColumn renders integer keys as auto increment columns. Other keys
// keep the column type the field resolved to.
func (d base) primaryKeyColumn(field *modelField) string {
	switch field.typ.SqlType().Code() {
	case CodeInteger, CodeBigInt:
		return d.dialect.primaryKeySql()
	case CodeVarchar, CodeNVarchar, CodeVarBinary:
		if field.size <= 0 {
			sized := *field
			sized.size = keySize(field.size)
			field = &sized
		}
	}
	return d.dialect.sqlType(field) + " PRIMARY KEY"
}

func (d base) dropTableSql(table string) string {
	a := []string{"DROP TABLE IF EXISTS"}
	a = append(a, d.dialect.quote(table))
	return strings.Join(a, " ")
}

func (d base) addColumnSql(table string, field *modelField) string {
	return fmt.Sprintf(
		"ALTER TABLE %v ADD COLUMN %v %v",
		d.dialect.quote(table),
		d.dialect.quote(field.name),
		d.dialect.sqlType(field),
	)
}

func (d base) createIndexSql(name, table string, unique bool, columns ...string) string {
	a := []string{"CREATE"}
	if unique {
		a = append(a, "UNIQUE")
	}
	quotedColumns := make([]string, 0, len(columns))
	for _, c := range columns {
		quotedColumns = append(quotedColumns, d.dialect.quote(c))
	}
	a = append(a, fmt.Sprintf(
		"INDEX %v ON %v (%v)",
		d.dialect.quote(name),
		d.dialect.quote(table),
		strings.Join(quotedColumns, ", "),
	))
	return strings.Join(a, " ")
}

func (d base) columnsInTable(mg *Migration, table interface{}) (map[string]bool, error) {
	tn := tableName(table)
	query := "SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?"
	return queryColumnNames(mg, d.dialect.substituteMarkers(query), mg.dbName, tn)
}

func (d base) catchMigrationError(err error) bool {
	return false
}

func queryColumnNames(mg *Migration, query string, args ...interface{}) (map[string]bool, error) {
	rows, err := mg.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	columns := make(map[string]bool)
	for rows.Next() {
		column := ""
		if err := rows.Scan(&column); err != nil {
			return nil, err
		}
		columns[column] = true
	}
	return columns, rows.Err()
}

// numberedMarkers rewrites each "?" into prefix followed by its 1-based position.
func numberedMarkers(query, prefix string) string {
	position := 1
	buf := new(bytes.Buffer)
	for _, v := range query {
		if v == '?' {
			buf.WriteString(prefix)
			buf.WriteString(strconv.Itoa(position))
			position++
		} else {
			buf.WriteRune(v)
		}
	}
	return buf.String()
}

// sizedOr renders format with size when 0 < size < limit, otherwise fallback.
func sizedOr(format string, size, limit int, fallback string) string {
	if size > 0 && size < limit {
		return fmt.Sprintf(format, size)
	}
	return fallback
}

func charSize(size int) int {
	if size <= 0 {
		return 1
	}
	return size
}

func keySize(size int) int {
	if size <= 0 {
		return 255
	}
	return size
}

package qbs

import (
	"fmt"
	"strconv"
	"strings"

	go_ora "github.com/sijms/go-ora/v2"
)

// NationalizationSupport describes how a database stores wide-character data.
type NationalizationSupport int

const (
	// Implicit: ordinary character columns already hold Unicode.
	Implicit NationalizationSupport = iota
	// Explicit: wide characters need the N-prefixed column types.
	Explicit
	// Unsupported: there are no wide types, nationalization requests are ignored.
	Unsupported
)

func (n NationalizationSupport) String() string {
	switch n {
	case Implicit:
		return "implicit"
	case Explicit:
		return "explicit"
	case Unsupported:
		return "unsupported"
	}
	return fmt.Sprintf("NationalizationSupport(%d)", int(n))
}

type Dialect interface {
	// Name is the dialect key accepted by DialectByName.
	Name() string

	NationalizationSupport() NationalizationSupport

	// Substitute a resolved descriptor with the one this database binds.
	remapSqlType(d *SqlTypeDescriptor) *SqlTypeDescriptor

	//Substitute "?" marker if database use other symbol as marker
	substituteMarkers(query string) string

	// Quote will quote identifiers in a SQL statement.
	quote(s string) string

	sqlType(field *modelField) string

	createTableSql(model *model, ifNotExists bool) string

	dropTableSql(table string) string

	addColumnSql(table string, field *modelField) string

	createIndexSql(name, table string, unique bool, columns ...string) string

	indexExists(mg *Migration, tableName string, indexName string) (bool, error)

	columnsInTable(mg *Migration, tableName interface{}) (map[string]bool, error)

	// Column definition of an auto increment integer key.
	primaryKeySql() string

	catchMigrationError(err error) bool
}

// DialectByName returns a new dialect for one of the supported database names.
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "mysql":
		return NewMysql(), nil
	case "postgres", "postgresql":
		return NewPostgres(), nil
	case "sqlite3", "sqlite":
		return NewSqlite3(), nil
	case "oracle":
		return NewOracle(), nil
	case "sqlserver", "mssql":
		return NewSqlServer(), nil
	case "sybase":
		return NewSybase(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
}

type DataSourceName struct {
	DbName     string
	Username   string
	Password   string
	UnixSocket bool
	Host       string
	Port       string
	Variables  []string
	Dialect    Dialect
}

func (dsn *DataSourceName) String() string {
	if dsn.Dialect == nil {
		panic("DbDialect is not set")
	}
	switch dsn.Dialect.(type) {
	case *mysql:
		dsnformat := "%v@%v/%v%v"
		login := dsn.Username
		if dsn.Password != "" {
			login += ":" + dsn.Password
		}
		var address string
		if dsn.Host != "" {
			address = dsn.Host
			if dsn.Port != "" {
				address += ":" + dsn.Port
			}
			protocol := "tcp"
			if dsn.UnixSocket {
				protocol = "unix"
			}
			address = protocol + "(" + address + ")"
		}
		var variables string
		if dsn.Variables != nil {
			variables = "?" + strings.Join(dsn.Variables, "&")
		}
		return fmt.Sprintf(dsnformat, login, address, dsn.DbName, variables)
	case *sqlite3:
		return dsn.DbName
	case *postgres:
		pairs := []string{"user=" + dsn.Username}
		if dsn.Password != "" {
			pairs = append(pairs, "password="+dsn.Password)
		}
		if dsn.DbName != "" {
			pairs = append(pairs, "dbname="+dsn.DbName)
		}
		pairs = append(pairs, dsn.Variables...)
		if dsn.Host != "" {
			host := dsn.Host
			if dsn.UnixSocket {
				host = "/" + host
			}
			pairs = append(pairs, "host="+host)
		}
		if dsn.Port != "" {
			pairs = append(pairs, "port="+dsn.Port)
		}
		return strings.Join(pairs, " ")
	case *oracle:
		port, err := oraclePort(dsn.Port)
		if err != nil {
			panic(err)
		}
		host := dsn.Host
		if host == "" {
			host = "localhost"
		}
		var options map[string]string
		for _, v := range dsn.Variables {
			if options == nil {
				options = make(map[string]string)
			}
			kv := strings.SplitN(v, "=", 2)
			if len(kv) == 2 {
				options[kv[0]] = kv[1]
			} else {
				options[kv[0]] = ""
			}
		}
		// DbName is the service name.
		return go_ora.BuildUrl(host, port, dsn.DbName, dsn.Username, dsn.Password, options)
	}
	panic("Unknown DbDialect.")
}

// DriverName is the database/sql driver the dialect connects through.
func (dsn *DataSourceName) DriverName() (string, error) {
	switch dsn.Dialect.(type) {
	case *mysql:
		return "mysql", nil
	case *sqlite3:
		return "sqlite3", nil
	case *postgres:
		return "postgres", nil
	case *oracle:
		if _, err := oraclePort(dsn.Port); err != nil {
			return "", err
		}
		return "oracle", nil
	}
	return "", fmt.Errorf("%w: %T", ErrDriverUnsupported, dsn.Dialect)
}

func oraclePort(port string) (int, error) {
	if port == "" {
		return 1521, nil
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return 0, fmt.Errorf("qbs: invalid oracle port %q: %w", port, err)
	}
	return p, nil
}

func (dsn *DataSourceName) Append(key, value string) *DataSourceName {
	dsn.Variables = append(dsn.Variables, key+"="+value)
	return dsn
}

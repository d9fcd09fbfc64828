package qbs

import (
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type Migration struct {
	db       *sql.DB
	dbName   string
	dialect  Dialect
	registry *TypeRegistry
	logger   *zap.Logger
}

// NewMigration creates a Migration on an open database.
func NewMigration(db *sql.DB, dbName string, dialect Dialect) *Migration {
	return &Migration{
		db:       db,
		dbName:   dbName,
		dialect:  dialect,
		registry: NewTypeRegistry(),
		logger:   zap.NewNop(),
	}
}

// Get a Migration instance should get closed.
func OpenMigration(dsn *DataSourceName) (*Migration, error) {
	driverName, err := dsn.DriverName()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, dsn.String())
	if err != nil {
		return nil, err
	}
	return NewMigration(db, dsn.DbName, dsn.Dialect), nil
}

// A safe and easy way to work with Migration instance without the need to open and close it.
func WithMigration(dsn *DataSourceName, task func(mg *Migration) error) error {
	mg, err := OpenMigration(dsn)
	if err != nil {
		return err
	}
	defer mg.Close()
	return task(mg)
}

func (mg *Migration) SetLogger(logger *zap.Logger) *Migration {
	mg.logger = logger
	return mg
}

// SetRegistry replaces the registry tables are bound with, for custom types.
func (mg *Migration) SetRegistry(registry *TypeRegistry) *Migration {
	mg.registry = registry
	return mg
}

func (mg *Migration) bind(structPtr interface{}) (*model, error) {
	return structPtrToModel(structPtr, true, newResolver(mg.dialect, mg.registry, mg.logger))
}

func (mg *Migration) exec(query string) error {
	mg.logger.Debug("executing ddl", zap.String("sql", query))
	_, err := mg.db.Exec(query)
	if err != nil && !mg.dialect.catchMigrationError(err) {
		return err
	}
	return nil
}

// CreateTableIfNotExists creates a new table and its indexes based on the table struct type.
// Columns missing from an existing table are added.
func (mg *Migration) CreateTableIfNotExists(structPtr interface{}) error {
	model, err := mg.bind(structPtr)
	if err != nil {
		return err
	}
	if err := mg.exec(mg.dialect.createTableSql(model, true)); err != nil {
		return err
	}
	columns, err := mg.dialect.columnsInTable(mg, model.table)
	if err != nil {
		return err
	}
	if len(model.fields) > len(columns) {
		oldFields := []*modelField{}
		newFields := []*modelField{}
		for _, v := range model.fields {
			if _, ok := columns[v.name]; ok {
				oldFields = append(oldFields, v)
			} else {
				newFields = append(newFields, v)
			}
		}
		if len(oldFields) != len(columns) {
			return fmt.Errorf("%w: table %s", ErrColumnRenamed, model.table)
		}
		for _, v := range newFields {
			if err := mg.exec(mg.dialect.addColumnSql(model.table, v)); err != nil {
				return err
			}
		}
	}
	for _, i := range model.indexes {
		if err := mg.CreateIndexIfNotExists(model.table, i.name, i.unique, i.columns...); err != nil {
			return err
		}
	}
	return nil
}

func (mg *Migration) dropTableIfExists(structPtr interface{}) error {
	return mg.exec(mg.dialect.dropTableSql(tableName(structPtr)))
}

//Can only drop table on database which name has "test" suffix.
//Used for testing
func (mg *Migration) DropTable(strutPtr interface{}) error {
	if !strings.HasSuffix(mg.dbName, "test") {
		return ErrNotTestDatabase
	}
	return mg.dropTableIfExists(strutPtr)
}

// CreateIndex creates the specified index on table.
// Some databases like mysql do not support this feature directly,
// So dialect may need to query the database schema table to find out if an index exists.
// Normally you don't need to do it explicitly, it will be created automatically in CreateTableIfNotExists method.
func (mg *Migration) CreateIndexIfNotExists(table interface{}, name string, unique bool, columns ...string) error {
	tn := tableName(table)
	name = tn + "_" + name
	exists, err := mg.dialect.indexExists(mg, tn, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return mg.exec(mg.dialect.createIndexSql(name, tn, unique, columns...))
}

func (mg *Migration) Close() error {
	if mg.db != nil {
		return mg.db.Close()
	}
	return nil
}

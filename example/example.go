// Package example holds sample entities mapped with qbs, used by the qbsddl tool.
package example

import (
	"time"

	"github.com/klockla/qbs"
)

type User struct {
	Id   int64
	Name string `qbs:"size:50,index,nationalized"`
}

type Article struct {
	Id       int64
	AuthorId int64 `qbs:"fk:Author"`
	Author   *User
	Title    string    `qbs:"size:200,nationalized,notnull"`
	Slug     string    `qbs:"size:200,unique"`
	Body     string    `qbs:"lob,nationalized"`
	Summary  string    `qbs:"type:ntext"`
	Grade    qbs.Char  `qbs:"nationalized"`
	Created  time.Time `qbs:"created"`
}

// NationalizedEntity requests wide-character storage in every supported way.
type NationalizedEntity struct {
	Id                   int64
	NvarcharAtt          string     `qbs:"nationalized"`
	MaterializedNclobAtt string     `qbs:"lob,nationalized"`
	NclobAtt             qbs.NClob  `qbs:"lob,nationalized"`
	NcharacterAtt        qbs.Char   `qbs:"nationalized"`
	NcharArrAtt          []qbs.Char `qbs:"nationalized"`
	NlongvarcharcharAtt  string     `qbs:"type:ntext"`
}

// Entities returns fresh pointers to every sample entity, referenced tables first.
func Entities() []interface{} {
	return []interface{}{
		new(User),
		new(Article),
		new(NationalizedEntity),
	}
}

// Metadata binds the sample entities against dialect.
func Metadata(dialect qbs.Dialect) (*qbs.Metadata, error) {
	return qbs.NewMetadataSources(dialect, nil).AddStruct(Entities()...).BuildMetadata()
}

// CreateTables creates every sample table through mg.
func CreateTables(mg *qbs.Migration) error {
	for _, e := range Entities() {
		if err := mg.CreateTableIfNotExists(e); err != nil {
			return err
		}
	}
	return nil
}

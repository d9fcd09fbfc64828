package qbs

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

type TableNamer interface {
	TableName() string
}

// EntityNamer overrides the entity name a struct is bound under.
type EntityNamer interface {
	EntityName() string
}

//convert struct field name to column name.
var FieldNameToColumnName func(string) string = toSnake

//convert struct name to table name.
var StructNameToTableName func(string) string = toSnake

//onvert column name to struct field name.
var ColumnNameToFieldName func(string) string = snakeToUpperCamel

//convert table name to struct name.
var TableNameToStructName func(string) string = snakeToUpperCamel

// Index represents a table index and is returned via the Indexed interface.
type index struct {
	name    string
	columns []string
	unique  bool
}

// Indexes represents an array of indexes.
type Indexes []*index

type Indexed interface {
	Indexes(indexes *Indexes)
}

// Add adds an index
func (ix *Indexes) Add(columns ...string) {
	name := strings.Join(columns, "_")
	*ix = append(*ix, &index{name: name, columns: columns, unique: false})
}

// AddUnique adds an unique index
func (ix *Indexes) AddUnique(columns ...string) {
	name := strings.Join(columns, "_")
	*ix = append(*ix, &index{name: name, columns: columns, unique: true})
}

// ModelField represents a schema field of a parsed model.
type modelField struct {
	name         string // Column name
	camelName    string
	goType       reflect.Type
	pk           bool
	notnull      bool
	index        bool
	unique       bool
	updated      bool
	created      bool
	nationalized bool
	lob          bool
	size         int
	dfault       string
	fk           string
	join         string
	colType      string
	typeName     string
	typ          Type
}

// Model represents a parsed schema interface{}.
type model struct {
	pk      *modelField
	table   string
	fields  []*modelField
	refs    map[string]*reference
	indexes Indexes
}

type reference struct {
	refKey     string
	model      *model
	foreignKey bool
}

func (model *model) field(camelName string) *modelField {
	for _, v := range model.fields {
		if v.camelName == camelName {
			return v
		}
	}
	return nil
}

// structPtrToModel parses the struct f points to and resolves the type of
// every column through res. Field errors are collected rather than stopping
// at the first one.
func structPtrToModel(f interface{}, root bool, res *resolver) (*model, error) {
	ptrType := reflect.TypeOf(f)
	if ptrType == nil || ptrType.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("%w: got %T", ErrNotStructPointer, f)
	}
	structType := ptrType.Elem()
	if structType.Kind() == reflect.Ptr && structType.Elem().Kind() == reflect.Struct {
		return nil, fmt.Errorf("%w: did you pass a pointer to a pointer to a struct?", ErrNotStructPointer)
	}
	if structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %T", ErrNotStructPointer, f)
	}
	model := &model{
		pk:      nil,
		table:   tableName(f),
		fields:  []*modelField{},
		indexes: Indexes{},
	}
	var errs *multierror.Error
	for i := 0; i < structType.NumField(); i++ {
		structField := structType.Field(i)
		if structField.PkgPath != "" {
			continue
		}
		sqlTag := structField.Tag.Get("qbs")
		if sqlTag == "-" {
			continue
		}
		switch structField.Type.Kind() {
		case reflect.Ptr:
			switch structField.Type.Elem().Kind() {
			case reflect.Bool, reflect.String, reflect.Int64, reflect.Float64:
			default:
				continue
			}
		case reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
			continue
		case reflect.Slice:
			if goTypeDescriptorOf(structField.Type) == nil {
				continue
			}
		}

		fd := new(modelField)
		if err := parseTags(fd, sqlTag); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s.%s: %w", structType.Name(), structField.Name, err))
			continue
		}
		fd.camelName = structField.Name
		fd.name = FieldNameToColumnName(structField.Name)
		fd.goType = structField.Type
		typ, err := res.resolve(fd)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s.%s: %w", structType.Name(), structField.Name, err))
			continue
		}
		fd.typ = typ
		if fd.pk {
			model.pk = fd
		}

		model.fields = append(model.fields, fd)
		// fill in references map only in root model.
		if root {
			if err := model.bindReference(structType, fd, res); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s.%s: %w", structType.Name(), structField.Name, err))
			}
			if fd.unique {
				model.indexes.AddUnique(fd.name)
			} else if fd.index {
				model.indexes.Add(fd.name)
			}
		}
	}
	if model.pk == nil {
		if id := model.field("Id"); id != nil && id.typ == LongType {
			id.pk = true
			model.pk = id
		}
	}
	if root {
		if indexed, ok := f.(Indexed); ok {
			indexed.Indexes(&model.indexes)
		}
	}
	return model, errs.ErrorOrNil()
}

// bindReference records the struct referenced by fd through an fk or join
// tag, or implicitly by a FooId column next to a Foo pointer field.
func (model *model) bindReference(structType reflect.Type, fd *modelField, res *resolver) error {
	var fk, explicitJoin, implicitJoin bool
	var refName string
	if fd.fk != "" {
		refName = fd.fk
		fk = true
	} else if fd.join != "" {
		refName = fd.join
		explicitJoin = true
	}
	if refName == "" && len(fd.camelName) > 3 && strings.HasSuffix(fd.camelName, "Id") && fd.typ == LongType {
		refName = strings.TrimSuffix(fd.camelName, "Id")
		implicitJoin = true
	}
	if !fk && !explicitJoin && !implicitJoin {
		return nil
	}
	field, ok := structType.FieldByName(refName)
	if !ok {
		if implicitJoin {
			return nil
		}
		return fmt.Errorf("%w: can not find referenced field %s", ErrReference, refName)
	}
	if field.Type.Kind() != reflect.Ptr || field.Type.Elem().Kind() != reflect.Struct {
		if implicitJoin {
			return nil
		}
		return fmt.Errorf("%w: referenced field %s is not a struct pointer", ErrReference, refName)
	}
	refModel, err := structPtrToModel(reflect.New(field.Type.Elem()).Interface(), false, res)
	if err != nil {
		return err
	}
	if refModel.pk == nil {
		return fmt.Errorf("%w: referenced struct %s has no primary key", ErrReference, field.Type.Elem().Name())
	}
	model.indexes.Add(fd.name)
	if model.refs == nil {
		model.refs = make(map[string]*reference)
	}
	model.refs[refName] = &reference{refKey: fd.name, model: refModel, foreignKey: fk}
	return nil
}

func tableName(talbe interface{}) string {
	if t, ok := talbe.(string); ok {
		return t
	}
	if tn, ok := talbe.(TableNamer); ok {
		return tn.TableName()
	}
	return StructNameToTableName(elemType(reflect.TypeOf(talbe)).Name())
}

func entityName(f interface{}) string {
	if en, ok := f.(EntityNamer); ok {
		return en.EntityName()
	}
	return elemType(reflect.TypeOf(f)).Name()
}

func elemType(t reflect.Type) reflect.Type {
	for {
		switch t.Kind() {
		case reflect.Array, reflect.Chan, reflect.Map, reflect.Ptr, reflect.Slice:
			t = t.Elem()
		default:
			return t
		}
	}
}

func parseTags(fd *modelField, s string) error {
	if s == "" {
		return nil
	}
	c := strings.Split(s, ",")
	for _, v := range c {
		c2 := strings.SplitN(v, ":", 2)
		if len(c2) == 2 {
			switch c2[0] {
			case "fk":
				fd.fk = c2[1]
			case "size":
				size, err := strconv.Atoi(c2[1])
				if err != nil {
					return fmt.Errorf("%w: size %q", ErrTagSyntax, c2[1])
				}
				fd.size = size
			case "default":
				fd.dfault = c2[1]
			case "join":
				fd.join = c2[1]
			case "coltype":
				fd.colType = c2[1]
			case "type":
				fd.typeName = c2[1]
			default:
				return fmt.Errorf("%w: %s", ErrTagSyntax, c2[0])
			}
		} else {
			switch c2[0] {
			case "created":
				fd.created = true
			case "pk":
				fd.pk = true
			case "updated":
				fd.updated = true
			case "index":
				fd.index = true
			case "unique":
				fd.unique = true
			case "notnull":
				fd.notnull = true
			case "nationalized":
				fd.nationalized = true
			case "lob":
				fd.lob = true
			default:
				return fmt.Errorf("%w: %s", ErrTagSyntax, c2[0])
			}
		}
	}
	return nil
}

func toSnake(s string) string {
	buf := new(bytes.Buffer)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				buf.WriteByte('_')
			}
			buf.WriteByte(c + 32)
		} else {
			buf.WriteByte(c)
		}
	}
	return buf.String()
}

func snakeToUpperCamel(s string) string {
	buf := new(bytes.Buffer)
	first := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' && first {
			buf.WriteByte(c - 32)
			first = false
		} else if c == '_' {
			first = true
			continue
		} else {
			buf.WriteByte(c)
		}
	}
	return buf.String()
}

var ValidTags = map[string]bool{
	"pk":           true, //primary key
	"fk":           true, //foreign key
	"size":         true,
	"default":      true,
	"join":         true,
	"-":            true, //ignore
	"index":        true,
	"unique":       true,
	"notnull":      true,
	"updated":      true,
	"created":      true,
	"coltype":      true,
	"type":         true, //registered type name
	"nationalized": true,
	"lob":          true,
}

package qbs

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"reflect"
	"time"
	"unicode/utf8"
)

// Char is a single character column value.
type Char rune

// Clob holds character large object data.
type Clob string

// NClob holds nationalized character large object data.
type NClob string

func (c Char) Value() (driver.Value, error) {
	return string(rune(c)), nil
}

func (c *Char) Scan(src interface{}) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	if s == "" {
		*c = 0
		return nil
	}
	if !utf8.ValidString(s) || utf8.RuneCountInString(s) > 1 {
		return fmt.Errorf("qbs: cannot scan %q into a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	*c = Char(r)
	return nil
}

func (c Clob) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *Clob) Scan(src interface{}) error {
	s, err := scanString(src)
	*c = Clob(s)
	return err
}

func (c NClob) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *NClob) Scan(src interface{}) error {
	s, err := scanString(src)
	*c = NClob(s)
	return err
}

func scanString(src interface{}) (string, error) {
	switch v := src.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	return "", fmt.Errorf("qbs: cannot scan %T into character value", src)
}

// GoTypeDescriptor identifies the Go value domain a field belongs to.
type GoTypeDescriptor struct {
	name      string
	character bool
}

func (d *GoTypeDescriptor) Name() string {
	return d.name
}

// Character reports whether values of this domain are character data.
func (d *GoTypeDescriptor) Character() bool {
	return d.character
}

func (d *GoTypeDescriptor) String() string {
	return d.name
}

var (
	GoString    = &GoTypeDescriptor{"string", true}
	GoChar      = &GoTypeDescriptor{"char", true}
	GoCharArray = &GoTypeDescriptor{"char[]", true}
	GoClob      = &GoTypeDescriptor{"clob", true}
	GoNClob     = &GoTypeDescriptor{"nclob", true}
	GoBool      = &GoTypeDescriptor{"bool", false}
	GoInt       = &GoTypeDescriptor{"int", false}
	GoInt64     = &GoTypeDescriptor{"int64", false}
	GoFloat     = &GoTypeDescriptor{"float", false}
	GoTime      = &GoTypeDescriptor{"time", false}
	GoBytes     = &GoTypeDescriptor{"bytes", false}
)

var (
	charType    = reflect.TypeOf(Char(0))
	clobType    = reflect.TypeOf(Clob(""))
	nclobType   = reflect.TypeOf(NClob(""))
	timeType    = reflect.TypeOf(time.Time{})
	nullString  = reflect.TypeOf(sql.NullString{})
	nullBool    = reflect.TypeOf(sql.NullBool{})
	nullInt64   = reflect.TypeOf(sql.NullInt64{})
	nullFloat64 = reflect.TypeOf(sql.NullFloat64{})
	nullTime    = reflect.TypeOf(sql.NullTime{})
)

// goTypeDescriptorOf maps a struct field type to its descriptor, nil if unsupported.
func goTypeDescriptorOf(t reflect.Type) *GoTypeDescriptor {
	switch t {
	case charType:
		return GoChar
	case clobType:
		return GoClob
	case nclobType:
		return GoNClob
	case timeType, nullTime:
		return GoTime
	case nullString:
		return GoString
	case nullBool:
		return GoBool
	case nullInt64:
		return GoInt64
	case nullFloat64:
		return GoFloat
	}
	switch t.Kind() {
	case reflect.Ptr:
		switch t.Elem().Kind() {
		case reflect.Bool, reflect.String, reflect.Int64, reflect.Float64:
			return goTypeDescriptorOf(t.Elem())
		}
	case reflect.Bool:
		return GoBool
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return GoInt
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return GoInt64
	case reflect.Float32, reflect.Float64:
		return GoFloat
	case reflect.String:
		return GoString
	case reflect.Slice:
		switch t.Elem() {
		case charType:
			return GoCharArray
		}
		if t.Elem().Kind() == reflect.Uint8 {
			return GoBytes
		}
	}
	return nil
}

// SqlTypeCode is the column storage class of a SqlTypeDescriptor.
type SqlTypeCode int

const (
	CodeBoolean SqlTypeCode = iota + 1
	CodeInteger
	CodeBigInt
	CodeDouble
	CodeTimestamp
	CodeVarBinary
	CodeBlob
	CodeChar
	CodeNChar
	CodeVarchar
	CodeNVarchar
	CodeLongVarchar
	CodeLongNVarchar
	CodeClob
	CodeNClob
)

// SqlTypeDescriptor identifies column storage. Two descriptors may share a code
// and differ in how values are bound.
type SqlTypeDescriptor struct {
	code SqlTypeCode
	name string
}

func (d *SqlTypeDescriptor) Code() SqlTypeCode {
	return d.code
}

func (d *SqlTypeDescriptor) Name() string {
	return d.name
}

func (d *SqlTypeDescriptor) String() string {
	return d.name
}

func (d *SqlTypeDescriptor) Nationalized() bool {
	switch d.code {
	case CodeNChar, CodeNVarchar, CodeLongNVarchar, CodeNClob:
		return true
	}
	return false
}

func (d *SqlTypeDescriptor) Lob() bool {
	switch d.code {
	case CodeBlob, CodeClob, CodeNClob:
		return true
	}
	return false
}

// Nationalize returns the wide-character counterpart of d, or d itself when
// it is already nationalized or not character storage.
func (d *SqlTypeDescriptor) Nationalize() *SqlTypeDescriptor {
	switch d.code {
	case CodeChar:
		return SqlNChar
	case CodeVarchar:
		return SqlNVarchar
	case CodeLongVarchar:
		return SqlLongNVarchar
	case CodeClob:
		return SqlNClob
	}
	return d
}

var (
	SqlBoolean      = &SqlTypeDescriptor{CodeBoolean, "boolean"}
	SqlInteger      = &SqlTypeDescriptor{CodeInteger, "integer"}
	SqlBigInt       = &SqlTypeDescriptor{CodeBigInt, "bigint"}
	SqlDouble       = &SqlTypeDescriptor{CodeDouble, "double"}
	SqlTimestamp    = &SqlTypeDescriptor{CodeTimestamp, "timestamp"}
	SqlVarBinary    = &SqlTypeDescriptor{CodeVarBinary, "varbinary"}
	SqlBlob         = &SqlTypeDescriptor{CodeBlob, "blob"}
	SqlChar         = &SqlTypeDescriptor{CodeChar, "char"}
	SqlNChar        = &SqlTypeDescriptor{CodeNChar, "nchar"}
	SqlVarchar      = &SqlTypeDescriptor{CodeVarchar, "varchar"}
	SqlNVarchar     = &SqlTypeDescriptor{CodeNVarchar, "nvarchar"}
	SqlLongVarchar  = &SqlTypeDescriptor{CodeLongVarchar, "longvarchar"}
	SqlLongNVarchar = &SqlTypeDescriptor{CodeLongNVarchar, "longnvarchar"}
	SqlClob         = &SqlTypeDescriptor{CodeClob, "clob"}
	SqlNClob        = &SqlTypeDescriptor{CodeNClob, "nclob"}

	// SqlClobBinding is a clob always bound through the driver's clob path
	// rather than as a character stream.
	SqlClobBinding = &SqlTypeDescriptor{CodeClob, "clob-binding"}
)

// defaultSqlType is the storage a Go domain gets without lob or
// nationalization requests.
func defaultSqlType(g *GoTypeDescriptor) *SqlTypeDescriptor {
	switch g {
	case GoString, GoCharArray:
		return SqlVarchar
	case GoChar:
		return SqlChar
	case GoClob:
		return SqlClob
	case GoNClob:
		return SqlNClob
	case GoBool:
		return SqlBoolean
	case GoInt:
		return SqlInteger
	case GoInt64:
		return SqlBigInt
	case GoFloat:
		return SqlDouble
	case GoTime:
		return SqlTimestamp
	case GoBytes:
		return SqlVarBinary
	}
	return nil
}

func lobSqlType(g *GoTypeDescriptor) *SqlTypeDescriptor {
	switch g {
	case GoString, GoCharArray, GoClob:
		return SqlClob
	case GoNClob:
		return SqlNClob
	case GoBytes:
		return SqlBlob
	}
	return nil
}

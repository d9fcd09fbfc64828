package qbs

// Type pairs the Go value domain of a property with its column storage.
type Type interface {
	Name() string
	GoType() *GoTypeDescriptor
	SqlType() *SqlTypeDescriptor
}

// BasicType is the standard Type implementation. Resolved types are shared,
// so identity comparison between two *BasicType values is meaningful.
type BasicType struct {
	name    string
	goType  *GoTypeDescriptor
	sqlType *SqlTypeDescriptor
}

func NewBasicType(name string, goType *GoTypeDescriptor, sqlType *SqlTypeDescriptor) *BasicType {
	return &BasicType{name: name, goType: goType, sqlType: sqlType}
}

func (t *BasicType) Name() string {
	return t.name
}

func (t *BasicType) GoType() *GoTypeDescriptor {
	return t.goType
}

func (t *BasicType) SqlType() *SqlTypeDescriptor {
	return t.sqlType
}

func (t *BasicType) String() string {
	return t.name
}

var (
	StringType            = NewBasicType("string", GoString, SqlVarchar)
	StringNVarcharType    = NewBasicType("nstring", GoString, SqlNVarchar)
	TextType              = NewBasicType("text", GoString, SqlLongVarchar)
	NTextType             = NewBasicType("ntext", GoString, SqlLongNVarchar)
	MaterializedClobType  = NewBasicType("materialized_clob", GoString, SqlClob)
	MaterializedNClobType = NewBasicType("materialized_nclob", GoString, SqlNClob)
	ClobType              = NewBasicType("clob", GoClob, SqlClob)
	NClobType             = NewBasicType("nclob", GoNClob, SqlNClob)
	CharacterType         = NewBasicType("character", GoChar, SqlChar)
	CharacterNCharType    = NewBasicType("ncharacter", GoChar, SqlNChar)
	CharacterArrayType    = NewBasicType("characters", GoCharArray, SqlVarchar)
	BooleanType           = NewBasicType("boolean", GoBool, SqlBoolean)
	IntegerType           = NewBasicType("integer", GoInt, SqlInteger)
	LongType              = NewBasicType("long", GoInt64, SqlBigInt)
	DoubleType            = NewBasicType("double", GoFloat, SqlDouble)
	TimestampType         = NewBasicType("timestamp", GoTime, SqlTimestamp)
	BinaryType            = NewBasicType("binary", GoBytes, SqlVarBinary)
	MaterializedBlobType  = NewBasicType("materialized_blob", GoBytes, SqlBlob)
)

var standardTypes = []Type{
	StringType,
	StringNVarcharType,
	TextType,
	NTextType,
	MaterializedClobType,
	MaterializedNClobType,
	ClobType,
	NClobType,
	CharacterType,
	CharacterNCharType,
	CharacterArrayType,
	BooleanType,
	IntegerType,
	LongType,
	DoubleType,
	TimestampType,
	BinaryType,
	MaterializedBlobType,
}

// column types accepted by the coltype tag.
const QBS_COLTYPE_INT = "int"
const QBS_COLTYPE_BOOL = "boolean"
const QBS_COLTYPE_BIGINT = "bigint"
const QBS_COLTYPE_DOUBLE = "double"
const QBS_COLTYPE_TIME = "timestamp"
const QBS_COLTYPE_TEXT = "text"

var colTypes = map[string]Type{
	QBS_COLTYPE_INT:    IntegerType,
	QBS_COLTYPE_BOOL:   BooleanType,
	QBS_COLTYPE_BIGINT: LongType,
	QBS_COLTYPE_DOUBLE: DoubleType,
	QBS_COLTYPE_TIME:   TimestampType,
	QBS_COLTYPE_TEXT:   StringType,
}

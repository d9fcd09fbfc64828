package qbs

import "errors"

var (
	ErrTagSyntax         = errors.New("qbs: tag syntax error")
	ErrUnsupportedField  = errors.New("qbs: unsupported field type")
	ErrUnknownType       = errors.New("qbs: unknown type")
	ErrDuplicateType     = errors.New("qbs: type already registered")
	ErrNotCharacterData  = errors.New("qbs: nationalized requires character data")
	ErrLobNotApplicable  = errors.New("qbs: lob not applicable to field type")
	ErrDuplicateEntity   = errors.New("qbs: entity already bound")
	ErrReference         = errors.New("qbs: invalid reference")
	ErrNotStructPointer  = errors.New("qbs: expected pointer to struct")
	ErrUnknownDialect    = errors.New("qbs: unknown dialect")
	ErrColumnRenamed     = errors.New("qbs: column name has changed, rename column migration is not supported")
	ErrNotTestDatabase   = errors.New("qbs: drop table can only be executed on database which name has 'test' suffix")
	ErrDriverUnsupported = errors.New("qbs: dialect has no registered driver")
)

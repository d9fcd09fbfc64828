package qbs

import (
	"fmt"

	"go.uber.org/zap"
)

// resolver picks the Type of a column for one dialect.
type resolver struct {
	dialect  Dialect
	registry *TypeRegistry
	logger   *zap.Logger
}

func newResolver(dialect Dialect, registry *TypeRegistry, logger *zap.Logger) *resolver {
	if registry == nil {
		registry = NewTypeRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &resolver{dialect: dialect, registry: registry, logger: logger}
}

func (r *resolver) resolve(fd *modelField) (Type, error) {
	typ, err := r.resolveType(fd)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("resolved column type",
		zap.String("field", fd.camelName),
		zap.String("column", fd.name),
		zap.String("type", typ.Name()),
		zap.Stringer("sqlType", typ.SqlType()),
		zap.Stringer("nationalization", r.dialect.NationalizationSupport()),
	)
	return typ, nil
}

func (r *resolver) resolveType(fd *modelField) (Type, error) {
	if fd.typeName != "" {
		typ, ok := r.registry.ByName(fd.typeName)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, fd.typeName)
		}
		return typ, nil
	}
	if fd.colType != "" {
		typ, ok := colTypes[fd.colType]
		if !ok {
			return nil, fmt.Errorf("%w: qbs doesn't support column type %q", ErrUnknownType, fd.colType)
		}
		return typ, nil
	}

	goType := goTypeDescriptorOf(fd.goType)
	if goType == nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedField, fd.goType)
	}
	sqlType := defaultSqlType(goType)
	if fd.lob {
		sqlType = lobSqlType(goType)
		if sqlType == nil {
			return nil, fmt.Errorf("%w: %v", ErrLobNotApplicable, fd.goType)
		}
	}
	if fd.nationalized {
		if !goType.Character() {
			return nil, fmt.Errorf("%w: %v", ErrNotCharacterData, fd.goType)
		}
		if r.dialect.NationalizationSupport() == Explicit {
			sqlType = sqlType.Nationalize()
		}
	}
	sqlType = r.dialect.remapSqlType(sqlType)
	return r.registry.Resolve(goType, sqlType), nil
}

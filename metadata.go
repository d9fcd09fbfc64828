package qbs

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// MetadataSources collects the structs to bind for one dialect.
//
//	ms := qbs.NewMetadataSources(qbs.NewOracle(), nil)
//	ms.AddStruct(new(Article))
//	md, err := ms.BuildMetadata()
//	if err != nil {
//		return err
//	}
//	typ := md.EntityBinding("Article").Property("Title").Type()
type MetadataSources struct {
	dialect  Dialect
	registry *TypeRegistry
	logger   *zap.Logger
	structs  []interface{}
}

// NewMetadataSources creates sources bound against dialect. A nil registry
// gets a fresh one with the standard types.
func NewMetadataSources(dialect Dialect, registry *TypeRegistry) *MetadataSources {
	if registry == nil {
		registry = NewTypeRegistry()
	}
	return &MetadataSources{
		dialect:  dialect,
		registry: registry,
		logger:   zap.NewNop(),
	}
}

func (ms *MetadataSources) SetLogger(logger *zap.Logger) *MetadataSources {
	ms.logger = logger
	return ms
}

// AddStruct queues a struct pointer for binding.
func (ms *MetadataSources) AddStruct(structPtr ...interface{}) *MetadataSources {
	ms.structs = append(ms.structs, structPtr...)
	return ms
}

// BuildMetadata binds every added struct. All binding errors are returned
// together; the metadata is nil when any occurred.
func (ms *MetadataSources) BuildMetadata() (*Metadata, error) {
	res := newResolver(ms.dialect, ms.registry, ms.logger)
	md := &Metadata{
		dialect:  ms.dialect,
		registry: ms.registry,
		entities: make(map[string]*PersistentClass),
	}
	var errs *multierror.Error
	for _, s := range ms.structs {
		pc, err := bindEntity(s, res)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if err := md.add(pc); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		ms.logger.Debug("bound entity",
			zap.String("entity", pc.entityName),
			zap.String("table", pc.model.table),
			zap.Int("properties", len(pc.properties)),
		)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return md, nil
}

func bindEntity(structPtr interface{}, res *resolver) (*PersistentClass, error) {
	m, err := structPtrToModel(structPtr, true, res)
	if err != nil {
		return nil, err
	}
	t := elemType(reflect.TypeOf(structPtr))
	pc := &PersistentClass{
		entityName: entityName(structPtr),
		typeName:   t.PkgPath() + "." + t.Name(),
		model:      m,
	}
	for _, f := range m.fields {
		pc.properties = append(pc.properties, &Property{field: f})
	}
	return pc, nil
}

// Metadata is the bound schema model of a set of structs.
type Metadata struct {
	dialect  Dialect
	registry *TypeRegistry
	entities map[string]*PersistentClass
	ordered  []*PersistentClass
}

func (md *Metadata) add(pc *PersistentClass) error {
	for _, key := range []string{pc.entityName, pc.typeName} {
		if _, ok := md.entities[key]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateEntity, key)
		}
	}
	md.entities[pc.entityName] = pc
	md.entities[pc.typeName] = pc
	md.ordered = append(md.ordered, pc)
	return nil
}

func (md *Metadata) Dialect() Dialect {
	return md.dialect
}

func (md *Metadata) Registry() *TypeRegistry {
	return md.registry
}

// EntityBinding finds an entity by its entity name or by its package
// qualified Go type name, nil when not bound.
func (md *Metadata) EntityBinding(name string) *PersistentClass {
	return md.entities[name]
}

// EntityBindings returns the entities in the order they were added.
func (md *Metadata) EntityBindings() []*PersistentClass {
	return md.ordered
}

// PersistentClass is the binding of one struct to its table.
type PersistentClass struct {
	entityName string
	typeName   string
	model      *model
	properties []*Property
}

func (pc *PersistentClass) EntityName() string {
	return pc.entityName
}

func (pc *PersistentClass) Table() string {
	return pc.model.table
}

// Property returns the property bound from the named struct field.
func (pc *PersistentClass) Property(name string) *Property {
	for _, p := range pc.properties {
		if p.field.camelName == name {
			return p
		}
	}
	return nil
}

func (pc *PersistentClass) Properties() []*Property {
	return pc.properties
}

// Identifier is the primary key property, nil when the struct has none.
func (pc *PersistentClass) Identifier() *Property {
	if pc.model.pk == nil {
		return nil
	}
	return pc.Property(pc.model.pk.camelName)
}

// Property is a bound struct field.
type Property struct {
	field *modelField
}

func (p *Property) Name() string {
	return p.field.camelName
}

func (p *Property) Column() string {
	return p.field.name
}

func (p *Property) Type() Type {
	return p.field.typ
}

func (p *Property) Nationalized() bool {
	return p.field.nationalized
}

func (p *Property) Lob() bool {
	return p.field.lob
}

// ColumnDefinition renders the column type the dialect of md uses for p.
func (md *Metadata) ColumnDefinition(p *Property) string {
	return md.dialect.sqlType(p.field)
}

// CreateTableSql renders the CREATE TABLE statement of pc.
func (md *Metadata) CreateTableSql(pc *PersistentClass, ifNotExists bool) string {
	return md.dialect.createTableSql(pc.model, ifNotExists)
}

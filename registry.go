package qbs

import (
	"fmt"
	"sync"
)

type typePair struct {
	goType  *GoTypeDescriptor
	sqlType *SqlTypeDescriptor
}

// TypeRegistry holds named types and the canonical type of every
// (Go, SQL) descriptor pair seen so far. It is safe for concurrent use.
type TypeRegistry struct {
	mu     sync.RWMutex
	byName map[string]Type
	byPair map[typePair]Type
}

// NewTypeRegistry returns a registry preloaded with the standard types.
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{
		byName: make(map[string]Type),
		byPair: make(map[typePair]Type),
	}
	for _, t := range standardTypes {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds t under its name and any extra keys. The first type
// registered for a descriptor pair stays canonical for that pair.
func (r *TypeRegistry) Register(t Type, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys = append([]string{t.Name()}, keys...)
	for _, k := range keys {
		if _, ok := r.byName[k]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateType, k)
		}
	}
	for _, k := range keys {
		r.byName[k] = t
	}
	pair := typePair{t.GoType(), t.SqlType()}
	if _, ok := r.byPair[pair]; !ok {
		r.byPair[pair] = t
	}
	return nil
}

func (r *TypeRegistry) ByName(name string) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[name]
	return t, ok
}

// Resolve returns the canonical type for the pair, creating and caching an
// anonymous BasicType when nothing was registered for it.
func (r *TypeRegistry) Resolve(goType *GoTypeDescriptor, sqlType *SqlTypeDescriptor) Type {
	pair := typePair{goType, sqlType}
	r.mu.RLock()
	t, ok := r.byPair[pair]
	r.mu.RUnlock()
	if ok {
		return t
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.byPair[pair]; ok {
		return t
	}
	t = NewBasicType(goType.Name()+":"+sqlType.Name(), goType, sqlType)
	r.byPair[pair] = t
	return t
}

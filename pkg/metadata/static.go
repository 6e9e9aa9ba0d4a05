package metadata

import (
	"sort"
	"sync"

	"github.com/aretw0/restorm/pkg/core"
)

// StaticSource is a MetadataSource populated in code.
type StaticSource struct {
	mu          sync.RWMutex
	descriptors map[string]core.Descriptor
}

// NewStaticSource creates an empty StaticSource.
func NewStaticSource() *StaticSource {
	return &StaticSource{descriptors: make(map[string]core.Descriptor)}
}

// Register declares the descriptor of class. Registering a class again replaces its
// descriptor, but a Registry that already resolved the class keeps the old one.
func (s *StaticSource) Register(class string, desc core.Descriptor) *StaticSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.descriptors[class] = desc
	return s
}

// Lookup implements core.MetadataSource.
func (s *StaticSource) Lookup(class string) (core.Descriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	desc, ok := s.descriptors[class]
	return desc, ok
}

// Classes lists the registered classes, sorted.
func (s *StaticSource) Classes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	classes := make([]string, 0, len(s.descriptors))
	for class := range s.descriptors {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

// Define registers T under its class name with a typed identifier accessor.
//
//	metadata.Define(src, "blogs", "id", func(b *Blog) (any, bool) { return b.ID, b.ID != 0 })
func Define[T any](s *StaticSource, resource, identifierField string, id func(*T) (any, bool)) *StaticSource {
	desc := core.Descriptor{
		Resource:        resource,
		IdentifierField: identifierField,
	}
	if id != nil {
		desc.Accessor = func(obj any) (any, bool) {
			switch o := obj.(type) {
			case *T:
				if o == nil {
					return nil, false
				}
				return id(o)
			case T:
				return id(&o)
			}
			return nil, false
		}
	}
	return s.Register(core.ClassOf(new(T)), desc)
}

// Chain consults sources in order and returns the first match.
type Chain []core.MetadataSource

// Lookup implements core.MetadataSource.
func (c Chain) Lookup(class string) (core.Descriptor, bool) {
	for _, src := range c {
		if src == nil {
			continue
		}
		if desc, ok := src.Lookup(class); ok {
			return desc, true
		}
	}
	return core.Descriptor{}, false
}

// Package metadata resolves classes to REST resource metadata and reads identifiers off objects.
package metadata

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/aretw0/restorm/pkg/core"
)

var resourcePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*(/[a-z0-9][a-z0-9._-]*)*$`)

// Registry resolves class identifiers to ResourceMetadata.
// Results are cached for the lifetime of the Registry and are never invalidated.
// A Registry is safe for concurrent use.
type Registry struct {
	source core.MetadataSource

	mu      sync.RWMutex
	cache   map[string]core.ResourceMetadata
	lookups int
}

// NewRegistry creates a Registry backed by source.
func NewRegistry(source core.MetadataSource) *Registry {
	return &Registry{
		source: source,
		cache:  make(map[string]core.ResourceMetadata),
	}
}

// Resolve returns the metadata of class. The first call for a class consults the source;
// later calls are cache hits. Failed resolutions are not cached.
func (r *Registry) Resolve(class string) (core.ResourceMetadata, error) {
	r.mu.RLock()
	md, ok := r.cache[class]
	r.mu.RUnlock()
	if ok {
		return md, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have resolved it while we waited for the lock.
	if md, ok := r.cache[class]; ok {
		return md, nil
	}

	r.lookups++
	if r.source == nil {
		return core.ResourceMetadata{}, &core.MetadataNotFoundError{Class: class}
	}
	desc, found := r.source.Lookup(class)
	if !found {
		return core.ResourceMetadata{}, &core.MetadataNotFoundError{Class: class}
	}

	md, err := newMetadata(class, desc)
	if err != nil {
		return core.ResourceMetadata{}, err
	}
	r.cache[class] = md
	return md, nil
}

// ResolveObject resolves the metadata for the runtime class of obj.
func (r *Registry) ResolveObject(obj any) (core.ResourceMetadata, error) {
	if obj == nil {
		return core.ResourceMetadata{}, &core.InvalidObjectError{Reason: "cannot resolve metadata", Err: core.ErrNilObject}
	}
	return r.Resolve(core.ClassOf(obj))
}

// Classes returns the classes resolved so far, sorted.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	classes := make([]string, 0, len(r.cache))
	for class := range r.cache {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

// Len returns the number of cached entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

func newMetadata(class string, desc core.Descriptor) (core.ResourceMetadata, error) {
	if class == "" {
		return core.ResourceMetadata{}, &core.InvalidMetadataError{Class: class, Reason: "empty class identifier"}
	}
	if !resourcePattern.MatchString(desc.Resource) {
		return core.ResourceMetadata{}, &core.InvalidMetadataError{
			Class:  class,
			Reason: fmt.Sprintf("resource name %q is not a slug", desc.Resource),
		}
	}

	field := desc.IdentifierField
	if field == "" {
		field = core.DefaultIdentifierField
	}

	return core.ResourceMetadata{
		Class:           class,
		Resource:        desc.Resource,
		IdentifierField: field,
		Accessor:        desc.Accessor,
	}, nil
}

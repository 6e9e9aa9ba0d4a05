package metadata

import (
	"time"

	"github.com/aretw0/introspection"
)

// RegistryState exposes internal state for observability.
type RegistryState struct {
	Classes    []string `json:"classes"`
	Lookups    int      `json:"lookups"`
	SourceType string   `json:"source_type"`
}

// State implements introspection.Introspectable.
func (r *Registry) State() any {
	classes := r.Classes()

	r.mu.RLock()
	defer r.mu.RUnlock()

	sourceType := "none"
	if r.source != nil {
		sourceType = "source"
		if comp, ok := r.source.(introspection.Component); ok {
			sourceType = comp.ComponentType()
		}
	}

	return RegistryState{
		Classes:    classes,
		Lookups:    r.lookups,
		SourceType: sourceType,
	}
}

// ComponentType implements introspection.Component.
func (r *Registry) ComponentType() string {
	return "metadata-registry"
}

// FileSourceState exposes internal state for observability.
type FileSourceState struct {
	Patterns []string  `json:"patterns"`
	Files    []string  `json:"files"`
	Classes  int       `json:"classes"`
	LoadedAt time.Time `json:"loaded_at"`
	Watching bool      `json:"watching"`
}

// State implements introspection.Introspectable.
func (s *FileSource) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return FileSourceState{
		Patterns: append([]string(nil), s.config.Patterns...),
		Files:    append([]string(nil), s.files...),
		Classes:  len(s.descriptors),
		LoadedAt: s.loadedAt,
		Watching: s.watching,
	}
}

// ComponentType implements introspection.Component.
func (s *FileSource) ComponentType() string {
	return "file-source"
}

// ComponentType implements introspection.Component.
func (s *StaticSource) ComponentType() string {
	return "static-source"
}

var _ introspection.Introspectable = (*Registry)(nil)
var _ introspection.Component = (*Registry)(nil)
var _ introspection.Introspectable = (*FileSource)(nil)
var _ introspection.Component = (*FileSource)(nil)
var _ introspection.Component = (*StaticSource)(nil)

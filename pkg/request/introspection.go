package request

import (
	"github.com/aretw0/introspection"
)

// FactoryState exposes internal state for observability.
type FactoryState struct {
	Format         string `json:"format"`
	ContentType    string `json:"content_type,omitempty"`
	CachedClasses  int    `json:"cached_classes"`
	URLGenerator   string `json:"url_generator"`
	SerializerType string `json:"serializer"`
}

// State implements introspection.Introspectable.
func (f *Factory) State() any {
	contentType, _ := f.ContentType()

	state := FactoryState{
		Format:         string(f.format),
		ContentType:    contentType,
		URLGenerator:   componentType(f.urls),
		SerializerType: componentType(f.serializer),
	}
	if f.registry != nil {
		state.CachedClasses = f.registry.Len()
	}
	return state
}

// ComponentType implements introspection.Component.
func (f *Factory) ComponentType() string {
	return "request-factory"
}

func componentType(v any) string {
	if v == nil {
		return "none"
	}
	if comp, ok := v.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return "custom"
}

var _ introspection.Introspectable = (*Factory)(nil)
var _ introspection.Component = (*Factory)(nil)

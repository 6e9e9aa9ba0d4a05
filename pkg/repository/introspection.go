package repository

import (
	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Class         string `json:"class"`
	Format        string `json:"format"`
	TransportType string `json:"transport"`
}

// State implements introspection.Introspectable.
func (r *Repository[T]) State() any {
	transportType := "transport"
	if comp, ok := r.transport.(introspection.Component); ok {
		transportType = comp.ComponentType()
	}
	return RepositoryState{
		Class:         r.class,
		Format:        string(r.factory.Format()),
		TransportType: transportType,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository[T]) ComponentType() string {
	return "repository"
}

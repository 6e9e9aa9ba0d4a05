package core

import "context"

// URLGenerator builds resource URLs.
// Implementations decide whether the order of params is preserved.
type URLGenerator interface {
	CreateURL(resource string, params Params) (string, error)
	ModifyURL(resource string, id any, params Params) (string, error)
	FindOneURL(resource string, id any, params Params) (string, error)
	FindAllURL(resource string, params Params) (string, error)
	RemoveURL(resource string, id any, params Params) (string, error)
}

// Serializer encodes objects into request bodies and decodes response bodies.
type Serializer interface {
	// Serialize encodes v, keeping only the fields visible in view.
	Serialize(v any, format Format, view string) ([]byte, error)
	// Deserialize decodes data into target, which must be a pointer.
	Deserialize(data []byte, format Format, target any) error
}

// Transport sends a request and returns the raw response.
// A non-2xx status is not an error at this level; only failures to obtain a response are.
// Cancellation and timeouts belong to the transport.
type Transport interface {
	Dispatch(ctx context.Context, req Request) (Response, error)
}

// MetadataSource supplies descriptors for classes (code registration, files, ...).
type MetadataSource interface {
	Lookup(class string) (Descriptor, bool)
}

// Repository persists and retrieves domain objects of type T through a REST API.
type Repository[T any] interface {
	// Save creates the object when it has no identifier, or updates it otherwise.
	Save(ctx context.Context, obj *T, params ...Param) (*T, error)

	// FindOneByID retrieves a single object.
	FindOneByID(ctx context.Context, id any, params ...Param) (*T, error)

	// FindAll returns every object of the collection.
	FindAll(ctx context.Context, params ...Param) ([]*T, error)

	// Remove deletes the object. It reports true once the server accepted the deletion.
	Remove(ctx context.Context, obj *T, params ...Param) (bool, error)
}

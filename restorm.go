package restorm

import (
	"log/slog"
	"net/http"

	"github.com/aretw0/restorm/internal/platform"
	"github.com/aretw0/restorm/pkg/core"
	"github.com/aretw0/restorm/pkg/repository"
)

// --- Types ---

// Client bundles the metadata registry, request factory and transport.
type Client = platform.Client

// Repository is a public alias for the generic REST repository.
type Repository[T any] = repository.Repository[T]

// Params is an ordered list of query parameters.
type Params = core.Params

// Format selects the wire format.
type Format = core.Format

const (
	JSON = core.FormatJSON
	XML  = core.FormatXML
)

// --- Configuration ---

// Option defines a functional option for configuring a Client.
type Option = platform.Option

// WithFormat selects the wire format (JSON or XML).
func WithFormat(format Format) Option {
	return platform.WithFormat(format)
}

// WithMetadataSource adds a source of resource metadata.
func WithMetadataSource(src core.MetadataSource) Option {
	return platform.WithMetadataSource(src)
}

// WithResource declares the resource of a class in code.
func WithResource(class, resource, identifierField string) Option {
	return platform.WithResource(class, resource, identifierField)
}

// WithSerializer replaces the default JSON/XML serializer.
func WithSerializer(s core.Serializer) Option {
	return platform.WithSerializer(s)
}

// WithStrict makes the default serializer keep JSON numbers as json.Number.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithURLGenerator replaces the default URL generator.
func WithURLGenerator(g core.URLGenerator) Option {
	return platform.WithURLGenerator(g)
}

// WithBaseURL sets the API root for the default URL generator.
func WithBaseURL(baseURL string) Option {
	return platform.WithBaseURL(baseURL)
}

// WithPathSuffix appends a suffix such as ".json" to every generated path.
func WithPathSuffix(suffix string) Option {
	return platform.WithPathSuffix(suffix)
}

// WithTransport replaces the default net/http transport.
func WithTransport(t core.Transport) Option {
	return platform.WithTransport(t)
}

// WithHTTPClient sets the client used by the default transport.
func WithHTTPClient(c *http.Client) Option {
	return platform.WithHTTPClient(c)
}

// WithUserAgent sets the User-Agent header of the default transport.
func WithUserAgent(ua string) Option {
	return platform.WithUserAgent(ua)
}

// WithLogger sets the logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// --- Factory ---

// New creates a Client.
func New(opts ...Option) (*Client, error) {
	return platform.New(opts...)
}

// NewRepository creates a repository for objects of type T.
func NewRepository[T any](c *Client, opts ...repository.Option) *Repository[T] {
	return platform.NewRepository[T](c, opts...)
}

package platform

import (
	"log/slog"
	"net/http"

	"github.com/aretw0/restorm/pkg/core"
)

// options holds the internal configuration for a restorm Client.
type options struct {
	format     core.Format
	sources    []core.MetadataSource
	resources  []resourceDecl
	serializer core.Serializer
	strict     bool
	urls       core.URLGenerator
	baseURL    string
	suffix     string
	transport  core.Transport
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

type resourceDecl struct {
	class      string
	descriptor core.Descriptor
}

// Option defines a functional option for configuring a Client.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		format: core.FormatJSON,
	}
}

// WithFormat selects the wire format (json or xml). Defaults to json.
func WithFormat(format core.Format) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithMetadataSource adds a source of resource metadata. Sources are consulted in the
// order they were added, after any WithResource declarations.
func WithMetadataSource(src core.MetadataSource) Option {
	return func(o *options) {
		o.sources = append(o.sources, src)
	}
}

// WithResource declares the resource of a class in code.
// An empty identifierField means "id".
func WithResource(class, resource, identifierField string) Option {
	return func(o *options) {
		o.resources = append(o.resources, resourceDecl{
			class:      class,
			descriptor: core.Descriptor{Resource: resource, IdentifierField: identifierField},
		})
	}
}

// WithSerializer replaces the default JSON/XML serializer.
func WithSerializer(s core.Serializer) Option {
	return func(o *options) {
		o.serializer = s
	}
}

// WithStrict makes the default serializer decode JSON numbers as json.Number.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithURLGenerator replaces the default URL generator. WithBaseURL is ignored when set.
func WithURLGenerator(g core.URLGenerator) Option {
	return func(o *options) {
		o.urls = g
	}
}

// WithBaseURL sets the API root used by the default URL generator.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithPathSuffix appends a suffix (e.g. ".json") to every path built by the default URL generator.
func WithPathSuffix(suffix string) Option {
	return func(o *options) {
		o.suffix = suffix
	}
}

// WithTransport replaces the default net/http transport.
func WithTransport(t core.Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

// WithHTTPClient sets the client used by the default transport.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithUserAgent sets the User-Agent sent by the default transport.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithLogger sets the logger for the client and its components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

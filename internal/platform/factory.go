package platform

import (
	"errors"
	"log/slog"

	"github.com/aretw0/restorm/pkg/adapters/codec"
	"github.com/aretw0/restorm/pkg/adapters/httpx"
	"github.com/aretw0/restorm/pkg/core"
	"github.com/aretw0/restorm/pkg/metadata"
	"github.com/aretw0/restorm/pkg/repository"
	"github.com/aretw0/restorm/pkg/request"
)

// Client bundles the components built from a set of options.
type Client struct {
	Registry  *metadata.Registry
	Factory   *request.Factory
	Transport core.Transport
	Logger    *slog.Logger
}

// New wires a Client.
//
//	c, err := platform.New(
//		platform.WithBaseURL("https://api.example.com"),
//		platform.WithResource("Blog", "blogs", "id"),
//	)
func New(opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if _, err := request.ContentTypeFor(o.format); err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	// 1. Metadata
	var chain metadata.Chain
	if len(o.resources) > 0 {
		static := metadata.NewStaticSource()
		for _, r := range o.resources {
			static.Register(r.class, r.descriptor)
		}
		chain = append(chain, static)
	}
	chain = append(chain, o.sources...)
	if len(chain) == 0 {
		return nil, errors.New("no metadata source configured (use WithResource or WithMetadataSource)")
	}
	var source core.MetadataSource = chain
	if len(chain) == 1 {
		source = chain[0]
	}
	registry := metadata.NewRegistry(source)

	// 2. URL generation
	urls := o.urls
	if urls == nil {
		if o.baseURL == "" {
			return nil, errors.New("no url generator configured (use WithBaseURL or WithURLGenerator)")
		}
		g, err := httpx.NewURLGenerator(o.baseURL)
		if err != nil {
			return nil, err
		}
		g.Suffix = o.suffix
		urls = g
	}

	// 3. Serialization
	serializer := o.serializer
	if serializer == nil {
		serializer = codec.New(codec.DefaultCodecs(o.strict))
	}

	// 4. Transport
	transport := o.transport
	if transport == nil {
		transport = httpx.NewTransport(httpx.TransportConfig{
			Client:    o.httpClient,
			Logger:    logger,
			UserAgent: o.userAgent,
		})
	}

	logger.Debug("restorm client ready", "format", o.format, "sources", len(chain))

	return &Client{
		Registry:  registry,
		Factory:   request.NewFactory(registry, urls, serializer, o.format),
		Transport: transport,
		Logger:    logger,
	}, nil
}

// NewRepository creates a repository for T on top of c.
func NewRepository[T any](c *Client, opts ...repository.Option) *Repository[T] {
	all := append([]repository.Option{repository.WithLogger(c.Logger)}, opts...)
	return repository.New[T](c.Factory, c.Transport, all...)
}

// Repository is the repository type returned by NewRepository.
type Repository[T any] = repository.Repository[T]


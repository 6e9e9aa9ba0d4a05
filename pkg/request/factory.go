// Package request builds the HTTP requests that map domain objects onto REST resources.
package request

import (
	"fmt"
	"net/http"

	"github.com/aretw0/restorm/pkg/core"
	"github.com/aretw0/restorm/pkg/metadata"
)

// Factory builds create, update, find and delete requests for domain objects.
//
// The format is read on every call. It is not synchronized: change it only while no
// request is being built.
type Factory struct {
	registry   *metadata.Registry
	urls       core.URLGenerator
	serializer core.Serializer
	format     core.Format
}

// NewFactory creates a Factory. All collaborators are required.
func NewFactory(registry *metadata.Registry, urls core.URLGenerator, serializer core.Serializer, format core.Format) *Factory {
	return &Factory{
		registry:   registry,
		urls:       urls,
		serializer: serializer,
		format:     format,
	}
}

// SetFormat changes the format used by subsequent calls.
func (f *Factory) SetFormat(format core.Format) {
	f.format = format
}

// Format returns the current format.
func (f *Factory) Format() core.Format {
	return f.format
}

// Registry returns the metadata registry used by the factory.
func (f *Factory) Registry() *metadata.Registry {
	return f.registry
}

// Serializer returns the serializer used for request bodies.
func (f *Factory) Serializer() core.Serializer {
	return f.serializer
}

// ContentTypeFor maps a format to its media type.
func ContentTypeFor(format core.Format) (string, error) {
	switch format {
	case core.FormatJSON:
		return "application/json", nil
	case core.FormatXML:
		return "application/xml", nil
	default:
		return "", &core.UnsupportedFormatError{Format: format}
	}
}

// ContentType returns the media type of the current format.
func (f *Factory) ContentType() (string, error) {
	return ContentTypeFor(f.format)
}

// CreateSaveRequest returns a POST request if the object's identifier is absent, and a PUT
// request to the object's URL otherwise.
//
// Objects whose identifier is assigned by the client before the first save always produce
// a PUT. Callers that pre-assign identifiers must create those resources themselves.
func (f *Factory) CreateSaveRequest(obj any, params core.Params) (core.Request, error) {
	md, err := f.registry.ResolveObject(obj)
	if err != nil {
		return core.Request{}, err
	}
	id, err := metadata.IdentifierValue(md, obj)
	if err != nil {
		return core.Request{}, err
	}
	header, err := f.header()
	if err != nil {
		return core.Request{}, err
	}

	var (
		method string
		url    string
	)
	if id == nil {
		// New entity
		method = core.MethodPost
		url, err = f.urls.CreateURL(md.Resource, params)
	} else {
		method = core.MethodPut
		url, err = f.urls.ModifyURL(md.Resource, id, params)
	}
	if err != nil {
		return core.Request{}, fmt.Errorf("failed to build %s url for %s: %w", method, md.Resource, err)
	}

	body, err := f.serializer.Serialize(obj, f.format, core.DefaultView)
	if err != nil {
		return core.Request{}, fmt.Errorf("failed to serialize %s: %w", md.Class, err)
	}

	return core.Request{
		Method: method,
		URL:    url,
		Header: header,
		Body:   body,
	}, nil
}

// CreateFindOneRequest returns a GET request for a single object of class.
func (f *Factory) CreateFindOneRequest(class string, id any, params core.Params) (core.Request, error) {
	md, err := f.registry.Resolve(class)
	if err != nil {
		return core.Request{}, err
	}
	header, err := f.header()
	if err != nil {
		return core.Request{}, err
	}
	url, err := f.urls.FindOneURL(md.Resource, id, params)
	if err != nil {
		return core.Request{}, fmt.Errorf("failed to build find-one url for %s: %w", md.Resource, err)
	}
	return core.Request{Method: core.MethodGet, URL: url, Header: header}, nil
}

// CreateFindAllRequest returns a GET request for the collection of class.
func (f *Factory) CreateFindAllRequest(class string, params core.Params) (core.Request, error) {
	md, err := f.registry.Resolve(class)
	if err != nil {
		return core.Request{}, err
	}
	header, err := f.header()
	if err != nil {
		return core.Request{}, err
	}
	url, err := f.urls.FindAllURL(md.Resource, params)
	if err != nil {
		return core.Request{}, fmt.Errorf("failed to build find-all url for %s: %w", md.Resource, err)
	}
	return core.Request{Method: core.MethodGet, URL: url, Header: header}, nil
}

// CreateDeleteRequest returns a DELETE request for a persisted object.
//
// An object without identifier is rejected with a *core.InvalidObjectError wrapping
// core.ErrNoIdentifier; no request is built for it.
func (f *Factory) CreateDeleteRequest(obj any, params core.Params) (core.Request, error) {
	md, err := f.registry.ResolveObject(obj)
	if err != nil {
		return core.Request{}, err
	}
	id, err := metadata.IdentifierValue(md, obj)
	if err != nil {
		return core.Request{}, err
	}
	if id == nil {
		return core.Request{}, &core.InvalidObjectError{Class: md.Class, Reason: "cannot delete", Err: core.ErrNoIdentifier}
	}
	header, err := f.header()
	if err != nil {
		return core.Request{}, err
	}
	url, err := f.urls.RemoveURL(md.Resource, id, params)
	if err != nil {
		return core.Request{}, fmt.Errorf("failed to build remove url for %s: %w", md.Resource, err)
	}
	return core.Request{Method: core.MethodDelete, URL: url, Header: header}, nil
}

func (f *Factory) header() (http.Header, error) {
	contentType, err := f.ContentType()
	if err != nil {
		return nil, err
	}
	h := make(http.Header)
	h.Set("Content-Type", contentType)
	return h, nil
}

// Package httpx provides the default URL generator and transport over net/http.
package httpx

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aretw0/restorm/pkg/core"
)

// URLGenerator builds conventional REST URLs:
//
//	create, find-all:          {base}/{resource}
//	modify, find-one, remove:  {base}/{resource}/{id}
//
// Query parameters are appended in the order given.
type URLGenerator struct {
	base *url.URL
	// Suffix is appended to every path, e.g. ".json" for APIs that select the format by extension.
	Suffix string
}

// NewURLGenerator parses baseURL, which must be absolute.
func NewURLGenerator(baseURL string) (*URLGenerator, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", baseURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return nil, fmt.Errorf("base url must not carry a query or fragment: %q", baseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	return &URLGenerator{base: u}, nil
}

// CreateURL implements core.URLGenerator.
func (g *URLGenerator) CreateURL(resource string, params core.Params) (string, error) {
	return g.build(resource, nil, params)
}

// ModifyURL implements core.URLGenerator.
func (g *URLGenerator) ModifyURL(resource string, id any, params core.Params) (string, error) {
	return g.buildWithID(resource, id, params)
}

// FindOneURL implements core.URLGenerator.
func (g *URLGenerator) FindOneURL(resource string, id any, params core.Params) (string, error) {
	return g.buildWithID(resource, id, params)
}

// FindAllURL implements core.URLGenerator.
func (g *URLGenerator) FindAllURL(resource string, params core.Params) (string, error) {
	return g.build(resource, nil, params)
}

// RemoveURL implements core.URLGenerator.
func (g *URLGenerator) RemoveURL(resource string, id any, params core.Params) (string, error) {
	return g.buildWithID(resource, id, params)
}

// ComponentType implements introspection.Component.
func (g *URLGenerator) ComponentType() string {
	return "rest-url-generator"
}

func (g *URLGenerator) buildWithID(resource string, id any, params core.Params) (string, error) {
	if id == nil {
		return "", fmt.Errorf("%s: %w", resource, core.ErrNoIdentifier)
	}
	s := fmt.Sprint(id)
	if s == "" {
		return "", fmt.Errorf("%s: %w", resource, core.ErrNoIdentifier)
	}
	return g.build(resource, &s, params)
}

func (g *URLGenerator) build(resource string, id *string, params core.Params) (string, error) {
	resource = strings.Trim(resource, "/")
	if resource == "" {
		return "", fmt.Errorf("empty resource name")
	}

	var b strings.Builder
	b.WriteString(g.base.Scheme)
	b.WriteString("://")
	b.WriteString(g.base.Host)
	b.WriteString(g.base.EscapedPath())

	for _, segment := range strings.Split(resource, "/") {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(segment))
	}
	if id != nil {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(*id))
	}
	b.WriteString(g.Suffix)

	if len(params) > 0 {
		b.WriteByte('?')
		b.WriteString(EncodeParams(params))
	}
	return b.String(), nil
}

// EncodeParams renders params as a query string, keeping their order.
func EncodeParams(params core.Params) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, url.QueryEscape(p.Name)+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(parts, "&")
}

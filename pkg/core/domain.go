// Package core holds the domain types and collaborator contracts shared by restorm packages.
package core

import (
	"net/http"
	"reflect"
)

// Format selects the wire format of request and response bodies.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// DefaultView is the output view used when serializing request bodies.
// Only fields visible in this view are sent to the server.
const DefaultView = "Default"

// DefaultIdentifierField is used when a descriptor leaves the identifier field empty.
const DefaultIdentifierField = "id"

// HTTP methods produced by the request factory.
const (
	MethodPost   = http.MethodPost
	MethodPut    = http.MethodPut
	MethodGet    = http.MethodGet
	MethodDelete = http.MethodDelete
)

// IdentifierFunc reads the identifier of obj. ok is false when the object has not been
// persisted yet.
type IdentifierFunc func(obj any) (value any, ok bool)

// Descriptor is what a MetadataSource knows about a class.
type Descriptor struct {
	Resource        string
	IdentifierField string
	Accessor        IdentifierFunc
}

// ResourceMetadata maps a class to its REST resource.
// It is resolved once per class and never changes afterwards.
type ResourceMetadata struct {
	Class           string
	Resource        string
	IdentifierField string
	Accessor        IdentifierFunc
}

// Param is a single query parameter.
type Param struct {
	Name  string
	Value string
}

// Params is an ordered list of query parameters.
type Params []Param

// Add appends a parameter and returns the extended list.
func (p Params) Add(name, value string) Params {
	return append(p, Param{Name: name, Value: value})
}

// Get returns the first value for name.
func (p Params) Get(name string) (string, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return "", false
}

// Request is an outbound HTTP request built by the factory.
// Once handed to a Transport it must not be modified.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Clone returns a deep copy of the request.
func (r Request) Clone() Request {
	c := Request{
		Method: r.Method,
		URL:    r.URL,
		Header: r.Header.Clone(),
	}
	if r.Body != nil {
		c.Body = append([]byte(nil), r.Body...)
	}
	return c
}

// Response is what a Transport returns for a dispatched request.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Success reports whether the status is 2xx.
func (r Response) Success() bool {
	return r.Status >= 200 && r.Status < 300
}

// Classifier lets an object name its own class. Objects that do not implement it are
// classified by their Go type name.
type Classifier interface {
	ClassName() string
}

// Identifiable exposes the identifier of a domain object.
// ok is false for objects that were never persisted.
type Identifiable interface {
	Identifier() (value any, ok bool)
}

// FieldGetter exposes named attributes of a schemaless object.
type FieldGetter interface {
	Field(name string) (value any, ok bool)
}

// ClassOf returns the class identifier used to look up metadata for obj.
func ClassOf(obj any) string {
	if c, ok := obj.(Classifier); ok {
		return c.ClassName()
	}
	return TypeName(reflect.TypeOf(obj))
}

// TypeName returns the name of t with pointer indirections removed.
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

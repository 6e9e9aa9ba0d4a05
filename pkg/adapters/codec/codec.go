// Package codec provides the default core.Serializer for JSON and XML bodies.
package codec

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"

	"github.com/aretw0/restorm/pkg/core"
)

// Viewer lets an object choose what is serialized for a named view.
// Objects that do not implement it are serialized whole in every view.
type Viewer interface {
	View(name string) any
}

// Codec reads and writes a single wire format.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, target any) error
}

// DefaultCodecs returns the standard set of codecs.
func DefaultCodecs(strict bool) map[core.Format]Codec {
	return map[core.Format]Codec{
		core.FormatJSON: NewJSONCodec(strict),
		core.FormatXML:  NewXMLCodec(),
	}
}

// Serializer implements core.Serializer by dispatching on the format.
type Serializer struct {
	codecs map[core.Format]Codec
}

// New creates a Serializer. A nil map means DefaultCodecs(false).
func New(codecs map[core.Format]Codec) *Serializer {
	if codecs == nil {
		codecs = DefaultCodecs(false)
	}
	return &Serializer{codecs: codecs}
}

// Serialize implements core.Serializer.
func (s *Serializer) Serialize(v any, format core.Format, view string) ([]byte, error) {
	c, err := s.codec(format)
	if err != nil {
		return nil, err
	}
	if viewer, ok := v.(Viewer); ok && view != "" {
		v = viewer.View(view)
	}
	return c.Marshal(v)
}

// Deserialize implements core.Serializer.
func (s *Serializer) Deserialize(data []byte, format core.Format, target any) error {
	c, err := s.codec(format)
	if err != nil {
		return err
	}
	return c.Unmarshal(data, target)
}

// Formats lists the registered formats, sorted.
func (s *Serializer) Formats() []string {
	formats := make([]string, 0, len(s.codecs))
	for f := range s.codecs {
		formats = append(formats, string(f))
	}
	sort.Strings(formats)
	return formats
}

// ComponentType implements introspection.Component.
func (s *Serializer) ComponentType() string {
	return "codec"
}

func (s *Serializer) codec(format core.Format) (Codec, error) {
	c, ok := s.codecs[format]
	if !ok {
		return nil, &core.UnsupportedFormatError{Format: format}
	}
	return c, nil
}

// --- JSON Codec ---

// JSONCodec handles JSON bodies.
type JSONCodec struct {
	// Strict decodes numbers as json.Number to avoid precision loss in untyped targets.
	Strict bool
}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec(strict bool) *JSONCodec {
	return &JSONCodec{Strict: strict}
}

func (c *JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c *JSONCodec) Unmarshal(data []byte, target any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	if c.Strict {
		decoder.UseNumber()
	}
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid json: trailing data after top-level value")
	}
	return nil
}

// --- XML Codec ---

// XMLCodec handles XML bodies. Collections are read from the children of the root
// element, whatever its name.
type XMLCodec struct {
	// CollectionElement names the root element written for slices.
	CollectionElement string
}

// NewXMLCodec creates a new XML codec.
func NewXMLCodec() *XMLCodec {
	return &XMLCodec{CollectionElement: "collection"}
}

func (c *XMLCodec) Marshal(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.IsValid() && rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		return c.marshalCollection(rv)
	}
	return xml.Marshal(v)
}

func (c *XMLCodec) marshalCollection(rv reflect.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	root := xml.StartElement{Name: xml.Name{Local: c.CollectionElement}}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}
	for i := 0; i < rv.Len(); i++ {
		if err := enc.Encode(rv.Index(i).Interface()); err != nil {
			return nil, err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *XMLCodec) Unmarshal(data []byte, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("xml target must be a non-nil pointer, got %T", target)
	}
	if rv.Elem().Kind() == reflect.Slice && rv.Elem().Type().Elem().Kind() != reflect.Uint8 {
		return c.unmarshalCollection(data, rv.Elem())
	}
	if err := xml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("invalid xml: %w", err)
	}
	return nil
}

func (c *XMLCodec) unmarshalCollection(data []byte, slice reflect.Value) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	elemType := slice.Type().Elem()
	depth := 0
	out := reflect.MakeSlice(slice.Type(), 0, 0)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("invalid xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				depth++
				continue
			}
			item := reflect.New(elemType)
			if err := dec.DecodeElement(item.Interface(), &t); err != nil {
				return fmt.Errorf("invalid xml: %w", err)
			}
			out = reflect.Append(out, item.Elem())
		case xml.EndElement:
			depth--
		}
	}

	slice.Set(out)
	return nil
}

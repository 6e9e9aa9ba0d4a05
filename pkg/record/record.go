// Package record provides a schemaless domain object for classes known only by their
// resource declarations, such as those handled by the command line.
package record

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"sort"
)

// Fields holds the attributes of a record.
type Fields map[string]any

// Record is a domain object whose class is chosen at runtime.
// Its identifier is read by name through Field, so it works with descriptors that carry no
// accessor (e.g. declaration files).
type Record struct {
	Class  string
	Fields Fields
}

// New creates an empty record of class.
func New(class string) *Record {
	return &Record{Class: class, Fields: make(Fields)}
}

// ClassName implements core.Classifier.
func (r Record) ClassName() string {
	return r.Class
}

// Field implements core.FieldGetter.
func (r Record) Field(name string) (any, bool) {
	v, ok := r.Fields[name]
	if !ok || v == nil || v == "" {
		return nil, false
	}
	return v, true
}

// Set assigns a field.
func (r *Record) Set(name string, value any) {
	if r.Fields == nil {
		r.Fields = make(Fields)
	}
	r.Fields[name] = value
}

// MarshalJSON encodes the fields as a flat object.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.Fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]any(r.Fields))
}

// UnmarshalJSON replaces the fields with the decoded object. The class is kept.
func (r *Record) UnmarshalJSON(data []byte) error {
	fields := make(Fields)
	if err := json.Unmarshal(data, (*map[string]any)(&fields)); err != nil {
		return err
	}
	r.Fields = fields
	return nil
}

// MarshalXML encodes the record as an element with one child per field, sorted by name.
// Nested values are written as JSON text.
func (r Record) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if start.Name.Local == "" || start.Name.Local == "Record" {
		start.Name.Local = "record"
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		text, err := textValue(r.Fields[k])
		if err != nil {
			return fmt.Errorf("field %s: %w", k, err)
		}
		if err := e.EncodeElement(text, xml.StartElement{Name: xml.Name{Local: k}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// UnmarshalXML reads one level of child elements as string fields.
func (r *Record) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	fields := make(Fields)
	for _, attr := range start.Attr {
		fields[attr.Name.Local] = attr.Value
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var text string
			if err := d.DecodeElement(&text, &t); err != nil {
				return err
			}
			fields[t.Name.Local] = text
		case xml.EndElement:
			r.Fields = fields
			return nil
		}
	}
}

func textValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(val), nil
	}
}

package metadata

import (
	"fmt"
	"reflect"

	"github.com/aretw0/restorm/pkg/core"
)

// IdentifierValue reads the identifier of obj as described by md.
//
// The value is taken from, in order: the accessor registered with the metadata,
// core.FieldGetter using md.IdentifierField, core.Identifiable. A nil value is returned
// (with a nil error) for objects that were never persisted.
func IdentifierValue(md core.ResourceMetadata, obj any) (any, error) {
	if obj == nil {
		return nil, &core.InvalidObjectError{Class: md.Class, Reason: "cannot read identifier", Err: core.ErrNilObject}
	}

	if class := core.ClassOf(obj); class != md.Class {
		return nil, &core.InvalidObjectError{
			Class:  class,
			Reason: fmt.Sprintf("metadata describes class %q", md.Class),
		}
	}

	var (
		value any
		ok    bool
	)
	if md.Accessor != nil {
		value, ok = md.Accessor(obj)
	} else if fg, isGetter := obj.(core.FieldGetter); isGetter {
		value, ok = fg.Field(md.IdentifierField)
	} else if id, isIdentifiable := obj.(core.Identifiable); isIdentifiable {
		value, ok = id.Identifier()
	} else {
		return nil, &core.InvalidObjectError{
			Class:  md.Class,
			Reason: fmt.Sprintf("object exposes no identifier %q", md.IdentifierField),
		}
	}

	if !ok {
		return nil, nil
	}
	return indirect(value), nil
}

// indirect unwraps pointer identifiers such as *int64 and maps nil pointers to nil.
func indirect(value any) any {
	v := reflect.ValueOf(value)
	for v.IsValid() && v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil
	}
	return v.Interface()
}

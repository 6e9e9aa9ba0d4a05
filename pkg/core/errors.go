package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrNoIdentifier = errors.New("object has no identifier")
	ErrNilObject    = errors.New("object is nil")
)

// MetadataNotFoundError is returned when no resource mapping exists for a class.
type MetadataNotFoundError struct {
	Class string
}

func (e *MetadataNotFoundError) Error() string {
	return fmt.Sprintf("no resource metadata for class %q", e.Class)
}

// InvalidMetadataError is returned when a source describes a class with an unusable descriptor.
type InvalidMetadataError struct {
	Class  string
	Reason string
}

func (e *InvalidMetadataError) Error() string {
	return fmt.Sprintf("invalid resource metadata for class %q: %s", e.Class, e.Reason)
}

// UnsupportedFormatError is returned when the configured format has no content type.
type UnsupportedFormatError struct {
	Format Format
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q", string(e.Format))
}

// InvalidObjectError is returned when an object does not fit the metadata it is used with.
type InvalidObjectError struct {
	Class  string
	Reason string
	Err    error
}

func (e *InvalidObjectError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid object of class %q: %s: %v", e.Class, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid object of class %q: %s", e.Class, e.Reason)
}

func (e *InvalidObjectError) Unwrap() error { return e.Err }

// StatusError is the cause of a RepositoryOperationError when the server answered non-2xx.
type StatusError struct {
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Status)
}

// RepositoryOperationError wraps a failed dispatch or decode with the operation attempted.
type RepositoryOperationError struct {
	Op     string
	Class  string
	Status int
	Err    error
}

func (e *RepositoryOperationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Class, e.Err)
}

func (e *RepositoryOperationError) Unwrap() error { return e.Err }

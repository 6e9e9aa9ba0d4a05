// Package repository persists domain objects through a REST API.
package repository

import (
	"context"
	"log/slog"

	"github.com/aretw0/restorm/pkg/core"
	"github.com/aretw0/restorm/pkg/request"
)

// Operation names carried by core.RepositoryOperationError.
const (
	OpSave    = "save"
	OpFindOne = "find-one"
	OpFindAll = "find-all"
	OpRemove  = "remove"
)

// Repository implements core.Repository for objects of type T.
// Each call builds exactly one request, dispatches it and maps the response. Nothing is retried.
type Repository[T any] struct {
	factory   *request.Factory
	transport core.Transport
	class     string
	logger    *slog.Logger
}

// Option configures a Repository.
type Option func(*options)

type options struct {
	class  string
	logger *slog.Logger
}

// WithClass overrides the class used for find requests. It defaults to the class of T,
// which is wrong for objects that name their class at runtime (core.Classifier).
func WithClass(class string) Option {
	return func(o *options) {
		o.class = class
	}
}

// WithLogger sets the logger for the repository.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a Repository for T.
func New[T any](factory *request.Factory, transport core.Transport, opts ...Option) *Repository[T] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.class == "" {
		o.class = core.ClassOf(new(T))
	}
	return &Repository[T]{
		factory:   factory,
		transport: transport,
		class:     o.class,
		logger:    o.logger,
	}
}

// Class returns the class the repository finds objects of.
func (r *Repository[T]) Class() string {
	return r.class
}

// Save creates obj when it has no identifier and updates it otherwise. The returned object
// is decoded from the response body. When the body is empty it is a shallow copy of obj.
// obj itself is never modified.
func (r *Repository[T]) Save(ctx context.Context, obj *T, params ...core.Param) (*T, error) {
	if obj == nil {
		return nil, &core.InvalidObjectError{Class: r.class, Reason: "cannot save", Err: core.ErrNilObject}
	}
	req, err := r.factory.CreateSaveRequest(obj, core.Params(params))
	if err != nil {
		return nil, err
	}
	resp, err := r.dispatch(ctx, OpSave, req)
	if err != nil {
		return nil, err
	}

	if len(resp.Body) == 0 {
		saved := *obj
		return &saved, nil
	}

	// The decoder must not reach the pointers and maps shared with obj.
	saved := new(T)
	if err := r.factory.Serializer().Deserialize(resp.Body, r.factory.Format(), saved); err != nil {
		return nil, r.opError(OpSave, resp.Status, err)
	}
	return saved, nil
}

// FindOneByID retrieves the object identified by id.
func (r *Repository[T]) FindOneByID(ctx context.Context, id any, params ...core.Param) (*T, error) {
	req, err := r.factory.CreateFindOneRequest(r.class, id, core.Params(params))
	if err != nil {
		return nil, err
	}
	resp, err := r.dispatch(ctx, OpFindOne, req)
	if err != nil {
		return nil, err
	}

	var obj T
	if err := r.factory.Serializer().Deserialize(resp.Body, r.factory.Format(), &obj); err != nil {
		return nil, r.opError(OpFindOne, resp.Status, err)
	}
	return &obj, nil
}

// FindAll retrieves the whole collection.
func (r *Repository[T]) FindAll(ctx context.Context, params ...core.Param) ([]*T, error) {
	req, err := r.factory.CreateFindAllRequest(r.class, core.Params(params))
	if err != nil {
		return nil, err
	}
	resp, err := r.dispatch(ctx, OpFindAll, req)
	if err != nil {
		return nil, err
	}

	var objs []T
	if len(resp.Body) > 0 {
		if err := r.factory.Serializer().Deserialize(resp.Body, r.factory.Format(), &objs); err != nil {
			return nil, r.opError(OpFindAll, resp.Status, err)
		}
	}

	result := make([]*T, 0, len(objs))
	for i := range objs {
		result = append(result, &objs[i])
	}
	return result, nil
}

// Remove deletes obj. It returns true once the server accepted the deletion; any other
// outcome is an error.
func (r *Repository[T]) Remove(ctx context.Context, obj *T, params ...core.Param) (bool, error) {
	if obj == nil {
		return false, &core.InvalidObjectError{Class: r.class, Reason: "cannot remove", Err: core.ErrNilObject}
	}
	req, err := r.factory.CreateDeleteRequest(obj, core.Params(params))
	if err != nil {
		return false, err
	}
	if _, err := r.dispatch(ctx, OpRemove, req); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repository[T]) dispatch(ctx context.Context, op string, req core.Request) (core.Response, error) {
	if r.logger != nil {
		r.logger.Debug("dispatching request", "op", op, "class", r.class, "method", req.Method, "url", req.URL)
	}

	resp, err := r.transport.Dispatch(ctx, req)
	if err != nil {
		if r.logger != nil {
			r.logger.Debug("dispatch failed", "op", op, "class", r.class, "error", err)
		}
		return core.Response{}, r.opError(op, 0, err)
	}
	if !resp.Success() {
		if r.logger != nil {
			r.logger.Debug("unexpected status", "op", op, "class", r.class, "status", resp.Status)
		}
		return resp, r.opError(op, resp.Status, &core.StatusError{Status: resp.Status, Body: resp.Body})
	}
	return resp, nil
}

func (r *Repository[T]) opError(op string, status int, err error) error {
	return &core.RepositoryOperationError{Op: op, Class: r.class, Status: status, Err: err}
}

var _ core.Repository[struct{}] = (*Repository[struct{}])(nil)

package core_test

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/restorm/pkg/core"
)

type Blog struct{ ID int }

type named struct{}

func (named) ClassName() string { return "Article" }

func TestClassOf(t *testing.T) {
	assert.Equal(t, "Blog", core.ClassOf(Blog{}))
	assert.Equal(t, "Blog", core.ClassOf(&Blog{}))
	assert.Equal(t, "Article", core.ClassOf(named{}))
	assert.Equal(t, "", core.ClassOf(nil))

	var pp **Blog
	assert.Equal(t, "Blog", core.TypeName(reflect.TypeOf(pp)))
}

func TestParams(t *testing.T) {
	p := core.Params{}.Add("b", "2").Add("a", "1").Add("b", "3")

	assert.Len(t, p, 3)
	assert.Equal(t, "b", p[0].Name, "order is kept")

	v, ok := p.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = p.Get("missing")
	assert.False(t, ok)
}

func TestRequest_Clone(t *testing.T) {
	req := core.Request{
		Method: http.MethodPut,
		URL:    "http://api.test/blogs/1",
		Header: http.Header{"Content-Type": {"application/json"}},
		Body:   []byte(`{"id":1}`),
	}

	c := req.Clone()
	c.Header.Set("Content-Type", "application/xml")
	c.Body[0] = '['

	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, `{"id":1}`, string(req.Body))
}

func TestResponse_Success(t *testing.T) {
	assert.True(t, core.Response{Status: 200}.Success())
	assert.True(t, core.Response{Status: 204}.Success())
	assert.False(t, core.Response{Status: 304}.Success())
	assert.False(t, core.Response{Status: 404}.Success())
	assert.False(t, core.Response{}.Success())
}

func TestErrors_Unwrap(t *testing.T) {
	cause := &core.StatusError{Status: 404}
	err := fmt.Errorf("outer: %w", &core.RepositoryOperationError{Op: "find-one", Class: "Blog", Status: 404, Err: cause})

	var status *core.StatusError
	assert.ErrorAs(t, err, &status)
	assert.Equal(t, 404, status.Status)
	assert.EqualError(t, errors.Unwrap(err), "find-one Blog: unexpected status 404")

	invalid := &core.InvalidObjectError{Class: "Blog", Reason: "cannot remove", Err: core.ErrNoIdentifier}
	assert.ErrorIs(t, invalid, core.ErrNoIdentifier)
	assert.EqualError(t, invalid, `invalid object of class "Blog": cannot remove: object has no identifier`)
}

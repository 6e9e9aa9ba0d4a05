package metadata_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/restorm/pkg/core"
	"github.com/aretw0/restorm/pkg/metadata"
)

type Blog struct {
	ID    int
	Title string
}

// countingSource records how often each class was looked up.
type countingSource struct {
	mu    sync.Mutex
	inner core.MetadataSource
	calls map[string]int
}

func newCountingSource(inner core.MetadataSource) *countingSource {
	return &countingSource{inner: inner, calls: make(map[string]int)}
}

func (c *countingSource) Lookup(class string) (core.Descriptor, bool) {
	c.mu.Lock()
	c.calls[class]++
	c.mu.Unlock()
	return c.inner.Lookup(class)
}

func (c *countingSource) count(class string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[class]
}

func blogSource() *metadata.StaticSource {
	src := metadata.NewStaticSource()
	metadata.Define(src, "blogs", "id", func(b *Blog) (any, bool) {
		return b.ID, b.ID != 0
	})
	return src
}

func TestRegistry_ResolveBlog(t *testing.T) {
	reg := metadata.NewRegistry(blogSource())

	md, err := reg.Resolve("Blog")
	require.NoError(t, err)
	assert.Equal(t, "Blog", md.Class)
	assert.Equal(t, "blogs", md.Resource)
	assert.Equal(t, "id", md.IdentifierField)
	assert.NotNil(t, md.Accessor)
}

func TestRegistry_ResolveIsCached(t *testing.T) {
	src := newCountingSource(blogSource())
	reg := metadata.NewRegistry(src)

	first, err := reg.Resolve("Blog")
	require.NoError(t, err)
	second, err := reg.Resolve("Blog")
	require.NoError(t, err)

	assert.Equal(t, first.Class, second.Class)
	assert.Equal(t, first.Resource, second.Resource)
	assert.Equal(t, first.IdentifierField, second.IdentifierField)
	assert.Equal(t, 1, src.count("Blog"), "source must be consulted once")
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_ConcurrentResolve(t *testing.T) {
	src := newCountingSource(blogSource())
	reg := metadata.NewRegistry(src)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := reg.Resolve("Blog"); err != nil {
				t.Errorf("Resolve failed: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, src.count("Blog"))
}

func TestRegistry_NotFound(t *testing.T) {
	src := newCountingSource(blogSource())
	reg := metadata.NewRegistry(src)

	_, err := reg.Resolve("Comment")
	var notFound *core.MetadataNotFoundError
	require.True(t, errors.As(err, &notFound), "expected MetadataNotFoundError, got %v", err)
	assert.Equal(t, "Comment", notFound.Class)
	assert.Equal(t, 0, reg.Len(), "failed resolution must not be cached")

	// Not cached: the source is asked again.
	_, _ = reg.Resolve("Comment")
	assert.Equal(t, 2, src.count("Comment"))
}

func TestRegistry_NilSource(t *testing.T) {
	reg := metadata.NewRegistry(nil)
	_, err := reg.Resolve("Blog")
	var notFound *core.MetadataNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestRegistry_InvalidResource(t *testing.T) {
	tests := []struct {
		name     string
		resource string
	}{
		{"empty", ""},
		{"uppercase", "Blogs"},
		{"spaces", "my blogs"},
		{"leading slash", "/blogs"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := metadata.NewStaticSource().Register("Blog", core.Descriptor{Resource: tc.resource})
			reg := metadata.NewRegistry(src)

			_, err := reg.Resolve("Blog")
			var invalid *core.InvalidMetadataError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, 0, reg.Len())
		})
	}
}

func TestRegistry_NestedResourceAndDefaultField(t *testing.T) {
	src := metadata.NewStaticSource().Register("Comment", core.Descriptor{Resource: "blogs/comments"})
	reg := metadata.NewRegistry(src)

	md, err := reg.Resolve("Comment")
	require.NoError(t, err)
	assert.Equal(t, "blogs/comments", md.Resource)
	assert.Equal(t, core.DefaultIdentifierField, md.IdentifierField)
}

func TestRegistry_ResolveObject(t *testing.T) {
	reg := metadata.NewRegistry(blogSource())

	md, err := reg.ResolveObject(&Blog{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, "blogs", md.Resource)

	_, err = reg.ResolveObject(nil)
	var invalid *core.InvalidObjectError
	assert.ErrorAs(t, err, &invalid)
}

func TestRegistry_State(t *testing.T) {
	reg := metadata.NewRegistry(blogSource())
	_, _ = reg.Resolve("Blog")
	_, _ = reg.Resolve("Missing")

	state, ok := reg.State().(metadata.RegistryState)
	require.True(t, ok)
	assert.Equal(t, []string{"Blog"}, state.Classes)
	assert.Equal(t, 2, state.Lookups)
	assert.Equal(t, "static-source", state.SourceType)
}

func TestChain(t *testing.T) {
	first := metadata.NewStaticSource().Register("Blog", core.Descriptor{Resource: "blogs"})
	second := metadata.NewStaticSource().
		Register("Blog", core.Descriptor{Resource: "posts"}).
		Register("Comment", core.Descriptor{Resource: "comments"})

	chain := metadata.Chain{nil, first, second}

	desc, ok := chain.Lookup("Blog")
	require.True(t, ok)
	assert.Equal(t, "blogs", desc.Resource)

	desc, ok = chain.Lookup("Comment")
	require.True(t, ok)
	assert.Equal(t, "comments", desc.Resource)

	_, ok = chain.Lookup("Tag")
	assert.False(t, ok)
}

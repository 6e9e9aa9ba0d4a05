package repository_test

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/restorm/pkg/adapters/codec"
	"github.com/aretw0/restorm/pkg/adapters/httpx"
	"github.com/aretw0/restorm/pkg/core"
	"github.com/aretw0/restorm/pkg/metadata"
	"github.com/aretw0/restorm/pkg/repository"
	"github.com/aretw0/restorm/pkg/request"
)

// blogAPI is an in-memory REST collection served with chi.
type blogAPI struct {
	mu     sync.Mutex
	nextID int
	blogs  map[int]Blog
}

func newBlogAPI() http.Handler {
	api := &blogAPI{nextID: 1, blogs: make(map[int]Blog)}

	r := chi.NewRouter()
	r.Route("/blogs", func(r chi.Router) {
		r.Get("/", api.list)
		r.Post("/", api.create)
		r.Get("/{id}", api.get)
		r.Put("/{id}", api.update)
		r.Delete("/{id}", api.delete)
	})
	return r
}

func (a *blogAPI) list(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Blog, 0, len(a.blogs))
	for _, b := range a.blogs {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (a *blogAPI) create(w http.ResponseWriter, r *http.Request) {
	var b Blog
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a.mu.Lock()
	b.ID = a.nextID
	a.nextID++
	a.blogs[b.ID] = b
	a.mu.Unlock()
	writeJSON(w, http.StatusCreated, b)
}

func (a *blogAPI) get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	a.mu.Lock()
	b, ok := a.blogs[id]
	a.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (a *blogAPI) update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var b Blog
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.blogs[id]; !ok {
		http.NotFound(w, r)
		return
	}
	b.ID = id
	a.blogs[id] = b
	w.WriteHeader(http.StatusNoContent)
}

func (a *blogAPI) delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.blogs[id]; !ok {
		http.NotFound(w, r)
		return
	}
	delete(a.blogs, id)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestRepository_AgainstServer(t *testing.T) {
	srv := httptest.NewServer(newBlogAPI())
	defer srv.Close()

	f := newFactory(t)
	urls, err := httpx.NewURLGenerator(srv.URL)
	require.NoError(t, err)
	f = request.NewFactory(f.Registry(), urls, f.Serializer(), core.FormatJSON)

	repo := repository.New[Blog](f, httpx.NewTransport(httpx.TransportConfig{Client: srv.Client()}))
	ctx := context.Background()

	// 1. Create
	created, err := repo.Save(ctx, &Blog{Title: "first"})
	require.NoError(t, err)
	require.Equal(t, 1, created.ID)

	_, err = repo.Save(ctx, &Blog{Title: "second"})
	require.NoError(t, err)

	// 2. Update
	created.Title = "first, edited"
	_, err = repo.Save(ctx, created)
	require.NoError(t, err)

	got, err := repo.FindOneByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "first, edited", got.Title)

	// 3. List
	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "second", all[1].Title)

	// 4. Remove
	ok, err := repo.Remove(ctx, got)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.FindOneByID(ctx, 1)
	var opErr *core.RepositoryOperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, http.StatusNotFound, opErr.Status)

	// Pre-assigned identifiers always update.
	_, err = repo.Save(ctx, &Blog{ID: 99, Title: "client id"})
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, repository.OpSave, opErr.Op)
	assert.Equal(t, http.StatusNotFound, opErr.Status)
}

type Tag struct {
	XMLName xml.Name `xml:"tag"`
	Slug    string   `xml:"slug,attr"`
	Label   string   `xml:"label"`
}

func TestRepository_XML(t *testing.T) {
	var gotContentType string
	r := chi.NewRouter()
	r.Get("/tags", func(w http.ResponseWriter, req *http.Request) {
		gotContentType = req.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(`<tags><tag slug="go"><label>Go</label></tag><tag slug="rest"><label>REST</label></tag></tags>`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	src := metadata.NewStaticSource()
	metadata.Define(src, "tags", "slug", func(tag *Tag) (any, bool) {
		return tag.Slug, tag.Slug != ""
	})
	urls, err := httpx.NewURLGenerator(srv.URL)
	require.NoError(t, err)
	f := request.NewFactory(metadata.NewRegistry(src), urls, codec.New(nil), core.FormatXML)

	repo := repository.New[Tag](f, httpx.NewTransport(httpx.TransportConfig{}))
	tags, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "rest", tags[1].Slug)
	assert.Equal(t, "REST", tags[1].Label)
	assert.Equal(t, "application/xml", gotContentType)
}

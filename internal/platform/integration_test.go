package platform_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/restorm/internal/platform"
	"github.com/aretw0/restorm/pkg/record"
	"github.com/aretw0/restorm/pkg/repository"
)

func setupClient(t *testing.T, handler http.Handler, opts ...platform.Option) *platform.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	baseOpts := []platform.Option{
		platform.WithBaseURL(srv.URL),
		platform.WithHTTPClient(srv.Client()),
	}
	c, err := platform.New(append(baseOpts, opts...)...)
	if err != nil {
		t.Fatalf("Failed to build client: %v", err)
	}
	return c
}

func TestClient_RecordRoundTrip(t *testing.T) {
	var created map[string]any

	r := chi.NewRouter()
	r.Post("/notes", func(w http.ResponseWriter, req *http.Request) {
		if err := json.NewDecoder(req.Body).Decode(&created); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		created["uid"] = "n-1"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)
	})
	r.Get("/notes/{uid}", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"uid": chi.URLParam(req, "uid"), "text": "hi"})
	})

	c := setupClient(t, r, platform.WithResource("Note", "notes", "uid"))
	notes := platform.NewRepository[record.Record](c, repository.WithClass("Note"))
	ctx := context.TODO()

	n := record.New("Note")
	n.Set("text", "hi")

	saved, err := notes.Save(ctx, n)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if created["text"] != "hi" {
		t.Errorf("server received %v", created)
	}
	if saved.Fields["uid"] != "n-1" {
		t.Errorf("expected uid n-1, got %v", saved.Fields["uid"])
	}
	if _, ok := n.Fields["uid"]; ok {
		t.Error("original record must not be modified")
	}

	found, err := notes.FindOneByID(ctx, "n-1")
	if err != nil {
		t.Fatalf("FindOneByID failed: %v", err)
	}
	if found.Fields["text"] != "hi" {
		t.Errorf("unexpected record: %+v", found)
	}
}

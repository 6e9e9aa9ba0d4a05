package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/aretw0/restorm"
	"github.com/aretw0/restorm/internal/platform"
	"github.com/aretw0/restorm/pkg/core"
	"github.com/aretw0/restorm/pkg/metadata"
	"github.com/aretw0/restorm/pkg/record"
	"github.com/aretw0/restorm/pkg/repository"
)

// session holds what every subcommand needs: the loaded config, the declaration files and
// a client built from both.
type session struct {
	cfg    *platform.Config
	files  *metadata.FileSource
	client *restorm.Client
}

func openSession() (*session, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := platform.LoadConfig(wd, configFile)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if format != "" {
		cfg.Format = format
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	files, err := metadata.NewFileSource(metadata.FileConfig{
		Patterns: cfg.ResourcePatterns(),
		Logger:   slog.Default(),
	})
	if err != nil {
		return nil, err
	}

	// Listing declarations and dry runs work without an API root.
	base := cfg.BaseURL
	if base == "" {
		base = "http://localhost"
	}

	client, err := restorm.New(
		restorm.WithFormat(core.Format(cfg.Format)),
		restorm.WithBaseURL(base),
		restorm.WithPathSuffix(cfg.PathSuffix),
		restorm.WithStrict(cfg.Strict),
		restorm.WithMetadataSource(files),
		restorm.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		restorm.WithUserAgent(cfg.UserAgent),
		restorm.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, files: files, client: client}, nil
}

// repository returns a repository for records of class. It fails when no API root is
// configured.
func (s *session) repository(class string) (*restorm.Repository[record.Record], error) {
	if s.cfg.BaseURL == "" {
		return nil, fmt.Errorf("no base_url configured (set it in restorm.yaml, RESTORM_BASE_URL or --base-url)")
	}
	return restorm.NewRepository[record.Record](s.client, repository.WithClass(class)), nil
}

// identified returns a record of class carrying id in its identifier field.
func (s *session) identified(class, id string) (*record.Record, error) {
	md, err := s.client.Registry.Resolve(class)
	if err != nil {
		return nil, err
	}
	rec := record.New(class)
	rec.Set(md.IdentifierField, id)
	return rec, nil
}

// write prints v in the session's format. JSON is indented.
func (s *session) write(w io.Writer, v any) error {
	f := s.client.Factory.Format()
	data, err := s.client.Factory.Serializer().Serialize(v, f, core.DefaultView)
	if err != nil {
		return err
	}
	if f == core.FormatJSON {
		var out bytes.Buffer
		if err := json.Indent(&out, data, "", "  "); err == nil {
			data = out.Bytes()
		}
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// parseParams turns key=value flags into ordered query parameters.
func parseParams(raw []string) (core.Params, error) {
	var params core.Params
	for _, p := range raw {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", p)
		}
		params = params.Add(key, value)
	}
	return params, nil
}

// printRequest writes a request the way it would go on the wire.
func printRequest(w io.Writer, req core.Request) {
	fmt.Fprintf(w, "%s %s\n", req.Method, req.URL)

	names := make([]string, 0, len(req.Header))
	for name := range req.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range req.Header[name] {
			fmt.Fprintf(w, "%s: %s\n", name, v)
		}
	}
	if len(req.Body) > 0 {
		fmt.Fprintf(w, "\n%s\n", req.Body)
	}
}

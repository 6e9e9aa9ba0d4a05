package metadata

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/restorm/pkg/core"
)

// declarationFile is the YAML layout of a resource declaration file:
//
//	resources:
//	  - class: Blog
//	    resource: blogs
//	    identifier: id
type declarationFile struct {
	Resources []declaration `yaml:"resources"`
}

type declaration struct {
	Class      string `yaml:"class"`
	Resource   string `yaml:"resource"`
	Identifier string `yaml:"identifier"`
}

// FileConfig configures a FileSource.
type FileConfig struct {
	// Patterns are doublestar globs, e.g. "config/resources/**/*.yaml".
	Patterns []string
	Logger   *slog.Logger
}

// FileSource is a MetadataSource backed by YAML declaration files.
// Descriptors from files carry no accessor, so objects must expose their identifier
// through core.FieldGetter or core.Identifiable.
type FileSource struct {
	config FileConfig

	mu          sync.RWMutex
	descriptors map[string]core.Descriptor
	files       []string
	loadedAt    time.Time
	watching    bool
	events      chan lifecycle.Event
}

// NewFileSource creates a FileSource and loads the files matching its patterns.
func NewFileSource(config FileConfig) (*FileSource, error) {
	s := &FileSource{
		config:      config,
		descriptors: make(map[string]core.Descriptor),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Lookup implements core.MetadataSource.
func (s *FileSource) Lookup(class string) (core.Descriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	desc, ok := s.descriptors[class]
	return desc, ok
}

// Classes lists the declared classes, sorted.
func (s *FileSource) Classes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	classes := make([]string, 0, len(s.descriptors))
	for class := range s.descriptors {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

// Load (re)reads every file matching the patterns. On error the previous declarations are kept.
func (s *FileSource) Load() error {
	files, err := s.matchFiles()
	if err != nil {
		return err
	}

	descriptors := make(map[string]core.Descriptor)
	origin := make(map[string]string)
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read resource declarations: %w", err)
		}
		decls, err := ParseDeclarations(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		for class, desc := range decls {
			if prev, dup := origin[class]; dup {
				return fmt.Errorf("class %q declared in both %s and %s", class, prev, file)
			}
			origin[class] = file
			descriptors[class] = desc
		}
	}

	s.mu.Lock()
	s.descriptors = descriptors
	s.files = files
	s.loadedAt = time.Now()
	s.mu.Unlock()

	if s.config.Logger != nil {
		s.config.Logger.Debug("resource declarations loaded", "files", len(files), "classes", len(descriptors))
	}
	return nil
}

func (s *FileSource) matchFiles() ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range s.config.Patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// ParseDeclarations reads a YAML declaration document.
func ParseDeclarations(r io.Reader) (map[string]core.Descriptor, error) {
	var doc declarationFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return map[string]core.Descriptor{}, nil
		}
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	out := make(map[string]core.Descriptor, len(doc.Resources))
	for i, d := range doc.Resources {
		if d.Class == "" {
			return nil, fmt.Errorf("resources[%d]: missing class", i)
		}
		if d.Resource == "" {
			return nil, fmt.Errorf("resources[%d] (%s): missing resource", i, d.Class)
		}
		if _, dup := out[d.Class]; dup {
			return nil, fmt.Errorf("resources[%d]: class %q declared twice", i, d.Class)
		}
		out[d.Class] = core.Descriptor{
			Resource:        d.Resource,
			IdentifierField: d.Identifier,
		}
	}
	return out, nil
}

package factory

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Registration declares implementation names for one factory type, in
// declaration order.
type Registration struct {
	FactoryType     string
	Implementations []string
}

// Source supplies declarative registry entries for a scope. Sources are read
// once per scope on first lookup and merged in the order they were added.
type Source interface {
	// Name identifies the source in diagnostics.
	Name() string
	// Load returns the declared registrations.
	Load() ([]Registration, error)
}

// MapSource is an in-memory registry source.
type MapSource struct {
	name string
	regs []Registration
}

// NewMapSource creates a source from literal registrations. The registrations
// must not be mutated afterwards.
func NewMapSource(name string, regs ...Registration) *MapSource {
	return &MapSource{name: name, regs: regs}
}

func (s *MapSource) Name() string { return s.name }

func (s *MapSource) Load() ([]Registration, error) { return s.regs, nil }

// FileSource reads registrations from a YAML or JSON file mapping each
// factory type name to a list of implementation names or to a single
// comma-delimited string.
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by the file at path. The format is
// chosen by file extension.
func NewFileSource(path string) *FileSource { return &FileSource{path: path} }

func (s *FileSource) Name() string { return s.path }

func (s *FileSource) Load() ([]Registration, error) {
	k := koanf.New(".")
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, &ParseError{Source: s.path, Err: fmt.Errorf("unsupported registry format: %s", filepath.Ext(s.path))}
	}
	if err := k.Load(file.Provider(s.path), parser); err != nil {
		return nil, &ParseError{Source: s.path, Err: err}
	}

	raw := k.Raw()
	types := make([]string, 0, len(raw))
	for name := range raw {
		types = append(types, name)
	}
	// Declaration order across factory types is not significant; sort for
	// deterministic output.
	sort.Strings(types)

	regs := make([]Registration, 0, len(types))
	for _, name := range types {
		impls, err := implementationNames(raw[name])
		if err != nil {
			return nil, &ParseError{Source: s.path, Err: fmt.Errorf("entry %q: %w", name, err)}
		}
		regs = append(regs, Registration{FactoryType: name, Implementations: impls})
	}
	return regs, nil
}

func implementationNames(v any) ([]string, error) {
	switch val := v.(type) {
	case string:
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			name, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("implementation name must be a string, got %T", item)
			}
			if name = strings.TrimSpace(name); name != "" {
				out = append(out, name)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("value must be a string or a list of strings, got %T", v)
	}
}

package factory

import (
	"errors"
	"sort"
	"sync"
)

// Process-wide discovery cache keyed by scope identity. A scope's sources are
// parsed once, on first lookup, into an immutable snapshot covering every
// factory type the scope declares. Population is single-flight per scope;
// reads after population never re-parse.
var cache = &scopeCache{
	entries: make(map[*Scope]map[string][]string),
	locks:   make(map[*Scope]*sync.Mutex),
}

type scopeCache struct {
	mu      sync.Mutex
	entries map[*Scope]map[string][]string
	locks   map[*Scope]*sync.Mutex
}

// ClearCache drops every cached discovery snapshot. Intended for tests; the
// next lookup against each scope re-parses its sources.
func ClearCache() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	// Per-scope population locks are kept so that a clear racing an in-flight
	// population stays mutually exclusive with the re-population that follows.
	cache.entries = make(map[*Scope]map[string][]string)
}

// CachedScopes reports how many scopes currently have a cached snapshot.
func CachedScopes() int {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return len(cache.entries)
}

func discovered(scope *Scope) (map[string][]string, error) {
	cache.mu.Lock()
	if m, ok := cache.entries[scope]; ok {
		cache.mu.Unlock()
		return m, nil
	}
	lk := cache.locks[scope]
	if lk == nil {
		lk = &sync.Mutex{}
		cache.locks[scope] = lk
	}
	cache.mu.Unlock()

	lk.Lock()
	defer lk.Unlock()

	cache.mu.Lock()
	if m, ok := cache.entries[scope]; ok {
		cache.mu.Unlock()
		return m, nil
	}
	cache.mu.Unlock()

	m, err := parseSources(scope)
	if err != nil {
		// Parse failures are not cached; the next lookup retries.
		return nil, err
	}
	cache.mu.Lock()
	cache.entries[scope] = m
	cache.mu.Unlock()
	return m, nil
}

// parseSources merges every source of the scope in source-then-declaration
// order, keeping only the first occurrence of each implementation name per
// factory type.
func parseSources(scope *Scope) (map[string][]string, error) {
	merged := make(map[string][]string)
	seen := make(map[string]map[string]struct{})
	for _, src := range scope.sourcesSnapshot() {
		regs, err := src.Load()
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				return nil, err
			}
			return nil, &ParseError{Source: src.Name(), Err: err}
		}
		for _, reg := range regs {
			dedup := seen[reg.FactoryType]
			if dedup == nil {
				dedup = make(map[string]struct{})
				seen[reg.FactoryType] = dedup
			}
			for _, impl := range reg.Implementations {
				if impl == "" {
					continue
				}
				if _, dup := dedup[impl]; dup {
					continue
				}
				dedup[impl] = struct{}{}
				merged[reg.FactoryType] = append(merged[reg.FactoryType], impl)
			}
		}
	}
	return merged, nil
}

func namesFor(scope *Scope, factoryType string) ([]string, error) {
	m, err := discovered(scope)
	if err != nil {
		return nil, err
	}
	names := m[factoryType]
	out := make([]string, len(names))
	copy(out, names)
	return out, nil
}

// Entries returns the merged, deduplicated registrations of the scope, sorted
// by factory type name. A nil scope means the default scope.
func Entries(scope *Scope) ([]Registration, error) {
	m, err := discovered(orDefault(scope))
	if err != nil {
		return nil, err
	}
	types := make([]string, 0, len(m))
	for name := range m {
		types = append(types, name)
	}
	sort.Strings(types)
	out := make([]Registration, 0, len(types))
	for _, name := range types {
		impls := make([]string, len(m[name]))
		copy(impls, m[name])
		out = append(out, Registration{FactoryType: name, Implementations: impls})
	}
	return out, nil
}

// Package queries is a read-only catalog of example graph queries. The
// queries are listed for operators; nothing in this module executes them.
package queries

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed queries.yaml
var catalogYAML []byte

type Query struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Cypher      string `yaml:"cypher"`
}

type catalog struct {
	Queries []Query `yaml:"queries"`
}

var (
	loadOnce sync.Once
	loaded   map[string]Query
	loadErr  error
)

func load() (map[string]Query, error) {
	loadOnce.Do(func() {
		loaded, loadErr = parseCatalog(catalogYAML)
	})
	return loaded, loadErr
}

func parseCatalog(data []byte) (map[string]Query, error) {
	var parsed catalog
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode query catalog: %w", err)
	}

	byName := make(map[string]Query, len(parsed.Queries))
	for index, query := range parsed.Queries {
		query.Name = strings.TrimSpace(query.Name)
		query.Cypher = strings.TrimSpace(query.Cypher)
		if query.Name == "" {
			return nil, fmt.Errorf("query %d has no name", index)
		}
		if query.Cypher == "" {
			return nil, fmt.Errorf("query %q has no cypher text", query.Name)
		}
		if _, exists := byName[query.Name]; exists {
			return nil, fmt.Errorf("duplicate query %q", query.Name)
		}
		byName[query.Name] = query
	}
	return byName, nil
}

// Names returns the catalog's query names in sorted order.
func Names() ([]string, error) {
	byName, err := load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Get returns one query by name.
func Get(name string) (Query, error) {
	byName, err := load()
	if err != nil {
		return Query{}, err
	}
	query, ok := byName[strings.TrimSpace(name)]
	if !ok {
		return Query{}, fmt.Errorf("unknown query %q", name)
	}
	return query, nil
}

// Package catalog loads the ticket catalog from files.
//
// Both JSON and YAML use the flat layout: each top level key is a ticket type,
// except "extras" which holds the extras table.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"museum/entity"
)

//go:embed tickets.json
var defaultCatalog []byte

// Default returns the catalog shipped with the service.
func Default() (entity.Catalog, error) {
	return ParseJSON(defaultCatalog)
}

// Load reads a catalog file. The format is picked by extension: .yaml and .yml
// are YAML, anything else is JSON.
func Load(path string) (entity.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.Catalog{}, fmt.Errorf("could not read catalog file: %w", err)
	}

	var c entity.Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		c, err = ParseYAML(data)
	default:
		c, err = ParseJSON(data)
	}
	if err != nil {
		return entity.Catalog{}, fmt.Errorf("could not parse catalog file %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return entity.Catalog{}, err
	}

	return c, nil
}

func ParseJSON(data []byte) (entity.Catalog, error) {
	var c entity.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return entity.Catalog{}, err
	}
	return c, nil
}

func ParseYAML(data []byte) (entity.Catalog, error) {
	var flat map[string]yaml.Node
	if err := yaml.Unmarshal(data, &flat); err != nil {
		return entity.Catalog{}, err
	}

	c := entity.Catalog{
		TicketTypes: make(map[string]entity.TicketCategory, len(flat)),
		Extras:      map[string]entity.ExtraItem{},
	}

	for name, node := range flat {
		if name == entity.ExtrasKey {
			if err := node.Decode(&c.Extras); err != nil {
				return entity.Catalog{}, fmt.Errorf("could not decode extras: %w", err)
			}
			continue
		}

		var category entity.TicketCategory
		if err := node.Decode(&category); err != nil {
			return entity.Catalog{}, fmt.Errorf("could not decode ticket type %q: %w", name, err)
		}
		c.TicketTypes[name] = category
	}

	return c, nil
}

package wfc

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// CatalogYAML represents a tile catalog file
type CatalogYAML struct {
	Name  string     `yaml:"name"`
	Tiles []TileYAML `yaml:"tiles"`
}

// TileYAML represents a single tile in a catalog file.
// Missing edges default to none.
type TileYAML struct {
	Symbol string `yaml:"symbol"`
	Left   string `yaml:"left"`
	Up     string `yaml:"up"`
	Right  string `yaml:"right"`
	Down   string `yaml:"down"`
}

// LoadCatalogFromYAML loads and validates a tile catalog from a YAML file
func LoadCatalogFromYAML(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog builds and validates a catalog from YAML data
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalogYAML CatalogYAML
	if err := yaml.Unmarshal(data, &catalogYAML); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	catalog, err := catalogYAML.ToCatalog()
	if err != nil {
		return nil, err
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// ToCatalog converts the YAML representation into a Catalog
func (cy *CatalogYAML) ToCatalog() (*Catalog, error) {
	tiles := make([]Tile, 0, len(cy.Tiles))

	for i, ty := range cy.Tiles {
		// Every cell renders as exactly one character
		if utf8.RuneCountInString(ty.Symbol) != 1 {
			return nil, fmt.Errorf("tile %d: symbol %q must be a single character", i, ty.Symbol)
		}
		symbol, size := utf8.DecodeRuneInString(ty.Symbol)
		if symbol == utf8.RuneError && size == 1 {
			return nil, fmt.Errorf("tile %d: symbol %q is not valid UTF-8", i, ty.Symbol)
		}

		var edges [4]Connection
		for dir, name := range [4]string{ty.Left, ty.Up, ty.Right, ty.Down} {
			conn, err := ParseConnection(name)
			if err != nil {
				return nil, fmt.Errorf("tile %d (%s) %s edge: %w", i, ty.Symbol, Direction(dir), err)
			}
			edges[dir] = conn
		}

		tiles = append(tiles, Tile{Symbol: symbol, Edges: edges})
	}

	return NewCatalog(tiles), nil
}

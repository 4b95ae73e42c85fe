// Package catalog holds the option lists used by the asset forms: asset
// types, locations, units and statuses. The defaults ship embedded; a
// deployment can replace them with its own YAML file.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultYAML []byte

// Catalog is the set of selectable values.
type Catalog struct {
	Types         []string `yaml:"tipos" json:"tipos"`
	Locations     []string `yaml:"localizacoes" json:"localizacoes"`
	Units         []string `yaml:"unidades" json:"unidades"`
	Statuses      []string `yaml:"status" json:"status"`
	DefaultStatus string   `yaml:"status_padrao" json:"status_padrao"`
	PageSize      int      `yaml:"itens_por_pagina" json:"itens_por_pagina"`
}

// Default returns the embedded catalog. It panics only if the embedded file
// is malformed, which the package tests rule out.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded defaults: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file. An empty path returns the defaults.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and checks a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	var missing []string
	if len(c.Types) == 0 {
		missing = append(missing, "tipos")
	}
	if len(c.Units) == 0 {
		missing = append(missing, "unidades")
	}
	if len(c.Statuses) == 0 {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return fmt.Errorf("catalog: empty lists: %s", strings.Join(missing, ", "))
	}
	if c.DefaultStatus == "" {
		c.DefaultStatus = c.Statuses[0]
	}
	if !containsFold(c.Statuses, c.DefaultStatus) {
		return fmt.Errorf("catalog: status_padrao %q is not in status", c.DefaultStatus)
	}
	if c.PageSize <= 0 {
		c.PageSize = 20
	}
	return nil
}

// HasStatus reports whether s is a known status.
func (c *Catalog) HasStatus(s string) bool {
	return containsFold(c.Statuses, s)
}

// HasUnit reports whether u is a known unit.
func (c *Catalog) HasUnit(u string) bool {
	return containsFold(c.Units, u)
}

func containsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	return slices.ContainsFunc(list, func(item string) bool {
		return strings.EqualFold(item, s)
	})
}

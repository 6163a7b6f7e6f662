package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nhath/ezquery/internal/catalog"
	"github.com/nhath/ezquery/internal/source"
)

// TableConfig registers a logical table. Location is a path (relative to
// data_dir), an http(s) URL, or a sqlite://, postgres:// or mysql:// DSN
// with an optional #table fragment.
type TableConfig struct {
	Name     string `toml:"name"`
	Location string `toml:"location"`
	TokenKey string `toml:"token_key,omitempty"`
}

// Sources returns the built-in Northwind tables followed by configured
// tables. A configured table with a built-in name replaces it.
func (c *Config) Sources() []source.Source {
	out := source.DefaultSources()
	for _, t := range c.Tables {
		s := source.Source{Name: strings.ToLower(t.Name), Location: t.Location, TokenKey: t.TokenKey}
		replaced := false
		for i := range out {
			if out[i].Name == s.Name {
				out[i] = s
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, s)
		}
	}
	return out
}

// Registry builds the table registry. Secrets are read from the system
// keyring on first use.
func (c *Config) Registry(logger *slog.Logger) *source.Registry {
	return source.NewRegistry(c.Sources(),
		source.WithDataDir(c.DataDir),
		source.WithTokens(&lazyTokens{}),
		source.WithLogger(logger),
	)
}

// Catalog returns the predefined queries with configured ones merged in
func (c *Config) Catalog() *catalog.Catalog {
	return catalog.New(c.Queries...)
}

// GetTable retrieves a configured table by name
func (c *Config) GetTable(name string) (*TableConfig, error) {
	for i := range c.Tables {
		if strings.EqualFold(c.Tables[i].Name, name) {
			return &c.Tables[i], nil
		}
	}
	return nil, fmt.Errorf("table not configured: %s", name)
}

// AddTable registers a new table, or updates the location of an existing one
func (c *Config) AddTable(t TableConfig) error {
	if t.Name == "" || t.Location == "" {
		return fmt.Errorf("table needs both name and location")
	}
	if existing, err := c.GetTable(t.Name); err == nil {
		*existing = t
		return nil
	}
	c.Tables = append(c.Tables, t)
	return nil
}

// RemoveTable removes a configured table
func (c *Config) RemoveTable(name string) error {
	for i := range c.Tables {
		if strings.EqualFold(c.Tables[i].Name, name) {
			c.Tables = append(c.Tables[:i], c.Tables[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("table not configured: %s", name)
}

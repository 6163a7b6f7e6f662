// Package config loads and saves the ezquery TOML configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/nhath/ezquery/internal/catalog"
	"github.com/nhath/ezquery/internal/history"
)

// Config represents the application configuration
type Config struct {
	DataDir         string                    `toml:"data_dir"`
	ExportDir       string                    `toml:"export_dir"`
	PageSize        int                       `toml:"page_size"`
	PageSizeOptions []int                     `toml:"page_size_options"`
	HistoryCapacity int                       `toml:"history_capacity"`
	PersistHistory  bool                      `toml:"persist_history"`
	ViewMode        string                    `toml:"view_mode"` // paginated, virtual
	ThemeName       string                    `toml:"theme"`     // dark, light
	Pager           string                    `toml:"pager"`
	Virtual         VirtualConfig             `toml:"virtual"`
	Query           QueryConfig               `toml:"query"`
	Tables          []TableConfig             `toml:"tables"`
	Queries         []catalog.PredefinedQuery `toml:"queries"`
	Keys            KeyMap                    `toml:"keys"`
	Theme           Theme                     `toml:"theme_colors"`
}

// VirtualConfig tunes the virtual-scroll grid
type VirtualConfig struct {
	RowHeight int `toml:"row_height"`
	Overscan  int `toml:"overscan"`
}

// QueryConfig tunes query execution
type QueryConfig struct {
	Delay Duration `toml:"delay"`
}

// Duration is a time.Duration written as a string such as "300ms"
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// KeyMap defines key bindings
type KeyMap struct {
	Run          []string `toml:"run"`
	ExportCSV    []string `toml:"export_csv"`
	ExportJSON   []string `toml:"export_json"`
	ClearResults []string `toml:"clear_results"`
	Help         []string `toml:"help"`
	ToggleView   []string `toml:"toggle_view"`
	ToggleTheme  []string `toml:"toggle_theme"`
	History      []string `toml:"history"`
	Queries      []string `toml:"queries"`
	Search       []string `toml:"search"`
	Focus        []string `toml:"focus"`
	NextPage     []string `toml:"next_page"`
	PrevPage     []string `toml:"prev_page"`
	PageSize     []string `toml:"page_size"`
	Sort         []string `toml:"sort"`
	Copy         []string `toml:"copy"`
	Pager        []string `toml:"pager"`
	Exit         []string `toml:"exit"`
}

// DefaultDataDir is where the built-in table CSV files are looked up
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, "ezquery", "data")
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		DataDir:         DefaultDataDir(),
		PageSize:        50,
		PageSizeOptions: []int{25, 50, 100, 200},
		HistoryCapacity: history.DefaultCapacity,
		PersistHistory:  true,
		ViewMode:        "paginated",
		ThemeName:       "dark",
		Virtual: VirtualConfig{
			RowHeight: 1,
			Overscan:  10,
		},
		Keys: DefaultKeys(),
	}
}

// DefaultKeys returns the default key bindings
func DefaultKeys() KeyMap {
	return KeyMap{
		Run:          []string{"ctrl+r", "ctrl+enter", "f5"},
		ExportCSV:    []string{"ctrl+e"},
		ExportJSON:   []string{"ctrl+j"},
		ClearResults: []string{"ctrl+x"},
		Help:         []string{"ctrl+_", "?"},
		ToggleView:   []string{"ctrl+v"},
		ToggleTheme:  []string{"ctrl+t"},
		History:      []string{"ctrl+h"},
		Queries:      []string{"ctrl+p"},
		Search:       []string{"/"},
		Focus:        []string{"tab"},
		NextPage:     []string{"n", "pgdown"},
		PrevPage:     []string{"b", "pgup"},
		PageSize:     []string{"z"},
		Sort:         []string{"s"},
		Copy:         []string{"ctrl+y"},
		Pager:        []string{"ctrl+o"},
		Exit:         []string{"ctrl+c", "ctrl+q"},
	}
}

// ConfigPath returns the XDG-compliant config file path
func ConfigPath() (string, error) {
	return xdg.ConfigFile("ezquery/config.toml")
}

// Load reads the config at path, or the default location when path is
// empty. A missing file is created with defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		// First run: create default
		cfg := DefaultConfig()
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.backfill(md)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// backfill populates defaults for keys absent from the file
func (c *Config) backfill(md toml.MetaData) {
	d := DefaultConfig()

	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if !md.IsDefined("page_size") {
		c.PageSize = d.PageSize
	}
	if len(c.PageSizeOptions) == 0 {
		c.PageSizeOptions = d.PageSizeOptions
	}
	if !md.IsDefined("history_capacity") {
		c.HistoryCapacity = d.HistoryCapacity
	}
	if !md.IsDefined("persist_history") {
		c.PersistHistory = d.PersistHistory
	}
	if c.ViewMode == "" {
		c.ViewMode = d.ViewMode
	}
	if c.ThemeName == "" {
		c.ThemeName = d.ThemeName
	}
	if !md.IsDefined("virtual", "row_height") {
		c.Virtual.RowHeight = d.Virtual.RowHeight
	}
	if !md.IsDefined("virtual", "overscan") {
		c.Virtual.Overscan = d.Virtual.Overscan
	}
	c.Keys.fill(d.Keys)
}

// fill replaces every empty binding with its default
func (k *KeyMap) fill(d KeyMap) {
	pairs := []struct {
		dst *[]string
		src []string
	}{
		{&k.Run, d.Run}, {&k.ExportCSV, d.ExportCSV}, {&k.ExportJSON, d.ExportJSON},
		{&k.ClearResults, d.ClearResults}, {&k.Help, d.Help}, {&k.ToggleView, d.ToggleView},
		{&k.ToggleTheme, d.ToggleTheme}, {&k.History, d.History}, {&k.Queries, d.Queries},
		{&k.Search, d.Search}, {&k.Focus, d.Focus}, {&k.NextPage, d.NextPage},
		{&k.PrevPage, d.PrevPage}, {&k.PageSize, d.PageSize}, {&k.Sort, d.Sort},
		{&k.Copy, d.Copy}, {&k.Pager, d.Pager}, {&k.Exit, d.Exit},
	}
	for _, p := range pairs {
		if len(*p.dst) == 0 {
			*p.dst = p.src
		}
	}
}

// Validate rejects values the rest of the program cannot work with
func (c *Config) Validate() error {
	var errs []error
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page_size must be positive, got %d", c.PageSize))
	}
	for _, n := range c.PageSizeOptions {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("page_size_options must be positive, got %d", n))
		}
	}
	if c.HistoryCapacity <= 0 {
		errs = append(errs, fmt.Errorf("history_capacity must be positive, got %d", c.HistoryCapacity))
	}
	if c.Virtual.RowHeight <= 0 {
		errs = append(errs, fmt.Errorf("virtual.row_height must be positive, got %d", c.Virtual.RowHeight))
	}
	if c.Virtual.Overscan < 0 {
		errs = append(errs, fmt.Errorf("virtual.overscan must not be negative, got %d", c.Virtual.Overscan))
	}
	if c.Query.Delay.Duration < 0 {
		errs = append(errs, fmt.Errorf("query.delay must not be negative, got %s", c.Query.Delay))
	}
	if c.ViewMode != "paginated" && c.ViewMode != "virtual" {
		errs = append(errs, fmt.Errorf("view_mode must be paginated or virtual, got %q", c.ViewMode))
	}
	for i, t := range c.Tables {
		if t.Name == "" || t.Location == "" {
			errs = append(errs, fmt.Errorf("tables[%d] needs both name and location", i))
		}
	}
	return errors.Join(errs...)
}

// NextPageSize returns the option after current, wrapping around
func (c *Config) NextPageSize(current int) int {
	if len(c.PageSizeOptions) == 0 {
		return current
	}
	i := slices.Index(c.PageSizeOptions, current)
	return c.PageSizeOptions[(i+1)%len(c.PageSizeOptions)]
}

// Save writes the config to path, or the default location when path is empty
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	// Ensure directory exists with secure permissions
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

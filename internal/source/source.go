// Package source resolves logical table names to their backing data and
// loads them as datasets. Tables may live in local CSV files, CSV served
// over HTTP, or whole tables of a sqlite, postgres or mysql database.
package source

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nhath/ezquery/internal/results"
)

// Dataset is a decoded table. Columns is the header order.
type Dataset struct {
	Columns []string
	Records []results.Record
}

// Len returns the number of records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Loader loads a logical table by name
type Loader interface {
	Load(ctx context.Context, table string) (*Dataset, error)
}

// Source binds a logical table name to the location of its data.
// TokenKey, when set, names a keyring secret used as HTTP bearer token
// or database password.
type Source struct {
	Name     string
	Location string
	TokenKey string
}

// Kind classifies a location by its scheme
type Kind string

const (
	KindFile     Kind = "file"
	KindHTTP     Kind = "http"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindMySQL    Kind = "mysql"
)

// Kind returns how the source's location is read
func (s Source) Kind() Kind {
	loc := strings.ToLower(s.Location)
	switch {
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return KindHTTP
	case strings.HasPrefix(loc, "sqlite://"), strings.HasPrefix(loc, "sqlite3://"):
		return KindSQLite
	case strings.HasPrefix(loc, "postgres://"), strings.HasPrefix(loc, "postgresql://"):
		return KindPostgres
	case strings.HasPrefix(loc, "mysql://"):
		return KindMySQL
	default:
		return KindFile
	}
}

// Redacted returns the location with any inline credentials masked
func (s Source) Redacted() string { return redact(s.Location) }

// TokenProvider looks up secrets by key
type TokenProvider interface {
	Token(key string) (string, error)
}

// NorthwindTables are the tables registered when no others are configured
var NorthwindTables = []string{
	"customers",
	"orders",
	"products",
	"employees",
	"order_details",
	"categories",
	"shippers",
	"suppliers",
	"territories",
	"regions",
	"employee_territories",
}

// DefaultSources maps every Northwind table to <name>.csv, resolved
// against the registry's data directory.
func DefaultSources() []Source {
	out := make([]Source, len(NorthwindTables))
	for i, name := range NorthwindTables {
		out[i] = Source{Name: name, Location: name + ".csv"}
	}
	return out
}

// Registry is the static table catalog. It is safe for concurrent use
// because it is never modified after construction.
type Registry struct {
	sources map[string]Source
	dataDir string
	tokens  TokenProvider
	client  *http.Client
	logger  *slog.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithDataDir sets the directory relative file locations are resolved against
func WithDataDir(dir string) Option {
	return func(r *Registry) { r.dataDir = dir }
}

// WithTokens sets the secret lookup used for sources with a TokenKey
func WithTokens(p TokenProvider) Option {
	return func(r *Registry) { r.tokens = p }
}

// WithHTTPClient overrides the client used for http sources
func WithHTTPClient(c *http.Client) Option {
	return func(r *Registry) { r.client = c }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry builds a registry. Names are matched case-insensitively;
// a later source with the same name replaces an earlier one.
func NewRegistry(sources []Source, opts ...Option) *Registry {
	r := &Registry{
		sources: make(map[string]Source, len(sources)),
		client:  http.DefaultClient,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, s := range sources {
		s.Name = strings.ToLower(s.Name)
		r.sources[s.Name] = s
	}
	return r
}

// Tables returns the registered names, sorted
func (r *Registry) Tables() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the source registered under name
func (r *Registry) Lookup(name string) (Source, bool) {
	s, ok := r.sources[strings.ToLower(name)]
	return s, ok
}

// Load fetches and decodes the table. Every call goes back to the source.
func (r *Registry) Load(ctx context.Context, table string) (*Dataset, error) {
	src, ok := r.Lookup(table)
	if !ok {
		return nil, &UnknownTableError{Table: table}
	}

	r.logger.Debug("loading table", "table", src.Name, "kind", src.Kind(), "location", redact(src.Location))

	var (
		ds  *Dataset
		err error
	)
	switch src.Kind() {
	case KindSQLite, KindPostgres, KindMySQL:
		ds, err = r.loadSQL(ctx, src)
	default:
		ds, err = r.loadCSV(ctx, src)
	}
	if err != nil {
		return nil, WrapTransportError(src.Name, err)
	}

	r.logger.Debug("table loaded", "table", src.Name, "records", ds.Len(), "columns", len(ds.Columns))
	return ds, nil
}

func (r *Registry) loadCSV(ctx context.Context, src Source) (*Dataset, error) {
	f := r.fetcher(src)
	rc, err := f.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return DecodeCSV(rc)
}

func (r *Registry) fetcher(src Source) Fetcher {
	if src.Kind() == KindHTTP {
		return &HTTPFetcher{Client: r.client, Tokens: r.tokens}
	}
	return &FileFetcher{Dir: r.dataDir}
}

// resolvePath resolves a relative file location against dir
func resolvePath(dir, loc string) string {
	loc = strings.TrimPrefix(loc, "file://")
	if filepath.IsAbs(loc) || dir == "" {
		return loc
	}
	return filepath.Join(dir, loc)
}

// redact hides credentials in a location before it is logged
func redact(loc string) string {
	scheme, rest, ok := strings.Cut(loc, "://")
	if !ok {
		return loc
	}
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return loc
	}
	return scheme + "://***@" + rest[at+1:]
}

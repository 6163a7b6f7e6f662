package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhath/ezquery/internal/results"
)

type staticTokens map[string]string

func (s staticTokens) Token(key string) (string, error) {
	if v, ok := s[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("no token for %s", key)
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestRegistry_UnknownTable(t *testing.T) {
	r := NewRegistry(DefaultSources())

	_, err := r.Load(context.Background(), "ghost_table")
	var ute *UnknownTableError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "ghost_table", ute.Table)
	assert.Equal(t, "table 'ghost_table' not found", err.Error())
}

func TestRegistry_Tables(t *testing.T) {
	r := NewRegistry(DefaultSources())
	tables := r.Tables()
	assert.Len(t, tables, 11)
	assert.Equal(t, "categories", tables[0])

	_, ok := r.Lookup("Customers")
	assert.True(t, ok)
}

func TestRegistry_LoadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shippers.csv", "ShipperID,CompanyName,Phone\n1,Speedy Express,(503) 555-9831\n2,United Package,(503) 555-3199\n")

	r := NewRegistry(DefaultSources(), WithDataDir(dir))
	ds, err := r.Load(context.Background(), "shippers")
	require.NoError(t, err)
	assert.Equal(t, []string{"ShipperID", "CompanyName", "Phone"}, ds.Columns)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, "United Package", ds.Records[1].Get("CompanyName").String())
}

func TestRegistry_LoadFileMissing(t *testing.T) {
	r := NewRegistry(DefaultSources(), WithDataDir(t.TempDir()))

	_, err := r.Load(context.Background(), "orders")
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "orders", te.Table)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRegistry_LoadFileEmptyIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "regions.csv", "RegionID,RegionDescription\n")

	r := NewRegistry(DefaultSources(), WithDataDir(dir))
	ds, err := r.Load(context.Background(), "regions")
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func TestRegistry_LoadHTTP(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path == "/missing.csv" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, "CategoryID,CategoryName\n1,Beverages\n2,Condiments\n")
	}))
	defer srv.Close()

	r := NewRegistry([]Source{
		{Name: "categories", Location: srv.URL + "/categories.csv", TokenKey: "northwind"},
		{Name: "missing", Location: srv.URL + "/missing.csv"},
		{Name: "locked", Location: srv.URL + "/categories.csv", TokenKey: "absent"},
	}, WithHTTPClient(srv.Client()), WithTokens(staticTokens{"northwind": "s3cret"}))

	ds, err := r.Load(context.Background(), "categories")
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, "Bearer s3cret", gotAuth)

	_, err = r.Load(context.Background(), "missing")
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Contains(t, err.Error(), "404")

	_, err = r.Load(context.Background(), "locked")
	require.True(t, errors.As(err, &te))
}

func TestRegistry_LoadSQLite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "northwind.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE suppliers (SupplierID INTEGER, CompanyName TEXT, Fax TEXT);
		INSERT INTO suppliers VALUES (1, 'Exotic Liquids', NULL);
		INSERT INTO suppliers VALUES (2, 'New Orleans Cajun Delights', '(100) 555-4822');
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	r := NewRegistry([]Source{
		{Name: "suppliers", Location: "sqlite://northwind.db"},
		{Name: "vendors", Location: "sqlite://" + path + "#suppliers"},
		{Name: "nope", Location: "sqlite://" + path + "#no_such_table"},
	}, WithDataDir(dir))

	for _, name := range []string{"suppliers", "vendors"} {
		ds, err := r.Load(context.Background(), name)
		require.NoError(t, err, name)
		assert.Equal(t, []string{"SupplierID", "CompanyName", "Fax"}, ds.Columns)
		require.Equal(t, 2, ds.Len())
		assert.Equal(t, "1", ds.Records[0].Get("SupplierID").String())
		assert.True(t, ds.Records[0].Get("Fax").IsNull())
	}

	_, err = r.Load(context.Background(), "nope")
	var te *TransportError
	assert.True(t, errors.As(err, &te))
}

func TestRegistry_LoadSQLiteKeepsKinds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shop.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE products (ProductID INTEGER, ProductName TEXT, UnitPrice REAL);
		INSERT INTO products VALUES (1, 'Chai', 9.5);
		INSERT INTO products VALUES (2, 'Chang', 100.0);
		INSERT INTO products VALUES (3, 'Aniseed Syrup', 10.0);
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	r := NewRegistry([]Source{{Name: "products", Location: "sqlite://" + path}})
	ds, err := r.Load(context.Background(), "products")
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	assert.Equal(t, results.KindNumber, ds.Records[0].Get("ProductID").Kind())
	assert.Equal(t, results.KindNumber, ds.Records[0].Get("UnitPrice").Kind())
	assert.Equal(t, results.KindString, ds.Records[0].Get("ProductName").Kind())

	sorted := results.Sort(ds.Records, "UnitPrice", results.Asc)
	var prices []string
	for _, rec := range sorted {
		prices = append(prices, rec.Get("UnitPrice").String())
	}
	assert.Equal(t, []string{"9.5", "10", "100"}, prices)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		kind results.Kind
		text string
	}{
		{nil, results.KindNull, ""},
		{int64(42), results.KindNumber, "42"},
		{int32(-7), results.KindNumber, "-7"},
		{float64(2.25), results.KindNumber, "2.25"},
		{float32(0.5), results.KindNumber, "0.5"},
		{true, results.KindBool, "true"},
		{[]byte("blob"), results.KindString, "blob"},
		{"text", results.KindString, "text"},
		{time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), results.KindString, "2024-05-01T08:00:00Z"},
	}
	for _, tt := range tests {
		v := formatValue(tt.in)
		assert.Equal(t, tt.kind, v.Kind(), "%#v", tt.in)
		assert.Equal(t, tt.text, v.String(), "%#v", tt.in)
	}
}

func TestSource_Kind(t *testing.T) {
	tests := map[string]Kind{
		"customers.csv":                    KindFile,
		"/abs/orders.csv":                  KindFile,
		"https://example.com/a.csv":        KindHTTP,
		"sqlite://data.db#orders":          KindSQLite,
		"postgres://u@localhost/northwind": KindPostgres,
		"mysql://u:p@tcp(localhost)/nw#x":  KindMySQL,
	}
	for loc, want := range tests {
		assert.Equal(t, want, Source{Location: loc}.Kind(), loc)
	}
}

func TestParseSQLLocation(t *testing.T) {
	pg := parseSQLLocation(Source{Name: "orders", Location: "postgres://u@localhost:5432/nw?sslmode=disable"}, "")
	assert.Equal(t, "postgres://u@localhost:5432/nw?sslmode=disable", pg.dsn)
	assert.Equal(t, "orders", pg.table)

	my := parseSQLLocation(Source{Name: "x", Location: "mysql://u:p@tcp(localhost:3306)/nw#Orders"}, "")
	assert.Equal(t, "u:p@tcp(localhost:3306)/nw", my.dsn)
	assert.Equal(t, "Orders", my.table)

	lite := parseSQLLocation(Source{Name: "x", Location: "sqlite://nw.db"}, "/data")
	assert.Equal(t, "file:/data/nw.db?mode=ro", lite.dsn)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"order details"`, quoteIdent(KindPostgres, "order details"))
	assert.Equal(t, `"a""b"`, quoteIdent(KindSQLite, `a"b`))
	assert.Equal(t, "`a``b`", quoteIdent(KindMySQL, "a`b"))
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "postgres://***@localhost/nw", redact("postgres://u:pw@localhost/nw"))
	assert.Equal(t, "orders.csv", redact("orders.csv"))
}

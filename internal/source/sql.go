package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nhath/ezquery/internal/results"
)

// sqlTarget is a parsed database location: where to connect and which table to read
type sqlTarget struct {
	kind  Kind
	dsn   string
	table string
}

// parseSQLLocation splits "<scheme>://<dsn>#<table>". Without a fragment the
// logical table name is used as the database table name.
func parseSQLLocation(src Source, dataDir string) sqlTarget {
	loc := src.Location
	table := src.Name
	if i := strings.LastIndex(loc, "#"); i >= 0 {
		if frag := loc[i+1:]; frag != "" {
			table = frag
		}
		loc = loc[:i]
	}

	t := sqlTarget{kind: src.Kind(), table: table}
	_, rest, _ := strings.Cut(loc, "://")
	switch t.kind {
	case KindSQLite:
		t.dsn = "file:" + resolvePath(dataDir, rest) + "?mode=ro"
	case KindMySQL:
		t.dsn = rest
	default:
		t.dsn = loc
	}
	return t
}

func (r *Registry) loadSQL(ctx context.Context, src Source) (*Dataset, error) {
	target := parseSQLLocation(src, r.dataDir)

	var password string
	if src.TokenKey != "" && r.tokens != nil {
		p, err := r.tokens.Token(src.TokenKey)
		if err != nil {
			return nil, fmt.Errorf("token %q: %w", src.TokenKey, err)
		}
		password = p
	}

	db, closeFn, err := openDB(target, password)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	return readTable(ctx, db, target)
}

// openDB opens a handle for target. The returned func releases it.
func openDB(t sqlTarget, password string) (*sql.DB, func(), error) {
	switch t.kind {
	case KindPostgres:
		cfg, err := pgx.ParseConfig(t.dsn)
		if err != nil {
			return nil, nil, err
		}
		if password != "" {
			cfg.Password = password
		}
		name := stdlib.RegisterConnConfig(cfg)
		db, err := sql.Open("pgx", name)
		if err != nil {
			stdlib.UnregisterConnConfig(name)
			return nil, nil, err
		}
		return db, func() {
			db.Close()
			stdlib.UnregisterConnConfig(name)
		}, nil

	case KindMySQL:
		cfg, err := mysql.ParseDSN(t.dsn)
		if err != nil {
			return nil, nil, err
		}
		if password != "" {
			cfg.Passwd = password
		}
		conn, err := mysql.NewConnector(cfg)
		if err != nil {
			return nil, nil, err
		}
		db := sql.OpenDB(conn)
		return db, func() { db.Close() }, nil

	default:
		db, err := sql.Open("sqlite3", t.dsn)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	}
}

// quoteIdent quotes a table name for the target's dialect
func quoteIdent(kind Kind, name string) string {
	switch kind {
	case KindMySQL:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	default:
		// postgres and sqlite share the standard double-quote form
		return pq.QuoteIdentifier(name)
	}
}

func readTable(ctx context.Context, db *sql.DB, t sqlTarget) (*Dataset, error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(t.kind, t.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		rec := make(results.Record, len(columns))
		for i, col := range columns {
			rec[col] = formatValue(values[i])
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, rows.Err()
}

// formatValue converts a scanned column to a cell. Driver numbers and
// booleans keep their kind so they sort naturally; text, blobs and
// timestamps become strings.
func formatValue(v any) results.Value {
	switch val := v.(type) {
	case nil:
		return results.Null()
	case int64:
		return results.Number(float64(val))
	case int32:
		return results.Number(float64(val))
	case int:
		return results.Number(float64(val))
	case float64:
		return results.Number(val)
	case float32:
		return results.Number(float64(val))
	case bool:
		return results.Bool(val)
	case []byte:
		return results.String(string(val))
	case string:
		return results.String(val)
	case time.Time:
		return results.String(val.Format(time.RFC3339))
	default:
		return results.String(fmt.Sprintf("%v", val))
	}
}

package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhath/ezquery/internal/history"
	"github.com/nhath/ezquery/internal/query"
	"github.com/nhath/ezquery/internal/results"
	"github.com/nhath/ezquery/internal/source"
	"github.com/nhath/ezquery/internal/store"
)

// customersCSV writes a customers table with 91 records and 7 columns
func customersCSV(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("CustomerID,CompanyName,ContactName,ContactTitle,City,Country,Phone\n")
	for i := 1; i <= 91; i++ {
		fmt.Fprintf(&b, "C%03d,Company %d,Contact %d,Owner,City %d,Country,555-%04d\n", i, i, i, i, i)
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "customers.csv"), []byte(b.String()), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "regions.csv"), []byte("RegionID,RegionDescription\n"), 0o600))
	return dir
}

func newExecutor(t *testing.T, opts ...Option) (*Executor, *store.Store) {
	t.Helper()
	reg := source.NewRegistry(source.DefaultSources(), source.WithDataDir(customersCSV(t)))
	st := store.New(store.WithHistory(history.NewLedger(50)))
	return New(reg, st, opts...), st
}

func TestExecute_LimitTruncates(t *testing.T) {
	ex, st := newExecutor(t)

	rs, err := ex.Execute(context.Background(), "SELECT * FROM customers LIMIT 10;")
	require.NoError(t, err)
	assert.Equal(t, 10, rs.RowCount)
	assert.Len(t, rs.Rows, 10)
	assert.Len(t, rs.Columns, 7)
	assert.Equal(t, "CustomerID", rs.Columns[0])

	snap := st.Snapshot()
	assert.Equal(t, store.StatusSuccess, snap.Status.Kind)
	require.Equal(t, 1, snap.History.Len())
	e, _ := snap.History.At(0)
	assert.Equal(t, "SELECT * FROM customers LIMIT 10;", e.SQL)
	assert.Equal(t, 10, e.RowCount)
}

func TestExecute_NoLimitReturnsAll(t *testing.T) {
	ex, _ := newExecutor(t)
	rs, err := ex.Execute(context.Background(), "select * from CUSTOMERS")
	require.NoError(t, err)
	assert.Equal(t, 91, rs.RowCount)

	rs, err = ex.Execute(context.Background(), "SELECT * FROM customers LIMIT 500")
	require.NoError(t, err)
	assert.Equal(t, 91, rs.RowCount)
}

func TestExecute_UnknownTable(t *testing.T) {
	ex, st := newExecutor(t)
	_, err := ex.Execute(context.Background(), "SELECT * FROM customers LIMIT 5")
	require.NoError(t, err)

	_, err = ex.Execute(context.Background(), "SELECT * FROM ghost_table;")
	var ute *source.UnknownTableError
	require.True(t, errors.As(err, &ute))

	snap := st.Snapshot()
	assert.True(t, snap.Status.IsError())
	assert.Contains(t, snap.Status.Message, "not found")
	assert.Equal(t, 5, snap.Result.RowCount, "prior result unchanged")
	assert.Equal(t, 1, snap.History.Len(), "history unchanged")
}

func TestExecute_ParseError(t *testing.T) {
	loader := &countingLoader{}
	st := store.New()
	ex := New(loader, st)

	_, err := ex.Execute(context.Background(), "SELECT 1")
	var pe *query.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Zero(t, loader.calls, "no I/O on a parse failure")
	assert.Equal(t, "could not parse table name from query", st.Snapshot().Status.Message)
}

func TestExecute_EmptyDataset(t *testing.T) {
	ex, st := newExecutor(t)
	_, err := ex.Execute(context.Background(), "SELECT * FROM regions")
	var ee *source.EmptyDatasetError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "regions", ee.Table)
	assert.Equal(t, 0, st.Snapshot().History.Len())
}

func TestExecute_TransportError(t *testing.T) {
	ex, _ := newExecutor(t)
	_, err := ex.Execute(context.Background(), "SELECT * FROM orders")
	var te *source.TransportError
	require.True(t, errors.As(err, &te))
}

func TestExecute_PersistHook(t *testing.T) {
	var saved []history.Entry
	ex, _ := newExecutor(t, WithPersist(func(e history.Entry) error {
		saved = append(saved, e)
		return errors.New("disk full")
	}))

	_, err := ex.Execute(context.Background(), "SELECT * FROM customers LIMIT 1")
	require.NoError(t, err, "persist failures do not fail the query")
	require.Len(t, saved, 1)
	assert.Equal(t, 1, saved[0].RowCount)

	_, _ = ex.Execute(context.Background(), "SELECT * FROM ghost")
	assert.Len(t, saved, 1)
}

func TestExecute_TimingIncludesDelay(t *testing.T) {
	base := time.Unix(0, 0)
	calls := 0
	clock := func() time.Time {
		calls++
		return base.Add(time.Duration(calls-1) * 300 * time.Millisecond)
	}
	ex, _ := newExecutor(t, WithClock(clock))

	rs, err := ex.Execute(context.Background(), "SELECT * FROM customers")
	require.NoError(t, err)
	assert.Equal(t, int64(300), rs.ExecutionTimeMs)
}

func TestExecute_DelayHonoursContext(t *testing.T) {
	ex, st := newExecutor(t, WithDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ex.Execute(ctx, "SELECT * FROM customers")
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, st.Snapshot().Status.IsError())
}

func TestRun_StaleExecutionDiscarded(t *testing.T) {
	loader := &gatedLoader{release: make(chan struct{})}
	st := store.New()
	ex := New(loader, st)

	slowGen := st.Begin()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = ex.Run(context.Background(), slowGen, "SELECT * FROM slow")
	}()

	fastGen := st.Begin()
	_, err := ex.Run(context.Background(), fastGen, "SELECT * FROM fast")
	require.NoError(t, err)

	close(loader.release)
	wg.Wait()

	snap := st.Snapshot()
	assert.Equal(t, "fast", snap.Result.Rows[0].Get("t").String())
	assert.Equal(t, 1, snap.History.Len())
}

type countingLoader struct{ calls int }

func (l *countingLoader) Load(context.Context, string) (*source.Dataset, error) {
	l.calls++
	return &source.Dataset{}, nil
}

// gatedLoader blocks loads of "slow" until release is closed
type gatedLoader struct {
	release chan struct{}
}

func (l *gatedLoader) Load(_ context.Context, table string) (*source.Dataset, error) {
	if table == "slow" {
		<-l.release
	}
	return &source.Dataset{
		Columns: []string{"t"},
		Records: []results.Record{{"t": results.String(table)}},
	}, nil
}

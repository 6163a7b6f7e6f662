// Package executor runs a query end to end: parse, load, limit, and commit
// the outcome to the session store.
package executor

import (
	"context"
	"log/slog"
	"time"

	"github.com/nhath/ezquery/internal/history"
	"github.com/nhath/ezquery/internal/query"
	"github.com/nhath/ezquery/internal/results"
	"github.com/nhath/ezquery/internal/source"
	"github.com/nhath/ezquery/internal/store"
)

// PersistFunc saves a committed history entry outside the store
type PersistFunc func(history.Entry) error

// Executor ties a table loader to a store
type Executor struct {
	loader  source.Loader
	store   *store.Store
	logger  *slog.Logger
	delay   time.Duration
	persist PersistFunc
	now     func() time.Time
}

// Option configures an Executor
type Option func(*Executor)

// WithDelay adds a fixed pause before each load
func WithDelay(d time.Duration) Option {
	return func(e *Executor) { e.delay = d }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// WithPersist registers a hook called with every committed history entry
func WithPersist(fn PersistFunc) Option {
	return func(e *Executor) { e.persist = fn }
}

// WithClock overrides the clock used to time executions
func WithClock(now func() time.Time) Option {
	return func(e *Executor) { e.now = now }
}

// New returns an executor reading tables through loader and writing to st
func New(loader source.Loader, st *store.Store, opts ...Option) *Executor {
	e := &Executor{
		loader: loader,
		store:  st,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute begins a new execution and runs it to completion
func (e *Executor) Execute(ctx context.Context, sql string) (*results.ResultSet, error) {
	gen := e.store.Begin()
	return e.Run(ctx, gen, sql)
}

// Run completes an execution already started with Store.Begin. The outcome
// is committed only if gen is still the latest generation.
func (e *Executor) Run(ctx context.Context, gen uint64, sql string) (*results.ResultSet, error) {
	rs, err := e.Query(ctx, sql)
	if err != nil {
		e.logger.Info("query failed", "generation", gen, "error", err)
		e.store.Fail(gen, err.Error())
		return nil, err
	}

	entry, ok := e.store.Commit(gen, rs, sql)
	if !ok {
		return rs, nil
	}
	e.logger.Info("query succeeded", "generation", gen, "rows", rs.RowCount, "ms", rs.ExecutionTimeMs)

	if e.persist != nil {
		if err := e.persist(entry); err != nil {
			// history persistence is best effort; the session already has the entry
			e.logger.Warn("failed to persist history entry", "error", err)
		}
	}
	return rs, nil
}

// Query parses sql and builds a ResultSet without touching the store
func (e *Executor) Query(ctx context.Context, sql string) (*results.ResultSet, error) {
	start := e.now()

	if err := e.wait(ctx); err != nil {
		return nil, err
	}

	parsed := query.Parse(sql)
	table, err := parsed.TableName()
	if err != nil {
		return nil, err
	}

	ds, err := e.loader.Load(ctx, table)
	if err != nil {
		return nil, err
	}
	if ds.Len() == 0 {
		return nil, &source.EmptyDatasetError{Table: table}
	}

	rows := ds.Records[:parsed.Apply(len(ds.Records))]
	return results.NewResultSet(ds.Columns, rows, e.now().Sub(start)), nil
}

func (e *Executor) wait(ctx context.Context) error {
	if e.delay <= 0 {
		return nil
	}
	t := time.NewTimer(e.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Package memstore keeps every repository in process memory. It backs
// STORE=memory and the scenario tests. A transaction holds the store's lock
// until it ends and rolls back by restoring a snapshot.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/clock"
	"github.com/MrJamesThe3rd/toolrent/internal/customer"
	"github.com/MrJamesThe3rd/toolrent/internal/database"
	"github.com/MrJamesThe3rd/toolrent/internal/fine"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
	"github.com/MrJamesThe3rd/toolrent/internal/loan"
	"github.com/MrJamesThe3rd/toolrent/internal/rate"
)

var errStockCheck = errors.New("current stock out of range")

type state struct {
	categories map[uuid.UUID]*inventory.Category
	groups     map[uuid.UUID]*inventory.Group
	tools      map[uuid.UUID]*inventory.Tool
	movements  []*inventory.Movement
	customers  map[uuid.UUID]*customer.Customer
	rates      map[uuid.UUID]*rate.GlobalRate
	loans      map[uuid.UUID]*loan.Loan
	fines      map[uuid.UUID]*fine.Fine
}

func newState() *state {
	return &state{
		categories: make(map[uuid.UUID]*inventory.Category),
		groups:     make(map[uuid.UUID]*inventory.Group),
		tools:      make(map[uuid.UUID]*inventory.Tool),
		customers:  make(map[uuid.UUID]*customer.Customer),
		rates:      make(map[uuid.UUID]*rate.GlobalRate),
		loans:      make(map[uuid.UUID]*loan.Loan),
		fines:      make(map[uuid.UUID]*fine.Fine),
	}
}

func cloneMap[V any](m map[uuid.UUID]*V) map[uuid.UUID]*V {
	out := make(map[uuid.UUID]*V, len(m))
	for k, v := range m {
		c := *v
		out[k] = &c
	}

	return out
}

func (s *state) clone() *state {
	movements := make([]*inventory.Movement, len(s.movements))
	for i, m := range s.movements {
		c := *m
		movements[i] = &c
	}

	return &state{
		categories: cloneMap(s.categories),
		groups:     cloneMap(s.groups),
		tools:      cloneMap(s.tools),
		movements:  movements,
		customers:  cloneMap(s.customers),
		rates:      cloneMap(s.rates),
		loans:      cloneMap(s.loans),
		fines:      cloneMap(s.fines),
	}
}

type Store struct {
	mu   sync.Mutex
	data *state
	now  clock.Clock
}

type Option func(*Store)

// WithClock sets the clock used for created_at and kardex dates.
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.now = c }
}

// SeedCategories are the categories a fresh database starts with.
var SeedCategories = []string{
	"Herramientas eléctricas",
	"Herramientas manuales",
	"Jardinería",
	"Construcción",
	"Medición",
}

// New returns a store seeded like a freshly migrated database.
func New(lateFeeName string, lateFee int64, opts ...Option) *Store {
	s := &Store{data: newState(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	for _, name := range SeedCategories {
		c := &inventory.Category{ID: uuid.New(), Name: name, CreatedAt: s.now()}
		s.data.categories[c.ID] = c
	}

	if lateFeeName != "" {
		r := &rate.GlobalRate{ID: uuid.New(), Name: lateFeeName, DailyRateValue: lateFee, CreatedAt: s.now()}
		s.data.rates[r.ID] = r
	}

	return s
}

type txKey struct{}

// inTx reports whether ctx carries an open transaction of this store.
func (s *Store) inTx(ctx context.Context) bool {
	tx, ok := ctx.Value(txKey{}).(*memTx)
	return ok && tx.s == s && !tx.done
}

// acquire locks the store unless ctx already runs inside one of its
// transactions. The returned func releases what was taken.
func (s *Store) acquire(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}

	s.mu.Lock()

	return s.mu.Unlock
}

type memTx struct {
	s        *Store
	snapshot *state
	done     bool
}

func (t *memTx) Commit() error {
	if t.done {
		return nil
	}

	t.done = true
	t.s.mu.Unlock()

	return nil
}

func (t *memTx) Rollback() error {
	if t.done {
		return nil
	}

	t.done = true
	t.s.data = t.snapshot
	t.s.mu.Unlock()

	return nil
}

type nopTx struct{}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

// BeginTx serialises every transaction on the store, so the lock key is
// not needed to keep groups apart.
func (s *Store) BeginTx(ctx context.Context, _ int64) (context.Context, database.Tx, error) {
	if s.inTx(ctx) {
		return ctx, nopTx{}, nil
	}

	s.mu.Lock()

	tx := &memTx{s: s, snapshot: s.data.clone()}

	return context.WithValue(ctx, txKey{}, tx), tx, nil
}

func sortedValues[V any](m map[uuid.UUID]*V, less func(a, b *V) int) []*V {
	out := slices.Collect(maps.Values(m))
	slices.SortFunc(out, less)

	return out
}

func copyOf[V any](v *V) *V {
	c := *v
	return &c
}

func sortBy[V any](items []*V, key func(*V) string) {
	slices.SortStableFunc(items, func(a, b *V) int { return strings.Compare(key(a), key(b)) })
}

func sortByTimeDesc[V any](items []*V, key func(*V) time.Time) {
	slices.SortStableFunc(items, func(a, b *V) int { return key(b).Compare(key(a)) })
}

func fmtMissing(what string, id uuid.UUID) error {
	return fmt.Errorf("%s %s does not exist", what, id)
}

var (
	_ database.Transactor  = (*Store)(nil)
	_ inventory.Repository = (*Store)(nil)
	_ rate.Repository      = (*Store)(nil)
	_ customer.Repository  = (*Store)(nil)
	_ fine.Repository      = (*Store)(nil)
	_ loan.Repository      = (*Store)(nil)
)

package reports

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gavelworks/baymimic/baymimic/database"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/errgroup"
)

const (
	snapshotCacheSize  = 16
	keyTopCategories   = "top_categories"
	keyCategoryRevenue = "category_revenue"
)

// CategoryCount is one row of the top-categories snapshot.
type CategoryCount struct {
	CategoryID int64
	Name       string
	Listings   int
}

// RevenueRow is one row of the category-revenue snapshot. The grand total
// appears as a synthetic category named "**TOTAL**".
type RevenueRow struct {
	Category string
	Sales    int
	Revenue  int64
}

type snapshotEntry struct {
	value   interface{}
	expires time.Time
}

// Snapshots serves the session reports: each one is computed at most once
// per TTL window and answered from cache until it expires or Invalidate is
// called. Staleness within the window is the intended contract.
type Snapshots struct {
	mu    sync.Mutex
	cache *lru.Cache
	ttl   time.Duration

	loadTopCategories   func(ctx context.Context) ([]CategoryCount, error)
	loadCategoryRevenue func(ctx context.Context) ([]RevenueRow, error)
}

func NewSnapshots(db *database.DB, ttl time.Duration) *Snapshots {
	return newSnapshots(ttl,
		func(ctx context.Context) ([]CategoryCount, error) { return queryTopCategories(ctx, db) },
		func(ctx context.Context) ([]RevenueRow, error) { return queryCategoryRevenue(ctx, db) },
	)
}

func newSnapshots(
	ttl time.Duration,
	loadTopCategories func(ctx context.Context) ([]CategoryCount, error),
	loadCategoryRevenue func(ctx context.Context) ([]RevenueRow, error),
) *Snapshots {
	cache, _ := lru.New(snapshotCacheSize)
	return &Snapshots{
		cache:               cache,
		ttl:                 ttl,
		loadTopCategories:   loadTopCategories,
		loadCategoryRevenue: loadCategoryRevenue,
	}
}

// TopCategories returns the five categories with the most listings.
func (s *Snapshots) TopCategories(ctx context.Context) ([]CategoryCount, error) {
	value, err := s.get(ctx, keyTopCategories, func(ctx context.Context) (interface{}, error) {
		return s.loadTopCategories(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]CategoryCount), nil
}

// CategoryRevenue returns per-category revenue over paid transactions, with
// a grand-total row.
func (s *Snapshots) CategoryRevenue(ctx context.Context) ([]RevenueRow, error) {
	value, err := s.get(ctx, keyCategoryRevenue, func(ctx context.Context) (interface{}, error) {
		return s.loadCategoryRevenue(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]RevenueRow), nil
}

// Invalidate drops every cached snapshot; the next read recomputes.
func (s *Snapshots) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
	slog.Debug("Report snapshots invalidated", "type", "market")
}

// Warm computes both snapshots concurrently, typically at session start.
func (s *Snapshots) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.TopCategories(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.CategoryRevenue(ctx)
		return err
	})
	return g.Wait()
}

func (s *Snapshots) get(ctx context.Context, key string, load func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.cache.Get(key); ok {
		entry := cached.(snapshotEntry)
		if time.Now().Before(entry.expires) {
			return entry.value, nil
		}
		s.cache.Remove(key)
	}

	value, err := load(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, snapshotEntry{value: value, expires: time.Now().Add(s.ttl)})
	return value, nil
}

func queryTopCategories(ctx context.Context, db *database.DB) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := db.BunDB().NewRaw(`
		SELECT c.category_id, c.name, COUNT(l.listing_id) AS listings
		FROM categories c
		JOIN listings l ON l.category_id = c.category_id
		GROUP BY c.category_id, c.name
		ORDER BY listings DESC, c.name ASC
		LIMIT 5
	`).Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func queryCategoryRevenue(ctx context.Context, db *database.DB) ([]RevenueRow, error) {
	rows, err := db.QueryWithLog(ctx, `
		SELECT COALESCE(c.name, '**TOTAL**') AS category,
		       COUNT(t.transaction_id) AS sales,
		       COALESCE(SUM(t.final_price), 0) AS revenue
		FROM transactions t
		JOIN listings l ON l.listing_id = t.listing_id
		JOIN categories c ON c.category_id = l.category_id
		WHERE t.payment_status = 'paid'
		GROUP BY ROLLUP (c.name)
		ORDER BY revenue DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []RevenueRow
	for rows.Next() {
		var row RevenueRow
		if err := rows.Scan(&row.Category, &row.Sales, &row.Revenue); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

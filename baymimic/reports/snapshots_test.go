package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func countingLoaders(topCalls, revenueCalls *int) (
	func(ctx context.Context) ([]CategoryCount, error),
	func(ctx context.Context) ([]RevenueRow, error),
) {
	top := func(ctx context.Context) ([]CategoryCount, error) {
		*topCalls++
		return []CategoryCount{{CategoryID: 1, Name: "Electronics", Listings: 4}}, nil
	}
	revenue := func(ctx context.Context) ([]RevenueRow, error) {
		*revenueCalls++
		return []RevenueRow{
			{Category: "**TOTAL**", Sales: 2, Revenue: 300},
			{Category: "Electronics", Sales: 2, Revenue: 300},
		}, nil
	}
	return top, revenue
}

func TestSnapshotsComputeOnce(t *testing.T) {
	var topCalls, revenueCalls int
	top, revenue := countingLoaders(&topCalls, &revenueCalls)
	s := newSnapshots(time.Hour, top, revenue)

	ctx := context.Background()
	first, err := s.TopCategories(ctx)
	assert.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := s.TopCategories(ctx)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, topCalls, "second read must be served from cache")
	assert.Equal(t, 0, revenueCalls, "reads must not touch the other snapshot")
}

func TestSnapshotsInvalidate(t *testing.T) {
	var topCalls, revenueCalls int
	top, revenue := countingLoaders(&topCalls, &revenueCalls)
	s := newSnapshots(time.Hour, top, revenue)

	ctx := context.Background()
	_, err := s.TopCategories(ctx)
	assert.NoError(t, err)

	s.Invalidate()

	_, err = s.TopCategories(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, topCalls, "invalidate must force a recompute")
}

func TestSnapshotsExpire(t *testing.T) {
	var topCalls, revenueCalls int
	top, revenue := countingLoaders(&topCalls, &revenueCalls)
	s := newSnapshots(10*time.Millisecond, top, revenue)

	ctx := context.Background()
	_, err := s.TopCategories(ctx)
	assert.NoError(t, err)

	time.Sleep(25 * time.Millisecond)

	_, err = s.TopCategories(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, topCalls, "expired snapshot must recompute")
}

func TestSnapshotsWarm(t *testing.T) {
	var topCalls, revenueCalls int
	top, revenue := countingLoaders(&topCalls, &revenueCalls)
	s := newSnapshots(time.Hour, top, revenue)

	ctx := context.Background()
	assert.NoError(t, s.Warm(ctx))
	assert.Equal(t, 1, topCalls)
	assert.Equal(t, 1, revenueCalls)

	// Warmed reads are cache hits.
	_, err := s.CategoryRevenue(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, revenueCalls)
}

func TestSnapshotsLoadErrorNotCached(t *testing.T) {
	calls := 0
	top := func(ctx context.Context) ([]CategoryCount, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection reset")
		}
		return []CategoryCount{}, nil
	}
	revenue := func(ctx context.Context) ([]RevenueRow, error) { return nil, nil }
	s := newSnapshots(time.Hour, top, revenue)

	ctx := context.Background()
	_, err := s.TopCategories(ctx)
	assert.Error(t, err)

	_, err = s.TopCategories(ctx)
	assert.NoError(t, err, "a failed load must not be cached")
	assert.Equal(t, 2, calls)
}

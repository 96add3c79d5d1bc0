package tasks

import (
	"context"
	"time"

	"github.com/bbyeodagung/web/pkg/cache"
	"github.com/bbyeodagung/web/repository"
)

const (
	// TransportationCacheKey holds the timetable shown on /transportation.
	TransportationCacheKey = "transportation:trains"
	TransportationCacheTTL = 20 * time.Minute
)

// TrainLister is satisfied by *repository.Queries.
type TrainLister interface {
	ListTrainsByDeparture(ctx context.Context) ([]repository.Train, error)
}

// WarmTransportationCache refills the timetable cache every 15 minutes,
// a little more often than it expires.
type WarmTransportationCache struct {
	trains TrainLister
	cache  cache.Cache[[]repository.Train]
}

func NewWarmTransportationCache(trains TrainLister, c cache.Cache[[]repository.Train]) *WarmTransportationCache {
	return &WarmTransportationCache{trains: trains, cache: c}
}

func (t *WarmTransportationCache) Name() string     { return "warm_transportation_cache" }
func (t *WarmTransportationCache) Schedule() string { return "@every 15m" }
func (t *WarmTransportationCache) RunOnStart() bool { return true }

func (t *WarmTransportationCache) Handle(ctx context.Context) error {
	return cache.Refresh(ctx, t.cache, TransportationCacheKey, TransportationCacheTTL, t.trains.ListTrainsByDeparture)
}

// LoadTransportation reads the timetable through the cache.
func LoadTransportation(ctx context.Context, trains TrainLister, c cache.Cache[[]repository.Train]) ([]repository.Train, error) {
	return cache.GetOrSet(ctx, c, TransportationCacheKey, TransportationCacheTTL, trains.ListTrainsByDeparture)
}

// InvalidateTransportation retires the cached timetable after a train
// changes. A page load racing the write cannot restore the old one.
func InvalidateTransportation(ctx context.Context, c cache.Cache[[]repository.Train]) error {
	return cache.Invalidate(ctx, c, TransportationCacheKey)
}

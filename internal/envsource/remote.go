package envsource

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/eco2-team/backend/domains/env-report/internal/constants"
)

// Metrics for the remote source snapshot
var (
	snapshotKeys = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "env_report",
		Subsystem: "remote_source",
		Name:      "keys",
		Help:      "Current number of keys in the remote source snapshot",
	})

	snapshotRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "env_report",
		Subsystem: "remote_source",
		Name:      "refreshes_total",
		Help:      "Total number of snapshot refreshes from Redis",
	})

	snapshotRefreshFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "env_report",
		Subsystem: "remote_source",
		Name:      "refresh_failures_total",
		Help:      "Total number of failed snapshot refreshes",
	})

	snapshotRefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "env_report",
		Subsystem: "remote_source",
		Name:      "refresh_duration_seconds",
		Help:      "Time spent refreshing the snapshot from Redis",
		Buckets:   prometheus.ExponentialBucketsRange(0.001, 5.0, 12), // 1ms to 5s
	})
)

// PropertyStore supplies the remote configuration hash backing a
// RemoteSource. Implemented by store.Store.
type PropertyStore interface {
	Properties(ctx context.Context, hashKey string) (map[string]string, error)
}

// RemoteSource serves configuration from a Redis hash through an
// in-memory snapshot. Report builds never touch Redis on the hot path;
// the snapshot is refreshed at startup and on config events.
type RemoteSource struct {
	name    string
	store   PropertyStore
	hashKey string

	mu     sync.RWMutex
	keys   []string
	values map[string]string
}

// NewRemoteSource creates a RemoteSource and loads the initial snapshot.
func NewRemoteSource(ctx context.Context, name string, store PropertyStore, hashKey string) (*RemoteSource, error) {
	s := &RemoteSource{
		name:    name,
		store:   store,
		hashKey: hashKey,
		values:  make(map[string]string),
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *RemoteSource) Name() string           { return s.name }
func (s *RemoteSource) Order() int             { return OrderRemote }
func (s *RemoteSource) Convention() Convention { return ConventionDotted }

func (s *RemoteSource) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

func (s *RemoteSource) Get(key string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf(constants.ErrPropertyLookup, key, s.name, errNotInSnapshot)
	}
	return v, nil
}

var errNotInSnapshot = fmt.Errorf("key not in snapshot")

// Refresh replaces the snapshot with the current hash contents.
// Keys are sorted for a stable report iteration order.
func (s *RemoteSource) Refresh(ctx context.Context) error {
	start := time.Now()
	values, err := s.store.Properties(ctx, s.hashKey)
	snapshotRefreshDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		snapshotRefreshFailures.Inc()
		return err
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s.mu.Lock()
	s.keys = keys
	s.values = values
	s.mu.Unlock()

	snapshotRefreshes.Inc()
	snapshotKeys.Set(float64(len(keys)))
	return nil
}

// Apply sets a single key in the snapshot without a round trip to
// Redis. Used by the config event consumer.
func (s *RemoteSource) Apply(key, value string) {
	s.mu.Lock()
	if _, ok := s.values[key]; !ok {
		s.keys = insertSorted(s.keys, key)
	}
	s.values[key] = value
	size := len(s.keys)
	s.mu.Unlock()

	snapshotKeys.Set(float64(size))
}

// Remove deletes a single key from the snapshot.
func (s *RemoteSource) Remove(key string) {
	s.mu.Lock()
	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		for i, k := range s.keys {
			if k == key {
				s.keys = append(s.keys[:i], s.keys[i+1:]...)
				break
			}
		}
	}
	size := len(s.keys)
	s.mu.Unlock()

	snapshotKeys.Set(float64(size))
}

func insertSorted(keys []string, key string) []string {
	i := sort.SearchStrings(keys, key)
	keys = append(keys, "")
	copy(keys[i+1:], keys[i:])
	keys[i] = key
	return keys
}

package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"newsdesk/internal/headline"
	"newsdesk/internal/model"
	"newsdesk/pkg/news"
)

// ErrSuperseded is returned by Refresh when a later refresh started before
// this one finished; its result was discarded.
var ErrSuperseded = errors.New("refresh superseded by a newer request")

type Snapshot struct {
	Headlines []model.Headline
	FetchedAt time.Time
	Err       error
}

// Service holds the current normalized headline list. Counters are assigned
// once per refresh and never re-randomized while the list is current.
type Service struct {
	client news.NewsClient
	counts headline.RandomCountGenerator
	now    func() time.Time

	generation atomic.Uint64

	mu      sync.RWMutex
	current Snapshot
	loaded  bool
	loading sync.Mutex
}

func NewService(client news.NewsClient, counts headline.RandomCountGenerator) *Service {
	if counts == nil {
		counts = headline.NewRandomCounts()
	}
	return &Service{
		client: client,
		counts: counts,
		now:    time.Now,
		current: Snapshot{
			Headlines: []model.Headline{},
		},
	}
}

// Refresh fetches and normalizes a new list. A fetch failure is logged and
// published as an empty list carrying the error; the next Snapshot fetches
// again. Only the most recently started refresh publishes.
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	token := s.generation.Add(1)

	next := Snapshot{FetchedAt: s.now()}
	articles, err := s.client.Fetch(ctx)
	if err != nil {
		slog.Error("error fetching news", "source", s.client.Name(), "error", err)
		next.Headlines = []model.Headline{}
		next.Err = err
	} else {
		next.Headlines = headline.Normalize(articles, s.counts)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.generation.Load() {
		slog.Warn("discarding stale refresh", "token", token)
		return s.current, ErrSuperseded
	}

	s.current = next
	s.loaded = err == nil
	slog.Info("feed refreshed", "source", s.client.Name(), "headlines", len(next.Headlines))
	return next, err
}

// Snapshot returns the current list, loading it on first use and after a
// failed fetch. The load is not tied to ctx cancellation since its result is
// shared by every reader.
func (s *Service) Snapshot(ctx context.Context) Snapshot {
	s.mu.RLock()
	if s.loaded {
		snap := s.current
		s.mu.RUnlock()
		return snap
	}
	s.mu.RUnlock()

	s.loading.Lock()
	defer s.loading.Unlock()

	s.mu.RLock()
	loaded := s.loaded
	snap := s.current
	s.mu.RUnlock()
	if loaded {
		return snap
	}

	snap, _ = s.Refresh(context.WithoutCancel(ctx))
	return snap
}

// Find returns the headline with the given URL from the current list.
func (s *Service) Find(ctx context.Context, url string) (model.Headline, bool) {
	for _, h := range s.Snapshot(ctx).Headlines {
		if h.URL == url {
			return h, true
		}
	}
	return model.Headline{}, false
}

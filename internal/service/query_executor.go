package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/engagement-dashboard/internal/models"
	appErrors "github.com/noah-isme/engagement-dashboard/pkg/errors"
)

type messageSearcher interface {
	SearchMessages(ctx context.Context, query string) ([]models.Message, error)
}

// ExecutorConfig tunes backend calls made by the query executor and classification session.
type ExecutorConfig struct {
	Timeout  time.Duration
	Ordering OrderingPolicy
}

func (c ExecutorConfig) withDefaults() ExecutorConfig {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.Ordering == "" {
		c.Ordering = OrderingLatestIntent
	}
	return c
}

// SearchOutcome describes how one Search call resolved.
type SearchOutcome struct {
	Query    string
	Messages []models.Message
	// Applied is false when the ordering policy or a reset discarded the response.
	Applied bool
}

// QueryExecutor turns filter snapshots into /messages requests and owns the current result set.
type QueryExecutor struct {
	mu        sync.Locker
	repo      messageSearcher
	cfg       ExecutorConfig
	logger    *zap.Logger
	metrics   *MetricsService
	seq       sequencer
	results   []models.Message
	lastQuery string
	// onApplied runs with the lock held after a successful search replaces the results.
	onApplied func()
	// onFailed runs with the lock held when the current search fails.
	onFailed func()
}

// NewQueryExecutor builds a standalone executor.
func NewQueryExecutor(repo messageSearcher, cfg ExecutorConfig, logger *zap.Logger, metrics *MetricsService) *QueryExecutor {
	return newQueryExecutor(&sync.Mutex{}, repo, cfg, logger, metrics)
}

func newQueryExecutor(mu sync.Locker, repo messageSearcher, cfg ExecutorConfig, logger *zap.Logger, metrics *MetricsService) *QueryExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryExecutor{
		mu:      mu,
		repo:    repo,
		cfg:     cfg.withDefaults(),
		logger:  logger,
		metrics: metrics,
	}
}

// BuildQuery renders the /messages query for criteria. Identical criteria always give identical queries.
func (e *QueryExecutor) BuildQuery(criteria models.FilterCriteria) string {
	return criteria.QueryString()
}

// Search issues a message search for the given snapshot. On success the result set is
// replaced wholesale; on failure it is left untouched and an upstream error is returned.
func (e *QueryExecutor) Search(ctx context.Context, criteria models.FilterCriteria) (SearchOutcome, error) {
	query := e.BuildQuery(criteria)
	if e.repo == nil {
		return SearchOutcome{Query: query}, appErrors.Upstream(fmt.Errorf("message API not configured"), "failed to fetch messages")
	}

	e.mu.Lock()
	seq := e.seq.begin()
	e.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	start := time.Now()
	msgs, err := e.repo.SearchMessages(callCtx, query)
	e.metrics.ObserveBackendCall(OperationSearch, err, time.Since(start))

	e.mu.Lock()
	defer e.mu.Unlock()

	outcome := SearchOutcome{Query: query, Applied: e.seq.finish(seq, e.cfg.Ordering)}
	if err != nil {
		e.logger.Warn("message search failed",
			zap.String("query", query),
			zap.Bool("current", outcome.Applied),
			zap.Error(err))
		if outcome.Applied && e.onFailed != nil {
			e.onFailed()
		}
		return outcome, appErrors.Upstream(err, "failed to fetch messages")
	}

	outcome.Messages = cloneMessages(msgs)
	if !outcome.Applied {
		e.metrics.RecordStaleResponse(OperationSearch)
		e.logger.Debug("discarded stale search response", zap.Uint64("seq", seq), zap.String("query", query))
		return outcome, nil
	}

	e.results = cloneMessages(msgs)
	e.lastQuery = query
	if e.onApplied != nil {
		e.onApplied()
	}
	e.logger.Debug("search applied", zap.String("query", query), zap.Int("count", len(msgs)))
	return outcome, nil
}

// Loading reports whether any search is in flight.
func (e *QueryExecutor) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seq.inFlight()
}

// Results returns a copy of the current result set; nil means no search has succeeded since the last reset.
func (e *QueryExecutor) Results() []models.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.results == nil {
		return nil
	}
	return cloneMessages(e.results)
}

// Reset drops the result set and disowns every in-flight search.
func (e *QueryExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

func (e *QueryExecutor) reset() {
	e.seq.reset()
	e.results = nil
	e.lastQuery = ""
}

func cloneMessages(msgs []models.Message) []models.Message {
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out
}

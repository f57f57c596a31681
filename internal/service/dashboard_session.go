package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/engagement-dashboard/internal/models"
)

type dateRangeProvider interface {
	DateRange(ctx context.Context) (*models.DateRange, error)
}

// MessageAPI is everything a session needs from the message service.
type MessageAPI interface {
	dateRangeProvider
	messageSearcher
	messageClassifier
}

// Phase is the coarse state of a reviewer session.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseSearching   Phase = "searching"
	PhaseViewing     Phase = "viewing"
	PhaseClassifying Phase = "classifying"
)

// Alert texts shown to the reviewer when a backend call fails.
const (
	AlertSearchFailed   = "Failed to fetch messages"
	AlertClassifyFailed = "Failed to classify message"
)

// SessionDeps groups what every session is built from.
type SessionDeps struct {
	API      MessageAPI
	Executor ExecutorConfig
	Logger   *zap.Logger
	Metrics  *MetricsService
}

// Session is one reviewer's dashboard. FilterState, QueryExecutor and
// ClassificationSession share the session lock, so Clear and Snapshot observe
// all three atomically while backend calls run outside the lock.
type Session struct {
	id             string
	mu             sync.Mutex
	filters        *FilterState
	queries        *QueryExecutor
	classification *ClassificationSession
	dates          dateRangeProvider
	timeout        time.Duration
	boundsAttempt  bool
	alert          string
	lastSeen       atomic.Int64
	logger         *zap.Logger
	metrics        *MetricsService
}

// NewSession assembles a session. Date bounds are loaded separately via LoadDateBounds.
func NewSession(id string, deps SessionDeps) *Session {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("session_id", id))
	cfg := deps.Executor.withDefaults()

	s := &Session{
		id:      id,
		timeout: cfg.Timeout,
		logger:  logger,
		metrics: deps.Metrics,
	}
	s.filters = newFilterState(&s.mu)

	var (
		searcher   messageSearcher
		classifier messageClassifier
	)
	if deps.API != nil {
		searcher, classifier, s.dates = deps.API, deps.API, deps.API
	}
	s.queries = newQueryExecutor(&s.mu, searcher, cfg, logger, deps.Metrics)
	s.classification = newClassificationSession(&s.mu, classifier, cfg, logger, deps.Metrics)
	s.queries.onApplied = s.classification.dismiss
	s.queries.onFailed = func() { s.raiseLocked(OperationSearch, AlertSearchFailed) }
	s.classification.onFailed = func() { s.raiseLocked(OperationClassify, AlertClassifyFailed) }
	s.touch(time.Now())
	return s
}

// ID is the opaque session identifier.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) Filters() *FilterState {
	return s.filters
}

func (s *Session) Classification() *ClassificationSession {
	return s.classification
}

// LoadDateBounds fetches the selectable date window once per session. Failure is logged and
// otherwise ignored; filters stay usable without clamping.
func (s *Session) LoadDateBounds(ctx context.Context) {
	s.mu.Lock()
	if s.boundsAttempt || s.dates == nil {
		s.mu.Unlock()
		return
	}
	s.boundsAttempt = true
	s.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	rng, err := s.dates.DateRange(callCtx)
	s.metrics.ObserveBackendCall(OperationDateRange, err, time.Since(start))
	if err != nil {
		s.logger.Warn("date range unavailable, date inputs left unclamped", zap.Error(err))
		return
	}
	if bounds := rng.Bounds(); bounds != nil {
		s.filters.SetDateBounds(bounds)
	}
}

// Search runs the current filters. Failures of the current request raise an alert.
func (s *Session) Search(ctx context.Context) (SearchOutcome, error) {
	return s.queries.Search(ctx, s.filters.Criteria())
}

// Classify checks one message. Failures of the current request raise an alert.
func (s *Session) Classify(ctx context.Context, messageID int64) (ClassifyOutcome, error) {
	return s.classification.Classify(ctx, messageID)
}

// Clear returns the session to Idle: filters unset, results and classification dropped,
// in-flight responses disowned. Date bounds are kept.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.reset()
	s.queries.reset()
	s.classification.reset()
	s.alert = ""
	s.logger.Debug("session cleared")
}

// Phase derives the tagged session state.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase()
}

func (s *Session) phase() Phase {
	switch {
	case s.queries.seq.inFlight():
		return PhaseSearching
	case s.classification.selectedID != nil:
		return PhaseClassifying
	case s.queries.results != nil:
		return PhaseViewing
	default:
		return PhaseIdle
	}
}

// Snapshot captures every input of the derived view at one instant.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var results []models.Message
	if s.queries.results != nil {
		results = cloneMessages(s.queries.results)
	}
	return Snapshot{
		Phase:             s.phase(),
		Criteria:          s.filters.criteria,
		Bounds:            s.filters.dateBounds(),
		Results:           results,
		Loading:           s.queries.seq.inFlight(),
		SelectedMessageID: s.classification.selected(),
		Classification:    s.classification.result.Clone(),
		LastQuery:         s.queries.lastQuery,
	}
}

// ConsumeAlert returns the pending alert once.
func (s *Session) ConsumeAlert() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	alert := s.alert
	s.alert = ""
	return alert
}

// raiseLocked is called with s.mu held, in the same critical section that decided the
// failed response is current, so a concurrent Clear either precedes or erases it.
func (s *Session) raiseLocked(operation, message string) {
	s.alert = message
	s.metrics.RecordAlert(operation)
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *Session) lastSeenAt() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

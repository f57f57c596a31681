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

type messageClassifier interface {
	Classify(ctx context.Context, messageID int64) (*models.ClassificationResult, error)
}

// ClassifyOutcome describes how one Classify call resolved.
type ClassifyOutcome struct {
	MessageID int64
	Result    *models.ClassificationResult
	Applied   bool
}

// ClassificationSession tracks the single message under compliance review and its result.
type ClassificationSession struct {
	mu         sync.Locker
	repo       messageClassifier
	cfg        ExecutorConfig
	logger     *zap.Logger
	metrics    *MetricsService
	seq        sequencer
	selectedID *int64
	result     *models.ClassificationResult
	// onFailed runs with the lock held when the current request fails.
	onFailed func()
}

// NewClassificationSession builds a standalone classification session.
func NewClassificationSession(repo messageClassifier, cfg ExecutorConfig, logger *zap.Logger, metrics *MetricsService) *ClassificationSession {
	return newClassificationSession(&sync.Mutex{}, repo, cfg, logger, metrics)
}

func newClassificationSession(mu sync.Locker, repo messageClassifier, cfg ExecutorConfig, logger *zap.Logger, metrics *MetricsService) *ClassificationSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassificationSession{
		mu:      mu,
		repo:    repo,
		cfg:     cfg.withDefaults(),
		logger:  logger,
		metrics: metrics,
	}
}

// Classify selects messageID, clears any displayed result and requests a compliance check.
// A failed check leaves the selection in place and shows no result.
func (s *ClassificationSession) Classify(ctx context.Context, messageID int64) (ClassifyOutcome, error) {
	s.mu.Lock()
	seq := s.seq.begin()
	selected := messageID
	s.selectedID = &selected
	s.result = nil
	s.mu.Unlock()

	outcome := ClassifyOutcome{MessageID: messageID}
	if s.repo == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		outcome.Applied = s.seq.finish(seq, s.cfg.Ordering)
		s.failed(outcome.Applied)
		return outcome, appErrors.Upstream(fmt.Errorf("message API not configured"), "failed to classify message")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	res, err := s.repo.Classify(callCtx, messageID)
	if err == nil && res == nil {
		err = fmt.Errorf("empty classification response")
	}
	s.metrics.ObserveBackendCall(OperationClassify, err, time.Since(start))

	s.mu.Lock()
	defer s.mu.Unlock()

	outcome.Applied = s.seq.finish(seq, s.cfg.Ordering)
	if err != nil {
		s.logger.Warn("classification failed",
			zap.Int64("message_id", messageID),
			zap.Bool("current", outcome.Applied),
			zap.Error(err))
		s.failed(outcome.Applied)
		return outcome, appErrors.Upstream(err, "failed to classify message")
	}

	outcome.Result = res.Clone()
	if !outcome.Applied {
		s.metrics.RecordStaleResponse(OperationClassify)
		s.logger.Debug("discarded stale classification", zap.Int64("message_id", messageID), zap.Uint64("seq", seq))
		return outcome, nil
	}

	s.result = res.Clone()
	s.logger.Info("message classified",
		zap.Int64("message_id", messageID),
		zap.Int("matched_rules", len(res.MatchedRules)))
	return outcome, nil
}

// SelectedMessageID returns the message currently under review, if any.
func (s *ClassificationSession) SelectedMessageID() *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected()
}

func (s *ClassificationSession) selected() *int64 {
	if s.selectedID == nil {
		return nil
	}
	id := *s.selectedID
	return &id
}

// Result returns the displayed classification result, or nil.
func (s *ClassificationSession) Result() *models.ClassificationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result.Clone()
}

func (s *ClassificationSession) failed(current bool) {
	if current && s.onFailed != nil {
		s.onFailed()
	}
}

// dismiss hides the displayed result but keeps the selection.
func (s *ClassificationSession) dismiss() {
	s.result = nil
}

// Reset clears selection and result and disowns in-flight requests.
func (s *ClassificationSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *ClassificationSession) reset() {
	s.seq.reset()
	s.selectedID = nil
	s.result = nil
}

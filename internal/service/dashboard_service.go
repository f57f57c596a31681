package service

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/engagement-dashboard/internal/dto"
	"github.com/noah-isme/engagement-dashboard/internal/models"
	appErrors "github.com/noah-isme/engagement-dashboard/pkg/errors"
)

// DashboardService is the entry point used by HTTP handlers. It validates input at the
// boundary and delegates state transitions to the reviewer's Session.
type DashboardService struct {
	validator *validator.Validate
	options   models.FilterOptions
	exports   *ExportService
	logger    *zap.Logger
}

// NewDashboardService constructs the service and registers the option-set validations.
func NewDashboardService(validate *validator.Validate, exports *ExportService, logger *zap.Logger) *DashboardService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &DashboardService{
		validator: validate,
		options:   models.DefaultFilterOptions(),
		exports:   exports,
		logger:    logger,
	}
	validate.RegisterTagNameFunc(jsonFieldName)
	registerOptionValidation(validate, "filter_topic", svc.options.Topics)
	registerOptionValidation(validate, "filter_sentiment", svc.options.Sentiments)
	registerOptionValidation(validate, "filter_specialty", svc.options.Specialties)
	registerOptionValidation(validate, "filter_state", svc.options.States)
	return svc
}

func registerOptionValidation(validate *validator.Validate, tag string, options []models.Option) {
	allowed := make(map[string]struct{}, len(options))
	for _, opt := range options {
		allowed[opt.Value] = struct{}{}
	}
	_ = validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		_, ok := allowed[fl.Field().String()]
		return ok
	})
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

// Options lists the selectable values of every enumerated filter.
func (s *DashboardService) Options() models.FilterOptions {
	return s.options
}

// ApplyFilters validates a submitted filter form and stores it on the session. Dates are
// clamped to the session's bounds the way the date picker would.
func (s *DashboardService) ApplyFilters(sess *Session, req dto.FilterRequest) error {
	req = req.Normalize()
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, describeValidation(err))
	}
	criteria := req.Criteria()
	filters := sess.Filters()
	criteria.StartDate = filters.ClampDate(criteria.StartDate)
	criteria.EndDate = filters.ClampDate(criteria.EndDate)
	filters.Apply(criteria)
	return nil
}

// View renders the session. When consumeAlert is set any pending alert is moved into the view.
func (s *DashboardService) View(sess *Session, consumeAlert bool) View {
	view := Render(sess.Snapshot())
	if consumeAlert {
		view.Alert = sess.ConsumeAlert()
	}
	return view
}

// Search runs the session's current filters.
func (s *DashboardService) Search(ctx context.Context, sess *Session) (SearchOutcome, error) {
	outcome, err := sess.Search(ctx)
	if err == nil {
		s.logger.Info("search completed",
			zap.String("session_id", sess.ID()),
			zap.String("query", outcome.Query),
			zap.Int("count", len(outcome.Messages)),
			zap.Bool("applied", outcome.Applied))
	}
	return outcome, err
}

// Classify runs a compliance check for one message.
func (s *DashboardService) Classify(ctx context.Context, sess *Session, messageID int64) (ClassifyOutcome, error) {
	if messageID <= 0 {
		return ClassifyOutcome{}, appErrors.Clone(appErrors.ErrValidation, "message id must be a positive integer")
	}
	return sess.Classify(ctx, messageID)
}

// Clear resets the whole session.
func (s *DashboardService) Clear(sess *Session) {
	sess.Clear()
}

// ExportMessages renders the current result set as CSV.
func (s *DashboardService) ExportMessages(sess *Session) ([]byte, string, error) {
	snap := sess.Snapshot()
	if snap.Results == nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "no search results to export")
	}
	out, err := s.exports.MessagesCSV(Render(snap))
	if err != nil {
		return nil, "", err
	}
	return out, s.exports.ExportFilename("messages", "csv"), nil
}

// ExportClassification renders the displayed classification as a PDF report.
func (s *DashboardService) ExportClassification(sess *Session) ([]byte, string, error) {
	out, err := s.exports.ClassificationPDF(RenderClassification(sess.Classification().Result()))
	if err != nil {
		return nil, "", err
	}
	return out, s.exports.ExportFilename("classification", "pdf"), nil
}

func describeValidation(err error) string {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return "invalid filter payload"
	}
	names := make([]string, 0, len(fields))
	for _, fe := range fields {
		names = append(names, fe.Field())
	}
	return "invalid filter value: " + strings.Join(names, ", ")
}

// internal/submission/service.go
package submission

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/common/metrics"
	"application-intake/internal/common/observability"
	"application-intake/internal/intake"
	"application-intake/internal/models"
	"application-intake/internal/sink"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Indexer stores processed submissions for search.
type Indexer interface {
	Index(ctx context.Context, sub models.Submission) error
}

// Notifier tells the applicant and the hiring team about a submission.
type Notifier interface {
	NotifySubmission(ctx context.Context, sub models.Submission) []models.NotificationResult
}

// Result is a recorded submission.
type Result struct {
	Submission    models.Submission           `json:"submission"`
	Message       string                      `json:"message"`
	Notifications []models.NotificationResult `json:"notifications,omitempty"`
}

// Service runs a submission through evaluation and the sink fan-out.
type Service struct {
	sinks    sink.Provider
	indexer  Indexer
	notifier Notifier
	obs      *observability.Observability
	timeout  time.Duration
	logger   logger.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithIndexer(i Indexer) Option {
	return func(s *Service) { s.indexer = i }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithObservability(o *observability.Observability) Option {
	return func(s *Service) { s.obs = o }
}

// WithTimeout bounds the sink work of one submission.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

func NewService(sinks sink.Provider, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		sinks:  sinks,
		obs:    observability.NewNoop(),
		logger: log.WithFields(map[string]interface{}{"component": "submission"}),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates payload, evaluates it and writes it to every destination.
// A non-empty forced type overrides the submitted applicationType.
func (s *Service) Submit(ctx context.Context, payload map[string]interface{}, forced models.ApplicationType) (*Result, error) {
	start := s.now()
	if forced != "" {
		payload["applicationType"] = string(forced)
	}

	appType := string(models.ApplicationTypeInternship)
	if t, ok := payload["applicationType"].(string); ok && t != "" {
		appType = t
	}

	ctx, span := s.obs.StartSpan(ctx, "submission.submit", attribute.String("application.type", appType))
	defer span.End()

	result, err := s.submit(ctx, payload)

	outcome := "recorded"
	if err != nil {
		outcome = strings.ToLower(string(errors.AsStandardError(err).Code))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	elapsed := s.now().Sub(start)
	metrics.SubmissionsTotal.WithLabelValues(appType, outcome).Inc()
	metrics.SubmissionDuration.WithLabelValues(appType).Observe(elapsed.Seconds())
	s.obs.RecordSubmission(ctx, appType, outcome, elapsed)

	return result, err
}

func (s *Service) submit(ctx context.Context, payload map[string]interface{}) (*Result, error) {
	record, err := Decode(payload)
	if err != nil {
		return nil, err
	}

	ev := intake.Evaluate(record)
	log := s.logger.WithFields(map[string]interface{}{
		"applicationType": string(ev.Record.ApplicationType),
		"destinations":    ev.Destinations,
	})
	if ev.Score != nil {
		metrics.SubmissionScore.Observe(float64(*ev.Score))
		metrics.SubmissionStatus.WithLabelValues(string(*ev.Status)).Inc()
		log = log.WithFields(map[string]interface{}{"score": *ev.Score, "status": string(*ev.Status)})
	}
	log.Info("application evaluated", nil)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	target, err := s.sinks(ctx)
	if err != nil {
		return nil, err
	}

	if prober, ok := target.(sink.Prober); ok {
		probe, err := prober.Probe(ctx)
		if err != nil {
			log.Error("sink connection test failed", map[string]interface{}{"error": err})
			return nil, errors.AsStandardError(err)
		}
		log.Debug("sink reachable", map[string]interface{}{"title": probe.Title})
	}

	if err := target.EnsureTablesExist(ctx, sink.TablesFor(ev.Destinations)); err != nil {
		log.Error("table preparation failed", map[string]interface{}{"error": err})
		return nil, asSinkError(err)
	}

	submittedAt := s.now()
	results := sink.FanOut(ctx, target, ev, submittedAt, log)
	if !sink.MasterAppended(results) {
		return nil, errors.NewSinkAppendFailedError(intake.MasterTable, stderrors.New(results[0].Error))
	}

	sub := models.Submission{
		ID:           uuid.New().String(),
		SubmittedAt:  intake.FormatTimestamp(submittedAt),
		Evaluation:   ev,
		Destinations: results,
	}

	if s.indexer != nil {
		if err := s.indexer.Index(ctx, sub); err != nil {
			log.Warn("search indexing failed", map[string]interface{}{"error": err, "submissionId": sub.ID})
		}
	}

	var notifications []models.NotificationResult
	if s.notifier != nil {
		notifications = s.notifier.NotifySubmission(ctx, sub)
	}

	log.Info("application recorded", map[string]interface{}{"submissionId": sub.ID})

	return &Result{
		Submission:    sub,
		Message:       SuccessMessage(ev),
		Notifications: notifications,
	}, nil
}

// Decode validates payload and converts it into a record.
func Decode(payload map[string]interface{}) (models.ApplicationRecord, error) {
	var record models.ApplicationRecord

	validation, err := intake.ValidateApplication(payload)
	if err != nil {
		return record, errors.NewInternalError(err)
	}
	if !validation.Valid {
		return record, errors.NewApplicationValidationFailedError(strings.Join(validation.Messages(), "; ")).
			WithMetadata("errors", validation.Errors)
	}

	raw, err := json.Marshal(stringifyNumbers(payload))
	if err != nil {
		return record, errors.NewMalformedRequestError(err)
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return record, errors.NewMalformedRequestError(err)
	}
	return record, nil
}

// numericFields may be posted as JSON numbers; the record holds them as text.
var numericFields = []string{"cgpaPercentage", "passingYear", "experienceDuration", "duration"}

// stringifyNumbers returns a copy of payload with numericFields rendered in
// decimal, so 1 and "1" decode to the same record.
func stringifyNumbers(payload map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	for _, field := range numericFields {
		switch n := out[field].(type) {
		case float64:
			out[field] = strconv.FormatFloat(n, 'f', -1, 64)
		case int:
			out[field] = strconv.Itoa(n)
		case json.Number:
			out[field] = n.String()
		}
	}
	return out
}

// SuccessMessage is the confirmation shown to the applicant.
func SuccessMessage(ev models.Evaluation) string {
	if ev.Status == nil {
		return fmt.Sprintf("Thank you %s! Your work from home application has been received.", ev.Record.FullName)
	}
	return fmt.Sprintf("Thank you %s! Your application has been received and is %s.",
		ev.Record.FullName, intake.StatusLabel(ev))
}

func asSinkError(err error) *errors.StandardError {
	var stdErr *errors.StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return errors.NewSinkPreparationFailedError(err)
}

// internal/workers/application/notify-applicant/handler.go
package notifyapplicant

import (
	"context"

	"application-intake/internal/common/camunda"
	apperrors "application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "notify-applicant"
)

// Notifier delivers the submission notifications.
type Notifier interface {
	NotifySubmission(ctx context.Context, sub models.Submission) []models.NotificationResult
}

type Handler struct {
	notifier Notifier
	runner   *camunda.JobRunner
	logger   logger.Logger
}

func NewHandler(config *Config, notifier Notifier, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		notifier: notifier,
		runner:   camunda.NewJobRunner(TaskType, config.Timeout, log),
		logger:   log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Run(h.runner, client, job, h.execute)
}

// execute never fails on delivery errors; they are reported in the output.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Submission.ID == "" {
		return nil, apperrors.NewApplicationValidationFailedError("submission.id is required")
	}

	results := h.notifier.NotifySubmission(ctx, input.Submission)

	output := &Output{Notifications: results}
	for _, r := range results {
		switch r.Status {
		case models.NotificationSent:
			output.SentCount++
		case models.NotificationFailed:
			output.FailedCount++
		}
	}

	h.logger.Info("notifications processed", map[string]interface{}{
		"submissionId": input.Submission.ID,
		"sent":         output.SentCount,
		"failed":       output.FailedCount,
	})
	return output, nil
}

// Execute exposes execute for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

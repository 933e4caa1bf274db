// internal/workers/application/record-application/handler.go
package recordapplication

import (
	"context"

	"application-intake/internal/common/camunda"
	apperrors "application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/models"
	"application-intake/internal/submission"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "record-application"
)

// Submitter records one application.
type Submitter interface {
	Submit(ctx context.Context, payload map[string]interface{}, forced models.ApplicationType) (*submission.Result, error)
}

type Handler struct {
	submitter Submitter
	runner    *camunda.JobRunner
	logger    logger.Logger
}

func NewHandler(config *Config, submitter Submitter, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		submitter: submitter,
		runner:    camunda.NewJobRunner(TaskType, config.Timeout, log),
		logger:    log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Run(h.runner, client, job, h.execute)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ApplicationData == nil {
		return nil, apperrors.NewApplicationValidationFailedError("applicationData is required")
	}

	result, err := h.submitter.Submit(ctx, input.ApplicationData, models.ApplicationType(input.ApplicationType))
	if err != nil {
		return nil, err
	}

	sub := result.Submission
	h.logger.Info("application recorded", map[string]interface{}{
		"submissionId": sub.ID,
		"destinations": len(sub.Destinations),
	})

	return &Output{
		SubmissionID:  sub.ID,
		SubmittedAt:   sub.SubmittedAt,
		Message:       result.Message,
		Score:         sub.Evaluation.Score,
		Status:        sub.Evaluation.Status,
		SheetsUpdated: sub.Evaluation.Destinations,
		Destinations:  sub.Destinations,
		Submission:    sub,
	}, nil
}

// Execute exposes execute for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

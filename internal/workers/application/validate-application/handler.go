// internal/workers/application/validate-application/handler.go
package validateapplication

import (
	"context"
	"errors"
	"fmt"

	"application-intake/internal/common/camunda"
	apperrors "application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/common/validation"
	"application-intake/internal/intake"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-application"
)

var (
	ErrApplicationValidationFailed = errors.New("APPLICATION_VALIDATION_FAILED")
)

type Handler struct {
	runner *camunda.JobRunner
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		runner: camunda.NewJobRunner(TaskType, config.Timeout, log),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Run(h.runner, client, job, h.execute)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.ApplicationData == nil {
		return nil, apperrors.NewApplicationValidationFailedError("applicationData is required")
	}
	if input.ApplicationType != "" {
		input.ApplicationData["applicationType"] = input.ApplicationType
	}

	result, err := intake.ValidateApplication(input.ApplicationData)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	h.logger.Info("validation completed", map[string]interface{}{
		"isValid":    result.Valid,
		"errorCount": len(result.Errors),
	})

	if !result.Valid {
		return nil, apperrors.NewApplicationValidationFailedError(
			fmt.Errorf("%w: %d validation errors", ErrApplicationValidationFailed, len(result.Errors)).Error(),
		).WithMetadata("errors", result.Errors)
	}

	return &Output{
		IsValid:          true,
		ValidationErrors: []validation.ValidationError{},
	}, nil
}

// Execute exposes execute for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

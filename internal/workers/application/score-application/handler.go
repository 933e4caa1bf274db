// internal/workers/application/score-application/handler.go
package scoreapplication

import (
	"context"

	"application-intake/internal/common/camunda"
	"application-intake/internal/common/logger"
	"application-intake/internal/intake"
	"application-intake/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "score-application"
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
	ev := intake.Evaluate(input.Application)

	output := &Output{
		Score:        ev.Score,
		Status:       ev.Status,
		Destinations: ev.Destinations,
	}

	if ev.Status != nil {
		breakdown := intake.Breakdown(ev.Record)
		output.Breakdown = &breakdown
		output.RejectReason = string(intake.AutoReject(ev.Record))
		output.Shortlisted = *ev.Status == models.StatusShortlisted

		h.logger.Info("application scored", map[string]interface{}{
			"score":  *ev.Score,
			"status": string(*ev.Status),
		})
	}

	return output, nil
}

// Execute exposes execute for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// internal/common/camunda/job.go
package camunda

import (
	"context"
	"encoding/json"
	"time"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// JobRunner holds what every job handler needs around its business logic.
type JobRunner struct {
	taskType string
	timeout  time.Duration
	logger   logger.Logger
	failures *errors.JobErrorHandler
}

func NewJobRunner(taskType string, timeout time.Duration, log logger.Logger) *JobRunner {
	return &JobRunner{
		taskType: taskType,
		timeout:  timeout,
		logger:   log,
		failures: errors.NewJobErrorHandler(log),
	}
}

// Run decodes the job variables into In, runs exec under the runner's
// timeout and completes the job with its output or reports the failure.
func Run[In any, Out any](r *JobRunner, client worker.JobClient, job entities.Job, exec func(context.Context, *In) (*Out, error)) {
	start := time.Now()
	r.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})
	defer func() {
		metrics.WorkerJobDuration.WithLabelValues(r.taskType).Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	var input In
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		r.fail(ctx, client, job, errors.NewMalformedRequestError(err))
		return
	}

	output, err := exec(ctx, &input)
	if err != nil {
		r.fail(ctx, client, job, err)
		return
	}

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		r.logger.Error("failed to complete job", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
}

func (r *JobRunner) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(r.taskType, string(errors.AsStandardError(err).Code)).Inc()
	r.failures.HandleJobError(ctx, client, job, err)
}

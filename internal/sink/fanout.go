// internal/sink/fanout.go
package sink

import (
	"context"
	"fmt"
	"time"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/common/metrics"
	"application-intake/internal/intake"
	"application-intake/internal/models"
)

// FanOut appends the evaluation to every destination in order, projecting it
// through each table's layout. A failed destination never stops the rest and
// nothing is rolled back.
func FanOut(ctx context.Context, s TableSink, ev models.Evaluation, submittedAt time.Time, log logger.Logger) []models.DestinationResult {
	results := make([]models.DestinationResult, 0, len(ev.Destinations))

	for _, table := range ev.Destinations {
		row := intake.LayoutFor(table).Row(ev, submittedAt)
		result := models.DestinationResult{Table: table}

		if err := s.AppendRow(ctx, table, row); err != nil {
			result.Error = describeFailure(err)
			metrics.SinkAppends.WithLabelValues(table, "failed").Inc()
			log.Error("append failed", map[string]interface{}{
				"table": table,
				"error": err,
			})
		} else {
			result.Appended = true
			metrics.SinkAppends.WithLabelValues(table, "appended").Inc()
			log.Debug("row appended", map[string]interface{}{"table": table})
		}

		results = append(results, result)
	}

	return results
}

// MasterAppended reports whether the master table append succeeded.
func MasterAppended(results []models.DestinationResult) bool {
	for _, r := range results {
		if r.Table == intake.MasterTable {
			return r.Appended
		}
	}
	return false
}

func describeFailure(err error) string {
	stdErr := errors.AsStandardError(err)
	if stdErr.Details == "" {
		return stdErr.Message
	}
	return fmt.Sprintf("%s: %s", stdErr.Message, stdErr.Details)
}

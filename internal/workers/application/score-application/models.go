// internal/workers/application/score-application/models.go
package scoreapplication

import (
	"application-intake/internal/intake"
	"application-intake/internal/models"
)

type Input struct {
	Application models.ApplicationRecord `json:"application"`
}

// Output is nil-scored for work-from-home applications.
type Output struct {
	Score        *int                   `json:"score"`
	Status       *models.Status         `json:"status"`
	Breakdown    *intake.ScoreBreakdown `json:"breakdown,omitempty"`
	RejectReason string                 `json:"rejectReason,omitempty"`
	Destinations []string               `json:"destinations"`
	Shortlisted  bool                   `json:"shortlisted"`
}

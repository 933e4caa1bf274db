// internal/workers/application/record-application/models.go
package recordapplication

import "application-intake/internal/models"

type Input struct {
	ApplicationData map[string]interface{} `json:"applicationData"`
	ApplicationType string                 `json:"applicationType,omitempty"`
}

type Output struct {
	SubmissionID  string                     `json:"submissionId"`
	SubmittedAt   string                     `json:"submittedAt"`
	Message       string                     `json:"message"`
	Score         *int                       `json:"score"`
	Status        *models.Status             `json:"status"`
	SheetsUpdated []string                   `json:"sheetsUpdated"`
	Destinations  []models.DestinationResult `json:"destinations"`
	// Submission is passed on to notify-applicant.
	Submission models.Submission `json:"submission"`
}

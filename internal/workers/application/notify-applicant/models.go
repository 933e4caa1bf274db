// internal/workers/application/notify-applicant/models.go
package notifyapplicant

import "application-intake/internal/models"

type Input struct {
	Submission models.Submission `json:"submission"`
}

type Output struct {
	Notifications []models.NotificationResult `json:"notifications"`
	SentCount     int                         `json:"sentCount"`
	FailedCount   int                         `json:"failedCount"`
}

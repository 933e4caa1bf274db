// internal/models/notification.go
package models

// Notification channels.
const (
	ChannelEmail = "email"
	ChannelTopic = "topic"
)

// Notification delivery statuses.
const (
	NotificationSent     = "sent"
	NotificationFailed   = "failed"
	NotificationDisabled = "disabled"
)

// Notification types.
const (
	TypeApplicationReceived  = "application_received"
	TypeCandidateShortlisted = "candidate_shortlisted"
)

// NotificationResult is the outcome of one notification attempt.
type NotificationResult struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Channel string `json:"channel"`
	Status  string `json:"status"`
	SentAt  string `json:"sentAt"`
	Error   string `json:"error,omitempty"`
}

// NotificationTemplate is a subject/body pair with {{placeholder}} fields.
type NotificationTemplate struct {
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

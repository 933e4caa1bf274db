// internal/notify/notifier.go
package notify

import (
	"context"
	"strconv"
	"strings"
	"time"

	awsclient "application-intake/internal/common/aws"
	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/intake"
	"application-intake/internal/models"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"
)

// Interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Config struct {
	EmailEnabled bool
	FromEmail    string
	TopicEnabled bool
	TopicARN     string
	Company      string
}

// Notifier sends the applicant confirmation and the shortlist alert.
// Delivery failures are reported in the results, never returned.
type Notifier struct {
	config    Config
	sesClient SESService
	snsClient SNSService
	templates map[string]models.NotificationTemplate
	logger    logger.Logger
	now       func() time.Time
}

func NewNotifier(config Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Notifier {
	return &Notifier{
		config:    config,
		sesClient: sesClient,
		snsClient: snsClient,
		templates: DefaultTemplates,
		logger:    log.WithFields(map[string]interface{}{"component": "notifier"}),
		now:       time.Now,
	}
}

// NotifySubmission emails the applicant and, for shortlisted candidates,
// publishes to the hiring topic.
func (n *Notifier) NotifySubmission(ctx context.Context, sub models.Submission) []models.NotificationResult {
	data := n.templateData(sub)
	results := []models.NotificationResult{n.sendConfirmation(ctx, sub, data)}

	if status := sub.Evaluation.Status; status != nil && *status == models.StatusShortlisted {
		results = append(results, n.publishShortlisted(ctx, sub, data))
	}
	return results
}

func (n *Notifier) sendConfirmation(ctx context.Context, sub models.Submission, data map[string]interface{}) models.NotificationResult {
	result := n.newResult(models.TypeApplicationReceived, models.ChannelEmail)

	to := sub.Evaluation.Record.Email
	if !n.config.EmailEnabled || n.sesClient == nil || !intake.IsPresent(to) {
		result.Status = models.NotificationDisabled
		return result
	}

	tmpl := n.templates[models.TypeApplicationReceived]
	input := awsclient.TextEmail(n.config.FromEmail, to,
		renderTemplate(tmpl.Subject, data), renderTemplate(tmpl.Body, data))

	if _, err := n.sesClient.SendEmail(ctx, input); err != nil {
		stdErr := errors.NewNotificationSendFailedError(models.ChannelEmail, err)
		n.logger.Error("email send failed", map[string]interface{}{
			"error":        stdErr.Details,
			"submissionId": sub.ID,
		})
		result.Status = models.NotificationFailed
		result.Error = stdErr.Details
		return result
	}

	result.Status = models.NotificationSent
	return result
}

func (n *Notifier) publishShortlisted(ctx context.Context, sub models.Submission, data map[string]interface{}) models.NotificationResult {
	result := n.newResult(models.TypeCandidateShortlisted, models.ChannelTopic)

	if !n.config.TopicEnabled || n.snsClient == nil || n.config.TopicARN == "" {
		result.Status = models.NotificationDisabled
		return result
	}

	tmpl := n.templates[models.TypeCandidateShortlisted]
	input := awsclient.TopicMessage(n.config.TopicARN,
		renderTemplate(tmpl.Subject, data), renderTemplate(tmpl.Body, data),
		map[string]string{
			"applicationType": string(sub.Evaluation.Record.ApplicationType),
			"status":          string(models.StatusShortlisted),
		})

	if _, err := n.snsClient.Publish(ctx, input); err != nil {
		stdErr := errors.NewNotificationSendFailedError(models.ChannelTopic, err)
		n.logger.Error("topic publish failed", map[string]interface{}{
			"error":        stdErr.Details,
			"submissionId": sub.ID,
		})
		result.Status = models.NotificationFailed
		result.Error = stdErr.Details
		return result
	}

	result.Status = models.NotificationSent
	return result
}

func (n *Notifier) newResult(notificationType, channel string) models.NotificationResult {
	return models.NotificationResult{
		ID:      uuid.New().String(),
		Type:    notificationType,
		Channel: channel,
		SentAt:  n.now().UTC().Format(time.RFC3339),
	}
}

func (n *Notifier) templateData(sub models.Submission) map[string]interface{} {
	rec := sub.Evaluation.Record
	score := intake.Placeholder
	if sub.Evaluation.Score != nil {
		score = strconv.Itoa(*sub.Evaluation.Score)
	}
	return map[string]interface{}{
		"company":         n.config.Company,
		"submissionId":    sub.ID,
		"fullName":        rec.FullName,
		"email":           rec.Email,
		"applicationType": string(rec.ApplicationType),
		"score":           score,
		"technologies":    strings.Join(rec.Technologies, intake.ListSeparator),
	}
}

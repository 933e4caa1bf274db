// internal/workers/application/notify-applicant/handler_test.go
package notifyapplicant

import (
	"context"
	"errors"
	"testing"

	"application-intake/internal/common/config"
	apperrors "application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/models"
	"application-intake/internal/notify"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mocks
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return LoadConfig(config.WorkerConfig{Timeout: 5000})
}

func createTestSubmission() models.Submission {
	score := 85
	status := models.StatusShortlisted
	return models.Submission{
		ID: "sub-001",
		Evaluation: models.Evaluation{
			Record: models.ApplicationRecord{
				FullName:        "Asha Verma",
				Email:           "asha@example.com",
				ApplicationType: models.ApplicationTypeInternship,
			},
			Score:  &score,
			Status: &status,
		},
	}
}

func createTestHandler(t *testing.T, sesErr error) *Handler {
	sesMock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			if sesErr != nil {
				return nil, sesErr
			}
			return &ses.SendEmailOutput{}, nil
		},
	}
	snsMock := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return &sns.PublishOutput{}, nil
		},
	}

	log := logger.NewTestLogger(t)
	notifier := notify.NewNotifier(notify.Config{
		EmailEnabled: true,
		FromEmail:    "careers@example.com",
		TopicEnabled: true,
		TopicARN:     "arn:aws:sns:ap-south-1:123456789012:shortlisted",
		Company:      "Finonest",
	}, sesMock, snsMock, log)

	return NewHandler(createTestConfig(), notifier, log)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	handler := createTestHandler(t, nil)

	output, err := handler.Execute(context.Background(), &Input{Submission: createTestSubmission()})

	require.NoError(t, err)
	assert.Len(t, output.Notifications, 2)
	assert.Equal(t, 2, output.SentCount)
	assert.Equal(t, 0, output.FailedCount)
}

func TestHandler_Execute_EmailFailure(t *testing.T) {
	handler := createTestHandler(t, errors.New("SES service unavailable"))

	output, err := handler.Execute(context.Background(), &Input{Submission: createTestSubmission()})

	require.NoError(t, err)
	assert.Equal(t, 1, output.SentCount)
	assert.Equal(t, 1, output.FailedCount)
	assert.Equal(t, models.NotificationFailed, output.Notifications[0].Status)
}

func TestHandler_Execute_MissingSubmission(t *testing.T) {
	handler := createTestHandler(t, nil)

	output, err := handler.Execute(context.Background(), &Input{})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeApplicationValidationFailed))
}

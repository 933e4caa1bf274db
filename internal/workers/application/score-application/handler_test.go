// internal/workers/application/score-application/handler_test.go
package scoreapplication

import (
	"context"
	"testing"

	"application-intake/internal/common/config"
	"application-intake/internal/common/logger"
	"application-intake/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return LoadConfig(config.WorkerConfig{Timeout: 5000})
}

func createTestApplication() models.ApplicationRecord {
	return models.ApplicationRecord{
		FullName:             "Asha Verma",
		Email:                "asha@example.com",
		Mobile:               "9876543210",
		CurrentYear:          "3rd",
		Technologies:         []string{"Full Stack"},
		ProgrammingLanguages: []string{"JavaScript"},
		GithubPortfolio:      "https://github.com/asha",
		HasProjects:          "yes",
		HasInternship:        "no",
		HoursPerDay:          "4-6",
		Duration:             "3",
		ReadyToLearn:         "yes",
		ApplicationType:      models.ApplicationTypeInternship,
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(rec *models.ApplicationRecord)
		validate func(t *testing.T, output *Output)
	}{
		{
			name:   "shortlisted",
			mutate: func(rec *models.ApplicationRecord) {},
			validate: func(t *testing.T, output *Output) {
				require.NotNil(t, output.Score)
				assert.Equal(t, 65, *output.Score)
				assert.Equal(t, models.StatusShortlisted, *output.Status)
				assert.True(t, output.Shortlisted)
				assert.Equal(t, 20, output.Breakdown.Portfolio)
				assert.Equal(t, 0, output.Breakdown.Seniority)
				assert.Empty(t, output.RejectReason)
				assert.Equal(t, []string{"All_Applications", "Full_Stack"}, output.Destinations)
			},
		},
		{
			name: "auto rejected",
			mutate: func(rec *models.ApplicationRecord) {
				rec.HoursPerDay = "2-3"
				rec.Duration = "1"
			},
			validate: func(t *testing.T, output *Output) {
				assert.Equal(t, models.StatusRejected, *output.Status)
				assert.Equal(t, "low_commitment", output.RejectReason)
				assert.False(t, output.Shortlisted)
				assert.Equal(t, []string{"All_Applications", "Rejected"}, output.Destinations)
			},
		},
		{
			name: "work from home is not scored",
			mutate: func(rec *models.ApplicationRecord) {
				rec.ApplicationType = models.ApplicationTypeWorkFromHome
			},
			validate: func(t *testing.T, output *Output) {
				assert.Nil(t, output.Score)
				assert.Nil(t, output.Status)
				assert.Nil(t, output.Breakdown)
				assert.Equal(t, []string{"All_Applications", "WFH_Freelancers"}, output.Destinations)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := createTestApplication()
			tt.mutate(&rec)
			handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

			output, err := handler.Execute(context.Background(), &Input{Application: rec})

			require.NoError(t, err)
			tt.validate(t, output)
		})
	}
}

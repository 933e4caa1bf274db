// internal/sink/fanout_test.go
package sink

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"application-intake/internal/common/config"
	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/intake"
	"application-intake/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEvaluation() models.Evaluation {
	return intake.Evaluate(models.ApplicationRecord{
		FullName:             "Asha Verma",
		Email:                "asha@example.com",
		Mobile:               "9876543210",
		CurrentYear:          "2nd",
		Technologies:         []string{"Web Development", "AI / ML"},
		ProgrammingLanguages: []string{"Python"},
		HasProjects:          "yes",
		HoursPerDay:          "4-6",
		ReadyToLearn:         "yes",
	})
}

func TestFanOut_AllDestinations(t *testing.T) {
	mem := NewMemorySink("test")
	ev := createTestEvaluation()
	require.Equal(t, []string{"All_Applications", "Web_Development", "AI_ML"}, ev.Destinations)

	results := FanOut(context.Background(), mem, ev, time.Now(), logger.NewTestLogger(t))

	require.Len(t, results, 3)
	for _, r := range results {
		assert.True(t, r.Appended, r.Table)
		assert.Empty(t, r.Error)
	}
	assert.True(t, MasterAppended(results))
	assert.Len(t, mem.Rows("AI_ML"), 1)
	assert.Len(t, mem.Rows("AI_ML")[0], intake.FullLayout.Width())
}

func TestFanOut_ContinuesAfterFailure(t *testing.T) {
	mem := NewMemorySink("test")
	mem.AppendErrors["Web_Development"] = errors.NewSinkAppendFailedError("Web_Development", stderrors.New("quota"))

	results := FanOut(context.Background(), mem, createTestEvaluation(), time.Now(), logger.NewTestLogger(t))

	require.Len(t, results, 3)
	assert.True(t, results[0].Appended)
	assert.False(t, results[1].Appended)
	assert.Equal(t, "Failed to append row to table 'Web_Development': quota", results[1].Error)
	assert.True(t, results[2].Appended)
	assert.True(t, MasterAppended(results))
}

func TestFanOut_MasterFailure(t *testing.T) {
	mem := NewMemorySink("test")
	mem.AppendErrors[intake.MasterTable] = stderrors.New("down")

	results := FanOut(context.Background(), mem, createTestEvaluation(), time.Now(), logger.NewTestLogger(t))

	assert.False(t, MasterAppended(results))
	assert.True(t, results[1].Appended)
}

func TestFanOut_WorkFromHomeLayouts(t *testing.T) {
	mem := NewMemorySink("test")
	ev := intake.Evaluate(models.ApplicationRecord{
		FullName:        "Ravi",
		Email:           "ravi@example.com",
		Mobile:          "9123456780",
		ApplicationType: models.ApplicationTypeWorkFromHome,
	})

	FanOut(context.Background(), mem, ev, time.Now(), logger.NewTestLogger(t))

	assert.Len(t, mem.Rows(intake.MasterTable)[0], intake.FullLayout.Width())
	assert.Len(t, mem.Rows(intake.WFHTable)[0], intake.WFHLayout.Width())
}

func TestTablesFor(t *testing.T) {
	tables := TablesFor([]string{"All_Applications", "Full_Stack", "Full_Stack", "WFH_Freelancers"})

	require.Len(t, tables, 3)
	assert.Equal(t, "Full_Stack", tables[1].Name)
	assert.Len(t, tables[0].Header, 32)
	assert.Len(t, tables[2].Header, 13)
}

func TestProviders(t *testing.T) {
	mem := NewMemorySink("Applications")

	s, err := Static(mem)(context.Background())
	require.NoError(t, err)
	assert.Same(t, mem, s)

	_, err = SheetsProvider(config.GoogleConfig{}, logger.NewTestLogger(t))(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConfigurationMissing))
}

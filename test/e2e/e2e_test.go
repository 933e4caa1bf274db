// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The suite runs against a live intake server, e.g.
// E2E_BASE_URL=http://localhost:8080 go test ./test/e2e/...
var (
	baseURL    string
	httpClient = &http.Client{Timeout: 60 * time.Second}
)

func TestMain(m *testing.M) {
	baseURL = strings.TrimRight(os.Getenv("E2E_BASE_URL"), "/")
	os.Exit(m.Run())
}

func requireServer(t *testing.T) {
	t.Helper()
	if baseURL == "" {
		t.Skip("E2E_BASE_URL not set")
	}
}

func postJSON(t *testing.T, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := httpClient.Post(baseURL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func getJSON(t *testing.T, path string) (int, map[string]interface{}) {
	t.Helper()

	resp, err := httpClient.Get(baseURL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func createInternshipPayload() map[string]interface{} {
	return map[string]interface{}{
		"fullName":             "E2E Candidate",
		"email":                "e2e.candidate@example.com",
		"mobile":               "9876543210",
		"city":                 "Jaipur",
		"state":                "Rajasthan",
		"college":              "E2E Institute",
		"currentYear":          "Final",
		"degree":               "B.Tech",
		"technologies":         []string{"Web Development", "Data Analytics"},
		"programmingLanguages": []string{"Go", "Python"},
		"githubPortfolio":      "https://github.com/e2e-candidate",
		"hasProjects":          "yes",
		"hasInternship":        "yes",
		"experienceDuration":   "3 months",
		"mode":                 "Remote",
		"hoursPerDay":          "4-6",
		"duration":             "6",
		"whySelectYou":         "Automated end-to-end check",
		"readyToLearn":         "yes",
	}
}

// ==========================
// 1. Health
// ==========================
func TestE2E_Health(t *testing.T) {
	requireServer(t)

	status, body := getJSON(t, "/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body = getJSON(t, "/ready")
	assert.Equal(t, http.StatusOK, status, "readiness checks: %v", body["checks"])
}

// ==========================
// 2. Sink connectivity
// ==========================
func TestE2E_TestSheets(t *testing.T) {
	requireServer(t)

	status, body := getJSON(t, "/api/test-sheets")
	require.Equal(t, http.StatusOK, status, "test-sheets failed: %v", body)
	assert.Equal(t, true, body["success"], "test-sheets reported: %v", body)
	t.Logf("✅ connected to %v, tabs: %v", body["sheetTitle"], body["existingTabs"])
}

// ==========================
// 3. Submissions
// ==========================
func TestE2E_SubmitInternship(t *testing.T) {
	requireServer(t)

	status, body := postJSON(t, "/api/submit-application", createInternshipPayload())
	require.Equal(t, http.StatusOK, status, "submit failed: %v", body)

	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 100, body["score"])
	assert.Equal(t, "Shortlisted", body["status"])
	assert.NotEmpty(t, body["submissionId"])
	assert.ElementsMatch(t,
		[]interface{}{"All_Applications", "Web_Development", "Data_Analytics"},
		body["sheetsUpdated"])
}

func TestE2E_SubmitWorkFromHome(t *testing.T) {
	requireServer(t)

	payload := createInternshipPayload()
	payload["fatherName"] = "E2E Parent"
	payload["nativePlace"] = "Ajmer"
	payload["personalVehicle"] = "yes"

	status, body := postJSON(t, "/api/submit-wfh", payload)
	require.Equal(t, http.StatusOK, status, "submit failed: %v", body)

	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["score"])
	assert.ElementsMatch(t,
		[]interface{}{"All_Applications", "WFH_Freelancers"},
		body["sheetsUpdated"])
}

func TestE2E_SubmitValidationError(t *testing.T) {
	requireServer(t)

	payload := createInternshipPayload()
	payload["email"] = "not-an-email"

	status, body := postJSON(t, "/api/submit-application", payload)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["error"])
}

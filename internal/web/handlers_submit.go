// internal/web/handlers_submit.go
package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"application-intake/internal/common/errors"
	"application-intake/internal/models"
)

const maxBodyBytes = 1 << 20

// SubmitResponse is the success body of both submit endpoints.
type SubmitResponse struct {
	Success       bool                       `json:"success"`
	Message       string                     `json:"message"`
	Score         *int                       `json:"score,omitempty"`
	Status        *models.Status             `json:"status,omitempty"`
	SheetsUpdated []string                   `json:"sheetsUpdated"`
	SubmissionID  string                     `json:"submissionId"`
	Destinations  []models.DestinationResult `json:"destinations"`
}

func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, "")
}

// handleSubmitWFH runs the same pipeline with the type forced to work from home.
func (s *Server) handleSubmitWFH(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, models.ApplicationTypeWorkFromHome)
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request, forced models.ApplicationType) {
	var payload map[string]interface{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil || payload == nil {
		if err == nil {
			err = fmt.Errorf("body must be a JSON object")
		}
		s.respondSubmitError(w, r, errors.NewMalformedRequestError(err))
		return
	}

	result, err := s.deps.Submissions.Submit(r.Context(), payload, forced)
	if err != nil {
		s.respondSubmitError(w, r, err)
		return
	}

	ev := result.Submission.Evaluation
	writeJSON(w, http.StatusOK, SubmitResponse{
		Success:       true,
		Message:       result.Message,
		Score:         ev.Score,
		Status:        ev.Status,
		SheetsUpdated: ev.Destinations,
		SubmissionID:  result.Submission.ID,
		Destinations:  result.Submission.Destinations,
	})
}

// respondSubmitError renders err in the submit endpoints' error contract.
func (s *Server) respondSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := errors.AsStandardError(err)
	status := errors.HTTPStatus(stdErr.Code)

	s.logger.Error("submission failed", map[string]interface{}{
		"path":    r.URL.Path,
		"status":  status,
		"code":    string(stdErr.Code),
		"details": stdErr.Details,
	})

	var body map[string]interface{}
	switch stdErr.Code {
	case errors.ErrCodeMalformedRequest:
		body = map[string]interface{}{
			"error":   "Invalid request body",
			"details": stdErr.Details,
		}
	case errors.ErrCodeApplicationValidationFailed:
		body = map[string]interface{}{
			"error":   "Validation failed",
			"details": stdErr.Details,
			"fields":  stdErr.Metadata["errors"],
		}
	case errors.ErrCodeConfigurationMissing:
		body = map[string]interface{}{
			"error":   stdErr.Message,
			"details": stdErr.Metadata["missing"],
		}
	case errors.ErrCodeSinkNotFound:
		body = map[string]interface{}{
			"error":   "Google Sheet not found",
			"details": "The sheet ID is invalid or the sheet has been deleted",
			"sheetId": s.deps.Google.SheetID,
		}
	case errors.ErrCodeSinkPermissionDenied:
		body = map[string]interface{}{
			"error":   "Permission denied to access Google Sheet",
			"details": "Please share the sheet with: " + s.deps.Google.ClientEmail,
			"sheetId": s.deps.Google.SheetID,
		}
	case errors.ErrCodeSinkUnreachable, errors.ErrCodeSinkAuthFailed,
		errors.ErrCodeSinkAppendFailed, errors.ErrCodeSinkPreparationFailed:
		body = map[string]interface{}{
			"error":   "Failed to write to Google Sheets",
			"details": stdErr.Details,
			"code":    stdErr.Metadata["httpStatus"],
			"hint":    "Check server logs for detailed error information",
		}
	default:
		body = map[string]interface{}{
			"error":   "Failed to process application",
			"details": stdErr.Details,
		}
	}

	writeJSON(w, status, body)
}


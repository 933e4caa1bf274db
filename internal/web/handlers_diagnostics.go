// internal/web/handlers_diagnostics.go
package web

import (
	"fmt"
	"net/http"

	"application-intake/internal/common/config"
	"application-intake/internal/common/errors"
	"application-intake/internal/sink"
)

// handleTestSheets runs a connection test against the configured sink.
func (s *Server) handleTestSheets(w http.ResponseWriter, r *http.Request) {
	google := s.deps.Google

	if s.deps.SinkDriver == config.SinkDriverSheets {
		if missing := google.Missing(); len(missing) > 0 {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"success": false,
				"error":   "Missing environment variables",
				"missing": missing,
				"current": currentEnv(google),
			})
			return
		}
	}

	target, err := s.deps.Sinks(r.Context())
	if err != nil {
		s.respondProbeError(w, err)
		return
	}

	prober, ok := target.(sink.Prober)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": fmt.Sprintf("The %s sink has no connection test", target.Name()),
		})
		return
	}

	probe, err := prober.Probe(r.Context())
	if err != nil {
		s.respondProbeError(w, err)
		return
	}

	s.logger.Info("connection test passed", map[string]interface{}{
		"sink":  target.Name(),
		"title": probe.Title,
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"message":        "Successfully connected to Google Sheets",
		"sheetTitle":     probe.Title,
		"existingTabs":   probe.Tables,
		"serviceAccount": google.ClientEmail,
		"sheetId":        google.SheetID,
	})
}

func (s *Server) respondProbeError(w http.ResponseWriter, err error) {
	stdErr := errors.AsStandardError(err)
	info := sink.Describe(err)

	message := info.Message
	if info.Code == 0 && stdErr.Details != "" {
		message = stdErr.Details
	}

	switch {
	case stdErr.Code == errors.ErrCodeSinkPermissionDenied:
		message = fmt.Sprintf("Permission denied. Please share the Google Sheet with: %s with Editor access", s.deps.Google.ClientEmail)
	case stdErr.Code == errors.ErrCodeSinkNotFound:
		message = fmt.Sprintf("Sheet not found. Check if the sheet ID is correct: %s", s.deps.Google.SheetID)
	case stdErr.Code == errors.ErrCodeSinkAuthFailed || sink.IsAuthFailure(err):
		message = "Authentication failed. Check if the private key is correctly formatted"
	}

	s.logger.Error("connection test failed", map[string]interface{}{
		"code":  string(stdErr.Code),
		"error": err,
	})

	details := map[string]interface{}{"message": message}
	if info.Code != 0 {
		details["code"] = info.Code
	}
	if info.Status != "" {
		details["status"] = info.Status
	}

	writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"success":        false,
		"error":          "Failed to connect to Google Sheets",
		"details":        details,
		"serviceAccount": s.deps.Google.ClientEmail,
		"sheetId":        s.deps.Google.SheetID,
	})
}

// currentEnv reports the credential variables without revealing the key.
func currentEnv(g config.GoogleConfig) map[string]string {
	key := "Missing"
	if g.PrivateKey != "" {
		key = fmt.Sprintf("Present (length: %d)", len(g.PrivateKey))
	}
	return map[string]string{
		"GOOGLE_PROJECT_ID":     g.ProjectID,
		"GOOGLE_PRIVATE_KEY_ID": g.PrivateKeyID,
		"GOOGLE_PRIVATE_KEY":    key,
		"GOOGLE_CLIENT_EMAIL":   g.ClientEmail,
		"GOOGLE_CLIENT_ID":      g.ClientID,
		"GOOGLE_SHEET_ID":       g.SheetID,
	}
}

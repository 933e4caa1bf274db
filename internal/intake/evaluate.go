// internal/intake/evaluate.go
package intake

import "application-intake/internal/models"

// Evaluate runs the full pipeline over a raw record: normalize, score,
// classify and route. Work-from-home records skip scoring and classification.
func Evaluate(rec models.ApplicationRecord) models.Evaluation {
	normalized := Normalize(rec)

	if normalized.IsWorkFromHome() {
		return models.Evaluation{
			Record:       normalized,
			Destinations: Route(normalized, ""),
		}
	}

	score := Score(normalized)
	status := Classify(normalized, score)

	return models.Evaluation{
		Record:       normalized,
		Score:        &score,
		Status:       &status,
		Destinations: Route(normalized, status),
	}
}

// StatusLabel is the status as shown to applicants, lowercased.
func StatusLabel(ev models.Evaluation) string {
	if ev.Status == nil {
		return ""
	}
	switch *ev.Status {
	case models.StatusShortlisted:
		return "shortlisted"
	case models.StatusRejected:
		return "rejected"
	default:
		return "under review"
	}
}

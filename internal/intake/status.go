// internal/intake/status.go
package intake

import "application-intake/internal/models"

// RejectReason names the auto-reject rule that fired.
type RejectReason string

const (
	RejectNone              RejectReason = ""
	RejectNoLanguages       RejectReason = "no_programming_languages"
	RejectNoProjectsNoLearn RejectReason = "no_projects_not_ready_to_learn"
	RejectLowCommitment     RejectReason = "low_commitment"
)

// AutoReject evaluates the auto-reject rules in order and returns the first
// that matches.
func AutoReject(rec models.ApplicationRecord) RejectReason {
	switch {
	case len(rec.ProgrammingLanguages) == 0:
		return RejectNoLanguages
	case rec.HasProjects == "no" && rec.ReadyToLearn == "no":
		return RejectNoProjectsNoLearn
	case rec.HoursPerDay == "2-3" && rec.Duration == "1":
		return RejectLowCommitment
	default:
		return RejectNone
	}
}

// Classify maps a record and its score to a status. Auto-reject rules win
// over the score threshold.
func Classify(rec models.ApplicationRecord, score int) models.Status {
	if AutoReject(rec) != RejectNone {
		return models.StatusRejected
	}
	if score >= ShortlistThreshold {
		return models.StatusShortlisted
	}
	return models.StatusUnderReview
}

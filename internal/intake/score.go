// internal/intake/score.go
package intake

import "application-intake/internal/models"

// Point awards. They sum to MaxScore.
const (
	PortfolioPoints    = 20
	ProjectsPoints     = 25
	SeniorityPoints    = 15
	AvailabilityPoints = 20
	InternshipPoints   = 20

	MaxScore = PortfolioPoints + ProjectsPoints + SeniorityPoints + AvailabilityPoints + InternshipPoints

	// ShortlistThreshold is the minimum score for Shortlisted.
	ShortlistThreshold = 60
)

// ScoreBreakdown lists the points awarded per rule.
type ScoreBreakdown struct {
	Portfolio    int `json:"portfolio"`
	Projects     int `json:"projects"`
	Seniority    int `json:"seniority"`
	Availability int `json:"availability"`
	Internship   int `json:"internship"`
}

// Total is the sum of all awards.
func (b ScoreBreakdown) Total() int {
	return b.Portfolio + b.Projects + b.Seniority + b.Availability + b.Internship
}

// Breakdown evaluates each award rule against a normalized record.
func Breakdown(rec models.ApplicationRecord) ScoreBreakdown {
	var b ScoreBreakdown

	if IsPresent(rec.GithubPortfolio) {
		b.Portfolio = PortfolioPoints
	}
	if rec.HasProjects == "yes" {
		b.Projects = ProjectsPoints
	}
	if rec.CurrentYear == "Final" || rec.CurrentYear == "Passout" {
		b.Seniority = SeniorityPoints
	}
	if rec.HoursPerDay == "4-6" || rec.HoursPerDay == "Full-time" {
		b.Availability = AvailabilityPoints
	}
	if rec.HasInternship == "yes" {
		b.Internship = InternshipPoints
	}

	return b
}

// Score returns the application score in [0, MaxScore].
func Score(rec models.ApplicationRecord) int {
	return Breakdown(rec).Total()
}

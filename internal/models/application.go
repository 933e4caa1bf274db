// internal/models/application.go
package models

// ApplicationType discriminates the two submission forms.
type ApplicationType string

const (
	ApplicationTypeInternship   ApplicationType = "Internship"
	ApplicationTypeWorkFromHome ApplicationType = "Work From Home"
)

// Status is the classification attached to an internship application.
type Status string

const (
	StatusRejected    Status = "Rejected"
	StatusShortlisted Status = "Shortlisted"
	StatusUnderReview Status = "Under Review"
)

// ApplicationRecord is a submitted application as posted by the forms.
type ApplicationRecord struct {
	// identity
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`

	// demographic
	City    string `json:"city"`
	State   string `json:"state"`
	College string `json:"college"`

	// academic
	CurrentYear    string `json:"currentYear"`
	Degree         string `json:"degree"`
	Specialization string `json:"specialization"`
	CGPAPercentage string `json:"cgpaPercentage"`
	PassingYear    string `json:"passingYear"`

	// skills
	Technologies         []string `json:"technologies"`
	ProgrammingLanguages []string `json:"programmingLanguages"`
	Frameworks           string   `json:"frameworks"`
	Database             string   `json:"database"`
	GithubPortfolio      string   `json:"githubPortfolio"`

	// experience
	HasProjects        string `json:"hasProjects"`
	HasInternship      string `json:"hasInternship"`
	ExperienceDuration string `json:"experienceDuration"`

	// availability
	Mode        string `json:"mode"`
	HoursPerDay string `json:"hoursPerDay"`
	Duration    string `json:"duration"`

	// motivation
	WhySelectYou string `json:"whySelectYou"`
	ReadyToLearn string `json:"readyToLearn"`

	ApplicationType ApplicationType `json:"applicationType"`

	// work from home only
	FatherName       string `json:"fatherName,omitempty"`
	FatherOccupation string `json:"fatherOccupation,omitempty"`
	NativePlace      string `json:"nativePlace,omitempty"`
	PersonalVehicle  string `json:"personalVehicle,omitempty"`
	ReferenceSource  string `json:"referenceSource,omitempty"`
}

// IsWorkFromHome reports whether the record is a work-from-home application.
func (r *ApplicationRecord) IsWorkFromHome() bool {
	return r.ApplicationType == ApplicationTypeWorkFromHome
}

// Evaluation is the derived outcome of scoring, classification and routing.
// Score and Status are nil for work-from-home applications.
type Evaluation struct {
	Record       ApplicationRecord `json:"record"`
	Score        *int              `json:"score,omitempty"`
	Status       *Status           `json:"status,omitempty"`
	Destinations []string          `json:"destinations"`
}

// DestinationResult records the outcome of one append during fan-out.
type DestinationResult struct {
	Table    string `json:"table"`
	Appended bool   `json:"appended"`
	Error    string `json:"error,omitempty"`
}

// Submission is a processed application as persisted and indexed.
type Submission struct {
	ID           string              `json:"id"`
	SubmittedAt  string              `json:"submittedAt"` // ISO 8601
	Evaluation   Evaluation          `json:"evaluation"`
	Destinations []DestinationResult `json:"destinationResults"`
}

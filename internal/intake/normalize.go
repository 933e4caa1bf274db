// internal/intake/normalize.go
package intake

import (
	"strings"

	"application-intake/internal/models"
)

// Normalize returns a copy of rec in which every optional field holds either
// its trimmed submitted value or Placeholder. List fields default to empty
// slices. Work-from-home records carry no skill or availability data, and
// internship records carry no family data. Normalize never fails and
// Normalize(Normalize(r)) == Normalize(r).
func Normalize(rec models.ApplicationRecord) models.ApplicationRecord {
	out := rec

	if out.ApplicationType != models.ApplicationTypeWorkFromHome {
		out.ApplicationType = models.ApplicationTypeInternship
	}

	// identity fields are validated upstream; only trim them
	out.FullName = strings.TrimSpace(rec.FullName)
	out.Email = strings.TrimSpace(rec.Email)
	out.Mobile = strings.TrimSpace(rec.Mobile)

	out.City = orPlaceholder(rec.City)
	out.State = orPlaceholder(rec.State)
	out.College = orPlaceholder(rec.College)
	out.CurrentYear = orPlaceholder(rec.CurrentYear)
	out.Degree = orPlaceholder(rec.Degree)
	out.Specialization = orPlaceholder(rec.Specialization)
	out.CGPAPercentage = orPlaceholder(rec.CGPAPercentage)
	out.PassingYear = orPlaceholder(rec.PassingYear)

	if out.IsWorkFromHome() {
		out.Technologies = []string{}
		out.ProgrammingLanguages = []string{}
		out.Frameworks = Placeholder
		out.Database = Placeholder
		out.GithubPortfolio = Placeholder
		out.HasProjects = Placeholder
		out.HasInternship = Placeholder
		out.ExperienceDuration = Placeholder
		out.Mode = Placeholder
		out.HoursPerDay = Placeholder
		out.Duration = Placeholder
		out.WhySelectYou = Placeholder
		out.ReadyToLearn = Placeholder

		out.FatherName = orPlaceholder(rec.FatherName)
		out.FatherOccupation = orPlaceholder(rec.FatherOccupation)
		out.NativePlace = orPlaceholder(rec.NativePlace)
		out.PersonalVehicle = orPlaceholder(rec.PersonalVehicle)
		out.ReferenceSource = orPlaceholder(rec.ReferenceSource)
		return out
	}

	out.Technologies = cleanList(rec.Technologies)
	out.ProgrammingLanguages = cleanList(rec.ProgrammingLanguages)
	out.Frameworks = orPlaceholder(rec.Frameworks)
	out.Database = orPlaceholder(rec.Database)
	out.GithubPortfolio = orPlaceholder(rec.GithubPortfolio)
	out.HasProjects = orPlaceholder(rec.HasProjects)
	out.HasInternship = orPlaceholder(rec.HasInternship)
	out.ExperienceDuration = orPlaceholder(rec.ExperienceDuration)
	out.Mode = orPlaceholder(rec.Mode)
	out.HoursPerDay = orPlaceholder(rec.HoursPerDay)
	out.Duration = orPlaceholder(rec.Duration)
	out.WhySelectYou = orPlaceholder(rec.WhySelectYou)
	out.ReadyToLearn = orPlaceholder(rec.ReadyToLearn)

	out.FatherName = Placeholder
	out.FatherOccupation = Placeholder
	out.NativePlace = Placeholder
	out.PersonalVehicle = Placeholder
	out.ReferenceSource = Placeholder
	return out
}

// IsPresent reports whether a normalized field carries a submitted value.
func IsPresent(value string) bool {
	v := strings.TrimSpace(value)
	return v != "" && v != Placeholder
}

func orPlaceholder(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return Placeholder
	}
	return v
}

// cleanList trims entries and drops blank ones, keeping order and duplicates.
func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// internal/intake/validate.go
package intake

import (
	"strings"

	"application-intake/internal/common/validation"
	"application-intake/internal/models"
)

// Patterns tolerate surrounding whitespace; the normalizer trims it.
const (
	emailPattern = `^\s*[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\s*$`
	// optional +, then 7-15 digits with single spaces or dashes between them
	mobilePattern   = `^\s*\+?(\d[ -]?){6,14}\d\s*$`
	nonBlankPattern = `\S`
)

// ApplicationSchema is the JSON Schema every submission must satisfy before
// it is evaluated. Optional enum fields also accept the empty string and
// Placeholder.
func ApplicationSchema() validation.Schema {
	str := func(extra map[string]interface{}) map[string]interface{} {
		prop := map[string]interface{}{"type": "string"}
		for k, v := range extra {
			prop[k] = v
		}
		return prop
	}
	optionalEnum := func(values []string) map[string]interface{} {
		enum := []interface{}{"", Placeholder}
		for _, v := range values {
			enum = append(enum, v)
		}
		return str(map[string]interface{}{"enum": enum})
	}
	// numeric form fields may arrive as JSON numbers
	stringOrNumber := map[string]interface{}{"type": []interface{}{"string", "number"}}
	stringList := map[string]interface{}{
		"type":  "array",
		"items": map[string]interface{}{"type": "string"},
	}

	return validation.Schema{
		"type":     "object",
		"required": []interface{}{"fullName", "email", "mobile"},
		"properties": map[string]interface{}{
			"fullName": str(map[string]interface{}{"pattern": nonBlankPattern, "maxLength": 200}),
			"email":    str(map[string]interface{}{"pattern": emailPattern}),
			"mobile":   str(map[string]interface{}{"pattern": mobilePattern}),

			"city":           str(nil),
			"state":          str(nil),
			"college":        str(nil),
			"currentYear":    optionalEnum(CurrentYears),
			"degree":         str(nil),
			"specialization": str(nil),
			"cgpaPercentage": stringOrNumber,
			"passingYear":    stringOrNumber,

			"technologies":         stringList,
			"programmingLanguages": stringList,
			"frameworks":           str(nil),
			"database":             str(nil),
			"githubPortfolio":      str(nil),

			"hasProjects":        optionalEnum(YesNo),
			"hasInternship":      optionalEnum(YesNo),
			"experienceDuration": stringOrNumber,

			"mode":        str(nil),
			"hoursPerDay": optionalEnum(HoursPerDay),
			"duration":    stringOrNumber,

			"whySelectYou": str(map[string]interface{}{"maxLength": 5000}),
			"readyToLearn": optionalEnum(ReadyToLearn),

			"applicationType": optionalEnum([]string{
				string(models.ApplicationTypeInternship),
				string(models.ApplicationTypeWorkFromHome),
			}),

			"fatherName":       str(nil),
			"fatherOccupation": str(nil),
			"nativePlace":      str(nil),
			"personalVehicle":  optionalEnum(YesNo),
			"referenceSource":  str(nil),
		},
	}
}

// ValidateApplication checks a decoded JSON submission. Internship
// submissions that claim projects must include a portfolio link.
// Empty technology or language lists are accepted; the classifier
// rejects them.
func ValidateApplication(payload map[string]interface{}) (*validation.ValidationResult, error) {
	result, err := validation.Validate(ApplicationSchema(), payload)
	if err != nil {
		return nil, err
	}

	appType, _ := payload["applicationType"].(string)
	hasProjects, _ := payload["hasProjects"].(string)
	portfolio, _ := payload["githubPortfolio"].(string)

	if appType != string(models.ApplicationTypeWorkFromHome) &&
		hasProjects == "yes" && strings.TrimSpace(portfolio) == "" {
		result.Add("githubPortfolio", "MISSING_REQUIRED",
			"GitHub/Portfolio URL is required if you have projects")
	}

	return result, nil
}

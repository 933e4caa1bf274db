// internal/workers/application/validate-application/models.go
package validateapplication

import "application-intake/internal/common/validation"

type Input struct {
	ApplicationData map[string]interface{} `json:"applicationData"`
	ApplicationType string                 `json:"applicationType,omitempty"`
}

type Output struct {
	IsValid          bool                         `json:"isValid"`
	ValidationErrors []validation.ValidationError `json:"validationErrors"`
}

// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is a JSON Schema document expressed as Go values.
type Schema map[string]interface{}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Messages flattens the errors into "field: message" strings.
func (r *ValidationResult) Messages() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return out
}

// Add appends an error and marks the result invalid.
func (r *ValidationResult) Add(field, code, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Code: code, Message: message})
}

// Validate checks document against schema. The returned error is non-nil
// only when the schema itself cannot be evaluated.
func Validate(schema Schema, document interface{}) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewGoLoader(map[string]interface{}(schema))
	documentLoader := gojsonschema.NewGoLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   fieldOf(desc),
			Message: desc.Description(),
			Code:    codeOf(desc.Type()),
		})
	}

	sort.SliceStable(out.Errors, func(i, j int) bool {
		return out.Errors[i].Field < out.Errors[j].Field
	})
	return out, nil
}

// fieldOf points required-property errors at the missing property rather
// than at its parent.
func fieldOf(desc gojsonschema.ResultError) string {
	field := desc.Field()
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok {
			if field == "(root)" || field == "" {
				return prop
			}
			return field + "." + prop
		}
	}
	return field
}

func codeOf(errType string) string {
	switch errType {
	case "required":
		return "MISSING_REQUIRED"
	case "invalid_type":
		return "INVALID_TYPE"
	case "pattern", "format":
		return "INVALID_FORMAT"
	case "enum":
		return "INVALID_VALUE"
	case "string_gte", "string_lte", "array_min_items", "array_max_items":
		return "INVALID_LENGTH"
	default:
		return strings.ToUpper(errType)
	}
}

// internal/notify/templates.go
package notify

import (
	"fmt"
	"strings"

	"application-intake/internal/models"
)

// DefaultTemplates are the subject/body pairs used when no override is set.
var DefaultTemplates = map[string]models.NotificationTemplate{
	models.TypeApplicationReceived: {
		Type:    models.TypeApplicationReceived,
		Subject: "{{company}}: we received your {{applicationType}} application",
		Body: "Hi {{fullName}},\n\n" +
			"Thank you for applying to {{company}}. Your {{applicationType}} application " +
			"(reference {{submissionId}}) has been recorded and our team will get back to you.\n\n" +
			"Regards,\n{{company}} Hiring Team",
	},
	models.TypeCandidateShortlisted: {
		Type:    models.TypeCandidateShortlisted,
		Subject: "Shortlisted: {{fullName}} ({{score}})",
		Body: "{{fullName}} <{{email}}> scored {{score}} and was shortlisted.\n" +
			"Technologies: {{technologies}}\n" +
			"Submission: {{submissionId}}",
	},
}

func renderTemplate(template string, data map[string]interface{}) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{%s}}", key)
		result = strings.ReplaceAll(result, placeholder, fmt.Sprintf("%v", value))
	}
	return result
}

// internal/intake/router.go
package intake

import (
	"regexp"

	"application-intake/internal/models"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// TableName returns the destination table for a technology. Technologies
// outside the catalog get every whitespace run replaced with "_".
func TableName(technology string) string {
	if name, ok := technologyTables[technology]; ok {
		return name
	}
	return whitespaceRun.ReplaceAllString(technology, "_")
}

// Route returns the ordered destination tables for a normalized record.
// The master table is always first. Table names are not de-duplicated.
func Route(rec models.ApplicationRecord, status models.Status) []string {
	destinations := []string{MasterTable}

	if rec.IsWorkFromHome() {
		return append(destinations, WFHTable)
	}

	if status == models.StatusRejected {
		return append(destinations, RejectedTable)
	}

	for _, tech := range rec.Technologies {
		destinations = append(destinations, TableName(tech))
	}
	return destinations
}

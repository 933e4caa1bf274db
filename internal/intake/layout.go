// internal/intake/layout.go
package intake

import (
	"strings"
	"time"

	"application-intake/internal/models"
)

// TimestampFormat renders UTC instants with millisecond precision.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// ListSeparator joins list fields into a single cell.
const ListSeparator = ", "

// Column is one header cell and the projection that fills it.
type Column struct {
	Header string
	Value  func(ev models.Evaluation) interface{}
}

// Layout is the ordered column set written to a destination table.
type Layout struct {
	Name    string
	Columns []Column
}

// Header returns the header row.
func (l Layout) Header() []interface{} {
	row := make([]interface{}, len(l.Columns))
	for i, c := range l.Columns {
		row[i] = c.Header
	}
	return row
}

// Width is the number of columns.
func (l Layout) Width() int {
	return len(l.Columns)
}

// Row projects an evaluation into a data row. The timestamp fills the leading
// Timestamp column.
func (l Layout) Row(ev models.Evaluation, submittedAt time.Time) []interface{} {
	row := make([]interface{}, len(l.Columns))
	for i, c := range l.Columns {
		if c.Value == nil {
			row[i] = FormatTimestamp(submittedAt)
			continue
		}
		row[i] = c.Value(ev)
	}
	return row
}

// FormatTimestamp renders t in UTC, e.g. 2024-05-01T10:00:00.000Z.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

func field(get func(r models.ApplicationRecord) string) func(models.Evaluation) interface{} {
	return func(ev models.Evaluation) interface{} {
		return get(ev.Record)
	}
}

func list(get func(r models.ApplicationRecord) []string) func(models.Evaluation) interface{} {
	return func(ev models.Evaluation) interface{} {
		return strings.Join(get(ev.Record), ListSeparator)
	}
}

var (
	timestampColumn = Column{Header: "Timestamp"}
	typeColumn      = Column{Header: "Type", Value: field(func(r models.ApplicationRecord) string { return string(r.ApplicationType) })}
	nameColumn      = Column{Header: "Full Name", Value: field(func(r models.ApplicationRecord) string { return r.FullName })}
	emailColumn     = Column{Header: "Email", Value: field(func(r models.ApplicationRecord) string { return r.Email })}
	mobileColumn    = Column{Header: "Mobile", Value: field(func(r models.ApplicationRecord) string { return r.Mobile })}
	cityColumn      = Column{Header: "City", Value: field(func(r models.ApplicationRecord) string { return r.City })}
	stateColumn     = Column{Header: "State", Value: field(func(r models.ApplicationRecord) string { return r.State })}
	collegeColumn   = Column{Header: "College/Location", Value: field(func(r models.ApplicationRecord) string { return r.College })}
	degreeColumn    = Column{Header: "Degree", Value: field(func(r models.ApplicationRecord) string { return r.Degree })}
	fatherColumn    = Column{Header: "Father's Name", Value: field(func(r models.ApplicationRecord) string { return r.FatherName })}
	occupationCol   = Column{Header: "Father's Occupation", Value: field(func(r models.ApplicationRecord) string { return r.FatherOccupation })}
	nativeColumn    = Column{Header: "Native Place", Value: field(func(r models.ApplicationRecord) string { return r.NativePlace })}
	vehicleColumn   = Column{Header: "Vehicle", Value: field(func(r models.ApplicationRecord) string { return r.PersonalVehicle })}
)

// FullLayout is used by the master table and every technology table.
var FullLayout = Layout{
	Name: "full",
	Columns: []Column{
		timestampColumn,
		typeColumn,
		nameColumn,
		emailColumn,
		mobileColumn,
		cityColumn,
		stateColumn,
		collegeColumn,
		{Header: "Year/Education", Value: field(func(r models.ApplicationRecord) string { return r.CurrentYear })},
		degreeColumn,
		{Header: "Specialization", Value: field(func(r models.ApplicationRecord) string { return r.Specialization })},
		{Header: "CGPA/Percentage", Value: field(func(r models.ApplicationRecord) string { return r.CGPAPercentage })},
		{Header: "Passing Year", Value: field(func(r models.ApplicationRecord) string { return r.PassingYear })},
		{Header: "Technologies", Value: list(func(r models.ApplicationRecord) []string { return r.Technologies })},
		{Header: "Programming Languages", Value: list(func(r models.ApplicationRecord) []string { return r.ProgrammingLanguages })},
		{Header: "Frameworks", Value: field(func(r models.ApplicationRecord) string { return r.Frameworks })},
		{Header: "Database", Value: field(func(r models.ApplicationRecord) string { return r.Database })},
		{Header: "GitHub/Portfolio", Value: field(func(r models.ApplicationRecord) string { return r.GithubPortfolio })},
		{Header: "Has Projects", Value: field(func(r models.ApplicationRecord) string { return r.HasProjects })},
		{Header: "Has Internship", Value: field(func(r models.ApplicationRecord) string { return r.HasInternship })},
		{Header: "Experience Duration", Value: field(func(r models.ApplicationRecord) string { return r.ExperienceDuration })},
		{Header: "Mode", Value: field(func(r models.ApplicationRecord) string { return r.Mode })},
		{Header: "Hours Per Day", Value: field(func(r models.ApplicationRecord) string { return r.HoursPerDay })},
		{Header: "Duration", Value: field(func(r models.ApplicationRecord) string { return r.Duration })},
		{Header: "Why Select You", Value: field(func(r models.ApplicationRecord) string { return r.WhySelectYou })},
		{Header: "Ready To Learn", Value: field(func(r models.ApplicationRecord) string { return r.ReadyToLearn })},
		fatherColumn,
		occupationCol,
		nativeColumn,
		vehicleColumn,
		{Header: "Score", Value: scoreCell},
		{Header: "Status", Value: statusCell},
	},
}

// WFHLayout is used by the work-from-home table.
var WFHLayout = Layout{
	Name: "wfh",
	Columns: []Column{
		timestampColumn,
		typeColumn,
		nameColumn,
		emailColumn,
		mobileColumn,
		cityColumn,
		stateColumn,
		collegeColumn,
		degreeColumn,
		fatherColumn,
		occupationCol,
		nativeColumn,
		vehicleColumn,
	},
}

// LayoutFor returns the layout for a destination table.
func LayoutFor(table string) Layout {
	if table == WFHTable {
		return WFHLayout
	}
	return FullLayout
}

func scoreCell(ev models.Evaluation) interface{} {
	if ev.Score == nil {
		return Placeholder
	}
	return *ev.Score
}

func statusCell(ev models.Evaluation) interface{} {
	if ev.Status == nil {
		return Placeholder
	}
	return string(*ev.Status)
}

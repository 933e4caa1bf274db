// internal/intake/catalog.go
package intake

// Placeholder stands in for any optional field that was not submitted.
const Placeholder = "-"

// Fixed destination tables.
const (
	MasterTable   = "All_Applications"
	WFHTable      = "WFH_Freelancers"
	RejectedTable = "Rejected"
)

// Technologies offered on the internship form, in display order.
var Technologies = []string{
	"Web Development",
	"Frontend (HTML, CSS, JS, React)",
	"Backend (PHP / Node.js)",
	"Full Stack",
	"Cyber Security",
	"Data Analytics",
	"AI / ML",
	"Cloud / DevOps",
}

// technologyTables maps catalog technologies to their canonical table names.
var technologyTables = map[string]string{
	"Web Development":                 "Web_Development",
	"Frontend (HTML, CSS, JS, React)": "Frontend",
	"Backend (PHP / Node.js)":         "Backend",
	"Full Stack":                      "Full_Stack",
	"Cyber Security":                  "Cyber_Security",
	"Data Analytics":                  "Data_Analytics",
	"AI / ML":                         "AI_ML",
	"Cloud / DevOps":                  "Cloud_DevOps",
}

// ProgrammingLanguages offered on the internship form, in display order.
var ProgrammingLanguages = []string{
	"HTML/CSS", "JavaScript", "TypeScript", "Python", "Java",
	"PHP", "C++", "C#", "Go", "Rust", "Ruby",
}

// Select options shared by the forms and the request validator.
var (
	CurrentYears     = []string{"1st", "2nd", "3rd", "Final", "Passout"}
	Degrees          = []string{"BCA", "MCA", "B.Tech", "M.Tech", "Diploma", "Other"}
	Modes            = []string{"Remote", "Onsite", "Hybrid"}
	HoursPerDay      = []string{"2-3", "4-6", "Full-time"}
	Durations        = []string{"1", "2", "3", "6"}
	ReadyToLearn     = []string{"yes", "no", "maybe"}
	YesNo            = []string{"yes", "no"}
	ReferenceSources = []string{"linkedin", "instagram", "facebook", "friend", "website", "other"}
)

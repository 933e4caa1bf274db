// internal/web/handlers_pages.go
package web

import (
	"bytes"
	"net/http"

	"application-intake/internal/intake"
)

// formPage carries the select options so the forms offer exactly what the
// validator accepts.
type formPage struct {
	Title                string
	Company              string
	Technologies         []string
	ProgrammingLanguages []string
	CurrentYears         []string
	Degrees              []string
	Modes                []string
	HoursPerDay          []string
	Durations            []string
	ReadyToLearn         []string
	YesNo                []string
	ReferenceSources     []string
}

func (s *Server) page(title string) formPage {
	return formPage{
		Title:                title,
		Company:              s.deps.Company,
		Technologies:         intake.Technologies,
		ProgrammingLanguages: intake.ProgrammingLanguages,
		CurrentYears:         intake.CurrentYears,
		Degrees:              intake.Degrees,
		Modes:                intake.Modes,
		HoursPerDay:          intake.HoursPerDay,
		Durations:            intake.Durations,
		ReadyToLearn:         intake.ReadyToLearn,
		YesNo:                intake.YesNo,
		ReferenceSources:     intake.ReferenceSources,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index", s.page("Careers"))
}

func (s *Server) handleInternshipForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "internship", s.page("IT Internship"))
}

func (s *Server) handleWFHForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "wfh", s.page("Work from Home"))
}

// render buffers the page so a template error never sends a partial body.
func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("template render failed", map[string]interface{}{"template": name, "error": err})
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// internal/app/bootstrap/seed.go
package bootstrap

import "github.com/ycyw/humanitieshub/internal/domain/models"

// DefaultCalendar returns the fixed department calendar inserted when the
// events collection is empty. The calendar is read-only in the app; edits
// happen here or directly in the database.
func DefaultCalendar() []models.CalendarEvent {
	return []models.CalendarEvent{
		{Title: "Department PD: Assessment Moderation Workshop", Date: "2026-09-18", Type: models.EventPD},
		{Title: "Year 11 Mock Exam Papers Due", Date: "2026-10-02", Type: models.EventDeadline},
		{Title: "Department PD: Source Analysis Across the Humanities", Date: "2026-10-23", Type: models.EventPD},
		{Title: "IB Internal Assessment Drafts Due", Date: "2026-11-13", Type: models.EventDeadline},
		{Title: "Department PD: Curriculum Mapping Afternoon", Date: "2026-11-27", Type: models.EventPD},
		{Title: "Term 1 Reports Deadline", Date: "2026-12-04", Type: models.EventDeadline},
		{Title: "Department PD: Fieldwork Planning and Safety", Date: "2027-01-15", Type: models.EventPD},
		{Title: "Coursework Final Submissions Due", Date: "2027-02-05", Type: models.EventDeadline},
		{Title: "Department PD: Exam Board Standardisation Briefing", Date: "2027-03-12", Type: models.EventPD},
		{Title: "Year 13 Predicted Grades Due", Date: "2027-03-26", Type: models.EventDeadline},
	}
}

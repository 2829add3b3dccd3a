// internal/domain/models/resourcetypes.go
package models

// Canonical resource type identifiers.
//
// These values are stored in the database in the Resource.Type field and are
// used throughout the application as stable keys; Labels maps them to the
// human-facing wording used in the UI.
const (
	TypeSchemeOfWork            = "scheme_of_work"
	TypeLessonPlan              = "lesson_plan"
	TypeAssessment              = "assessment"
	TypeMarkScheme              = "mark_scheme"
	TypeExamPackage             = "exam_package"
	TypePresentation            = "presentation"
	TypeWorksheet               = "worksheet"
	TypeExampleWork             = "example_work"
	TypeCoursework              = "coursework"
	TypeInternalAssessment      = "internal_assessment"
	TypeProfessionalDevelopment = "professional_development"
)

// ResourceTypes is the full set of allowed resource type identifiers.
// Treat this slice as the single source of truth for validation.
var ResourceTypes = []string{
	TypeSchemeOfWork,
	TypeLessonPlan,
	TypeAssessment,
	TypeMarkScheme,
	TypeExamPackage,
	TypePresentation,
	TypeWorksheet,
	TypeExampleWork,
	TypeCoursework,
	TypeInternalAssessment,
	TypeProfessionalDevelopment,
}

// TypeLabels maps type identifiers to display labels.
var TypeLabels = map[string]string{
	TypeSchemeOfWork:            "Scheme of Work",
	TypeLessonPlan:              "Lesson Plan",
	TypeAssessment:              "Assessment",
	TypeMarkScheme:              "Mark Scheme",
	TypeExamPackage:             "Exam & Mark Scheme",
	TypePresentation:            "Presentation",
	TypeWorksheet:               "Worksheet",
	TypeExampleWork:             "Example Assessment",
	TypeCoursework:              "Coursework",
	TypeInternalAssessment:      "Internal Assessment (IA)",
	TypeProfessionalDevelopment: "Professional Development",
}

// DefaultResourceType is used when no specific type is provided.
const DefaultResourceType = TypeLessonPlan

// IsValidResourceType reports whether t is an allowed type identifier.
func IsValidResourceType(t string) bool {
	for _, rt := range ResourceTypes {
		if rt == t {
			return true
		}
	}
	return false
}

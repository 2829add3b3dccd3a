// internal/domain/models/taxonomy.go
package models

// Curriculum identifies the exam framework a resource targets. The zero
// value CurriculumAny means the resource applies to every framework and is
// admitted by any curriculum filter.
type Curriculum string

const (
	CurriculumAny    Curriculum = ""
	CurriculumIB     Curriculum = "IB"
	CurriculumALevel Curriculum = "A-Level"
	CurriculumDSE    Curriculum = "DSE"
)

// Curricula is the set of specific curricula a user may filter by.
var Curricula = []Curriculum{CurriculumIB, CurriculumALevel, CurriculumDSE}

// Matches reports whether a resource tagged c is admitted by the filter f.
// An untagged resource matches every filter; an empty filter admits all.
func (c Curriculum) Matches(f Curriculum) bool {
	return f == CurriculumAny || c == CurriculumAny || c == f
}

// IsValidCurriculum reports whether c is CurriculumAny or a known framework.
func IsValidCurriculum(c Curriculum) bool {
	if c == CurriculumAny {
		return true
	}
	for _, k := range Curricula {
		if k == c {
			return true
		}
	}
	return false
}

// YearGroups lists the teaching year groups, in display order. The last two
// entries group the exam cohorts rather than single years.
var YearGroups = []string{
	"Year 1", "Year 2", "Year 3", "Year 4", "Year 5", "Year 6",
	"Year 7", "Year 8", "Year 9", "Year 10", "Year 11",
	"IGCSE", "IB/A-Level",
}

// Subjects lists the Humanities subjects taught across the department.
var Subjects = []string{
	"Primary Humanities",
	"Year 7-9 Humanities",
	"History",
	"Geography",
	"Psychology",
	"Sociology",
	"Economics",
	"Business",
	"Enterprise",
	"Philosophy",
	"General",
}

// Schools lists the campuses staff may belong to.
var Schools = []string{
	"Hong Kong",
	"Guangzhou",
	"Chongqing",
	"Tongxiang",
	"Qingdao",
	"Beijing",
	"Puxi",
	"Pudong",
}

// IsValidYearGroup reports whether yg is a known year group.
func IsValidYearGroup(yg string) bool {
	for _, g := range YearGroups {
		if g == yg {
			return true
		}
	}
	return false
}

// IsValidSubject reports whether s is a known subject.
func IsValidSubject(s string) bool {
	for _, sub := range Subjects {
		if sub == s {
			return true
		}
	}
	return false
}

// IsValidSchool reports whether s is a known campus.
func IsValidSchool(s string) bool {
	for _, sc := range Schools {
		if sc == s {
			return true
		}
	}
	return false
}

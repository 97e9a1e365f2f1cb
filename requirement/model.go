// Package requirement defines the structured requirement trees parsed out of
// free-text course enrollment rules, and the validator that guards the
// boundary between untrusted oracle output and the typed model.
package requirement

import "encoding/json"

// SchemaVersion is the current version of the wire schema. Stored records
// parsed under an older version are considered stale.
const SchemaVersion = 1

type Logic string

const (
	LogicAllOf Logic = "ALL_OF"
	LogicOneOf Logic = "ONE_OF"
	LogicTwoOf Logic = "TWO_OF"
)

type Level string

const (
	Level1XX Level = "1XX"
	Level2XX Level = "2XX"
	Level3XX Level = "3XX"
	Level4XX Level = "4XX"
	LevelLD  Level = "LD"
	LevelUD  Level = "UD"
)

// Node is one alternative of the requirement tree sum type. The concrete
// types below are the only implementations.
type Node interface {
	isNode()
}

// Group composes child requirements under ALL_OF, ONE_OF or TWO_OF logic.
// Children is never empty in a valid tree.
type Group struct {
	Logic    Logic
	Children []Node
}

// Course references a specific catalog course. The flag fields carry the
// literal string "true" when set, matching the wire schema.
type Course struct {
	Department             string
	Number                 string
	MinGrade               string
	CanBeTakenConcurrently string
	OrEquivalent           string
}

// HSCourse references a secondary-school course. Terminal: it never has
// prerequisites of its own.
type HSCourse struct {
	Course       string
	MinGrade     string
	OrEquivalent string
}

// CreditCount requires a number of credits, optionally scoped to one or more
// departments and a course level.
type CreditCount struct {
	Credits                float64
	Departments            []string
	Level                  Level
	MinGrade               string
	CanBeTakenConcurrently string
}

// CourseCount requires a number of courses satisfying the constraints.
type CourseCount struct {
	Count                  float64
	Department             string
	Level                  Level
	MinGrade               string
	CanBeTakenConcurrently string
}

type CGPA struct {
	MinCGPA float64
}

type UDGPA struct {
	MinUDGPA float64
}

type Program struct {
	Program string
}

type Permission struct {
	Note string
}

type Other struct {
	Note string
}

func (Group) isNode()       {}
func (Course) isNode()      {}
func (HSCourse) isNode()    {}
func (CreditCount) isNode() {}
func (CourseCount) isNode() {}
func (CGPA) isNode()        {}
func (UDGPA) isNode()       {}
func (Program) isNode()     {}
func (Permission) isNode()  {}
func (Other) isNode()       {}

// CreditConflict is one alternative of the credit-conflict sum type.
type CreditConflict interface {
	isCreditConflict()
}

// ConflictCourse names a specific course that duplicates credit, optionally
// scoped to a particular offered title.
type ConflictCourse struct {
	Department string
	Number     string
	Title      string
}

// ConflictOther carries an unstructured credit restriction.
type ConflictOther struct {
	Note string
}

func (ConflictCourse) isCreditConflict() {}
func (ConflictOther) isCreditConflict()  {}

// ParsedCourseRequirements is the full parse result for one course. All four
// tree fields are optional and independent.
type ParsedCourseRequirements struct {
	Department              string           `json:"department"`
	Number                  string           `json:"number"`
	SchemaVersion           int              `json:"schema_version"`
	Prerequisite            Node             `json:"prerequisite,omitempty"`
	Corequisite             Node             `json:"corequisite,omitempty"`
	RecommendedPrerequisite Node             `json:"recommended_prerequisite,omitempty"`
	RecommendedCorequisite  Node             `json:"recommended_corequisite,omitempty"`
	CreditConflicts         []CreditConflict `json:"credit_conflicts,omitempty"`
}

func (g Group) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Logic    Logic  `json:"logic"`
		Children []Node `json:"children"`
	}{g.Logic, g.Children})
}

func (c Course) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type                   string `json:"type"`
		Department             string `json:"department"`
		Number                 string `json:"number"`
		MinGrade               string `json:"minGrade,omitempty"`
		CanBeTakenConcurrently string `json:"canBeTakenConcurrently,omitempty"`
		OrEquivalent           string `json:"orEquivalent,omitempty"`
	}{"course", c.Department, c.Number, c.MinGrade, c.CanBeTakenConcurrently, c.OrEquivalent})
}

func (h HSCourse) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type         string `json:"type"`
		Course       string `json:"course"`
		MinGrade     string `json:"minGrade,omitempty"`
		OrEquivalent string `json:"orEquivalent,omitempty"`
	}{"HSCourse", h.Course, h.MinGrade, h.OrEquivalent})
}

func (c CreditCount) MarshalJSON() ([]byte, error) {
	// A single department is written back as a bare string, the form the
	// oracle most commonly produces.
	var department any
	switch len(c.Departments) {
	case 0:
	case 1:
		department = c.Departments[0]
	default:
		department = c.Departments
	}
	return json.Marshal(struct {
		Type                   string  `json:"type"`
		Credits                float64 `json:"credits"`
		Department             any     `json:"department,omitempty"`
		Level                  Level   `json:"level,omitempty"`
		MinGrade               string  `json:"minGrade,omitempty"`
		CanBeTakenConcurrently string  `json:"canBeTakenConcurrently,omitempty"`
	}{"creditCount", c.Credits, department, c.Level, c.MinGrade, c.CanBeTakenConcurrently})
}

func (c CourseCount) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type                   string  `json:"type"`
		Count                  float64 `json:"count"`
		Department             string  `json:"department,omitempty"`
		Level                  Level   `json:"level,omitempty"`
		MinGrade               string  `json:"minGrade,omitempty"`
		CanBeTakenConcurrently string  `json:"canBeTakenConcurrently,omitempty"`
	}{"courseCount", c.Count, c.Department, c.Level, c.MinGrade, c.CanBeTakenConcurrently})
}

func (c CGPA) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string  `json:"type"`
		MinCGPA float64 `json:"minCGPA"`
	}{"CGPA", c.MinCGPA})
}

func (u UDGPA) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string  `json:"type"`
		MinUDGPA float64 `json:"minUDGPA"`
	}{"UDGPA", u.MinUDGPA})
}

func (p Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string `json:"type"`
		Program string `json:"program"`
	}{"program", p.Program})
}

func (p Permission) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Note string `json:"note"`
	}{"permission", p.Note})
}

func (o Other) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Note string `json:"note"`
	}{"other", o.Note})
}

func (c ConflictCourse) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string `json:"type"`
		Department string `json:"department"`
		Number     string `json:"number"`
		Title      string `json:"title,omitempty"`
	}{"conflict_course", c.Department, c.Number, c.Title})
}

func (c ConflictOther) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Note string `json:"note"`
	}{"conflict_other", c.Note})
}

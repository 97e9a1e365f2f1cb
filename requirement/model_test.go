package requirement_test

import (
	"encoding/json"
	"testing"

	"github.com/coursegraph/coursegraph/requirement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	record := requirement.ParsedCourseRequirements{
		Department:    "CHEM",
		Number:        "233",
		SchemaVersion: requirement.SchemaVersion,
		Prerequisite: requirement.Group{
			Logic: requirement.LogicAllOf,
			Children: []requirement.Node{
				requirement.Course{Department: "CHEM", Number: "121", MinGrade: "C"},
				requirement.Group{
					Logic: requirement.LogicOneOf,
					Children: []requirement.Node{
						requirement.Course{Department: "MATH", Number: "101"},
						requirement.HSCourse{Course: "Calculus 12", OrEquivalent: "true"},
					},
				},
				requirement.CreditCount{Credits: 6, Departments: []string{"CHEM", "BIOL"}, Level: requirement.Level2XX},
				requirement.CourseCount{Count: 2, Department: "PHYS", Level: requirement.Level1XX},
				requirement.CGPA{MinCGPA: 2.0},
				requirement.UDGPA{MinUDGPA: 2.5},
				requirement.Program{Program: "Chemistry Major"},
				requirement.Permission{Note: "Permission of the instructor"},
				requirement.Other{Note: "Laboratory safety training"},
			},
		},
		Corequisite: requirement.Course{Department: "CHEM", Number: "235", CanBeTakenConcurrently: "true"},
		CreditConflicts: []requirement.CreditConflict{
			requirement.ConflictCourse{Department: "CHEM", Number: "203", Title: "Organic Chemistry"},
			requirement.ConflictOther{Note: "Credit granted for only one of CHEM 233 or CHEM 203"},
		},
	}

	encoded, err := json.Marshal(record)
	require.NoError(t, err)

	var candidate any
	require.NoError(t, json.Unmarshal(encoded, &candidate))

	// The serialized form is itself schema-valid.
	result := requirement.Validate(candidate)
	require.True(t, result.IsValid, "errors: %v", result.Errors)

	decoded, err := requirement.DecodeRecord(candidate)
	require.NoError(t, err)
	assert.Equal(t, record, *decoded)
}

// A single-department credit count is written as a bare string on the wire
// and read back as a one-element list.
func TestCreditCountSingleDepartment(t *testing.T) {
	encoded, err := json.Marshal(requirement.CreditCount{Credits: 3, Departments: []string{"MATH"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"creditCount","credits":3,"department":"MATH"}`, string(encoded))

	var candidate any
	require.NoError(t, json.Unmarshal(encoded, &candidate))
	decoded, err := requirement.DecodeNode(candidate)
	require.NoError(t, err)
	assert.Equal(t, requirement.CreditCount{Credits: 3, Departments: []string{"MATH"}}, decoded)
}

func TestDecodeNodeUnknownType(t *testing.T) {
	_, err := requirement.DecodeNode(map[string]any{"type": "lab"})
	assert.Error(t, err)
}

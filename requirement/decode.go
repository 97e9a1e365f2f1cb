package requirement

import (
	"errors"
	"fmt"
)

// DecodeRecord converts a JSON-decoded value into the typed model. Callers
// are expected to have run Validate first; decoding an invalid candidate
// returns an error rather than a partial record.
func DecodeRecord(candidate any) (*ParsedCourseRequirements, error) {
	obj, ok := candidate.(map[string]any)
	if !ok {
		return nil, errors.New("requirement: record is not an object")
	}

	record := &ParsedCourseRequirements{
		Department:    stringAt(obj, "department"),
		Number:        stringAt(obj, "number"),
		SchemaVersion: int(numberAt(obj, "schema_version")),
	}

	var err error
	if record.Prerequisite, err = decodeOptionalNode(obj, "prerequisite"); err != nil {
		return nil, err
	}
	if record.Corequisite, err = decodeOptionalNode(obj, "corequisite"); err != nil {
		return nil, err
	}
	if record.RecommendedPrerequisite, err = decodeOptionalNode(obj, "recommended_prerequisite"); err != nil {
		return nil, err
	}
	if record.RecommendedCorequisite, err = decodeOptionalNode(obj, "recommended_corequisite"); err != nil {
		return nil, err
	}

	if rawConflicts, ok := obj["credit_conflicts"]; ok {
		conflicts, ok := rawConflicts.([]any)
		if !ok {
			return nil, errors.New("requirement: credit_conflicts is not an array")
		}
		for _, rawConflict := range conflicts {
			conflict, err := decodeCreditConflict(rawConflict)
			if err != nil {
				return nil, err
			}
			record.CreditConflicts = append(record.CreditConflicts, conflict)
		}
	}

	return record, nil
}

// DecodeNode converts a JSON-decoded value into a typed requirement tree.
func DecodeNode(candidate any) (Node, error) {
	obj, ok := candidate.(map[string]any)
	if !ok {
		return nil, errors.New("requirement: node is not an object")
	}

	if _, ok := obj["logic"]; ok {
		group := Group{Logic: Logic(stringAt(obj, "logic"))}
		children, ok := obj["children"].([]any)
		if !ok {
			return nil, errors.New("requirement: group children is not an array")
		}
		for _, rawChild := range children {
			child, err := DecodeNode(rawChild)
			if err != nil {
				return nil, err
			}
			group.Children = append(group.Children, child)
		}
		return group, nil
	}

	switch typeName := stringAt(obj, "type"); typeName {
	case "course":
		return Course{
			Department:             stringAt(obj, "department"),
			Number:                 stringAt(obj, "number"),
			MinGrade:               stringAt(obj, "minGrade"),
			CanBeTakenConcurrently: stringAt(obj, "canBeTakenConcurrently"),
			OrEquivalent:           stringAt(obj, "orEquivalent"),
		}, nil
	case "HSCourse":
		return HSCourse{
			Course:       stringAt(obj, "course"),
			MinGrade:     stringAt(obj, "minGrade"),
			OrEquivalent: stringAt(obj, "orEquivalent"),
		}, nil
	case "creditCount":
		return CreditCount{
			Credits:                numberAt(obj, "credits"),
			Departments:            departmentsAt(obj),
			Level:                  Level(stringAt(obj, "level")),
			MinGrade:               stringAt(obj, "minGrade"),
			CanBeTakenConcurrently: stringAt(obj, "canBeTakenConcurrently"),
		}, nil
	case "courseCount":
		return CourseCount{
			Count:                  numberAt(obj, "count"),
			Department:             stringAt(obj, "department"),
			Level:                  Level(stringAt(obj, "level")),
			MinGrade:               stringAt(obj, "minGrade"),
			CanBeTakenConcurrently: stringAt(obj, "canBeTakenConcurrently"),
		}, nil
	case "CGPA":
		return CGPA{MinCGPA: numberAt(obj, "minCGPA")}, nil
	case "UDGPA":
		return UDGPA{MinUDGPA: numberAt(obj, "minUDGPA")}, nil
	case "program":
		return Program{Program: stringAt(obj, "program")}, nil
	case "permission":
		return Permission{Note: stringAt(obj, "note")}, nil
	case "other":
		return Other{Note: stringAt(obj, "note")}, nil
	default:
		return nil, fmt.Errorf("requirement: unknown requirement type %q", typeName)
	}
}

func decodeOptionalNode(obj map[string]any, key string) (Node, error) {
	rawTree, ok := obj[key]
	if !ok {
		return nil, nil
	}
	tree, err := DecodeNode(rawTree)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return tree, nil
}

func decodeCreditConflict(candidate any) (CreditConflict, error) {
	obj, ok := candidate.(map[string]any)
	if !ok {
		return nil, errors.New("requirement: credit conflict is not an object")
	}
	switch typeName := stringAt(obj, "type"); typeName {
	case "conflict_course":
		return ConflictCourse{
			Department: stringAt(obj, "department"),
			Number:     stringAt(obj, "number"),
			Title:      stringAt(obj, "title"),
		}, nil
	case "conflict_other":
		return ConflictOther{Note: stringAt(obj, "note")}, nil
	default:
		return nil, fmt.Errorf("requirement: unknown credit conflict type %q", typeName)
	}
}

func stringAt(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func numberAt(obj map[string]any, key string) float64 {
	switch n := obj[key].(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func departmentsAt(obj map[string]any) []string {
	switch value := obj["department"].(type) {
	case string:
		return []string{value}
	case []any:
		var departments []string
		for _, department := range value {
			if s, ok := department.(string); ok {
				departments = append(departments, s)
			}
		}
		return departments
	}
	return nil
}

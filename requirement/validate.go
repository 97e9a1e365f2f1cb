package requirement

import "fmt"

// Result is the verdict of a structural validation pass. Errors holds one
// path-qualified message per violation found during the full traversal.
type Result struct {
	IsValid bool
	Errors  []string
}

// Validate checks an untyped JSON-decoded value against the
// ParsedCourseRequirements schema. It never panics and never stops at the
// first violation: every structural error in the candidate is reported,
// prefixed with the dotted path of the offending location.
func Validate(candidate any) Result {
	v := &validator{}
	v.envelope(candidate)
	return v.result()
}

// ValidateNode checks a single requirement tree rather than a full record.
func ValidateNode(candidate any) Result {
	v := &validator{}
	v.node("", candidate)
	return v.result()
}

type validator struct {
	errs []string
}

func (v *validator) result() Result {
	return Result{IsValid: len(v.errs) == 0, Errors: v.errs}
}

func (v *validator) errf(path, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	if path == "" {
		v.errs = append(v.errs, message)
		return
	}
	v.errs = append(v.errs, path+": "+message)
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func isNumber(value any) bool {
	switch value.(type) {
	case float64, float32, int, int64:
		return true
	}
	return false
}

var levels = map[string]bool{
	"1XX": true, "2XX": true, "3XX": true, "4XX": true, "LD": true, "UD": true,
}

// requireString reports whether the required key held a string.
func (v *validator) requireString(obj map[string]any, path, key string) bool {
	value, ok := obj[key]
	if !ok {
		v.errf(join(path, key), "missing required property")
		return false
	}
	if _, ok := value.(string); !ok {
		v.errf(join(path, key), "expected a string")
		return false
	}
	return true
}

func (v *validator) requireNumber(obj map[string]any, path, key string) {
	value, ok := obj[key]
	if !ok {
		v.errf(join(path, key), "missing required property")
		return
	}
	if !isNumber(value) {
		v.errf(join(path, key), "expected a number")
	}
}

func (v *validator) optionalString(obj map[string]any, path, key string) {
	value, ok := obj[key]
	if !ok {
		return
	}
	if _, ok := value.(string); !ok {
		v.errf(join(path, key), "expected a string")
	}
}

// optionalFlag validates the literal-"true" flag fields.
func (v *validator) optionalFlag(obj map[string]any, path, key string) {
	value, ok := obj[key]
	if !ok {
		return
	}
	s, ok := value.(string)
	if !ok || s != "true" {
		v.errf(join(path, key), `expected the literal string "true"`)
	}
}

func (v *validator) optionalLevel(obj map[string]any, path string) {
	value, ok := obj["level"]
	if !ok {
		return
	}
	s, ok := value.(string)
	if !ok || !levels[s] {
		v.errf(join(path, "level"), "expected one of 1XX, 2XX, 3XX, 4XX, LD, UD")
	}
}

func (v *validator) unexpected(obj map[string]any, path string, allowed ...string) {
	allowedSet := make(map[string]bool, len(allowed))
	for _, key := range allowed {
		allowedSet[key] = true
	}
	for key := range obj {
		if !allowedSet[key] {
			v.errf(join(path, key), "unexpected property")
		}
	}
}

// node dispatches on the logic/type discriminator. Unknown discriminators
// produce a single error and no descent: children of an unknown shape cannot
// be validated.
func (v *validator) node(path string, candidate any) {
	obj, ok := candidate.(map[string]any)
	if !ok {
		v.errf(path, "expected a requirement object")
		return
	}

	if logic, ok := obj["logic"]; ok {
		v.group(path, obj, logic)
		return
	}

	rawType, ok := obj["type"]
	if !ok {
		v.errf(path, "missing logic or type discriminator")
		return
	}
	typeName, ok := rawType.(string)
	if !ok {
		v.errf(join(path, "type"), "expected a string")
		return
	}

	switch typeName {
	case "course":
		v.requireString(obj, path, "department")
		v.requireString(obj, path, "number")
		v.optionalString(obj, path, "minGrade")
		v.optionalFlag(obj, path, "canBeTakenConcurrently")
		v.optionalFlag(obj, path, "orEquivalent")
		v.unexpected(obj, path, "type", "department", "number", "minGrade", "canBeTakenConcurrently", "orEquivalent")
	case "HSCourse":
		v.requireString(obj, path, "course")
		v.optionalString(obj, path, "minGrade")
		v.optionalFlag(obj, path, "orEquivalent")
		v.unexpected(obj, path, "type", "course", "minGrade", "orEquivalent")
	case "creditCount":
		v.requireNumber(obj, path, "credits")
		v.creditCountDepartment(obj, path)
		v.optionalLevel(obj, path)
		v.optionalString(obj, path, "minGrade")
		v.optionalFlag(obj, path, "canBeTakenConcurrently")
		v.unexpected(obj, path, "type", "credits", "department", "level", "minGrade", "canBeTakenConcurrently")
	case "courseCount":
		v.requireNumber(obj, path, "count")
		v.optionalString(obj, path, "department")
		v.optionalLevel(obj, path)
		v.optionalString(obj, path, "minGrade")
		v.optionalFlag(obj, path, "canBeTakenConcurrently")
		v.unexpected(obj, path, "type", "count", "department", "level", "minGrade", "canBeTakenConcurrently")
	case "CGPA":
		v.requireNumber(obj, path, "minCGPA")
		v.unexpected(obj, path, "type", "minCGPA")
	case "UDGPA":
		v.requireNumber(obj, path, "minUDGPA")
		v.unexpected(obj, path, "type", "minUDGPA")
	case "program":
		v.requireString(obj, path, "program")
		v.unexpected(obj, path, "type", "program")
	case "permission":
		v.requireString(obj, path, "note")
		v.unexpected(obj, path, "type", "note")
	case "other":
		v.requireString(obj, path, "note")
		v.unexpected(obj, path, "type", "note")
	default:
		v.errf(join(path, "type"), "unknown requirement type %q", typeName)
	}
}

// group validates a logic node. Local errors do not block recursion into the
// children: every child is visited so deeper violations still surface.
func (v *validator) group(path string, obj map[string]any, logic any) {
	logicName, ok := logic.(string)
	if !ok {
		v.errf(join(path, "logic"), "expected a string")
		return
	}
	switch Logic(logicName) {
	case LogicAllOf, LogicOneOf, LogicTwoOf:
	default:
		v.errf(join(path, "logic"), "unknown group logic %q", logicName)
		return
	}

	v.unexpected(obj, path, "logic", "children")

	rawChildren, ok := obj["children"]
	if !ok {
		v.errf(join(path, "children"), "missing required property")
		return
	}
	children, ok := rawChildren.([]any)
	if !ok {
		v.errf(join(path, "children"), "expected an array")
		return
	}
	if len(children) == 0 {
		v.errf(join(path, "children"), "group must have at least one child")
	}
	for i, child := range children {
		v.node(fmt.Sprintf("%s[%d]", join(path, "children"), i), child)
	}
}

// creditCountDepartment accepts a single department code or a list of them.
func (v *validator) creditCountDepartment(obj map[string]any, path string) {
	value, ok := obj["department"]
	if !ok {
		return
	}
	switch departments := value.(type) {
	case string:
	case []any:
		for i, department := range departments {
			if _, ok := department.(string); !ok {
				v.errf(fmt.Sprintf("%s[%d]", join(path, "department"), i), "expected a string")
			}
		}
	default:
		v.errf(join(path, "department"), "expected a string or an array of strings")
	}
}

func (v *validator) creditConflict(path string, candidate any) {
	obj, ok := candidate.(map[string]any)
	if !ok {
		v.errf(path, "expected a credit conflict object")
		return
	}
	rawType, ok := obj["type"]
	if !ok {
		v.errf(path, "missing type discriminator")
		return
	}
	typeName, ok := rawType.(string)
	if !ok {
		v.errf(join(path, "type"), "expected a string")
		return
	}
	switch typeName {
	case "conflict_course":
		v.requireString(obj, path, "department")
		v.requireString(obj, path, "number")
		v.optionalString(obj, path, "title")
		v.unexpected(obj, path, "type", "department", "number", "title")
	case "conflict_other":
		v.requireString(obj, path, "note")
		v.unexpected(obj, path, "type", "note")
	default:
		v.errf(join(path, "type"), "unknown credit conflict type %q", typeName)
	}
}

var treeFields = []string{"prerequisite", "corequisite", "recommended_prerequisite", "recommended_corequisite"}

func (v *validator) envelope(candidate any) {
	obj, ok := candidate.(map[string]any)
	if !ok {
		v.errf("", "expected a parsed course requirements object")
		return
	}

	v.requireString(obj, "", "department")
	v.requireString(obj, "", "number")
	v.requireNumber(obj, "", "schema_version")

	for _, field := range treeFields {
		if tree, ok := obj[field]; ok {
			v.node(field, tree)
		}
	}

	if rawConflicts, ok := obj["credit_conflicts"]; ok {
		conflicts, ok := rawConflicts.([]any)
		if !ok {
			v.errf("credit_conflicts", "expected an array")
		} else {
			for i, conflict := range conflicts {
				v.creditConflict(fmt.Sprintf("credit_conflicts[%d]", i), conflict)
			}
		}
	}

	v.unexpected(obj, "", "department", "number", "schema_version",
		"prerequisite", "corequisite", "recommended_prerequisite", "recommended_corequisite", "credit_conflicts")
}

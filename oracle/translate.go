package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coursegraph/coursegraph/requirement"
)

// CourseText is the source material handed to the oracle for one course.
type CourseText struct {
	Department   string
	Number       string
	Title        string
	Prerequisite string
	Corequisite  string
	Notes        string
}

// TranslationError reports a failed translation. Diagnostics carries the
// validator's path-qualified errors when the candidate was structurally
// invalid. The failure is a reported result, never silently dropped; retry
// policy belongs to the calling workflow.
type TranslationError struct {
	Department  string
	Number      string
	Reason      string
	Diagnostics []string
}

func (e *TranslationError) Error() string {
	message := fmt.Sprintf("oracle: %v %v: %v", e.Department, e.Number, e.Reason)
	if len(e.Diagnostics) > 0 {
		message += ": " + strings.Join(e.Diagnostics, "; ")
	}
	return message
}

const systemPrompt = `You translate university course enrollment rules into JSON.
Given a course and its prerequisite text, corequisite text and notes, respond
with a single JSON object, no prose and no code fences:

{"department": ..., "number": ..., "schema_version": %d,
 "prerequisite": <tree>, "corequisite": <tree>,
 "recommended_prerequisite": <tree>, "recommended_corequisite": <tree>,
 "credit_conflicts": [<conflict>, ...]}

Omit any field the text does not support. A <tree> is one of:
{"logic": "ALL_OF"|"ONE_OF"|"TWO_OF", "children": [<tree>, ...]}
{"type": "course", "department": ..., "number": ..., "minGrade"?: ..., "canBeTakenConcurrently"?: "true", "orEquivalent"?: "true"}
{"type": "HSCourse", "course": ..., "minGrade"?: ..., "orEquivalent"?: "true"}
{"type": "creditCount", "credits": <number>, "department"?: ..., "level"?: "1XX"|"2XX"|"3XX"|"4XX"|"LD"|"UD", "minGrade"?: ..., "canBeTakenConcurrently"?: "true"}
{"type": "courseCount", "count": <number>, "department"?: ..., "level"?: ..., "minGrade"?: ..., "canBeTakenConcurrently"?: "true"}
{"type": "CGPA", "minCGPA": <number>}
{"type": "UDGPA", "minUDGPA": <number>}
{"type": "program", "program": ...}
{"type": "permission", "note": ...}
{"type": "other", "note": ...}

A <conflict> is {"type": "conflict_course", "department": ..., "number": ..., "title"?: ...}
or {"type": "conflict_other", "note": ...}.`

// Translator asks a completion endpoint for a requirement tree and accepts
// it only if it survives structural validation. Whether a valid tree is a
// faithful translation of the source text is not judged here.
type Translator struct {
	client Client
}

func NewTranslator(client Client) *Translator {
	return &Translator{client: client}
}

func (t *Translator) Translate(ctx context.Context, course CourseText) (*requirement.ParsedCourseRequirements, error) {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Course: %v %v - %v\n", course.Department, course.Number, course.Title)
	fmt.Fprintf(&prompt, "Prerequisite text: %v\n", course.Prerequisite)
	fmt.Fprintf(&prompt, "Corequisite text: %v\n", course.Corequisite)
	fmt.Fprintf(&prompt, "Notes: %v\n", course.Notes)

	messages := []Message{
		{Role: "system", Content: fmt.Sprintf(systemPrompt, requirement.SchemaVersion)},
		{Role: "user", Content: prompt.String()},
	}

	response, err := t.client.Chat(ctx, messages, &SamplingOptions{Temperature: 0})
	if err != nil {
		return nil, &TranslationError{Department: course.Department, Number: course.Number, Reason: err.Error()}
	}

	var candidate any
	if err := json.Unmarshal([]byte(stripFences(response.Content)), &candidate); err != nil {
		return nil, &TranslationError{Department: course.Department, Number: course.Number, Reason: "completion is not valid JSON"}
	}

	result := requirement.Validate(candidate)
	if !result.IsValid {
		return nil, &TranslationError{
			Department:  course.Department,
			Number:      course.Number,
			Reason:      "completion violates the requirement schema",
			Diagnostics: result.Errors,
		}
	}

	record, err := requirement.DecodeRecord(candidate)
	if err != nil {
		return nil, &TranslationError{Department: course.Department, Number: course.Number, Reason: err.Error()}
	}

	if record.Department != course.Department || record.Number != course.Number {
		reason := fmt.Sprintf("completion is for %v %v", record.Department, record.Number)
		return nil, &TranslationError{Department: course.Department, Number: course.Number, Reason: reason}
	}

	return record, nil
}

// stripFences tolerates completions wrapped in a markdown code fence.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// Package graph compiles validated requirement trees across a course catalog
// into a weighted dependency graph suitable for tabular export.
package graph

import (
	"math"
	"strings"

	"github.com/coursegraph/coursegraph/requirement"
)

// WeightedCourse is one course reference emitted from a requirement tree,
// weighted by how mandatory the reference is.
type WeightedCourse struct {
	Course string
	Value  float64
}

// CourseID is the graph identity of a catalog course.
func CourseID(department, number string) string {
	return department + " " + number
}

// HSCourseID is the graph identity of a secondary-school course.
func HSCourseID(course string) string {
	return "HS " + course
}

// ExtractWeighted walks a requirement tree and emits every course and
// secondary-school course it references, weighted by the group logic on the
// path to it. ALL_OF children inherit the full parent value; ONE_OF spreads
// it evenly across the alternatives; TWO_OF spreads twice the parent value,
// since satisfying the group costs two selections. Leaves that reference no
// course (credit counts, GPA thresholds, program and free-text constraints)
// emit nothing. Values are rounded to two decimals only at emission, so
// nested groups compose without compounding rounding error.
func ExtractWeighted(tree requirement.Node, base float64) []WeightedCourse {
	var out []WeightedCourse
	extract(tree, base, &out)
	return out
}

func extract(tree requirement.Node, value float64, out *[]WeightedCourse) {
	switch node := tree.(type) {
	case requirement.Group:
		child := value
		switch node.Logic {
		case requirement.LogicOneOf:
			child = value / float64(len(node.Children))
		case requirement.LogicTwoOf:
			child = value * 2 / float64(len(node.Children))
		}
		for _, c := range node.Children {
			extract(c, child, out)
		}
	case requirement.Course:
		*out = append(*out, WeightedCourse{Course: CourseID(node.Department, node.Number), Value: round2(value)})
	case requirement.HSCourse:
		*out = append(*out, WeightedCourse{Course: HSCourseID(node.Course), Value: round2(value)})
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// nodeGroup derives the display group of a graph node from its id.
func nodeGroup(id string) string {
	if strings.HasPrefix(id, "HS ") {
		return "HS"
	}
	department, _, found := strings.Cut(id, " ")
	if !found {
		return id
	}
	return department
}

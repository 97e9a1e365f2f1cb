package graph_test

import (
	"testing"

	"github.com/coursegraph/coursegraph/graph"
	"github.com/coursegraph/coursegraph/requirement"
	"github.com/stretchr/testify/assert"
)

func TestDepthOfBareCourse(t *testing.T) {
	assert.Equal(t, 1, graph.DepthOf(course("MATH", "100"), map[string]int{}))
	assert.Equal(t, 3, graph.DepthOf(course("MATH", "200"), map[string]int{"MATH 200": 2}))
}

func TestDepthOfHSCourse(t *testing.T) {
	// Pre-catalog courses are terminal: always one layer, regardless of any
	// recorded depths.
	assert.Equal(t, 1, graph.DepthOf(requirement.HSCourse{Course: "Physics 12"}, map[string]int{"HS Physics 12": 7}))
}

func TestDepthOfGroups(t *testing.T) {
	// Child X evaluates to depth 2, Y to 5, Z to 8.
	known := map[string]int{"MATH 100": 1, "MATH 200": 4, "MATH 300": 7}
	x := course("MATH", "100")
	y := course("MATH", "200")
	z := course("MATH", "300")

	oneOf := requirement.Group{Logic: requirement.LogicOneOf, Children: []requirement.Node{x, y}}
	assert.Equal(t, 2, graph.DepthOf(oneOf, known))

	allOf := requirement.Group{Logic: requirement.LogicAllOf, Children: []requirement.Node{x, y}}
	assert.Equal(t, 5, graph.DepthOf(allOf, known))

	twoOf := requirement.Group{Logic: requirement.LogicTwoOf, Children: []requirement.Node{x, y, z}}
	assert.Equal(t, 5, graph.DepthOf(twoOf, known))
}

// Children that contribute no prerequisite chain are excluded before the
// group policy is applied.
func TestDepthOfFiltersNonChains(t *testing.T) {
	known := map[string]int{"MATH 200": 4}

	tree := requirement.Group{
		Logic: requirement.LogicAllOf,
		Children: []requirement.Node{
			requirement.Program{Program: "Science"},
			requirement.CGPA{MinCGPA: 2.0},
			course("MATH", "200"),
		},
	}
	assert.Equal(t, 5, graph.DepthOf(tree, known))

	empty := requirement.Group{
		Logic:    requirement.LogicOneOf,
		Children: []requirement.Node{requirement.Permission{Note: "Department"}},
	}
	assert.Equal(t, 0, graph.DepthOf(empty, map[string]int{}))
}

// A TWO_OF with a single surviving chain is bounded by that chain.
func TestDepthOfTwoOfSingleSurvivor(t *testing.T) {
	tree := requirement.Group{
		Logic: requirement.LogicTwoOf,
		Children: []requirement.Node{
			course("MATH", "100"),
			requirement.Program{Program: "Science"},
		},
	}
	assert.Equal(t, 1, graph.DepthOf(tree, map[string]int{}))
}

func TestDepthOfNonCourseLeaf(t *testing.T) {
	assert.Equal(t, 0, graph.DepthOf(requirement.CGPA{MinCGPA: 3.0}, map[string]int{}))
}

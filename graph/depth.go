package graph

import (
	"sort"

	"github.com/coursegraph/coursegraph/requirement"
)

// DepthOf computes how many sequential prerequisite layers stand between
// having no prerequisites and eligibility via the given tree, consulting
// known for the depths of courses referenced inside it.
//
// A course leaf is one layer past its known depth; a course absent from the
// map reads as depth 0, so "unknown" and "no prerequisites" are deliberately
// not distinguished here. A secondary-school course is always depth 1. A
// group drops child depths of 0 (absent or unknown chains are not real
// prerequisite chains), then ALL_OF is bounded by its hardest branch,
// ONE_OF by its easiest, and TWO_OF by the second-easiest since two branches
// must be cleared. An empty filtered set yields 0.
//
// DepthOf never descends into another course's own tree; it only reads the
// supplied map. Circular course references therefore cannot recurse.
func DepthOf(tree requirement.Node, known map[string]int) int {
	switch node := tree.(type) {
	case requirement.Course:
		return known[CourseID(node.Department, node.Number)] + 1
	case requirement.HSCourse:
		return 1
	case requirement.Group:
		var depths []int
		for _, child := range node.Children {
			if d := DepthOf(child, known); d > 0 {
				depths = append(depths, d)
			}
		}
		if len(depths) == 0 {
			return 0
		}
		sort.Ints(depths)
		switch node.Logic {
		case requirement.LogicAllOf:
			return depths[len(depths)-1]
		case requirement.LogicOneOf:
			return depths[0]
		case requirement.LogicTwoOf:
			if len(depths) == 1 {
				return depths[0]
			}
			return depths[1]
		}
	}
	return 0
}

package graph_test

import (
	"testing"

	"github.com/coursegraph/coursegraph/graph"
	"github.com/coursegraph/coursegraph/requirement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(department, number, title string, prerequisite, corequisite requirement.Node) graph.Record {
	return graph.Record{
		Requirements: requirement.ParsedCourseRequirements{
			Department:    department,
			Number:        number,
			SchemaVersion: requirement.SchemaVersion,
			Prerequisite:  prerequisite,
			Corequisite:   corequisite,
		},
		Title: title,
	}
}

func nodeByID(t *testing.T, assembled graph.Graph, id string) graph.Node {
	t.Helper()
	for _, node := range assembled.Nodes {
		if node.ID == id {
			return node
		}
	}
	t.Fatalf("node %v not found", id)
	return graph.Node{}
}

func linkValue(t *testing.T, assembled graph.Graph, source, target string) float64 {
	t.Helper()
	for _, link := range assembled.Links {
		if link.Source == source && link.Target == target {
			return link.Value
		}
	}
	t.Fatalf("link %v -> %v not found", source, target)
	return 0
}

func TestAssembleBasicGraph(t *testing.T) {
	records := []graph.Record{
		record("MATH", "200", "Multivariable Calculus",
			requirement.Group{Logic: requirement.LogicOneOf, Children: []requirement.Node{
				course("MATH", "100"), course("MATH", "102"),
			}}, nil),
		record("MATH", "100", "Differential Calculus", requirement.HSCourse{Course: "Precalculus 12"}, nil),
	}

	assembled := graph.Assemble(records)

	assert.Len(t, assembled.Nodes, 4)
	assert.Len(t, assembled.Links, 3)

	assert.Equal(t, 0.5, linkValue(t, assembled, "MATH 100", "MATH 200"))
	assert.Equal(t, 0.5, linkValue(t, assembled, "MATH 102", "MATH 200"))
	assert.Equal(t, 1.0, linkValue(t, assembled, "HS Precalculus 12", "MATH 100"))

	// Referenced-only nodes fall back to their id as title; HS entities are
	// grouped under "HS".
	assert.Equal(t, "Differential Calculus", nodeByID(t, assembled, "MATH 100").Title)
	assert.Equal(t, "MATH 102", nodeByID(t, assembled, "MATH 102").Title)
	hs := nodeByID(t, assembled, "HS Precalculus 12")
	assert.Equal(t, "HS", hs.Group)
	assert.Equal(t, "MATH", nodeByID(t, assembled, "MATH 200").Group)
}

// The same (source, target) pair reachable through structurally distinct
// requirement paths keeps the single highest weight.
func TestAssembleKeepsHighestLinkWeight(t *testing.T) {
	prerequisite := requirement.Group{Logic: requirement.LogicAllOf, Children: []requirement.Node{
		course("MATH", "150"),
		requirement.Group{Logic: requirement.LogicOneOf, Children: []requirement.Node{
			course("MATH", "150"), course("MATH", "152"),
		}},
	}}
	records := []graph.Record{
		record("PHYS", "250", "Modern Physics", prerequisite, nil),
		record("PHYS", "260", "Thermodynamics",
			requirement.Group{Logic: requirement.LogicOneOf, Children: []requirement.Node{
				course("MATH", "150"), course("MATH", "152"), course("MATH", "154"), course("MATH", "158"),
			}}, nil),
	}

	assembled := graph.Assemble(records)

	assert.Equal(t, 1.0, linkValue(t, assembled, "MATH 150", "PHYS 250"))
	assert.Equal(t, 0.25, linkValue(t, assembled, "MATH 150", "PHYS 260"))

	// One link per pair even though MATH 150 appeared twice in the tree.
	count := 0
	for _, link := range assembled.Links {
		if link.Source == "MATH 150" && link.Target == "PHYS 250" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAssemblePrunesIsolatedNodes(t *testing.T) {
	records := []graph.Record{
		record("ARTS", "100", "Studio Practice", nil, nil),
		record("MATH", "200", "Multivariable Calculus", course("MATH", "100"), nil),
	}

	assembled := graph.Assemble(records)

	ids := make([]string, 0, len(assembled.Nodes))
	for _, node := range assembled.Nodes {
		ids = append(ids, node.ID)
	}
	assert.ElementsMatch(t, []string{"MATH 100", "MATH 200"}, ids)
}

func TestAssembleSizes(t *testing.T) {
	records := []graph.Record{
		record("PHYS", "210", "Mechanics", course("MATH", "150"), nil),
		record("CHEM", "210", "Physical Chemistry",
			requirement.Group{Logic: requirement.LogicAllOf, Children: []requirement.Node{
				course("MATH", "150"), course("CHEM", "110"),
			}}, nil),
	}

	assembled := graph.Assemble(records)

	// MATH 150 carries the catalog-wide maximum out-degree.
	assert.Equal(t, 3.0, nodeByID(t, assembled, "MATH 150").Size)
	// Out-degree 1 against max 2: 1 + 2*ln2/ln3 = 2.26, rounded up to 2.40.
	assert.Equal(t, 2.4, nodeByID(t, assembled, "CHEM 110").Size)
	// Pure targets have out-degree 0.
	assert.Equal(t, 1.0, nodeByID(t, assembled, "PHYS 210").Size)
	assert.Equal(t, 1.0, nodeByID(t, assembled, "CHEM 210").Size)
}

func TestAssembleDepths(t *testing.T) {
	records := []graph.Record{
		record("MATH", "100", "Differential Calculus", requirement.HSCourse{Course: "Precalculus 12"}, nil),
		record("MATH", "200", "Multivariable Calculus", course("MATH", "100"), course("MATH", "221")),
		record("MATH", "221", "Matrix Algebra", course("MATH", "100"), nil),
		record("MATH", "300", "Complex Analysis", course("MATH", "200"), nil),
	}

	assembled := graph.Assemble(records)

	require.Equal(t, 1, nodeByID(t, assembled, "MATH 100").Depth)
	// max(prerequisite chain = 2, corequisite chain via MATH 221 = 1): the
	// corequisite tree reads MATH 221 before its own depth is computed.
	assert.Equal(t, 2, nodeByID(t, assembled, "MATH 200").Depth)
	assert.Equal(t, 2, nodeByID(t, assembled, "MATH 221").Depth)
	assert.Equal(t, 3, nodeByID(t, assembled, "MATH 300").Depth)
}

// Depths are computed in listing order, not topological order: a course
// whose prerequisite appears later in the catalog reads it as depth 0. This
// pins the documented limitation so any change to it is a deliberate one.
func TestAssembleForwardReferenceReadsZero(t *testing.T) {
	records := []graph.Record{
		record("MATH", "300", "Complex Analysis", course("MATH", "200"), nil),
		record("MATH", "200", "Multivariable Calculus", course("MATH", "100"), nil),
		record("MATH", "100", "Differential Calculus", requirement.HSCourse{Course: "Precalculus 12"}, nil),
	}

	assembled := graph.Assemble(records)

	assert.Equal(t, 1, nodeByID(t, assembled, "MATH 300").Depth)
	assert.Equal(t, 1, nodeByID(t, assembled, "MATH 200").Depth)
	assert.Equal(t, 1, nodeByID(t, assembled, "MATH 100").Depth)
}

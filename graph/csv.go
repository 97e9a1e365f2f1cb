package graph

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var nodeHeader = []string{"id", "title", "group", "size", "depth"}
var linkHeader = []string{"source", "target", "value"}

// WriteNodesCSV writes the node table in the flat form consumed by external
// graph-visualization tooling.
func WriteNodesCSV(w io.Writer, nodes []Node) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(nodeHeader); err != nil {
		return err
	}
	for _, node := range nodes {
		row := []string{
			node.ID,
			node.Title,
			node.Group,
			strconv.FormatFloat(node.Size, 'f', 2, 64),
			strconv.Itoa(node.Depth),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteLinksCSV writes the link table.
func WriteLinksCSV(w io.Writer, links []Link) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(linkHeader); err != nil {
		return err
	}
	for _, link := range links {
		row := []string{
			link.Source,
			link.Target,
			strconv.FormatFloat(link.Value, 'f', 2, 64),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadNodesCSV reads a node table written by WriteNodesCSV.
func ReadNodesCSV(r io.Reader) ([]Node, error) {
	rows, err := readTable(r, nodeHeader)
	if err != nil {
		return nil, err
	}

	var nodes []Node
	for _, row := range rows {
		size, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("graph: invalid node size %q: %w", row[3], err)
		}
		depth, err := strconv.Atoi(row[4])
		if err != nil {
			return nil, fmt.Errorf("graph: invalid node depth %q: %w", row[4], err)
		}
		nodes = append(nodes, Node{ID: row[0], Title: row[1], Group: row[2], Size: size, Depth: depth})
	}
	return nodes, nil
}

// ReadLinksCSV reads a link table written by WriteLinksCSV.
func ReadLinksCSV(r io.Reader) ([]Link, error) {
	rows, err := readTable(r, linkHeader)
	if err != nil {
		return nil, err
	}

	var links []Link
	for _, row := range rows {
		value, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("graph: invalid link value %q: %w", row[2], err)
		}
		links = append(links, Link{Source: row[0], Target: row[1], Value: value})
	}
	return links, nil
}

func readTable(r io.Reader, header []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(header)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("graph: missing %v header", header)
	}
	for i, name := range header {
		if rows[0][i] != name {
			return nil, fmt.Errorf("graph: expected %v header, got %v", header, rows[0])
		}
	}
	return rows[1:], nil
}

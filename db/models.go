package db

// Course is one scraped catalog row: the display title plus the exact
// free-text rule strings the oracle translates.
type Course struct {
	Department       string
	Number           string
	Title            string
	PrerequisiteText string
	CorequisiteText  string
	NotesText        string
}

// ParsedRecord is accepted oracle output together with the exact source
// strings it was parsed from. Staleness is decided by comparing those
// strings against the current catalog row, never by inspecting the tree.
type ParsedRecord struct {
	Department         string
	Number             string
	SchemaVersion      int
	Document           []byte
	SourceTitle        string
	SourcePrerequisite string
	SourceCorequisite  string
	SourceNotes        string
}

// ParsedDocument is a stored parse joined with its catalog display title,
// the shape the graph assembler consumes.
type ParsedDocument struct {
	Department string
	Number     string
	Title      string
	Document   []byte
}

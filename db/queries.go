package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const listCourses = `SELECT department, number, title, prerequisite_text, corequisite_text, notes_text FROM courses ORDER BY department, number`
const insertCourse = `INSERT INTO courses (department, number, title, prerequisite_text, corequisite_text, notes_text) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (department, number) DO UPDATE SET title=EXCLUDED.title, prerequisite_text=EXCLUDED.prerequisite_text, corequisite_text=EXCLUDED.corequisite_text, notes_text=EXCLUDED.notes_text`

// A catalog row is stale when it has no parse, when its parse predates the
// current schema version, or when any source string no longer matches the
// catalog exactly.
const listStaleCourses = `SELECT courses.department, courses.number, courses.title, courses.prerequisite_text, courses.corequisite_text, courses.notes_text FROM courses LEFT JOIN parsed_requirements ON parsed_requirements.department = courses.department AND parsed_requirements.number = courses.number WHERE parsed_requirements.department IS NULL OR parsed_requirements.schema_version < $1 OR parsed_requirements.source_title <> courses.title OR parsed_requirements.source_prerequisite <> courses.prerequisite_text OR parsed_requirements.source_corequisite <> courses.corequisite_text OR parsed_requirements.source_notes <> courses.notes_text ORDER BY courses.department, courses.number`

const upsertParsedRecord = `INSERT INTO parsed_requirements (department, number, schema_version, document, source_title, source_prerequisite, source_corequisite, source_notes) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT (department, number) DO UPDATE SET schema_version=EXCLUDED.schema_version, document=EXCLUDED.document, source_title=EXCLUDED.source_title, source_prerequisite=EXCLUDED.source_prerequisite, source_corequisite=EXCLUDED.source_corequisite, source_notes=EXCLUDED.source_notes`

const listParsedDocuments = `SELECT parsed_requirements.department, parsed_requirements.number, COALESCE(courses.title, ''), parsed_requirements.document FROM parsed_requirements LEFT JOIN courses ON courses.department = parsed_requirements.department AND courses.number = parsed_requirements.number ORDER BY parsed_requirements.department, parsed_requirements.number`

func insertCallback(ct pgconn.CommandTag) error {
	return nil
}

func (d *Database) ListCourses() ([]Course, error) {
	rows, err := d.Pool.Query(context.Background(), listCourses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		var course Course
		if err := rows.Scan(&course.Department, &course.Number, &course.Title, &course.PrerequisiteText, &course.CorequisiteText, &course.NotesText); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

func (d *Database) InsertCourses(courses []Course) error {
	if len(courses) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	var queuedQueries []*pgx.QueuedQuery

	for _, course := range courses {
		queuedQueries = append(queuedQueries, batch.Queue(insertCourse, course.Department, course.Number, course.Title, course.PrerequisiteText, course.CorequisiteText, course.NotesText))
	}

	for _, queuedQuery := range queuedQueries {
		queuedQuery.Exec(insertCallback)
	}

	if err := d.Pool.SendBatch(context.Background(), &batch).Close(); err != nil {
		return err
	}

	return nil
}

func (d *Database) ListStaleCourses(schemaVersion int) ([]Course, error) {
	rows, err := d.Pool.Query(context.Background(), listStaleCourses, schemaVersion)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		var course Course
		if err := rows.Scan(&course.Department, &course.Number, &course.Title, &course.PrerequisiteText, &course.CorequisiteText, &course.NotesText); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

func (d *Database) UpsertParsedRecords(records []ParsedRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	var queuedQueries []*pgx.QueuedQuery

	for _, record := range records {
		queuedQueries = append(queuedQueries, batch.Queue(upsertParsedRecord, record.Department, record.Number, record.SchemaVersion, record.Document, record.SourceTitle, record.SourcePrerequisite, record.SourceCorequisite, record.SourceNotes))
	}

	for _, queuedQuery := range queuedQueries {
		queuedQuery.Exec(insertCallback)
	}

	if err := d.Pool.SendBatch(context.Background(), &batch).Close(); err != nil {
		return err
	}

	return nil
}

func (d *Database) ListParsedDocuments() ([]ParsedDocument, error) {
	rows, err := d.Pool.Query(context.Background(), listParsedDocuments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []ParsedDocument
	for rows.Next() {
		var document ParsedDocument
		if err := rows.Scan(&document.Department, &document.Number, &document.Title, &document.Document); err != nil {
			return nil, err
		}
		documents = append(documents, document)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return documents, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/unidesk/campus/internal/campus/domain"
)

type facultiesRepo struct {
	db *sql.DB
}

func (r *facultiesRepo) ListFaculties(ctx context.Context) ([]domain.Faculty, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM faculties ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	faculties := []domain.Faculty{}
	for rows.Next() {
		var f domain.Faculty
		var created sql.NullTime
		if err := rows.Scan(&f.ID, &f.Name, &created); err != nil {
			return nil, err
		}
		f.CreatedAt = created.Time
		faculties = append(faculties, f)
	}
	return faculties, rows.Err()
}

func (r *facultiesRepo) UpsertFaculty(ctx context.Context, f domain.Faculty) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO faculties (id, name) VALUES (?, ?)
		 ON CONFLICT (id) DO UPDATE SET name = excluded.name`,
		f.ID, f.Name)
	return err
}

type catalogRepo struct {
	db *sql.DB
}

func (r *catalogRepo) ListDocuments(
	ctx context.Context,
	facultyID string,
	c domain.Collection,
) ([]domain.Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, body FROM catalog_items
		 WHERE faculty_id = ? AND collection = ?
		 ORDER BY id`,
		facultyID, c.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocuments(rows)
}

func (r *catalogRepo) GetDocument(
	ctx context.Context,
	facultyID string,
	c domain.Collection,
	id string,
) (domain.Document, error) {
	var docID, body string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, body FROM catalog_items
		 WHERE faculty_id = ? AND collection = ? AND id = ?`,
		facultyID, c.String(), id).Scan(&docID, &body)
	if err != nil {
		return domain.Document{}, mapNotFound(err)
	}
	return decodeDocument(docID, body)
}

func (r *catalogRepo) ListDocumentsByField(
	ctx context.Context,
	facultyID string,
	c domain.Collection,
	field string,
	value int64,
) ([]domain.Document, error) {
	// The field name is allow-listed upstream; it only ever reaches SQL as a
	// bound JSON path parameter, never interpolated.
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, body FROM catalog_items
		 WHERE faculty_id = ? AND collection = ? AND json_extract(body, ?) = ?
		 ORDER BY id`,
		facultyID, c.String(), "$."+field, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocuments(rows)
}

func (r *catalogRepo) PutDocument(
	ctx context.Context,
	facultyID string,
	c domain.Collection,
	doc domain.Document,
) error {
	body, err := json.Marshal(doc.Fields)
	if err != nil {
		return fmt.Errorf("encode document body: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO catalog_items (faculty_id, collection, id, body)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (faculty_id, collection, id)
		 DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP`,
		facultyID, c.String(), doc.ID, string(body))
	return err
}

func scanDocuments(rows *sql.Rows) ([]domain.Document, error) {
	docs := []domain.Document{}
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}
		doc, err := decodeDocument(id, body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func decodeDocument(id, body string) (domain.Document, error) {
	fields := map[string]any{}
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return domain.Document{}, fmt.Errorf("decode document %s: %w", id, err)
	}
	return domain.Document{ID: id, Fields: fields}, nil
}

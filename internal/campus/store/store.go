package store

import (
	"context"
	"errors"

	"github.com/unidesk/campus/internal/campus/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// possibly postgres later) implement this. It exposes sub-repositories to
// keep concerns tidy and testable.
//
// The schema is intentionally document-shaped: catalog items live at
// faculties/{facultyID}/{collection}/{id} and a document may exist without a
// row in the faculties table, mirroring the hierarchical store the original
// system was built on.
type Store interface {
	Faculties() Faculties
	Catalog() Catalog
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Faculties interface {
	// ListFaculties returns all faculties ordered by id.
	ListFaculties(ctx context.Context) ([]domain.Faculty, error)

	// UpsertFaculty creates or renames a faculty.
	UpsertFaculty(ctx context.Context, f domain.Faculty) error
}

type Catalog interface {
	// ListDocuments returns every document in a sub-collection; an empty
	// slice, not an error, when none exist.
	ListDocuments(ctx context.Context, facultyID string, c domain.Collection) ([]domain.Document, error)

	// GetDocument is a point lookup; ErrNotFound when absent.
	GetDocument(ctx context.Context, facultyID string, c domain.Collection, id string) (domain.Document, error)

	// ListDocumentsByField returns documents whose named field numerically
	// equals value. The field must already be validated against the
	// collection's filter allow-list; the store does not re-check it.
	ListDocumentsByField(ctx context.Context, facultyID string, c domain.Collection, field string, value int64) ([]domain.Document, error)

	// PutDocument creates or replaces a document.
	PutDocument(ctx context.Context, facultyID string, c domain.Collection, doc domain.Document) error
}

type Users interface {
	// CreateProfile conditionally creates a profile with the default role.
	// Returns created=false without touching the row when the uid already
	// exists; the conflict clause makes the answer linearizable.
	CreateProfile(ctx context.Context, uid string) (created bool, err error)

	// GetProfile returns a profile by uid; ErrNotFound when absent.
	GetProfile(ctx context.Context, uid string) (domain.UserProfile, error)

	// UpdateProfile merges the given fields into the profile. The caller has
	// already filtered fields to the allow-list; "role" updates the role
	// column, everything else merges into attrs. ErrNotFound when absent.
	UpdateProfile(ctx context.Context, uid string, fields map[string]any) error

	// DeleteProfile permanently removes a profile; ErrNotFound when absent.
	DeleteProfile(ctx context.Context, uid string) error
}

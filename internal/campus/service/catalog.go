package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/unidesk/campus/internal/campus/domain"
	"github.com/unidesk/campus/internal/campus/store"
)

// Catalog is the generic read accessor every resource handler delegates to.
// It validates the faculty/collection/field coordinates and performs a live
// store query on every call; there is no cache, so staleness is bounded only
// by the store itself.
type Catalog struct {
	Store store.Store
}

// ListFaculties returns all faculties.
func (s *Catalog) ListFaculties(ctx context.Context) ([]domain.Faculty, error) {
	faculties, err := s.Store.Faculties().ListFaculties(ctx)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return faculties, nil
}

// ListAll lists every document in faculties/{facultyID}/{collection}. An
// empty collection is an empty slice, not an error.
func (s *Catalog) ListAll(ctx context.Context, facultyID, collection string) ([]domain.Document, error) {
	c, err := s.coordinates(facultyID, collection)
	if err != nil {
		return nil, err
	}

	docs, err := s.Store.Catalog().ListDocuments(ctx, facultyID, c)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return docs, nil
}

// GetByID is a point lookup; ErrNotFound when the document is absent.
func (s *Catalog) GetByID(ctx context.Context, facultyID, collection, itemID string) (domain.Document, error) {
	c, err := s.coordinates(facultyID, collection)
	if err != nil {
		return domain.Document{}, err
	}
	if itemID == "" {
		return domain.Document{}, fmt.Errorf("%w: missing item id", ErrInvalidInput)
	}

	doc, err := s.Store.Catalog().GetDocument(ctx, facultyID, c, itemID)
	if err != nil {
		return domain.Document{}, mapStoreErr(err)
	}
	return doc, nil
}

// ListByField returns the documents whose named field numerically equals
// value. The field must be in the collection's filter allow-list.
func (s *Catalog) ListByField(
	ctx context.Context,
	facultyID, collection, field string,
	value int64,
) ([]domain.Document, error) {
	c, err := s.coordinates(facultyID, collection)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateFilterField(c, field); err != nil {
		return nil, fmt.Errorf("%w: %q is not filterable on %s", ErrInvalidInput, field, c)
	}

	docs, err := s.Store.Catalog().ListDocumentsByField(ctx, facultyID, c, field, value)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return docs, nil
}

// Upsert creates or replaces a catalog document. This is the admin ingestion
// path; the read API never mutates.
func (s *Catalog) Upsert(ctx context.Context, facultyID, collection string, doc domain.Document) error {
	c, err := s.coordinates(facultyID, collection)
	if err != nil {
		return err
	}
	if doc.ID == "" {
		return fmt.Errorf("%w: missing item id", ErrInvalidInput)
	}

	if err := s.Store.Catalog().PutDocument(ctx, facultyID, c, doc); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// UpsertFaculty creates or renames a faculty.
func (s *Catalog) UpsertFaculty(ctx context.Context, f domain.Faculty) error {
	if f.ID == "" {
		return fmt.Errorf("%w: missing faculty id", ErrInvalidInput)
	}
	if err := s.Store.Faculties().UpsertFaculty(ctx, f); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

func (s *Catalog) coordinates(facultyID, collection string) (domain.Collection, error) {
	if facultyID == "" {
		return "", fmt.Errorf("%w: missing faculty id", ErrInvalidInput)
	}
	c, err := domain.ParseCollection(collection)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCollection) {
			return "", fmt.Errorf("%w: unknown collection %q", ErrInvalidInput, collection)
		}
		return "", err
	}
	return c, nil
}

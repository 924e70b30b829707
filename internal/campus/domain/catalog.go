package domain

import (
	"encoding/json"
	"errors"
	"maps"
	"time"
)

// Collection names a faculty sub-collection. Handlers receive the collection
// as a path segment; it is validated into this enum before it reaches the
// store so a typo can never query an unknown collection.
type Collection string

const (
	CollectionCourses  Collection = "courses"
	CollectionPrograms Collection = "programs"
	CollectionBranches Collection = "branches"
	CollectionEvents   Collection = "events"
)

var ErrUnknownCollection = errors.New("domain: unknown collection")

// ParseCollection validates a raw collection name.
func ParseCollection(s string) (Collection, error) {
	switch c := Collection(s); c {
	case CollectionCourses, CollectionPrograms, CollectionBranches, CollectionEvents:
		return c, nil
	default:
		return "", ErrUnknownCollection
	}
}

func (c Collection) String() string { return string(c) }

// filterFields lists, per collection, the document fields that may be used as
// equality filters. Values are numeric (e.g. a program or branch number).
var filterFields = map[Collection][]string{
	CollectionCourses:  {"programId", "branchId", "semester"},
	CollectionPrograms: {},
	CollectionBranches: {"programId"},
	CollectionEvents:   {"courseId", "semester"},
}

var ErrUnknownFilterField = errors.New("domain: unknown filter field")

// ValidateFilterField checks that field is an allowed equality-filter key for
// the collection. The store interpolates the field into a JSON path, so only
// allow-listed names ever get there.
func ValidateFilterField(c Collection, field string) error {
	for _, f := range filterFields[c] {
		if f == field {
			return nil
		}
	}
	return ErrUnknownFilterField
}

// FilterFields returns the allowed equality-filter keys for a collection.
func FilterFields(c Collection) []string {
	return filterFields[c]
}

// Faculty is the top-level organizational unit owning the sub-collections.
type Faculty struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
}

// Document is a catalog item at faculties/{facultyID}/{collection}/{id}.
// Fields are collection-specific and opaque to this layer beyond the
// filterable keys.
type Document struct {
	ID     string
	Fields map[string]any
}

// MarshalJSON flattens the document so the id appears alongside its fields,
// the shape clients of the original API expect.
func (d Document) MarshalJSON() ([]byte, error) {
	merged := make(map[string]any, len(d.Fields)+1)
	maps.Copy(merged, d.Fields)
	merged["id"] = d.ID
	return json.Marshal(merged)
}

package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// DatasetID identifies one ingested tabular dataset. Dataset IDs are never
// reused: transforms that produce a new table always mint a new ID.
type DatasetID ID

// String returns the string representation
func (id DatasetID) String() string { return ID(id).String() }

// IsEmpty checks if the dataset ID is empty
func (id DatasetID) IsEmpty() bool { return id == "" }

// NewDatasetID mints a fresh dataset identifier
func NewDatasetID() DatasetID { return DatasetID(NewID()) }

// ParseDatasetID parses a string into a DatasetID
func ParseDatasetID(s string) (DatasetID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("dataset ID cannot be empty")
	}
	return DatasetID(s), nil
}

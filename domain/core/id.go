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
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
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

// PropertyID identifies a single property record across the pipeline
type PropertyID ID

func (id PropertyID) String() string { return ID(id).String() }

// NewPropertyID creates a new unique property identifier
func NewPropertyID() PropertyID {
	return PropertyID(NewID())
}

// ParsePropertyID parses a string into a PropertyID
func ParsePropertyID(s string) (PropertyID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("property ID cannot be empty")
	}
	return PropertyID(s), nil
}

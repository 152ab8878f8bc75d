package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// VertexID is a value object representing a unique graph vertex identifier.
// Every vertex class (account, collection, media, tag, person, place, time)
// carries one as its application-assigned id property.
type VertexID struct {
	value string
}

// NewVertexID creates a new random VertexID
func NewVertexID() VertexID {
	return VertexID{value: uuid.New().String()}
}

// NewVertexIDFromString creates a VertexID from an existing string
func NewVertexIDFromString(id string) (VertexID, error) {
	if id == "" {
		return VertexID{}, errors.New("vertex ID cannot be empty")
	}
	if !isValidUUID(id) {
		return VertexID{}, errors.New("vertex ID must be a valid UUID")
	}
	return VertexID{value: id}, nil
}

// String returns the string representation of the VertexID
func (id VertexID) String() string {
	return id.value
}

// Equals checks if two VertexIDs are equal
func (id VertexID) Equals(other VertexID) bool {
	return id.value == other.value
}

// IsZero checks if the VertexID is the zero value
func (id VertexID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id VertexID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *VertexID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("VertexID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}

// isValidUUID validates if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

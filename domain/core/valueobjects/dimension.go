package valueobjects

import (
	"strings"

	pkgerrors "keepsake-backend/pkg/errors"
)

// DimensionKind identifies one of the four tagging dimensions a media item
// can be annotated along.
type DimensionKind string

const (
	DimensionTag    DimensionKind = "tag"
	DimensionPerson DimensionKind = "person"
	DimensionPlace  DimensionKind = "place"
	DimensionTime   DimensionKind = "time"
)

// AllDimensionKinds lists the dimensions in their canonical order
var AllDimensionKinds = []DimensionKind{DimensionTag, DimensionPerson, DimensionPlace, DimensionTime}

// EdgeLabel returns the edge type linking media to this dimension's vertices
func (k DimensionKind) EdgeLabel() string {
	switch k {
	case DimensionPerson:
		return "features_person"
	case DimensionPlace:
		return "features_place"
	case DimensionTime:
		return "has_time"
	default:
		return "tagged_with"
	}
}

// VertexClass returns the vertex label for this dimension's vertices
func (k DimensionKind) VertexClass() string {
	return string(k)
}

// Prefixed renders a dimension value in the combined display convention:
// places get "@", people "p/", times "t/", and plain tags stay bare.
func (k DimensionKind) Prefixed(value string) string {
	switch k {
	case DimensionPlace:
		return "@" + value
	case DimensionPerson:
		return "p/" + value
	case DimensionTime:
		return "t/" + value
	default:
		return value
	}
}

// ParsePrefixed splits a prefixed expression back into its dimension and
// value, the inverse of Prefixed.
func ParsePrefixed(expr string) (DimensionKind, string) {
	switch {
	case strings.HasPrefix(expr, "@"):
		return DimensionPlace, strings.TrimPrefix(expr, "@")
	case strings.HasPrefix(expr, "p/"):
		return DimensionPerson, strings.TrimPrefix(expr, "p/")
	case strings.HasPrefix(expr, "t/"):
		return DimensionTime, strings.TrimPrefix(expr, "t/")
	default:
		return DimensionTag, expr
	}
}

// NormalizeDimensionValue lower-cases and trims a raw dimension value so
// "Beach " and "beach" resolve to the same vertex.
func NormalizeDimensionValue(raw string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return "", pkgerrors.NewValidationError("dimension value cannot be empty")
	}
	return v, nil
}

// Weights carries the per-dimension multipliers for relationship scoring
type Weights struct {
	Tags   float64 `json:"tags"`
	People float64 `json:"people"`
	Places float64 `json:"places"`
	Times  float64 `json:"times"`
}

// For returns the weight for a dimension kind
func (w Weights) For(k DimensionKind) float64 {
	switch k {
	case DimensionPerson:
		return w.People
	case DimensionPlace:
		return w.Places
	case DimensionTime:
		return w.Times
	default:
		return w.Tags
	}
}

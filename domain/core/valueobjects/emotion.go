package valueobjects

import (
	"regexp"
	"strings"

	pkgerrors "keepsake-backend/pkg/errors"
)

// emotionPattern matches exactly three lowercase words separated by commas,
// e.g. "happy,calm,nostalgic".
var emotionPattern = regexp.MustCompile(`^[a-z]+,[a-z]+,[a-z]+$`)

// EmotionTriple is a value object for a three-word emotion annotation.
// Position is significant: the first word is the strongest response.
type EmotionTriple struct {
	value string
}

// NewEmotionTriple creates an emotion triple with validation
func NewEmotionTriple(s string) (EmotionTriple, error) {
	s = strings.TrimSpace(s)
	if !emotionPattern.MatchString(s) {
		return EmotionTriple{}, pkgerrors.NewValidationError("emotions must be three words separated by commas")
	}
	return EmotionTriple{value: s}, nil
}

// String returns the comma-joined form
func (e EmotionTriple) String() string {
	return e.value
}

// Words returns the three words in order
func (e EmotionTriple) Words() [3]string {
	parts := strings.SplitN(e.value, ",", 3)
	return [3]string{parts[0], parts[1], parts[2]}
}

// Contains reports whether the raw annotation contains the given word as a
// substring. Matching is deliberately loose so "joy" also matches "joyful".
func (e EmotionTriple) Contains(word string) bool {
	return word != "" && strings.Contains(e.value, word)
}

// Equals checks if two emotion triples are equal
func (e EmotionTriple) Equals(other EmotionTriple) bool {
	return e.value == other.value
}

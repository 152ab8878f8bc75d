package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRFC3339RoundTrip(t *testing.T) {
	parsed, err := ParseRFC3339(NowRFC3339())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)
}

func TestParseRFC3339_Invalid(t *testing.T) {
	_, err := ParseRFC3339("14-03-2026 12:00")
	assert.Error(t, err)
}

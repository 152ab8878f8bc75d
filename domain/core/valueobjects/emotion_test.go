package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmotionTriple(t *testing.T) {
	t.Run("accepts three lowercase words", func(t *testing.T) {
		triple, err := NewEmotionTriple("happy,accepted,valued")
		require.NoError(t, err)
		assert.Equal(t, "happy,accepted,valued", triple.String())
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		triple, err := NewEmotionTriple("  calm,warm,safe\n")
		require.NoError(t, err)
		assert.Equal(t, "calm,warm,safe", triple.String())
	})

	t.Run("rejects malformed annotations", func(t *testing.T) {
		for _, raw := range []string{
			"",
			"happy",
			"happy,accepted",
			"happy,accepted,valued,extra",
			"happy,accepted-valued",
			"Happy,Accepted,Valued",
			"happy, accepted, valued",
			"happy,,valued",
			"happy,acce9ted,valued",
		} {
			_, err := NewEmotionTriple(raw)
			assert.Error(t, err, "expected %q to be rejected", raw)
		}
	})
}

func TestEmotionTriple_Words(t *testing.T) {
	triple, err := NewEmotionTriple("joy,calm,warm")
	require.NoError(t, err)
	assert.Equal(t, [3]string{"joy", "calm", "warm"}, triple.Words())
}

func TestEmotionTriple_Contains(t *testing.T) {
	triple, err := NewEmotionTriple("joyful,quiet,sad")
	require.NoError(t, err)

	assert.True(t, triple.Contains("joy"), "substring match is intentional")
	assert.True(t, triple.Contains("quiet"))
	assert.False(t, triple.Contains("warm"))
	assert.False(t, triple.Contains(""))
}

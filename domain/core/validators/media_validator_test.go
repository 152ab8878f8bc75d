package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"keepsake-backend/domain/config"
)

func TestMediaValidator_ValidateIngest(t *testing.T) {
	v := NewMediaValidator()

	t.Run("accepts a well formed ingestion", func(t *testing.T) {
		err := v.ValidateIngest("photos/2024/beach.jpg", "image/jpeg", "present", map[string][]string{
			"tags":   {"beach", "sunset"},
			"people": {"ana"},
		})
		assert.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		err := v.ValidateIngest("", "not a mimetype", "Bad!Name", map[string][]string{
			"tags": {"   "},
		})
		assert.Error(t, err)
		for _, fragment := range []string{"path", "type/subtype", "invalid characters", "blank"} {
			assert.Contains(t, err.Error(), fragment)
		}
	})

	t.Run("rejects too many values per kind", func(t *testing.T) {
		cfg := config.DefaultDomainConfig()
		cfg.MaxDimensionsPerMedia = 2
		limited := NewMediaValidatorWithConfig(cfg)

		err := limited.ValidateIngest("a.jpg", "image/jpeg", "present", map[string][]string{
			"tags": {"one", "two", "three"},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "too many values")
	})

	t.Run("rejects an overlong path", func(t *testing.T) {
		err := v.ValidateIngest(strings.Repeat("x", 2000), "image/jpeg", "present", nil)
		assert.Error(t, err)
	})
}

func TestMediaValidator_ValidateCollectionName(t *testing.T) {
	v := NewMediaValidator()

	for _, name := range []string{"present", "summer 2019", "box_3", "old-photos"} {
		assert.NoError(t, v.ValidateCollectionName(name), name)
	}

	for _, name := range []string{"", "  ", "no/slashes", "-leading-dash", "emoji☺"} {
		assert.Error(t, v.ValidateCollectionName(name), name)
	}
}

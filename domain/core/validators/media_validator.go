package validators

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"keepsake-backend/domain/config"
	"keepsake-backend/pkg/errors"
)

// MediaValidator validates media-related domain rules before ingestion
type MediaValidator struct {
	pathMaxLength     int
	valueMaxLength    int
	maxValuesPerKind  int
	mimetypePattern   *regexp.Regexp
	collectionPattern *regexp.Regexp
}

// NewMediaValidator creates a new media validator with default rules
func NewMediaValidator() *MediaValidator {
	return NewMediaValidatorWithConfig(config.DefaultDomainConfig())
}

// NewMediaValidatorWithConfig creates a media validator from domain configuration
func NewMediaValidatorWithConfig(cfg *config.DomainConfig) *MediaValidator {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &MediaValidator{
		pathMaxLength:     cfg.MaxPathLength,
		valueMaxLength:    cfg.MaxDimensionValueLength,
		maxValuesPerKind:  cfg.MaxDimensionsPerMedia,
		mimetypePattern:   regexp.MustCompile(`^[a-z]+/[a-z0-9.+-]+$`),
		collectionPattern: regexp.MustCompile(`^[a-z0-9][a-z0-9 _-]*$`),
	}
}

// ValidateIngest validates the raw inputs of a media ingestion
func (v *MediaValidator) ValidateIngest(path, mimetype, collection string, dimensions map[string][]string) error {
	validationErrors := errors.NewValidationErrors()

	if err := v.validatePath(path); err != nil {
		validationErrors.Add("path", err.Error())
	}

	if err := v.validateMimetype(mimetype); err != nil {
		validationErrors.Add("mimetype", err.Error())
	}

	if err := v.ValidateCollectionName(collection); err != nil {
		validationErrors.Add("collection", err.Error())
	}

	for kind, values := range dimensions {
		if len(values) > v.maxValuesPerKind {
			validationErrors.Add(kind, fmt.Sprintf("too many values: maximum %d", v.maxValuesPerKind))
			continue
		}
		for _, value := range values {
			if err := v.validateDimensionValue(value); err != nil {
				validationErrors.Add(kind, err.Error())
			}
		}
	}

	if validationErrors.HasErrors() {
		return validationErrors
	}

	return nil
}

// ValidateCollectionName validates a collection name
func (v *MediaValidator) ValidateCollectionName(name string) error {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return fmt.Errorf("collection name is required")
	}
	if !v.collectionPattern.MatchString(name) {
		return fmt.Errorf("collection name contains invalid characters")
	}
	return nil
}

// validatePath validates the opaque storage key
func (v *MediaValidator) validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is required")
	}
	if utf8.RuneCountInString(path) > v.pathMaxLength {
		return fmt.Errorf("path exceeds maximum length of %d characters", v.pathMaxLength)
	}
	return nil
}

// validateMimetype validates the declared MIME type
func (v *MediaValidator) validateMimetype(mimetype string) error {
	if mimetype == "" {
		return fmt.Errorf("mimetype is required")
	}
	if !v.mimetypePattern.MatchString(mimetype) {
		return fmt.Errorf("mimetype is not a valid type/subtype pair")
	}
	return nil
}

// validateDimensionValue validates a single raw tag, person, place or time value
func (v *MediaValidator) validateDimensionValue(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("dimension value cannot be blank")
	}
	if utf8.RuneCountInString(trimmed) > v.valueMaxLength {
		return fmt.Errorf("dimension value exceeds maximum length of %d characters", v.valueMaxLength)
	}
	return nil
}

package config

import (
	"errors"
	"time"
)

var (
	errInvalidBands = errors.New("percentile bands must satisfy 0 < low < mid < 1")
	errPoolTooSmall = errors.New("minimum sample pool must exceed the total number of draws")
)

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Relationship scoring defaults, applied when a caller supplies no
	// explicit weight for a dimension
	DefaultTagWeight    float64
	DefaultPersonWeight float64
	DefaultPlaceWeight  float64
	DefaultTimeWeight   float64

	// Presentation sampler
	SampleDrawCooldown time.Duration
	MinSamplePoolSize  int
	LowBandUpperBound  float64
	MidBandUpperBound  float64
	LowBandDraws       int
	MidBandDraws       int
	HighBandDraws      int

	// Collection semantics
	PresentCollectionName string

	// Dimension value constraints
	MaxDimensionValueLength int
	MaxDimensionsPerMedia   int

	// Media constraints
	MaxPathLength     int
	MaxEmotionEntries int

	// Validation settings
	AllowSelfLinks      bool
	AllowDuplicateEdges bool
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		// Every dimension counts equally unless the caller says otherwise
		DefaultTagWeight:    1.0,
		DefaultPersonWeight: 1.0,
		DefaultPlaceWeight:  1.0,
		DefaultTimeWeight:   1.0,

		// Sampler: one draw per viewer per window, pool must be big
		// enough that the three percentile bands are all non-empty
		SampleDrawCooldown: 10 * time.Second,
		MinSamplePoolSize:  6,
		LowBandUpperBound:  0.2,
		MidBandUpperBound:  0.6,
		LowBandDraws:       1,
		MidBandDraws:       2,
		HighBandDraws:      2,

		PresentCollectionName: "present",

		MaxDimensionValueLength: 200,
		MaxDimensionsPerMedia:   100,

		MaxPathLength:     1024,
		MaxEmotionEntries: 50,

		AllowSelfLinks:      false,
		AllowDuplicateEdges: false,
	}
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// Shorter cooldown so sampling is easy to exercise by hand
	config.SampleDrawCooldown = 2 * time.Second
	config.AllowSelfLinks = true
	config.AllowDuplicateEdges = true

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.LowBandUpperBound <= 0 || c.LowBandUpperBound >= c.MidBandUpperBound || c.MidBandUpperBound >= 1 {
		return errInvalidBands
	}
	if c.MinSamplePoolSize <= c.LowBandDraws+c.MidBandDraws+c.HighBandDraws {
		return errPoolTooSmall
	}
	return nil
}

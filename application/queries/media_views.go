package queries

import "time"

// MediaSummary is the minimal read model for a media item
type MediaSummary struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Mimetype  string    `json:"mimetype"`
	Era       string    `json:"era"`
	CreatedAt time.Time `json:"created_at"`
}

// MediaView is the fully hydrated read model returned by ingestion and media
// lookups: the item itself, its dimension lists and its explicit relations
type MediaView struct {
	MediaSummary
	Collection string         `json:"collection"`
	Emotions   []string       `json:"emotions"`
	Tags       []string       `json:"tags"`
	People     []string       `json:"people"`
	Places     []string       `json:"places"`
	Times      []string       `json:"times"`
	TagNames   []string       `json:"tag_names"`
	Linked     []MediaSummary `json:"linked"`
}

// RelatedMediaView carries one scored candidate from the relationship engine
type RelatedMediaView struct {
	Media         MediaSummary `json:"media"`
	TagCount      int          `json:"tag_count"`
	PersonCount   int          `json:"person_count"`
	PlaceCount    int          `json:"place_count"`
	TimeCount     int          `json:"time_count"`
	TotalCount    int          `json:"total_count"`
	WeightedScore float64      `json:"weighted_score"`
}

// SampleView is the result of one presentation draw: the present-era pivot
// followed by five past-era draws, or a no-draw outcome with its reason
type SampleView struct {
	Drawn  bool           `json:"drawn"`
	Reason string         `json:"reason,omitempty"`
	Pivot  *MediaView     `json:"pivot,omitempty"`
	Draws  []MediaSummary `json:"draws,omitempty"`
}

// EmotionalLinksView holds the three positional overlap buckets of media IDs.
// A candidate may appear more than once in a bucket.
type EmotionalLinksView struct {
	Buckets [3][]string `json:"buckets"`
}

// SessionView is the read model for a started session
type SessionView struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	MediaID   string    `json:"media_id"`
	StartedAt time.Time `json:"started_at"`
}

// AccountView is the read model for an account
type AccountView struct {
	ID        string    `json:"id"`
	UUID      string    `json:"uuid"`
	CreatedAt time.Time `json:"created_at"`
}

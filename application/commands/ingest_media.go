package commands

import (
	"errors"
)

// IngestMediaCommand represents the request to store a media item with all
// of its dimension annotations
type IngestMediaCommand struct {
	AccountID  string   `json:"account_id" validate:"required"`
	Path       string   `json:"path" validate:"required,max=1024"`
	Mimetype   string   `json:"mimetype" validate:"required,max=255"`
	Collection string   `json:"collection" validate:"required,max=200"`
	Tags       []string `json:"tags" validate:"max=100,dive,min=1,max=200"`
	People     []string `json:"people" validate:"max=100,dive,min=1,max=200"`
	Places     []string `json:"places" validate:"max=100,dive,min=1,max=200"`
	Times      []string `json:"times" validate:"max=100,dive,min=1,max=200"`
	Links      []string `json:"links" validate:"max=100,dive,uuid"`
}

// Validate validates the command
func (cmd IngestMediaCommand) Validate() error {
	if cmd.AccountID == "" {
		return errors.New("account ID is required")
	}
	if cmd.Path == "" {
		return errors.New("media path is required")
	}
	if cmd.Mimetype == "" {
		return errors.New("mimetype is required")
	}
	if cmd.Collection == "" {
		return errors.New("collection name is required")
	}
	return nil
}

// DestroyMediaCommand represents the request to remove a media item and its edges
type DestroyMediaCommand struct {
	AccountID string `json:"account_id" validate:"required"`
	MediaID   string `json:"media_id" validate:"required,uuid"`
}

// Validate validates the command
func (cmd DestroyMediaCommand) Validate() error {
	if cmd.AccountID == "" {
		return errors.New("account ID is required")
	}
	if cmd.MediaID == "" {
		return errors.New("media ID is required")
	}
	return nil
}

// LinkMediaCommand represents the request to relate two media items explicitly
type LinkMediaCommand struct {
	AccountID string `json:"account_id" validate:"required"`
	SourceID  string `json:"source_id" validate:"required,uuid"`
	TargetID  string `json:"target_id" validate:"required,uuid"`
}

// Validate validates the command
func (cmd LinkMediaCommand) Validate() error {
	if cmd.AccountID == "" {
		return errors.New("account ID is required")
	}
	if cmd.SourceID == "" || cmd.TargetID == "" {
		return errors.New("source and target media IDs are required")
	}
	if cmd.SourceID == cmd.TargetID {
		return errors.New("cannot link a media item to itself")
	}
	return nil
}

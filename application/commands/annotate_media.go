package commands

import "errors"

// AppendEmotionCommand represents the request to append an emotion annotation
type AppendEmotionCommand struct {
	AccountID string `json:"account_id" validate:"required"`
	MediaID   string `json:"media_id" validate:"required,uuid"`
	Emotions  string `json:"emotions" validate:"required"`
}

// Validate validates the command
func (cmd AppendEmotionCommand) Validate() error {
	if cmd.AccountID == "" {
		return errors.New("account ID is required")
	}
	if cmd.MediaID == "" {
		return errors.New("media ID is required")
	}
	if cmd.Emotions == "" {
		return errors.New("emotions string is required")
	}
	return nil
}

// StartSessionCommand represents the request to begin a viewing session
type StartSessionCommand struct {
	AccountID string `json:"account_id" validate:"required"`
	MediaID   string `json:"media_id" validate:"required,uuid"`
}

// Validate validates the command
func (cmd StartSessionCommand) Validate() error {
	if cmd.AccountID == "" {
		return errors.New("account ID is required")
	}
	if cmd.MediaID == "" {
		return errors.New("media ID is required")
	}
	return nil
}

// CreateAccountCommand represents the request to register an account
type CreateAccountCommand struct {
	UUID string `json:"uuid" validate:"required"`
}

// Validate validates the command
func (cmd CreateAccountCommand) Validate() error {
	if cmd.UUID == "" {
		return errors.New("account uuid is required")
	}
	return nil
}

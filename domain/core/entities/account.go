package entities

import (
	"time"

	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

// Account represents an owner of media and collections. The uuid comes from
// the identity provider, not from the graph store.
type Account struct {
	id        valueobjects.VertexID
	uuid      string
	createdAt time.Time
}

// NewAccount creates an account for an external identity
func NewAccount(uuid string) (*Account, error) {
	if uuid == "" {
		return nil, pkgerrors.NewValidationError("account uuid cannot be empty")
	}
	return &Account{
		id:        valueobjects.NewVertexID(),
		uuid:      uuid,
		createdAt: time.Now(),
	}, nil
}

// ReconstructAccount reconstructs an account from repository data
func ReconstructAccount(id valueobjects.VertexID, uuid string, createdAt time.Time) *Account {
	return &Account{id: id, uuid: uuid, createdAt: createdAt}
}

// ID returns the account's vertex identifier
func (a *Account) ID() valueobjects.VertexID {
	return a.id
}

// UUID returns the external identity of the account
func (a *Account) UUID() string {
	return a.uuid
}

// CreatedAt returns when the account was created
func (a *Account) CreatedAt() time.Time {
	return a.createdAt
}

// Collection groups media under a named bucket owned by one account
type Collection struct {
	id   valueobjects.VertexID
	name string
}

// NewCollection creates a named collection
func NewCollection(name string) (*Collection, error) {
	if name == "" {
		return nil, pkgerrors.NewValidationError("collection name cannot be empty")
	}
	return &Collection{
		id:   valueobjects.NewVertexID(),
		name: name,
	}, nil
}

// ReconstructCollection reconstructs a collection from repository data
func ReconstructCollection(id valueobjects.VertexID, name string) *Collection {
	return &Collection{id: id, name: name}
}

// ID returns the collection's vertex identifier
func (c *Collection) ID() valueobjects.VertexID {
	return c.id
}

// Name returns the collection name
func (c *Collection) Name() string {
	return c.name
}

// Era derives the era of media owned by this collection
func (c *Collection) Era() valueobjects.Era {
	return valueobjects.EraForCollection(c.name)
}

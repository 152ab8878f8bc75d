package neo4j

import (
	"context"

	"go.uber.org/zap"

	"keepsake-backend/application/ports"
	"keepsake-backend/domain/core/entities"
	pkgerrors "keepsake-backend/pkg/errors"
)

// AccountRepository persists account vertices
type AccountRepository struct {
	store  *Store
	logger *zap.Logger
}

var _ ports.AccountRepository = (*AccountRepository)(nil)

// NewAccountRepository creates an account repository over the graph store
func NewAccountRepository(store *Store, logger *zap.Logger) *AccountRepository {
	return &AccountRepository{store: store, logger: logger}
}

// Save persists a new account vertex
func (r *AccountRepository) Save(ctx context.Context, account *entities.Account) error {
	_, err := r.store.CreateVertex(ctx, "account", map[string]any{
		"id":         account.ID().String(),
		"uuid":       account.UUID(),
		"created_at": account.CreatedAt().UnixMilli(),
	})
	if err != nil {
		return err
	}

	r.logger.Info("Account created", zap.String("uuid", account.UUID()))
	return nil
}

// GetByUUID retrieves an account by its external identity
func (r *AccountRepository) GetByUUID(ctx context.Context, uuid string) (*entities.Account, error) {
	vertex, err := r.store.TraverseOne(ctx, NewTraversalByProp("account", "uuid", uuid))
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.NewNotFoundError("account")
		}
		return nil, err
	}
	return accountFromVertex(*vertex)
}

// Exists reports whether an account with the uuid is present
func (r *AccountRepository) Exists(ctx context.Context, uuid string) (bool, error) {
	_, err := r.GetByUUID(ctx, uuid)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

package services

import (
	"context"

	"go.uber.org/zap"

	"keepsake-backend/application/commands"
	"keepsake-backend/application/ports"
	"keepsake-backend/application/queries"
	"keepsake-backend/domain/core/entities"
	pkgerrors "keepsake-backend/pkg/errors"
)

// AccountService registers and resolves accounts
type AccountService struct {
	accountRepo ports.AccountRepository
	logger      *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo ports.AccountRepository, logger *zap.Logger) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// Create registers an account vertex for an external identity
func (s *AccountService) Create(ctx context.Context, cmd commands.CreateAccountCommand) (*queries.AccountView, error) {
	if err := cmd.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	exists, err := s.accountRepo.Exists(ctx, cmd.UUID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, pkgerrors.NewConflictError("account already exists")
	}

	account, err := entities.NewAccount(cmd.UUID)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("Account created", zap.String("uuid", cmd.UUID))

	return accountView(account), nil
}

// Get resolves an account by its external identity
func (s *AccountService) Get(ctx context.Context, uuid string) (*queries.AccountView, error) {
	account, err := s.accountRepo.GetByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}
	return accountView(account), nil
}

func accountView(account *entities.Account) *queries.AccountView {
	return &queries.AccountView{
		ID:        account.ID().String(),
		UUID:      account.UUID(),
		CreatedAt: account.CreatedAt(),
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmorozov/vaccine_scheduler/internal/auth"
	"github.com/dmorozov/vaccine_scheduler/internal/model"
	"go.uber.org/zap"
)

type AccountService struct {
	patients   AccountStore
	caregivers AccountStore
	logger     *zap.Logger
}

func NewAccountService(patients, caregivers AccountStore, logger *zap.Logger) *AccountService {
	return &AccountService{
		patients:   patients,
		caregivers: caregivers,
		logger:     logger,
	}
}

func (s *AccountService) store(role model.Role) AccountStore {
	if role == model.RoleCaregiver {
		return s.caregivers
	}
	return s.patients
}

// Register creates an account of the given role with a fresh salt and
// derived hash. It does not log the caller in; login is a separate step.
func (s *AccountService) Register(ctx context.Context, role model.Role, username, password string) error {
	salt, err := auth.GenerateSalt()
	if err != nil {
		return fmt.Errorf("register account: %w", err)
	}

	acct := &model.Account{
		Username: username,
		Salt:     salt,
		Hash:     auth.HashPassword(password, salt),
	}

	if err := s.store(role).Create(ctx, acct); err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			return model.ErrUsernameTaken
		}
		return fmt.Errorf("register account: %w", err)
	}

	s.logger.Info("Account created",
		zap.String("username", username),
		zap.String("role", string(role)),
	)

	return nil
}

// Authenticate verifies the credentials for the given role. A missing
// account and a wrong password both come back as ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, role model.Role, username, password string) error {
	acct, err := s.store(role).Get(ctx, username)
	if err != nil {
		return fmt.Errorf("authenticate account: %w", err)
	}
	if acct == nil {
		return model.ErrInvalidCredentials
	}

	if !auth.Verify(password, acct.Salt, acct.Hash) {
		return model.ErrInvalidCredentials
	}

	s.logger.Info("Account authenticated",
		zap.String("username", username),
		zap.String("role", string(role)),
	)

	return nil
}

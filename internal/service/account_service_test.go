package service

import (
	"context"
	"testing"

	"github.com/dmorozov/vaccine_scheduler/internal/model"
	"github.com/dmorozov/vaccine_scheduler/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAccountService() *AccountService {
	return NewAccountService(testutil.NewAccountTable(), testutil.NewAccountTable(), zap.NewNop())
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc := newAccountService()

	require.NoError(t, svc.Register(ctx, model.RolePatient, "bob", "pw"))

	err := svc.Register(ctx, model.RolePatient, "bob", "other")
	assert.ErrorIs(t, err, model.ErrUsernameTaken)
}

func TestRegisterRolesHaveSeparateNamespaces(t *testing.T) {
	ctx := context.Background()
	svc := newAccountService()

	require.NoError(t, svc.Register(ctx, model.RolePatient, "alex", "pw"))
	assert.NoError(t, svc.Register(ctx, model.RoleCaregiver, "alex", "pw"))
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newAccountService()

	require.NoError(t, svc.Register(ctx, model.RoleCaregiver, "alice", "pw1"))

	assert.NoError(t, svc.Authenticate(ctx, model.RoleCaregiver, "alice", "pw1"))

	err := svc.Authenticate(ctx, model.RoleCaregiver, "alice", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	err = svc.Authenticate(ctx, model.RoleCaregiver, "nobody", "pw1")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	// Same username, wrong role table.
	err = svc.Authenticate(ctx, model.RolePatient, "alice", "pw1")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

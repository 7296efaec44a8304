package repository

import (
	"context"
	"fmt"

	"github.com/dmorozov/vaccine_scheduler/internal/model"
	"github.com/dmorozov/vaccine_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Patients and caregivers share one row shape but live in separate tables.
// The table is picked by role at construction time from fixed query
// templates; user input never reaches an identifier position.
const (
	insertPatientQuery = `
		INSERT INTO patients (username, salt, hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	getPatientQuery = `
		SELECT username, salt, hash, created_at
		FROM patients
		WHERE username = $1
	`
	insertCaregiverQuery = `
		INSERT INTO caregivers (username, salt, hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	getCaregiverQuery = `
		SELECT username, salt, hash, created_at
		FROM caregivers
		WHERE username = $1
	`
)

type AccountRepository struct {
	pool        *pgxpool.Pool
	role        model.Role
	insertQuery string
	getQuery    string
}

func NewAccountRepository(pool *pgxpool.Pool, role model.Role) *AccountRepository {
	r := &AccountRepository{pool: pool, role: role}
	switch role {
	case model.RoleCaregiver:
		r.insertQuery = insertCaregiverQuery
		r.getQuery = getCaregiverQuery
	default:
		r.insertQuery = insertPatientQuery
		r.getQuery = getPatientQuery
	}
	return r
}

// Create inserts a new account row. The primary key closes the
// check-then-insert race: a concurrent duplicate surfaces as
// model.ErrUsernameTaken rather than a second row.
func (r *AccountRepository) Create(ctx context.Context, acct *model.Account) error {
	err := r.pool.QueryRow(ctx, r.insertQuery, acct.Username, acct.Salt, acct.Hash).
		Scan(&acct.CreatedAt)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return model.ErrUsernameTaken
		}
		return fmt.Errorf("create %s account: %w", r.role, err)
	}
	return nil
}

// Get returns the account for a username, or nil if it does not exist.
func (r *AccountRepository) Get(ctx context.Context, username string) (*model.Account, error) {
	var acct model.Account
	err := r.pool.QueryRow(ctx, r.getQuery, username).Scan(
		&acct.Username,
		&acct.Salt,
		&acct.Hash,
		&acct.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s account: %w", r.role, err)
	}
	return &acct, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/dmorozov/vaccine_scheduler/internal/model"
	"github.com/dmorozov/vaccine_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VaccineRepository struct {
	pool *pgxpool.Pool
}

func NewVaccineRepository(pool *pgxpool.Pool) *VaccineRepository {
	return &VaccineRepository{pool: pool}
}

// AddDoses creates the vaccine with the given count or increments an
// existing one, atomically, and returns the resulting total.
func (r *VaccineRepository) AddDoses(ctx context.Context, name string, count int) (int, error) {
	query := `
		INSERT INTO vaccines (name, doses)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET doses = vaccines.doses + EXCLUDED.doses
		RETURNING doses
	`

	var total int
	if err := r.pool.QueryRow(ctx, query, name, count).Scan(&total); err != nil {
		return 0, fmt.Errorf("add doses: %w", err)
	}
	return total, nil
}

// GetByName returns the vaccine, or nil if it does not exist.
func (r *VaccineRepository) GetByName(ctx context.Context, name string) (*model.Vaccine, error) {
	query := `
		SELECT name, doses
		FROM vaccines
		WHERE name = $1
	`

	var vaccine model.Vaccine
	err := r.pool.QueryRow(ctx, query, name).Scan(&vaccine.Name, &vaccine.Doses)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vaccine by name: %w", err)
	}
	return &vaccine, nil
}

// List returns the full inventory sorted by name.
func (r *VaccineRepository) List(ctx context.Context) ([]*model.Vaccine, error) {
	query := `
		SELECT name, doses
		FROM vaccines
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vaccines: %w", err)
	}
	defer rows.Close()

	var vaccines []*model.Vaccine
	for rows.Next() {
		var vaccine model.Vaccine
		if err := rows.Scan(&vaccine.Name, &vaccine.Doses); err != nil {
			return nil, fmt.Errorf("scan vaccine: %w", err)
		}
		vaccines = append(vaccines, &vaccine)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vaccines: %w", err)
	}

	return vaccines, nil
}

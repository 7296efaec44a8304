package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AvailabilityRepository struct {
	pool *pgxpool.Pool
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{pool: pool}
}

// Upsert marks a caregiver as available on a date. Uploading the same
// date twice is a no-op.
func (r *AvailabilityRepository) Upsert(ctx context.Context, caregiver string, date time.Time) error {
	query := `
		INSERT INTO availabilities (username, avail_date)
		VALUES ($1, $2)
		ON CONFLICT (username, avail_date) DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, query, caregiver, date); err != nil {
		return fmt.Errorf("upsert availability: %w", err)
	}
	return nil
}

// AvailableCaregivers returns caregivers with an availability row for the
// date and no appointment on it, sorted by username. A booked caregiver
// keeps the availability row but drops out of this anti-join.
func (r *AvailabilityRepository) AvailableCaregivers(ctx context.Context, date time.Time) ([]string, error) {
	query := `
		SELECT a.username
		FROM availabilities a
		WHERE a.avail_date = $1
		  AND a.username NOT IN (
			SELECT ap.caregiver_username
			FROM appointments ap
			WHERE ap.appt_date = $1
		  )
		ORDER BY a.username
	`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("get available caregivers: %w", err)
	}
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("scan caregiver username: %w", err)
		}
		usernames = append(usernames, username)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate available caregivers: %w", err)
	}

	return usernames, nil
}

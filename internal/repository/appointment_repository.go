package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dmorozov/vaccine_scheduler/internal/model"
	"github.com/dmorozov/vaccine_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
)

// Fixed per-role query templates for appointment ownership. The role
// column is never interpolated from user input.
const (
	cancelByPatientQuery = `
		DELETE FROM appointments
		WHERE id = $1 AND patient_username = $2
		RETURNING vaccine_name
	`
	cancelByCaregiverQuery = `
		DELETE FROM appointments
		WHERE id = $1 AND caregiver_username = $2
		RETURNING vaccine_name
	`
	listByPatientQuery = `
		SELECT id, appt_date, caregiver_username, patient_username, vaccine_name, created_at
		FROM appointments
		WHERE patient_username = $1
		ORDER BY appt_date, id
	`
	listByCaregiverQuery = `
		SELECT id, appt_date, caregiver_username, patient_username, vaccine_name, created_at
		FROM appointments
		WHERE caregiver_username = $1
		ORDER BY appt_date, id
	`
)

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func (r *AppointmentRepository) withTxRetry(ctx context.Context, op func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(10*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if err != nil && base.IsSerializationFailure(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

// Reserve inserts the appointment and consumes one dose of its vaccine in
// a single transaction. The vaccine row is locked for the duration, so
// the dose check and the decrement cannot race across processes.
// Serialization failures are retried with backoff.
func (r *AppointmentRepository) Reserve(ctx context.Context, appt *model.Appointment) error {
	return r.withTxRetry(ctx, func(ctx context.Context) error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback(ctx)

		var doses int
		err = tx.QueryRow(ctx,
			`SELECT doses FROM vaccines WHERE name = $1 FOR UPDATE`,
			appt.VaccineName,
		).Scan(&doses)
		if err != nil {
			if base.IsNotFound(err) {
				return model.ErrVaccineNotFound
			}
			return fmt.Errorf("lock vaccine row: %w", err)
		}
		if doses <= 0 {
			return model.ErrNoDosesLeft
		}

		_, err = tx.Exec(ctx,
			`UPDATE vaccines SET doses = doses - 1 WHERE name = $1`,
			appt.VaccineName,
		)
		if err != nil {
			return fmt.Errorf("decrement doses: %w", err)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO appointments (id, appt_date, caregiver_username, patient_username, vaccine_name)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at
		`,
			appt.ID,
			appt.Date,
			appt.CaregiverUsername,
			appt.PatientUsername,
			appt.VaccineName,
		).Scan(&appt.CreatedAt)
		if err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}

// CancelRestoringDose deletes the appointment matching (id, caller) and
// returns the consumed dose to its vaccine, in one transaction. A missing
// row and a row owned by someone else are both model.ErrAppointmentNotFound
// so the caller cannot probe for existence.
func (r *AppointmentRepository) CancelRestoringDose(ctx context.Context, id string, role model.Role, username string) error {
	cancelQuery := cancelByPatientQuery
	if role == model.RoleCaregiver {
		cancelQuery = cancelByCaregiverQuery
	}

	return r.withTxRetry(ctx, func(ctx context.Context) error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback(ctx)

		var vaccineName string
		err = tx.QueryRow(ctx, cancelQuery, id, username).Scan(&vaccineName)
		if err != nil {
			if base.IsNotFound(err) {
				return model.ErrAppointmentNotFound
			}
			return fmt.Errorf("delete appointment: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE vaccines SET doses = doses + 1 WHERE name = $1`,
			vaccineName,
		)
		if err != nil {
			return fmt.Errorf("restore dose: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}

// ListByRole returns the caller's appointments sorted by date then id.
func (r *AppointmentRepository) ListByRole(ctx context.Context, role model.Role, username string) ([]*model.Appointment, error) {
	listQuery := listByPatientQuery
	if role == model.RoleCaregiver {
		listQuery = listByCaregiverQuery
	}

	rows, err := r.pool.Query(ctx, listQuery, username)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*model.Appointment
	for rows.Next() {
		var appt model.Appointment
		err := rows.Scan(
			&appt.ID,
			&appt.Date,
			&appt.CaregiverUsername,
			&appt.PatientUsername,
			&appt.VaccineName,
			&appt.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}

	return appointments, nil
}

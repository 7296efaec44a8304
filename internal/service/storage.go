package service

import (
	"context"
	"time"

	"github.com/dmorozov/vaccine_scheduler/internal/model"
)

// Store interfaces consumed by the services. The pgx repositories satisfy
// them in production; tests use the in-memory tables from testutil.

type AccountStore interface {
	Create(ctx context.Context, acct *model.Account) error
	Get(ctx context.Context, username string) (*model.Account, error)
}

type VaccineStore interface {
	AddDoses(ctx context.Context, name string, count int) (int, error)
	GetByName(ctx context.Context, name string) (*model.Vaccine, error)
	List(ctx context.Context) ([]*model.Vaccine, error)
}

type AvailabilityStore interface {
	Upsert(ctx context.Context, caregiver string, date time.Time) error
	AvailableCaregivers(ctx context.Context, date time.Time) ([]string, error)
}

type AppointmentStore interface {
	Reserve(ctx context.Context, appt *model.Appointment) error
	CancelRestoringDose(ctx context.Context, id string, role model.Role, username string) error
	ListByRole(ctx context.Context, role model.Role, username string) ([]*model.Appointment, error)
}

package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/dmorozov/vaccine_scheduler/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AppointmentService struct {
	availability AvailabilityStore
	appointments AppointmentStore
	vaccines     VaccineStore
	logger       *zap.Logger

	// pick selects an index into the available-caregiver slice.
	// Uniform random in production; tests pin it.
	pick func(n int) int
}

func NewAppointmentService(
	availability AvailabilityStore,
	appointments AppointmentStore,
	vaccines VaccineStore,
	logger *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		availability: availability,
		appointments: appointments,
		vaccines:     vaccines,
		logger:       logger,
		pick:         rand.Intn,
	}
}

// UploadAvailability marks the caregiver as offered for the date.
// Re-uploading the same date is a no-op.
func (s *AppointmentService) UploadAvailability(ctx context.Context, caregiver string, date time.Time) error {
	if err := s.availability.Upsert(ctx, caregiver, date); err != nil {
		return fmt.Errorf("upload availability: %w", err)
	}

	s.logger.Info("Availability uploaded",
		zap.String("caregiver", caregiver),
		zap.Time("date", date),
	)

	return nil
}

// AvailableCaregivers returns caregivers offered for the date and not yet
// booked on it, sorted by username.
func (s *AppointmentService) AvailableCaregivers(ctx context.Context, date time.Time) ([]string, error) {
	return s.availability.AvailableCaregivers(ctx, date)
}

// Reserve books one dose of the vaccine for the patient on the date with
// a uniformly random available caregiver. The dose decrement and the
// appointment insert happen atomically in the store; the dose precheck
// here only produces the friendlier error before a caregiver is picked.
func (s *AppointmentService) Reserve(ctx context.Context, patient string, date time.Time, vaccineName string) (*model.Appointment, error) {
	vaccine, err := s.vaccines.GetByName(ctx, vaccineName)
	if err != nil {
		return nil, fmt.Errorf("reserve appointment: %w", err)
	}
	if vaccine == nil {
		return nil, model.ErrVaccineNotFound
	}
	if vaccine.Doses <= 0 {
		return nil, model.ErrNoDosesLeft
	}

	caregivers, err := s.availability.AvailableCaregivers(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("reserve appointment: %w", err)
	}
	if len(caregivers) == 0 {
		return nil, model.ErrNoCaregiverAvailable
	}

	appt := &model.Appointment{
		ID:                uuid.NewString(),
		Date:              date,
		CaregiverUsername: caregivers[s.pick(len(caregivers))],
		PatientUsername:   patient,
		VaccineName:       vaccineName,
	}

	if err := s.appointments.Reserve(ctx, appt); err != nil {
		return nil, err
	}

	s.logger.Info("Appointment reserved",
		zap.String("appointment_id", appt.ID),
		zap.String("patient", patient),
		zap.String("caregiver", appt.CaregiverUsername),
		zap.String("vaccine", vaccineName),
		zap.Time("date", date),
	)

	return appt, nil
}

// Cancel deletes the caller's appointment and returns the consumed dose
// to inventory. Callers that are not a party to the appointment get the
// same ErrAppointmentNotFound as a bogus id.
func (s *AppointmentService) Cancel(ctx context.Context, id string, role model.Role, username string) error {
	if err := s.appointments.CancelRestoringDose(ctx, id, role, username); err != nil {
		return err
	}

	s.logger.Info("Appointment canceled",
		zap.String("appointment_id", id),
		zap.String("username", username),
		zap.String("role", string(role)),
	)

	return nil
}

// List returns the caller's appointments sorted by date then id.
func (s *AppointmentService) List(ctx context.Context, role model.Role, username string) ([]*model.Appointment, error) {
	return s.appointments.ListByRole(ctx, role, username)
}

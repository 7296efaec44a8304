package model

import "errors"

// Domain errors shared by the repository and service layers. Handlers map
// these to user-facing messages; anything else is reported generically.
var (
	ErrUsernameTaken        = errors.New("username already taken")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrVaccineNotFound      = errors.New("vaccine not found")
	ErrNoDosesLeft          = errors.New("no doses left for this vaccine")
	ErrNoCaregiverAvailable = errors.New("no caregiver available on this date")
	ErrAppointmentNotFound  = errors.New("appointment not found or not owned by caller")
	ErrInvalidDoseCount     = errors.New("dose count must be positive")
)

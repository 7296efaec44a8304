package model

import "time"

// Appointment binds a patient, a caregiver and a vaccine dose on a date.
// ID is a UUID assigned at reservation time.
type Appointment struct {
	ID                string    `json:"id"`
	Date              time.Time `json:"date"`
	CaregiverUsername string    `json:"caregiver_username"`
	PatientUsername   string    `json:"patient_username"`
	VaccineName       string    `json:"vaccine_name"`
	CreatedAt         time.Time `json:"created_at"`
}

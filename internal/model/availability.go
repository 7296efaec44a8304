package model

import "time"

// Availability marks a caregiver as offered for a date. Rows are keyed by
// (caregiver, date), so uploading the same date twice is idempotent.
type Availability struct {
	CaregiverUsername string    `json:"caregiver_username"`
	Date              time.Time `json:"date"`
}

package model

// Role distinguishes the two account kinds. It is a closed enumeration:
// queries that differ per role are selected by switching on it, never by
// interpolating user input.
type Role string

const (
	RolePatient   Role = "patient"
	RoleCaregiver Role = "caregiver"
)

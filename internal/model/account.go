package model

import "time"

// Account is a patient or caregiver credential record. Which one it is
// depends on the table it was read from; accounts are never mutated or
// deleted after creation.
type Account struct {
	Username  string    `json:"username"`
	Salt      []byte    `json:"-"`
	Hash      []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

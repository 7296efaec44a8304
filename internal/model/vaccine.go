package model

// Vaccine is a named dose inventory. Doses never goes negative.
type Vaccine struct {
	Name  string `json:"name"`
	Doses int    `json:"doses"`
}

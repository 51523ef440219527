package models

import "time"

// Student represents a registered person in the recognition gallery.
type Student struct {
	ID               string     `json:"id"`
	Code             string     `json:"code"` // unique stable code, doubles as the gallery folder name
	Name             string     `json:"name"`
	Grade            string     `json:"grade,omitempty"`
	Section          string     `json:"section,omitempty"`
	Gender           string     `json:"gender,omitempty"`
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	PhotoPath        string     `json:"photo_path,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// StudentFilters represents filtering options for registry queries.
type StudentFilters struct {
	Grade   string
	Section string
	Search  string
}

package models

import (
	"time"
)

// Symptom defines a single reported symptom, owned by exactly one user.
// Ownership is immutable after creation.
type Symptom struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Severity     int       `json:"severity" db:"severity"` // 1-10
	Description  *string   `json:"description,omitempty" db:"description"`
	Duration     *string   `json:"duration,omitempty" db:"duration"`
	Triggers     *string   `json:"triggers,omitempty" db:"triggers"`
	DateReported time.Time `json:"dateReported" db:"date_reported"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

package models

import (
	"time"
)

// Reminder is a per-medication reminder entry, stored as JSONB
type Reminder struct {
	Time    string `json:"time"`
	Enabled bool   `json:"enabled"`
}

// Medication defines a medication entry, owned by exactly one user.
// A nil EndDate means the medication is ongoing.
type Medication struct {
	ID           int64      `json:"id" db:"id"`
	UserID       int64      `json:"userId" db:"user_id"`
	Name         string     `json:"name" db:"name"`
	Dosage       string     `json:"dosage" db:"dosage"`
	Frequency    string     `json:"frequency" db:"frequency"`
	StartDate    time.Time  `json:"startDate" db:"start_date"`
	EndDate      *time.Time `json:"endDate,omitempty" db:"end_date"`
	Purpose      *string    `json:"purpose,omitempty" db:"purpose"`
	Instructions *string    `json:"instructions,omitempty" db:"instructions"`
	IsActive     bool       `json:"isActive" db:"is_active"`
	SideEffects  []string   `json:"sideEffects" db:"side_effects"`
	Reminders    []Reminder `json:"reminders" db:"reminders"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}

// IsCurrentlyActive reports whether the medication counts as active at the
// given instant: the isActive flag is set and the end date, if any, has not
// passed.
func (m *Medication) IsCurrentlyActive(now time.Time) bool {
	if !m.IsActive {
		return false
	}
	if m.EndDate == nil {
		return true
	}
	return !m.EndDate.Before(now)
}

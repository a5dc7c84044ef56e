package dto

import (
	"time"

	"github.com/salus-app/salus-backend/internal/app/models"
)

// ReminderRequest is a reminder entry in a medication payload
type ReminderRequest struct {
	Time    string `json:"time" binding:"required"`
	Enabled *bool  `json:"enabled"`
}

// CreateMedicationRequest creates a new medication for the authenticated user
type CreateMedicationRequest struct {
	Name         string            `json:"name" binding:"required"`
	Dosage       string            `json:"dosage" binding:"required"`
	Frequency    string            `json:"frequency" binding:"required"`
	StartDate    time.Time         `json:"startDate" binding:"required"`
	EndDate      *time.Time        `json:"endDate"`
	Purpose      *string           `json:"purpose"`
	Instructions *string           `json:"instructions"`
	SideEffects  []string          `json:"sideEffects"`
	Reminders    []ReminderRequest `json:"reminders"`
}

// Models converts the reminder payloads, defaulting enabled to true
func (r *CreateMedicationRequest) ReminderModels() []models.Reminder {
	reminders := make([]models.Reminder, 0, len(r.Reminders))
	for _, rem := range r.Reminders {
		enabled := true
		if rem.Enabled != nil {
			enabled = *rem.Enabled
		}
		reminders = append(reminders, models.Reminder{Time: rem.Time, Enabled: enabled})
	}
	return reminders
}

// UpdateMedicationRequest partially updates a medication. EndDate is a true
// tri-state: absent leaves it untouched, explicit null marks the medication
// as ongoing again.
type UpdateMedicationRequest struct {
	Name         Optional[string]            `json:"name"`
	Dosage       Optional[string]            `json:"dosage"`
	Frequency    Optional[string]            `json:"frequency"`
	StartDate    Optional[time.Time]         `json:"startDate"`
	EndDate      Optional[time.Time]         `json:"endDate"`
	Purpose      Optional[string]            `json:"purpose"`
	Instructions Optional[string]            `json:"instructions"`
	IsActive     Optional[bool]              `json:"isActive"`
	SideEffects  Optional[[]string]          `json:"sideEffects"`
	Reminders    Optional[[]ReminderRequest] `json:"reminders"`
}

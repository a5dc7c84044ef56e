package dto

import (
	"time"
)

// CreateSymptomRequest creates a new symptom for the authenticated user.
// The owner always comes from the session token, never from the body.
type CreateSymptomRequest struct {
	Name         string     `json:"name" binding:"required"`
	Severity     int        `json:"severity" binding:"required,min=1,max=10"`
	Description  *string    `json:"description"`
	Duration     *string    `json:"duration"`
	Triggers     *string    `json:"triggers"`
	DateReported *time.Time `json:"dateReported"`
}

// UpdateSymptomRequest partially updates a symptom; only present fields change
type UpdateSymptomRequest struct {
	Name         Optional[string]    `json:"name"`
	Severity     Optional[int]       `json:"severity"`
	Description  Optional[string]    `json:"description"`
	Duration     Optional[string]    `json:"duration"`
	Triggers     Optional[string]    `json:"triggers"`
	DateReported Optional[time.Time] `json:"dateReported"`
	IsActive     Optional[bool]      `json:"isActive"`
}

package models

import (
	"time"
)

// WellnessLog defines a daily wellness entry, owned by exactly one user.
// At most one log may exist per (user, date) pair; the database enforces
// this with a unique constraint so concurrent inserts cannot race.
type WellnessLog struct {
	ID                int64     `json:"id" db:"id"`
	UserID            int64     `json:"userId" db:"user_id"`
	Date              time.Time `json:"date" db:"date"`
	Mood              int       `json:"mood" db:"mood"`     // 1-10
	Energy            int       `json:"energy" db:"energy"` // 1-10
	SleepHours        *float64  `json:"sleepHours,omitempty" db:"sleep_hours"`               // 0-24
	SleepQuality      *int      `json:"sleepQuality,omitempty" db:"sleep_quality"`           // 1-10
	NutritionQuality  *int      `json:"nutritionQuality,omitempty" db:"nutrition_quality"`   // 1-10
	NutritionHydration *int     `json:"nutritionHydration,omitempty" db:"nutrition_hydration"` // 1-10
	Stress            *int      `json:"stress,omitempty" db:"stress"`                        // 1-10
	PhysicalActivity  *int      `json:"physicalActivity,omitempty" db:"physical_activity"`   // minutes, 0-600
	Notes             *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

package dto

import (
	"time"
)

// SleepRequest is the nested sleep block of a wellness log payload
type SleepRequest struct {
	Hours   *float64 `json:"hours" binding:"omitempty,min=0,max=24"`
	Quality *int     `json:"quality" binding:"omitempty,min=1,max=10"`
}

// NutritionRequest is the nested nutrition block of a wellness log payload
type NutritionRequest struct {
	Quality   *int `json:"quality" binding:"omitempty,min=1,max=10"`
	Hydration *int `json:"hydration" binding:"omitempty,min=1,max=10"`
}

// CreateWellnessLogRequest creates a wellness log for the authenticated user.
// At most one log per date is allowed; a second create for the same date is
// rejected and the client is expected to update instead.
type CreateWellnessLogRequest struct {
	Date             *time.Time        `json:"date"`
	Mood             int               `json:"mood" binding:"required,min=1,max=10"`
	Energy           int               `json:"energy" binding:"required,min=1,max=10"`
	Sleep            *SleepRequest     `json:"sleep"`
	Nutrition        *NutritionRequest `json:"nutrition"`
	Stress           *int              `json:"stress" binding:"omitempty,min=1,max=10"`
	PhysicalActivity *int              `json:"physicalActivity" binding:"omitempty,min=0,max=600"`
	Notes            *string           `json:"notes"`
}

// UpdateWellnessLogRequest partially updates a wellness log
type UpdateWellnessLogRequest struct {
	Mood             Optional[int]              `json:"mood"`
	Energy           Optional[int]              `json:"energy"`
	Sleep            Optional[SleepRequest]     `json:"sleep"`
	Nutrition        Optional[NutritionRequest] `json:"nutrition"`
	Stress           Optional[int]              `json:"stress"`
	PhysicalActivity Optional[int]              `json:"physicalActivity"`
	Notes            Optional[string]           `json:"notes"`
}

// TrendPoint is one day of a wellness metric, for trend charting
type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// WellnessAverages carries the 30-day arithmetic means, rounded to 1 decimal.
// Entries missing a field still count in the divisor, contributing 0 to the
// sum; this skews means for sparse fields but matches the established
// behavior clients rely on.
type WellnessAverages struct {
	Mood               float64 `json:"mood"`
	Energy             float64 `json:"energy"`
	SleepHours         float64 `json:"sleepHours"`
	SleepQuality       float64 `json:"sleepQuality"`
	NutritionQuality   float64 `json:"nutritionQuality"`
	NutritionHydration float64 `json:"nutritionHydration"`
	Stress             float64 `json:"stress"`
	PhysicalActivity   float64 `json:"physicalActivity"`
}

// WellnessStatsResponse is the 30-day statistics view for a user
type WellnessStatsResponse struct {
	Averages WellnessAverages `json:"averages"`
	Trends   WellnessTrends   `json:"trends"`
	Entries  int              `json:"entries"`
}

// WellnessTrends holds per-day points for the charted metrics
type WellnessTrends struct {
	Mood         []TrendPoint `json:"mood"`
	Energy       []TrendPoint `json:"energy"`
	SleepQuality []TrendPoint `json:"sleepQuality"`
	Stress       []TrendPoint `json:"stress"`
}

package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	SymptomRepository    *SymptomRepository
	MedicationRepository *MedicationRepository
	WellnessRepository   *WellnessRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		SymptomRepository:    NewSymptomRepository(db),
		MedicationRepository: NewMedicationRepository(db),
		WellnessRepository:   NewWellnessRepository(db),
	}
}

package services

// Services defined in this package:
// - AuthService: registration, login, email verification and password flows
// - UserService: user record reads and owner-scoped updates
// - SymptomService: symptom tracking
// - MedicationService: medication tracking and the active-medication view
// - WellnessService: daily wellness logs and 30-day statistics

package models

import (
	"time"
)

// Gender is the optional self-reported gender of a user
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

// Language is the user's preferred interface language
type Language string

const (
	LanguageItalian Language = "italian"
	LanguageEnglish Language = "english"
	LanguageSpanish Language = "spanish"
	LanguageFrench  Language = "french"
	LanguageGerman  Language = "german"
)

// Role is the user's role
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User defines the user model based on the 'users' table. Email is stored
// trimmed and lowercased; uniqueness is enforced by a database constraint.
type User struct {
	ID                       int64      `json:"id" db:"id"`
	Email                    string     `json:"email" db:"email"`
	Password                 string     `json:"-" db:"password"` // hashed, excluded from JSON
	Name                     string     `json:"name" db:"name"`
	Age                      *int       `json:"age,omitempty" db:"age"`
	Gender                   *Gender    `json:"gender,omitempty" db:"gender"`
	Language                 Language   `json:"language" db:"language"`
	ProfilePicture           *string    `json:"profilePicture,omitempty" db:"profile_picture"`
	Role                     Role       `json:"role" db:"role"`
	IsEmailVerified          bool       `json:"isEmailVerified" db:"is_email_verified"`
	EmailVerificationToken   *string    `json:"-" db:"email_verification_token"`
	EmailVerificationExpires *time.Time `json:"-" db:"email_verification_expires"`
	ResetPasswordToken       *string    `json:"-" db:"reset_password_token"`
	ResetPasswordExpires     *time.Time `json:"-" db:"reset_password_expires"`
	MedicalConditions        []string   `json:"medicalConditions" db:"medical_conditions"`
	Allergies                []string   `json:"allergies" db:"allergies"`
	LastLogin                *time.Time `json:"lastLogin,omitempty" db:"last_login"`
	CreatedAt                time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt                time.Time  `json:"updatedAt" db:"updated_at"`
}

// ValidGender reports whether g is one of the accepted gender values
func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay:
		return true
	}
	return false
}

// ValidLanguage reports whether l is one of the supported languages
func ValidLanguage(l Language) bool {
	switch l {
	case LanguageItalian, LanguageEnglish, LanguageSpanish, LanguageFrench, LanguageGerman:
		return true
	}
	return false
}

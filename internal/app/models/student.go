package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	RegisterNumber string    `json:"registerNumber" db:"register_number" example:"20CS101"` // Unique register number, primary key
	Name           string    `json:"name" db:"name" example:"Alice Kumar"`                  // Student's full name
	RegisteredAt   time.Time `json:"registeredAt" db:"registration_time"`                   // When the student registered
}

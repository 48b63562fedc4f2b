package models

import "time"

// Vote defines a single ballot based on the 'votes' table.
// A student can hold at most one Vote; the table enforces this with a
// unique constraint on register_number.
type Vote struct {
	ID             int64     `json:"id" db:"id" example:"1"`                                // Surrogate key assigned by storage
	RegisterNumber string    `json:"registerNumber" db:"register_number" example:"20CS101"` // Register number of the voter
	Candidate      Candidate `json:"candidate" db:"candidate" example:"Messi"`              // Chosen candidate
	CastAt         time.Time `json:"castAt" db:"vote_time"`                                 // When the ballot was cast
}

// Ballot is a vote joined with the voter's student record, used for the
// admin-facing turnout listing.
type Ballot struct {
	RegisterNumber string    `json:"registerNumber" db:"register_number"`
	Name           string    `json:"name" db:"name"`
	Candidate      Candidate `json:"candidate" db:"candidate"`
	CastAt         time.Time `json:"castAt" db:"vote_time"`
}

package dto

import (
	"time"

	"github.com/tharun/campusvote/internal/app/models"
)

// RegisterStudentRequest represents a student registration request
type RegisterStudentRequest struct {
	RegisterNumber string `json:"registerNumber" binding:"required" example:"20CS101"`
	Name           string `json:"name" binding:"required" example:"Alice Kumar"`
}

// CastVoteRequest represents a ballot submission
type CastVoteRequest struct {
	RegisterNumber string `json:"registerNumber" binding:"required" example:"20CS101"`
	Candidate      string `json:"candidate" binding:"required" example:"Messi"`
}

// HasVotedResponse reports whether a student has cast a ballot
type HasVotedResponse struct {
	RegisterNumber string `json:"registerNumber" example:"20CS101"`
	HasVoted       bool   `json:"hasVoted" example:"true"`
}

// ResultsResponse carries the public election results. Winner is only set
// when the schedule's auto-declare has taken effect or an admin requested
// the declaration.
type ResultsResponse struct {
	Tally      models.TallyResult   `json:"tally"`
	TotalVotes int                  `json:"totalVotes" example:"42"`
	Winner     *models.WinnerResult `json:"winner,omitempty"`
}

// ScheduleRequest sets the voting window and flags
type ScheduleRequest struct {
	VotingStartTime   *time.Time `json:"votingStartTime" example:"2026-09-01T09:00:00Z"`
	VotingEndTime     *time.Time `json:"votingEndTime" example:"2026-09-01T17:00:00Z"`
	VotingEnabled     bool       `json:"votingEnabled" example:"true"`
	AutoDeclareWinner bool       `json:"autoDeclareWinner" example:"true"`
}

// VotingSwitchRequest flips the manual voting switch
type VotingSwitchRequest struct {
	Enabled *bool `json:"enabled" binding:"required" example:"false"`
}

// AdminLoginRequest represents admin credentials
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// AdminLoginResponse carries the issued access token
type AdminLoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType" example:"Bearer"`
	ExpiresIn int    `json:"expiresIn" example:"3600"`
}

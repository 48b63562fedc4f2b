package models

import "time"

// SchedulePhase describes where the current time falls relative to the
// configured voting window.
type SchedulePhase string

const (
	ScheduleNone       SchedulePhase = "no_schedule" // No window has been configured
	ScheduleDisabled   SchedulePhase = "disabled"    // Voting switched off by an admin
	ScheduleNotStarted SchedulePhase = "not_started"
	ScheduleActive     SchedulePhase = "active"
	ScheduleEnded      SchedulePhase = "ended"
)

// ElectionSettings defines the single-row 'election_settings' table.
// Start and end are nullable: an enabled election without a window is
// open indefinitely.
type ElectionSettings struct {
	VotingStartTime   *time.Time `json:"votingStartTime" db:"voting_start_time"`
	VotingEndTime     *time.Time `json:"votingEndTime" db:"voting_end_time"`
	VotingEnabled     bool       `json:"votingEnabled" db:"voting_enabled"`
	AutoDeclareWinner bool       `json:"autoDeclareWinner" db:"auto_declare_winner"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`
}

// Phase derives the schedule phase at the given instant.
func (s *ElectionSettings) Phase(now time.Time) SchedulePhase {
	if s == nil {
		return ScheduleNone
	}
	if !s.VotingEnabled {
		return ScheduleDisabled
	}
	if s.VotingStartTime == nil || s.VotingEndTime == nil {
		// Enabled with no window means the election is simply open.
		return ScheduleActive
	}
	switch {
	case now.Before(*s.VotingStartTime):
		return ScheduleNotStarted
	case now.After(*s.VotingEndTime):
		return ScheduleEnded
	default:
		return ScheduleActive
	}
}

// VotingOpen reports whether a ballot may be cast at the given instant.
func (s *ElectionSettings) VotingOpen(now time.Time) bool {
	return s.Phase(now) == ScheduleActive
}

// TimeRemaining returns the time left in the voting window, or zero when
// no window applies.
func (s *ElectionSettings) TimeRemaining(now time.Time) time.Duration {
	if s == nil || s.VotingEndTime == nil || s.Phase(now) != ScheduleActive {
		return 0
	}
	return s.VotingEndTime.Sub(now)
}

// ScheduleStatus is the schedule evaluated at a point in time.
type ScheduleStatus struct {
	Settings      *ElectionSettings `json:"settings"`
	Phase         SchedulePhase     `json:"phase" example:"active"`
	TimeRemaining time.Duration     `json:"timeRemainingSeconds" swaggertype:"integer"`
}

// Turnout summarizes participation.
type Turnout struct {
	Registered int     `json:"registered" example:"120"`
	VotesCast  int     `json:"votesCast" example:"87"`
	Percent    float64 `json:"percent" example:"72.5"`
}

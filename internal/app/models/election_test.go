package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestElectionSettingsPhase(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		settings *ElectionSettings
		want     SchedulePhase
	}{
		{
			name:     "nil settings",
			settings: nil,
			want:     ScheduleNone,
		},
		{
			name:     "voting disabled",
			settings: &ElectionSettings{VotingEnabled: false},
			want:     ScheduleDisabled,
		},
		{
			name:     "enabled without window",
			settings: &ElectionSettings{VotingEnabled: true},
			want:     ScheduleActive,
		},
		{
			name: "before window",
			settings: &ElectionSettings{
				VotingEnabled:   true,
				VotingStartTime: timePtr(now.Add(time.Hour)),
				VotingEndTime:   timePtr(now.Add(2 * time.Hour)),
			},
			want: ScheduleNotStarted,
		},
		{
			name: "inside window",
			settings: &ElectionSettings{
				VotingEnabled:   true,
				VotingStartTime: timePtr(now.Add(-time.Hour)),
				VotingEndTime:   timePtr(now.Add(time.Hour)),
			},
			want: ScheduleActive,
		},
		{
			name: "after window",
			settings: &ElectionSettings{
				VotingEnabled:   true,
				VotingStartTime: timePtr(now.Add(-2 * time.Hour)),
				VotingEndTime:   timePtr(now.Add(-time.Hour)),
			},
			want: ScheduleEnded,
		},
		{
			name: "disabled wins over active window",
			settings: &ElectionSettings{
				VotingEnabled:   false,
				VotingStartTime: timePtr(now.Add(-time.Hour)),
				VotingEndTime:   timePtr(now.Add(time.Hour)),
			},
			want: ScheduleDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.Phase(now))
			assert.Equal(t, tt.want == ScheduleActive, tt.settings.VotingOpen(now))
		})
	}
}

func TestElectionSettingsTimeRemaining(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	active := &ElectionSettings{
		VotingEnabled:   true,
		VotingStartTime: timePtr(now.Add(-time.Hour)),
		VotingEndTime:   timePtr(now.Add(30 * time.Minute)),
	}
	assert.Equal(t, 30*time.Minute, active.TimeRemaining(now))

	var none *ElectionSettings
	assert.Zero(t, none.TimeRemaining(now))

	openEnded := &ElectionSettings{VotingEnabled: true}
	assert.Zero(t, openEnded.TimeRemaining(now))

	ended := &ElectionSettings{
		VotingEnabled:   true,
		VotingStartTime: timePtr(now.Add(-2 * time.Hour)),
		VotingEndTime:   timePtr(now.Add(-time.Hour)),
	}
	assert.Zero(t, ended.TimeRemaining(now))
}

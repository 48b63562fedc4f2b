package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTallyResultZeroFills(t *testing.T) {
	tally := NewTallyResult()

	assert.Len(t, tally, len(Candidates()))
	for _, c := range Candidates() {
		count, ok := tally[c]
		assert.True(t, ok)
		assert.Zero(t, count)
	}
	assert.Zero(t, tally.Total())
}

func TestTallyResultTotal(t *testing.T) {
	tally := NewTallyResult()
	tally[CandidateMessi] = 3
	tally[CandidateRonaldo] = 2

	assert.Equal(t, 5, tally.Total())
}

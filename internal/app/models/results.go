package models

// TallyResult maps every recognized candidate to its vote count.
// Candidates with no votes are present with a zero count.
type TallyResult map[Candidate]int

// NewTallyResult returns a tally with all candidates zero-filled.
func NewTallyResult() TallyResult {
	t := make(TallyResult, len(Candidates()))
	for _, c := range Candidates() {
		t[c] = 0
	}
	return t
}

// Total returns the number of ballots counted in the tally.
func (t TallyResult) Total() int {
	sum := 0
	for _, n := range t {
		sum += n
	}
	return sum
}

// Outcome classifies the result of an election.
type Outcome string

const (
	OutcomeWinner     Outcome = "winner"
	OutcomeTie        Outcome = "tie"
	OutcomeNoVotesYet Outcome = "no_votes_yet"
)

// WinnerResult is the declared result of an election. Winner and Margin
// are only meaningful when Outcome is OutcomeWinner.
type WinnerResult struct {
	Outcome Outcome     `json:"outcome" example:"winner"`
	Winner  Candidate   `json:"winner,omitempty" example:"Messi"`
	Margin  int         `json:"margin,omitempty" example:"3"` // Absolute vote-count difference
	Tally   TallyResult `json:"tally"`
}

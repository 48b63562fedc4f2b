package models

import "strings"

// Candidate is the closed set of names a ballot can be cast for.
// The set is fixed at build time; changing it requires a migration of
// the stored votes as well.
type Candidate string

const (
	CandidateMessi   Candidate = "Messi"
	CandidateRonaldo Candidate = "Ronaldo"
)

// Candidates returns all recognized candidates in display order.
func Candidates() []Candidate {
	return []Candidate{CandidateMessi, CandidateRonaldo}
}

// ParseCandidate maps user input to a recognized candidate.
// Matching is case-insensitive; the canonical spelling is returned.
func ParseCandidate(s string) (Candidate, bool) {
	trimmed := strings.TrimSpace(s)
	for _, c := range Candidates() {
		if strings.EqualFold(trimmed, string(c)) {
			return c, true
		}
	}
	return "", false
}

// String returns the canonical candidate name.
func (c Candidate) String() string {
	return string(c)
}

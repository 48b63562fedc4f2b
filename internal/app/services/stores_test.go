package services

import (
	"context"
	"sync"
	"time"

	"github.com/tharun/campusvote/internal/app/models"
	"github.com/tharun/campusvote/internal/pkg/apperrors"
)

// In-memory store fakes. They mirror the database guarantees the services
// rely on: the student store rejects duplicate register numbers and the
// vote store atomically rejects a second ballot for the same student.

type memStudentStore struct {
	mu       sync.Mutex
	students map[string]models.Student
	order    []string
}

func newMemStudentStore() *memStudentStore {
	return &memStudentStore{students: make(map[string]models.Student)}
}

func (s *memStudentStore) Create(_ context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[student.RegisterNumber]; ok {
		return apperrors.ErrStudentAlreadyRegistered
	}
	if student.RegisteredAt.IsZero() {
		student.RegisteredAt = time.Now()
	}
	s.students[student.RegisterNumber] = *student
	s.order = append(s.order, student.RegisterNumber)
	return nil
}

func (s *memStudentStore) GetByRegisterNumber(_ context.Context, registerNumber string) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, ok := s.students[registerNumber]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return &student, nil
}

func (s *memStudentStore) Exists(_ context.Context, registerNumber string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.students[registerNumber]
	return ok, nil
}

func (s *memStudentStore) List(_ context.Context) ([]models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Newest first, matching the repository ordering.
	out := make([]models.Student, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.students[s.order[i]])
	}
	return out, nil
}

func (s *memStudentStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.students), nil
}

type memVoteStore struct {
	mu       sync.Mutex
	students *memStudentStore
	votes    map[string]models.Vote
	order    []string
	nextID   int64
}

func newMemVoteStore(students *memStudentStore) *memVoteStore {
	return &memVoteStore{students: students, votes: make(map[string]models.Vote)}
}

func (s *memVoteStore) Create(_ context.Context, vote *models.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.students != nil {
		s.students.mu.Lock()
		_, known := s.students.students[vote.RegisterNumber]
		s.students.mu.Unlock()
		if !known {
			return apperrors.ErrStudentNotFound
		}
	}
	if _, ok := s.votes[vote.RegisterNumber]; ok {
		return apperrors.ErrAlreadyVoted
	}

	s.nextID++
	vote.ID = s.nextID
	if vote.CastAt.IsZero() {
		vote.CastAt = time.Now()
	}
	s.votes[vote.RegisterNumber] = *vote
	s.order = append(s.order, vote.RegisterNumber)
	return nil
}

func (s *memVoteStore) HasVoted(_ context.Context, registerNumber string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.votes[registerNumber]
	return ok, nil
}

func (s *memVoteStore) Tally(_ context.Context) (models.TallyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tally := models.NewTallyResult()
	for _, vote := range s.votes {
		tally[vote.Candidate]++
	}
	return tally, nil
}

func (s *memVoteStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.votes), nil
}

func (s *memVoteStore) ListBallots(_ context.Context) ([]models.Ballot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Ballot, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		vote := s.votes[s.order[i]]
		ballot := models.Ballot{
			RegisterNumber: vote.RegisterNumber,
			Candidate:      vote.Candidate,
			CastAt:         vote.CastAt,
		}
		if s.students != nil {
			s.students.mu.Lock()
			if student, ok := s.students.students[vote.RegisterNumber]; ok {
				ballot.Name = student.Name
			}
			s.students.mu.Unlock()
		}
		out = append(out, ballot)
	}
	return out, nil
}

type memElectionStore struct {
	mu       sync.Mutex
	settings *models.ElectionSettings
	students *memStudentStore
	votes    *memVoteStore
}

func newMemElectionStore(students *memStudentStore, votes *memVoteStore) *memElectionStore {
	return &memElectionStore{students: students, votes: votes}
}

func (s *memElectionStore) GetSettings(_ context.Context) (*models.ElectionSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings == nil {
		return nil, nil
	}
	copied := *s.settings
	return &copied, nil
}

func (s *memElectionStore) UpsertSettings(_ context.Context, settings *models.ElectionSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *settings
	copied.UpdatedAt = time.Now()
	s.settings = &copied
	return nil
}

func (s *memElectionStore) SetVotingEnabled(_ context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings == nil {
		s.settings = &models.ElectionSettings{}
	}
	s.settings.VotingEnabled = enabled
	s.settings.UpdatedAt = time.Now()
	return nil
}

func (s *memElectionStore) Reset(_ context.Context) error {
	if s.votes != nil {
		s.votes.mu.Lock()
		s.votes.votes = make(map[string]models.Vote)
		s.votes.order = nil
		s.votes.mu.Unlock()
	}
	if s.students != nil {
		s.students.mu.Lock()
		s.students.students = make(map[string]models.Student)
		s.students.order = nil
		s.students.mu.Unlock()
	}
	return nil
}

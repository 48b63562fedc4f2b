package repositories

import (
	"github.com/tharun/campusvote/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository  *StudentRepository
	VoteRepository     *VoteRepository
	ElectionRepository *ElectionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		StudentRepository:  NewStudentRepository(database.Pool),
		VoteRepository:     NewVoteRepository(database.Pool),
		ElectionRepository: NewElectionRepository(database),
	}
}

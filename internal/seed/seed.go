package seed

import (
	"context"

	"github.com/rs/zerolog"
	appModels "github.com/tharun/campusvote/internal/app/models"
	appRepos "github.com/tharun/campusvote/internal/app/repositories"
	"github.com/tharun/campusvote/internal/db"
)

// EnsureDefaultSettings inserts the single election settings row if it
// does not exist yet. A fresh install starts with voting enabled and no
// window configured so ballots can be cast right after migration.
func EnsureDefaultSettings(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	electionRepo := appRepos.NewElectionRepository(database)

	settings, err := electionRepo.GetSettings(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error reading election settings")
		return err
	}
	if settings != nil {
		lgr.Info().Msg("Election settings already present, skipping seed")
		return nil
	}

	defaults := &appModels.ElectionSettings{
		VotingEnabled:     true,
		AutoDeclareWinner: false,
	}
	if err := electionRepo.UpsertSettings(ctx, defaults); err != nil {
		lgr.Error().Err(err).Msg("Error seeding election settings")
		return err
	}

	lgr.Info().Msg("Default election settings created")
	return nil
}

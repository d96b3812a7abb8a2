package usecase

import (
	"context"
	"log/slog"

	"teamroster/src/core/domain"
	"teamroster/src/core/ports"
)

// TeamService creates and loads teams.
type TeamService struct {
	teams ports.TeamRepository
	tx    ports.Transactor
	log   *slog.Logger
}

func NewTeamService(teams ports.TeamRepository, tx ports.Transactor, log *slog.Logger) *TeamService {
	return &TeamService{teams: teams, tx: tx, log: log}
}

// Create saves a new team.
func (s *TeamService) Create(ctx context.Context, name string) (*domain.Team, error) {
	team, err := domain.NewTeam(name)
	if err != nil {
		return nil, err
	}
	var saved *domain.Team
	err = s.tx.WithinTx(ctx, ports.TxOptions{}, func(ctx context.Context) error {
		var err error
		saved, err = s.teams.SaveTeam(ctx, team)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "team created", "team_id", saved.ID)
	return saved, nil
}

// Get returns the team with its members.
func (s *TeamService) Get(ctx context.Context, id int64) (*domain.Team, error) {
	var team *domain.Team
	err := s.tx.WithinTx(ctx, readOnly, func(ctx context.Context) error {
		var err error
		team, err = s.teams.FindTeamWithMembers(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

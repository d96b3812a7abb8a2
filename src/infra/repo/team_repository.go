package repo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"teamroster/src/core/domain"
	"teamroster/src/core/ports"
	"teamroster/src/infra/db"
	"teamroster/src/infra/query"
)

// TeamRepository implements ports.TeamRepository using pgx.
type TeamRepository struct {
	db  *db.Postgres
	log *slog.Logger
}

var _ ports.TeamRepository = (*TeamRepository)(nil)

// NewTeamRepository constructs a repository backed by Postgres.
func NewTeamRepository(pg *db.Postgres, log *slog.Logger) *TeamRepository {
	return &TeamRepository{
		db:  pg,
		log: log,
	}
}

func (r *TeamRepository) Health(ctx context.Context) error {
	return classify("health", r.db.Health(ctx))
}

func (r *TeamRepository) SaveTeam(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	if team == nil {
		return nil, domain.NewValidationError("team", "cannot be nil")
	}
	if team.ID == 0 {
		const q = `
			INSERT INTO teams (name)
			VALUES ($1)
			RETURNING team_id
		`
		if err := r.db.Conn(ctx).QueryRow(ctx, q, team.Name).Scan(&team.ID); err != nil {
			return nil, classify("insert team", err)
		}
		return team, nil
	}

	const q = `UPDATE teams SET name = $1 WHERE team_id = $2`
	tag, err := r.db.Conn(ctx).Exec(ctx, q, team.Name, team.ID)
	if err != nil {
		return nil, classify("update team", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.NewNotFoundError("team")
	}
	return team, nil
}

func (r *TeamRepository) FindTeamByID(ctx context.Context, id int64) (*domain.Team, error) {
	const q = `SELECT team_id, name FROM teams WHERE team_id = $1`
	var t domain.Team
	if err := r.db.Conn(ctx).QueryRow(ctx, q, id).Scan(&t.ID, &t.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("team")
		}
		return nil, classify("find team", err)
	}
	return &t, nil
}

func (r *TeamRepository) FindTeamWithMembers(ctx context.Context, id int64) (*domain.Team, error) {
	team, err := r.FindTeamByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sql, args := memberQuery{where: []query.Node{query.Eq("m.team_id", id)}}.build().Build()
	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, classify("list team members", err)
	}
	members, err := pgx.CollectRows(rows, memberScanner(false))
	if err != nil {
		return nil, classify("list team members", err)
	}
	team.Members = members
	return team, nil
}

package usecase

import (
	"context"
	"log/slog"

	"teamroster/src/core/domain"
	"teamroster/src/core/ports"
)

// MemberService serves member reads and writes. Every call runs in exactly
// one transaction.
type MemberService struct {
	members ports.MemberRepository
	teams   ports.TeamRepository
	tx      ports.Transactor
	log     *slog.Logger
}

func NewMemberService(members ports.MemberRepository, teams ports.TeamRepository, tx ports.Transactor, log *slog.Logger) *MemberService {
	return &MemberService{members: members, teams: teams, tx: tx, log: log}
}

var readOnly = ports.TxOptions{ReadOnly: true}

// Get returns the member with id or a NotFound error.
func (s *MemberService) Get(ctx context.Context, id int64) (*domain.Member, error) {
	var member *domain.Member
	err := s.tx.WithinTx(ctx, readOnly, func(ctx context.Context) error {
		var err error
		member, err = s.members.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// List returns one page of member summaries.
func (s *MemberService) List(ctx context.Context, page domain.Pageable) (domain.Page[domain.MemberSummary], error) {
	var members domain.Page[domain.Member]
	err := s.tx.WithinTx(ctx, readOnly, func(ctx context.Context) error {
		var err error
		members, err = s.members.FindAllPage(ctx, page)
		return err
	})
	if err != nil {
		return domain.Page[domain.MemberSummary]{}, err
	}
	return domain.MapPage(members, domain.NewMemberSummary), nil
}

// ListByAge returns one page of members with exactly age.
func (s *MemberService) ListByAge(ctx context.Context, age int, page domain.Pageable) (domain.Page[domain.Member], error) {
	var members domain.Page[domain.Member]
	err := s.tx.WithinTx(ctx, readOnly, func(ctx context.Context) error {
		var err error
		members, err = s.members.FindByAge(ctx, age, page)
		return err
	})
	return members, err
}

// ListDTO returns the member/team projection of members that have a team.
func (s *MemberService) ListDTO(ctx context.Context) ([]domain.MemberDTO, error) {
	var dtos []domain.MemberDTO
	err := s.tx.WithinTx(ctx, readOnly, func(ctx context.Context) error {
		var err error
		dtos, err = s.members.FindMemberDTO(ctx)
		return err
	})
	return dtos, err
}

// Search returns members named username that are older than minAge.
func (s *MemberService) Search(ctx context.Context, username string, minAge int) ([]domain.Member, error) {
	var members []domain.Member
	err := s.tx.WithinTx(ctx, readOnly, func(ctx context.Context) error {
		var err error
		members, err = s.members.FindByUsernameAndAgeGreaterThan(ctx, username, minAge)
		return err
	})
	return members, err
}

// FindByExample runs a query by example.
func (s *MemberService) FindByExample(ctx context.Context, example domain.Example) ([]domain.Member, error) {
	var members []domain.Member
	err := s.tx.WithinTx(ctx, readOnly, func(ctx context.Context) error {
		var err error
		members, err = s.members.FindAllByExample(ctx, example)
		return err
	})
	return members, err
}

// IncrementAges adds one to the age of every member at least threshold old.
func (s *MemberService) IncrementAges(ctx context.Context, threshold int) (int64, error) {
	var updated int64
	err := s.tx.WithinTx(ctx, ports.TxOptions{}, func(ctx context.Context) error {
		var err error
		updated, err = s.members.BulkAgePlus(ctx, threshold)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.InfoContext(ctx, "member ages incremented", "threshold", threshold, "updated", updated)
	return updated, nil
}

// Create saves a new member, optionally on an existing team.
func (s *MemberService) Create(ctx context.Context, username string, age int, teamID *int64) (*domain.Member, error) {
	var member *domain.Member
	err := s.tx.WithinTx(ctx, ports.TxOptions{}, func(ctx context.Context) error {
		var team *domain.Team
		if teamID != nil {
			var err error
			if team, err = s.teams.FindTeamByID(ctx, *teamID); err != nil {
				return err
			}
		}
		m, err := domain.NewMember(username, age, team)
		if err != nil {
			return err
		}
		member, err = s.members.Save(ctx, m)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "member created", "member_id", member.ID)
	return member, nil
}

// LockByUsername locks the members named username and runs fn while the
// locks are held. Concurrent writers to those rows wait until fn returns.
func (s *MemberService) LockByUsername(ctx context.Context, username string, fn func(ctx context.Context, locked []domain.Member) error) error {
	return s.tx.WithinTx(ctx, ports.TxOptions{}, func(ctx context.Context) error {
		locked, err := s.members.FindLockByUsername(ctx, username)
		if err != nil {
			return err
		}
		return fn(ctx, locked)
	})
}

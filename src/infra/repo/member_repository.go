package repo

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"teamroster/src/core/domain"
	"teamroster/src/core/ports"
	"teamroster/src/infra/db"
	"teamroster/src/infra/logger"
	"teamroster/src/infra/query"
)

// MemberRepository implements ports.MemberRepository using pgx.
type MemberRepository struct {
	db  *db.Postgres
	log *slog.Logger
}

var _ ports.MemberRepository = (*MemberRepository)(nil)

// NewMemberRepository constructs a repository backed by Postgres.
func NewMemberRepository(pg *db.Postgres, log *slog.Logger) *MemberRepository {
	return &MemberRepository{
		db:  pg,
		log: log,
	}
}

func (r *MemberRepository) Health(ctx context.Context) error {
	return classify("health", r.db.Health(ctx))
}

// Writes

func (r *MemberRepository) Save(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	if member == nil {
		return nil, domain.NewValidationError("member", "cannot be nil")
	}
	teamID := member.TeamID
	if member.Team != nil {
		if member.Team.ID == 0 {
			return nil, domain.NewValidationError("team", "must be saved before it is referenced")
		}
		id := member.Team.ID
		teamID = &id
	}

	if member.ID == 0 {
		const q = `
			INSERT INTO members (username, age, team_id)
			VALUES ($1, $2, $3)
			RETURNING member_id
		`
		if err := r.db.Conn(ctx).QueryRow(ctx, q, member.Username, member.Age, teamID).Scan(&member.ID); err != nil {
			return nil, classify("insert member", err)
		}
		member.TeamID = teamID
		return member, nil
	}

	q, args := query.UpdateTable("members").
		Set("username", member.Username).
		Set("age", member.Age).
		Set("team_id", teamID).
		Where(query.Eq("member_id", member.ID)).
		Build()
	tag, err := r.db.Conn(ctx).Exec(ctx, q, args...)
	if err != nil {
		return nil, classify("update member", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.NewNotFoundError("member")
	}
	member.TeamID = teamID
	return member, nil
}

func (r *MemberRepository) DeleteByID(ctx context.Context, id int64) error {
	const q = `DELETE FROM members WHERE member_id = $1`
	tag, err := r.db.Conn(ctx).Exec(ctx, q, id)
	if err != nil {
		return classify("delete member", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("member")
	}
	return nil
}

func (r *MemberRepository) BulkAgePlus(ctx context.Context, age int) (int64, error) {
	q, args := query.UpdateTable("members").
		SetExpr("age", "age + 1").
		Where(query.Ge("age", age)).
		Build()
	tag, err := r.db.Conn(ctx).Exec(ctx, q, args...)
	if err != nil {
		return 0, classify("bulk age increment", err)
	}
	logger.Debug(ctx, r.log, "bulk age increment", "threshold", age, "rows", tag.RowsAffected())
	return tag.RowsAffected(), nil
}

// Lookups

func (r *MemberRepository) FindByID(ctx context.Context, id int64) (*domain.Member, error) {
	members, err := r.find(ctx, memberQuery{where: []query.Node{query.Eq("m.member_id", id)}})
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, domain.NewNotFoundError("member")
	}
	return &members[0], nil
}

func (r *MemberRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, query.From("members", "m"))
}

// Filtered reads

func (r *MemberRepository) FindByUsernameAndAgeGreaterThan(ctx context.Context, username string, age int) ([]domain.Member, error) {
	return r.find(ctx, memberQuery{where: []query.Node{
		query.Eq("m.username", username),
		query.Gt("m.age", age),
	}})
}

func (r *MemberRepository) FindByUsername(ctx context.Context, username string) ([]domain.Member, error) {
	return r.find(ctx, memberQuery{where: []query.Node{query.Eq("m.username", username)}})
}

func (r *MemberRepository) FindUser(ctx context.Context, username string, age int) ([]domain.Member, error) {
	return r.find(ctx, memberQuery{where: []query.Node{
		query.Eq("m.username", username),
		query.Eq("m.age", age),
	}})
}

func (r *MemberRepository) FindByNames(ctx context.Context, names []string) ([]domain.Member, error) {
	if len(names) == 0 {
		return []domain.Member{}, nil
	}
	return r.find(ctx, memberQuery{where: []query.Node{query.InStrings("m.username", names)}})
}

func (r *MemberRepository) FindMembers(ctx context.Context, username string) (*domain.Member, error) {
	members, err := r.find(ctx, memberQuery{where: []query.Node{query.Eq("m.username", username)}})
	if err != nil {
		return nil, err
	}
	return single(members)
}

// Projections

func (r *MemberRepository) FindUsernameList(ctx context.Context) ([]string, error) {
	q, args := query.From("members", "m").
		Columns("m.username").
		OrderBy(query.Asc("m.member_id")).
		Build()
	rows, err := r.db.Conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, classify("list usernames", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, classify("list usernames", err)
	}
	return names, nil
}

func (r *MemberRepository) FindMemberDTO(ctx context.Context) ([]domain.MemberDTO, error) {
	q, args := query.From("members", "m").
		Columns("m.member_id", "m.username", "t.name").
		Join(query.InnerJoin, "teams", "t", teamJoinOn).
		OrderBy(query.Asc("m.member_id")).
		Build()
	rows, err := r.db.Conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, classify("list member dto", err)
	}
	dtos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MemberDTO, error) {
		var d domain.MemberDTO
		err := row.Scan(&d.ID, &d.Username, &d.TeamName)
		return d, err
	})
	if err != nil {
		return nil, classify("list member dto", err)
	}
	return dtos, nil
}

// Eager team loading

func (r *MemberRepository) FindAll(ctx context.Context) ([]domain.Member, error) {
	return r.find(ctx, memberQuery{fetch: domain.FetchGraph, plan: domain.InlinePlan(domain.AttrTeam)})
}

func (r *MemberRepository) FindMemberFetchJoin(ctx context.Context) ([]domain.Member, error) {
	return r.find(ctx, memberQuery{fetch: domain.FetchJoin})
}

func (r *MemberRepository) FindMemberEntityGraph(ctx context.Context) ([]domain.Member, error) {
	return r.find(ctx, memberQuery{fetch: domain.FetchGraph, plan: domain.InlinePlan(domain.AttrTeam)})
}

func (r *MemberRepository) FindMemberEntityGraph2(ctx context.Context) ([]domain.Member, error) {
	plan, err := domain.NamedPlan(domain.MemberAllPlan)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, memberQuery{fetch: domain.FetchGraph, plan: plan})
}

func (r *MemberRepository) FindUsername(ctx context.Context, username string) ([]domain.Member, error) {
	return r.find(ctx, usernameGraphQuery(username))
}

// Hinted and locking reads

func (r *MemberRepository) FindReadOnlyByUsername(ctx context.Context, username string) (*domain.Member, error) {
	members, err := r.find(ctx, memberQuery{
		where:    []query.Node{query.Eq("m.username", username)},
		readOnly: true,
	})
	if err != nil {
		return nil, err
	}
	return single(members)
}

func (r *MemberRepository) FindLockByUsername(ctx context.Context, username string) ([]domain.Member, error) {
	if _, ok := db.TxFromContext(ctx); !ok {
		return nil, &domain.DomainError{
			Base:    domain.ErrTransactionRequired,
			Message: "row locks need an open transaction",
		}
	}
	return r.find(ctx, memberQuery{
		where: []query.Node{query.Eq("m.username", username)},
		lock:  domain.LockPessimisticWrite,
	})
}

// Pages

func (r *MemberRepository) FindAllPage(ctx context.Context, page domain.Pageable) (domain.Page[domain.Member], error) {
	return r.page(ctx, memberQuery{}, page)
}

func (r *MemberRepository) FindByAge(ctx context.Context, age int, page domain.Pageable) (domain.Page[domain.Member], error) {
	return r.page(ctx, memberQuery{where: []query.Node{query.Eq("m.age", age)}}, page)
}

func (r *MemberRepository) FindByUsernamePage(ctx context.Context, username string, page domain.Pageable) (domain.Page[domain.Member], error) {
	return r.page(ctx, memberQuery{
		where:    []query.Node{query.Eq("m.username", username)},
		readOnly: true,
	}, page)
}

// Query by example

func (r *MemberRepository) FindAllByExample(ctx context.Context, example domain.Example) ([]domain.Member, error) {
	return r.find(ctx, exampleQuery(example))
}

// find runs q and scans the members, with their team when q fetches it.
func (r *MemberRepository) find(ctx context.Context, q memberQuery) ([]domain.Member, error) {
	sql, args := q.build().Build()
	return r.collect(ctx, q, sql, args)
}

func (r *MemberRepository) collect(ctx context.Context, q memberQuery, sql string, args []any) ([]domain.Member, error) {
	logger.Debug(ctx, r.log, "member query",
		"fetch", q.fetch.String(),
		"lock", q.lock.String(),
		"read_only", q.readOnly,
	)
	var members []domain.Member
	run := func(ctx context.Context) error {
		rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		members, err = pgx.CollectRows(rows, memberScanner(q.eager()))
		return err
	}

	var err error
	if q.readOnly {
		err = r.db.WithinTx(ctx, ports.TxOptions{ReadOnly: true}, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return nil, classify("find members", err)
	}
	return members, nil
}

// page runs q for one page and counts all rows matching its filter. The
// count inherits q's read-only hint.
func (r *MemberRepository) page(ctx context.Context, q memberQuery, req domain.Pageable) (domain.Page[domain.Member], error) {
	if err := req.Validate(); err != nil {
		return domain.Page[domain.Member]{}, err
	}
	orders, err := sortOrders(req.Sort)
	if err != nil {
		return domain.Page[domain.Member]{}, err
	}
	q.orders = orders

	sel := q.build()
	sql, args := sel.Paginate(req.Size, req.Offset()).Build()

	var (
		content []domain.Member
		total   int64
	)
	run := func(ctx context.Context) error {
		var err error
		if content, err = r.collect(ctx, q, sql, args); err != nil {
			return err
		}
		total, err = r.count(ctx, sel)
		return err
	}
	if q.readOnly {
		err = r.db.WithinTx(ctx, ports.TxOptions{ReadOnly: true}, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return domain.Page[domain.Member]{}, err
	}
	return domain.NewPage(content, req, total), nil
}

func (r *MemberRepository) count(ctx context.Context, sel *query.Select) (int64, error) {
	q, args := sel.Count().Build()
	var n int64
	if err := r.db.Conn(ctx).QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, classify("count members", err)
	}
	return n, nil
}

func memberScanner(eager bool) pgx.RowToFunc[domain.Member] {
	return func(row pgx.CollectableRow) (domain.Member, error) {
		var m domain.Member
		if !eager {
			err := row.Scan(&m.ID, &m.Username, &m.Age, &m.TeamID)
			return m, err
		}
		var (
			teamID   *int64
			teamName *string
		)
		if err := row.Scan(&m.ID, &m.Username, &m.Age, &m.TeamID, &teamID, &teamName); err != nil {
			return m, err
		}
		if teamID != nil {
			m.Team = &domain.Team{ID: *teamID}
			if teamName != nil {
				m.Team.Name = *teamName
			}
		}
		return m, nil
	}
}

// single returns nil for no rows and fails when more than one row matched.
func single(members []domain.Member) (*domain.Member, error) {
	switch len(members) {
	case 0:
		return nil, nil
	case 1:
		return &members[0], nil
	default:
		return nil, domain.NewNonUniqueResultError("member", len(members))
	}
}

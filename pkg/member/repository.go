package member

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"memberquery/pkg/query"
	"memberquery/pkg/repository"
)

// MemberRepository persists members and runs the member/team searches.
type MemberRepository interface {
	repository.Repository[Member, int64]

	FindByUsername(ctx context.Context, username string) ([]*Member, error)
	// FindByTeam lists the members whose team link points at teamID.
	FindByTeam(ctx context.Context, teamID int64) ([]*Member, error)
	// UpdateTeam writes the member's current team link. It returns repository.ErrNotFound
	// only when no member has m.ID.
	UpdateTeam(ctx context.Context, m *Member) error

	// Search returns the views of every member with a team that matches cond.
	Search(ctx context.Context, cond SearchCondition) ([]*MemberTeamView, error)
	// SearchMembers returns matching members as entities. Members without a team are only
	// excluded when cond filters on the team name.
	SearchMembers(ctx context.Context, cond SearchCondition) ([]*Member, error)
	SearchPage(ctx context.Context, strategy repository.CountStrategy, cond SearchCondition, page repository.PageRequest) (*repository.PaginatedResult[MemberTeamView], error)
	SearchPageSimple(ctx context.Context, cond SearchCondition, page repository.PageRequest) (*repository.PaginatedResult[MemberTeamView], error)
	SearchPageComplex(ctx context.Context, cond SearchCondition, page repository.PageRequest) (*repository.PaginatedResult[MemberTeamView], error)
}

var memberColumns = []string{
	"m.member_id AS member_id",
	"m.username AS username",
	"m.age AS age",
	"m.team_id AS team_id",
}

var viewColumns = []string{
	"m.member_id AS member_id",
	"m.username AS username",
	"m.age AS age",
	"t.team_id AS team_id",
	"t.name AS team_name",
}

var (
	teamJoin      = query.Join{Table: "teams t", On: "m.team_id = t.team_id"}
	memberOrderBy = []string{"m.member_id ASC"}
)

// viewQuery always joins teams, so members without a team never show up in a view.
func viewQuery(cond SearchCondition) query.Select {
	return query.Select{
		Columns: viewColumns,
		From:    "members m",
		Joins:   []query.Join{teamJoin},
		Where:   cond.Predicates(),
		OrderBy: memberOrderBy,
	}
}

func memberQuery(cond SearchCondition) query.Select {
	s := query.Select{
		Columns: memberColumns,
		From:    "members m",
		Where:   cond.Predicates(),
		OrderBy: memberOrderBy,
	}
	if cond.needsTeam() {
		s.Joins = []query.Join{teamJoin}
	}
	return s
}

type sqlMemberRepository struct {
	repository.Repository[Member, int64]
	db sqlx.ExtContext
}

func NewMemberRepository(db sqlx.ExtContext) MemberRepository {
	return &sqlMemberRepository{
		Repository: repository.NewEntityRepository[Member](db),
		db:         db,
	}
}

func (r *sqlMemberRepository) FindByUsername(ctx context.Context, username string) ([]*Member, error) {
	return r.SearchMembers(ctx, SearchCondition{Username: query.Some(username)})
}

func (r *sqlMemberRepository) FindByTeam(ctx context.Context, teamID int64) ([]*Member, error) {
	s := query.Select{
		Columns: memberColumns,
		From:    "members m",
		Where:   []query.Predicate{{Column: "m.team_id", Op: query.Eq, Arg: teamID}},
		OrderBy: memberOrderBy,
	}
	q, args := s.SQL(nil)
	return selectAll[Member](ctx, r.db, q, args)
}

func (r *sqlMemberRepository) UpdateTeam(ctx context.Context, m *Member) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("UPDATE members SET team_id = ? WHERE member_id = ?"), m.TeamID, m.ID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL counts changed rows, so rewriting the same link also reports zero
		return r.ExistsByID(ctx, m.ID)
	}
	return nil
}

func (r *sqlMemberRepository) Search(ctx context.Context, cond SearchCondition) ([]*MemberTeamView, error) {
	q, args := viewQuery(cond).SQL(nil)
	return selectAll[MemberTeamView](ctx, r.db, q, args)
}

func (r *sqlMemberRepository) SearchMembers(ctx context.Context, cond SearchCondition) ([]*Member, error) {
	q, args := memberQuery(cond).SQL(nil)
	return selectAll[Member](ctx, r.db, q, args)
}

func (r *sqlMemberRepository) SearchPage(ctx context.Context, strategy repository.CountStrategy, cond SearchCondition, page repository.PageRequest) (*repository.PaginatedResult[MemberTeamView], error) {
	s := viewQuery(cond)

	fetch := func(ctx context.Context, p repository.Pagination) ([]*MemberTeamView, error) {
		q, args := s.SQL(&query.Window{Limit: p.Limit, Offset: p.Offset})
		return selectAll[MemberTeamView](ctx, r.db, q, args)
	}
	count := func(ctx context.Context) (int, error) {
		q, args := s.CountSQL()
		slog.DebugContext(ctx, "counting members", "sql", q)
		var total int
		err := sqlx.GetContext(ctx, r.db, &total, r.db.Rebind(q), args...)
		return total, err
	}

	return repository.Paginate(ctx, strategy, page, fetch, count)
}

func (r *sqlMemberRepository) SearchPageSimple(ctx context.Context, cond SearchCondition, page repository.PageRequest) (*repository.PaginatedResult[MemberTeamView], error) {
	return r.SearchPage(ctx, repository.AlwaysCount, cond, page)
}

func (r *sqlMemberRepository) SearchPageComplex(ctx context.Context, cond SearchCondition, page repository.PageRequest) (*repository.PaginatedResult[MemberTeamView], error) {
	return r.SearchPage(ctx, repository.DeferredCount, cond, page)
}

func selectAll[T any](ctx context.Context, db sqlx.ExtContext, q string, args []any) ([]*T, error) {
	slog.DebugContext(ctx, "selecting members", "sql", q)
	rows := []*T{}
	if err := sqlx.SelectContext(ctx, db, &rows, db.Rebind(q), args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// TeamRepository persists teams.
type TeamRepository interface {
	repository.Repository[Team, int64]

	FindByName(ctx context.Context, name string) (*Team, error)
}

type sqlTeamRepository struct {
	repository.Repository[Team, int64]
	db sqlx.ExtContext
}

func NewTeamRepository(db sqlx.ExtContext) TeamRepository {
	return &sqlTeamRepository{
		Repository: repository.NewEntityRepository[Team](db),
		db:         db,
	}
}

func (r *sqlTeamRepository) FindByName(ctx context.Context, name string) (*Team, error) {
	s := query.Select{
		From:    "teams",
		Where:   []query.Predicate{{Column: "name", Op: query.Eq, Arg: name}},
		OrderBy: []string{"team_id ASC"},
	}
	q, args := s.SQL(&query.Window{Limit: 1})
	teams, err := selectAll[Team](ctx, r.db, q, args)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, repository.ErrNotFound
	}
	return teams[0], nil
}

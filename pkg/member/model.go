package member

// Team is a row in the teams table. Its members are looked up through MemberRepository.FindByTeam.
type Team struct {
	ID   int64  `db:"team_id,autoincrement" json:"id"`
	Name string `db:"name" json:"name"`
}

func NewTeam(name string) *Team {
	return &Team{Name: name}
}

func (t Team) GetID() int64 { return t.ID }

func (t Team) GetTableName() string { return "teams" }

func (t Team) GetIDColumn() string { return "team_id" }

// Member is a row in the members table. TeamID is the only link between a member and its team.
type Member struct {
	ID       int64   `db:"member_id,autoincrement" json:"id"`
	Username *string `db:"username" json:"username"`
	Age      int     `db:"age" json:"age"`
	TeamID   *int64  `db:"team_id" json:"teamId"`
}

// NewMember builds an unsaved member. team may be nil; when given it must already be saved.
func NewMember(username string, age int, team *Team) *Member {
	m := &Member{Username: &username, Age: age}
	if team != nil {
		m.ChangeTeam(team)
	}
	return m
}

func (m Member) GetID() int64 { return m.ID }

func (m Member) GetTableName() string { return "members" }

func (m Member) GetIDColumn() string { return "member_id" }

// ChangeTeam moves the member to t. Persist the change with MemberRepository.UpdateTeam.
func (m *Member) ChangeTeam(t *Team) {
	id := t.ID
	m.TeamID = &id
}

func (m *Member) LeaveTeam() {
	m.TeamID = nil
}

func (m Member) BelongsTo(t *Team) bool {
	return m.TeamID != nil && t != nil && *m.TeamID == t.ID
}

// MemberTeamView is a member joined with its team, flattened for read-only output.
type MemberTeamView struct {
	MemberID int64   `db:"member_id" json:"memberId"`
	Username *string `db:"username" json:"username"`
	Age      int     `db:"age" json:"age"`
	TeamID   int64   `db:"team_id" json:"teamId"`
	TeamName string  `db:"team_name" json:"teamName"`
}

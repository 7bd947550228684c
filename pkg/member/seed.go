package member

import (
	"context"
	"fmt"
	"log/slog"
)

// Seed saves teamA and teamB plus n members named member0..member{n-1}. Member i is i years old and
// joins teamA when i is even, teamB otherwise.
func Seed(ctx context.Context, teams TeamRepository, members MemberRepository, n int) error {
	teamA := NewTeam("teamA")
	teamB := NewTeam("teamB")
	if err := teams.SaveAll(ctx, []*Team{teamA, teamB}); err != nil {
		return fmt.Errorf("saving seed teams: %w", err)
	}

	if n <= 0 {
		return nil
	}
	batch := make([]*Member, n)
	for i := range batch {
		team := teamA
		if i%2 != 0 {
			team = teamB
		}
		batch[i] = NewMember(fmt.Sprintf("member%d", i), i, team)
	}
	if err := members.SaveAll(ctx, batch); err != nil {
		return fmt.Errorf("saving seed members: %w", err)
	}

	slog.InfoContext(ctx, "seeded member data", "teams", 2, "members", n)
	return nil
}

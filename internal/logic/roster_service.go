package logic

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

type rosterService struct {
	store RosterStore
}

func NewRosterService(store RosterStore) RosterService {
	return &rosterService{store: store}
}

// GetTeamOverview returns a team's slots, players and current aggregates.
func (s *rosterService) GetTeamOverview(ctx context.Context, teamID int64) (*models.TeamOverview, error) {
	var (
		team   *models.Team
		roster []*models.Player
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		team, err = s.store.GetTeam(gctx, teamID)
		return err
	})
	g.Go(func() error {
		var err error
		roster, err = s.store.GetRoster(gctx, teamID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hitters, pitchers := splitByKind(roster)
	overview := &models.TeamOverview{
		Team:       team,
		Hitters:    hitters,
		Pitchers:   pitchers,
		Aggregates: AggregateStats(hitters, pitchers),
	}
	if overview.Hitters == nil {
		overview.Hitters = []*models.Player{}
	}
	if overview.Pitchers == nil {
		overview.Pitchers = []*models.Player{}
	}
	for _, p := range roster {
		overview.Payroll += p.AdjustedSalary
	}
	return overview, nil
}

// ListFreeAgents lists unrostered players, optionally narrowed to a kind and
// to the players who could fill a slot with the given label.
func (s *rosterService) ListFreeAgents(ctx context.Context, kind models.PlayerKind, slotLabel string) ([]*models.Player, error) {
	if kind != "" && !kind.Valid() {
		return nil, invalidf("kind must be hitter or pitcher")
	}
	filter := FreeAgentFilter{Kind: kind}

	var slotKind models.SlotKind
	if slotLabel != "" {
		var ok bool
		slotKind, ok = models.ParseSlotKind(slotLabel)
		if !ok {
			return nil, invalidf("unknown slot %q", slotLabel)
		}
		if implied, ok := KindFor(slotKind); ok {
			if kind != "" && kind != implied {
				return nil, invalidf("slot %s does not take %s players", slotLabel, kind)
			}
			filter.Kind = implied
		}
		filter.Positions = PositionsFor(slotKind)
	}

	players, err := s.store.ListFreeAgents(ctx, filter)
	if err != nil {
		return nil, err
	}
	if slotKind == "" {
		return players, nil
	}
	out := make([]*models.Player, 0, len(players))
	for _, p := range players {
		if IsEligible(slotKind, p) {
			out = append(out, p)
		}
	}
	return out, nil
}

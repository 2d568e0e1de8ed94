package logic

import (
	"errors"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

var errMockRedisDown = errors.New("redis: connection refused")

func f(v float64) *float64 { return &v }

func hitter(id int64, positions string, salary float64, line *models.HittingLine) *models.Player {
	return &models.Player{
		ID:             id,
		Name:           "Hitter " + string(rune('A'+id%26)),
		Kind:           models.KindHitter,
		Positions:      models.ParsePositions(positions),
		AdjustedSalary: salary,
		Hitting:        line,
	}
}

func pitcher(id int64, positions string, salary float64, line *models.PitchingLine) *models.Player {
	return &models.Player{
		ID:             id,
		Name:           "Pitcher " + string(rune('A'+id%26)),
		Kind:           models.KindPitcher,
		Positions:      models.ParsePositions(positions),
		AdjustedSalary: salary,
		Pitching:       line,
	}
}

func slot(id int64, label string) models.RosterSlot {
	kind, _ := models.ParseSlotKind(label)
	return models.RosterSlot{ID: id, Label: label, Kind: kind}
}

func filledSlot(id int64, label string, playerID int64) models.RosterSlot {
	s := slot(id, label)
	s.PlayerID = &playerID
	return s
}

func openSlots(labels ...string) []OpenSlot {
	out := make([]OpenSlot, len(labels))
	for i, l := range labels {
		s := slot(int64(i+1), l)
		side, _ := SideOf(s.Kind)
		out[i] = OpenSlot{Slot: s, Side: side}
	}
	return out
}

package logic

import "github.com/jclfantasy/optimizer-api/internal/models"

// SlotSide says which kind of player a slot takes. SideAny is the bench.
type SlotSide string

const (
	SideHitter  SlotSide = "hitter"
	SidePitcher SlotSide = "pitcher"
	SideAny     SlotSide = "any"
)

// SlotRule is the eligibility rule behind a slot kind. An empty position set
// accepts every position on the rule's side.
type SlotRule struct {
	Side      SlotSide
	Positions map[models.Position]struct{}
}

func positions(tags ...models.Position) map[models.Position]struct{} {
	set := make(map[models.Position]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

// SlotRules maps each slot kind to the raw positions it accepts.
var SlotRules = map[models.SlotKind]SlotRule{
	models.SlotCatcher:          {Side: SideHitter, Positions: positions(models.PosCatcher)},
	models.SlotFirstBase:        {Side: SideHitter, Positions: positions(models.PosFirstBase)},
	models.SlotSecondBase:       {Side: SideHitter, Positions: positions(models.PosSecondBase)},
	models.SlotThirdBase:        {Side: SideHitter, Positions: positions(models.PosThirdBase)},
	models.SlotShortStop:        {Side: SideHitter, Positions: positions(models.PosShortStop)},
	models.SlotMiddleInfielder:  {Side: SideHitter, Positions: positions(models.PosSecondBase, models.PosShortStop)},
	models.SlotCornerInfielder:  {Side: SideHitter, Positions: positions(models.PosFirstBase, models.PosThirdBase)},
	models.SlotOutfielder:       {Side: SideHitter, Positions: positions(models.PosOutfield, models.PosLeftField, models.PosCenter, models.PosRightField)},
	models.SlotDesignatedHitter: {Side: SideHitter, Positions: positions(models.PosDH)},
	models.SlotUtility:          {Side: SideHitter},
	models.SlotStartingPitcher:  {Side: SidePitcher, Positions: positions(models.PosStarter, models.PosPitcher)},
	models.SlotReliefPitcher:    {Side: SidePitcher, Positions: positions(models.PosReliever, models.PosPitcher)},
	models.SlotPitcher:          {Side: SidePitcher},
	models.SlotBench:            {Side: SideAny},
}

// SideOf returns the side of a slot kind. Unknown kinds have no side.
func SideOf(kind models.SlotKind) (SlotSide, bool) {
	rule, ok := SlotRules[kind]
	return rule.Side, ok
}

// IsEligible reports whether player p may fill a slot of the given kind.
func IsEligible(kind models.SlotKind, p *models.Player) bool {
	rule, ok := SlotRules[kind]
	if !ok || p == nil {
		return false
	}
	switch rule.Side {
	case SideHitter:
		if p.Kind != models.KindHitter {
			return false
		}
	case SidePitcher:
		if p.Kind != models.KindPitcher {
			return false
		}
	}
	if len(rule.Positions) == 0 {
		return true
	}
	for _, pos := range p.Positions {
		if _, ok := rule.Positions[pos]; ok {
			return true
		}
	}
	return false
}

// PositionsFor lists the raw positions a slot kind accepts, or nil when it
// accepts any position on its side. Used to narrow free-agent queries.
func PositionsFor(kind models.SlotKind) []models.Position {
	rule, ok := SlotRules[kind]
	if !ok || len(rule.Positions) == 0 {
		return nil
	}
	out := make([]models.Position, 0, len(rule.Positions))
	for _, pos := range []models.Position{
		models.PosCatcher, models.PosFirstBase, models.PosSecondBase, models.PosThirdBase,
		models.PosShortStop, models.PosOutfield, models.PosLeftField, models.PosCenter,
		models.PosRightField, models.PosDH, models.PosStarter, models.PosReliever, models.PosPitcher,
	} {
		if _, ok := rule.Positions[pos]; ok {
			out = append(out, pos)
		}
	}
	return out
}

// KindFor returns the player kind a slot kind is restricted to, if any.
func KindFor(kind models.SlotKind) (models.PlayerKind, bool) {
	switch side, _ := SideOf(kind); side {
	case SideHitter:
		return models.KindHitter, true
	case SidePitcher:
		return models.KindPitcher, true
	}
	return "", false
}

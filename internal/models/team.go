package models

import "strings"

// SlotKind classifies a roster slot by the eligibility rule it carries.
type SlotKind string

const (
	SlotCatcher          SlotKind = "Catcher"
	SlotFirstBase        SlotKind = "FirstBase"
	SlotSecondBase       SlotKind = "SecondBase"
	SlotThirdBase        SlotKind = "ThirdBase"
	SlotShortStop        SlotKind = "ShortStop"
	SlotMiddleInfielder  SlotKind = "MiddleInfielder"
	SlotCornerInfielder  SlotKind = "CornerInfielder"
	SlotOutfielder       SlotKind = "Outfielder"
	SlotDesignatedHitter SlotKind = "DesignatedHitter"
	SlotUtility          SlotKind = "Utility"
	SlotStartingPitcher  SlotKind = "StartingPitcher"
	SlotReliefPitcher    SlotKind = "ReliefPitcher"
	SlotPitcher          SlotKind = "Pitcher"
	SlotBench            SlotKind = "Bench"
)

// slotAliases maps lower-cased label stems to slot kinds.
var slotAliases = map[string]SlotKind{
	"catcher":          SlotCatcher,
	"c":                SlotCatcher,
	"firstbase":        SlotFirstBase,
	"1b":               SlotFirstBase,
	"secondbase":       SlotSecondBase,
	"2b":               SlotSecondBase,
	"thirdbase":        SlotThirdBase,
	"3b":               SlotThirdBase,
	"shortstop":        SlotShortStop,
	"ss":               SlotShortStop,
	"middleinfielder":  SlotMiddleInfielder,
	"mi":               SlotMiddleInfielder,
	"cornerinfielder":  SlotCornerInfielder,
	"ci":               SlotCornerInfielder,
	"outfielder":       SlotOutfielder,
	"outfield":         SlotOutfielder,
	"of":               SlotOutfielder,
	"designatedhitter": SlotDesignatedHitter,
	"dh":               SlotDesignatedHitter,
	"utility":          SlotUtility,
	"util":             SlotUtility,
	"startingpitcher":  SlotStartingPitcher,
	"sp":               SlotStartingPitcher,
	"reliefpitcher":    SlotReliefPitcher,
	"rp":               SlotReliefPitcher,
	"pitcher":          SlotPitcher,
	"p":                SlotPitcher,
	"bench":            SlotBench,
	"bn":               SlotBench,
}

// ParseSlotKind derives the slot kind from a label such as "Bench2" or "Pitcher3".
// Trailing digits are ignored. ok is false for unknown labels.
func ParseSlotKind(label string) (SlotKind, bool) {
	stem := strings.TrimRight(strings.TrimSpace(label), "0123456789")
	kind, ok := slotAliases[strings.ToLower(stem)]
	return kind, ok
}

// RosterSlot is one addressable roster position.
type RosterSlot struct {
	ID       int64    `json:"id"`
	Label    string   `json:"label"`
	Kind     SlotKind `json:"kind"`
	PlayerID *int64   `json:"player_id,omitempty"`
}

// IsOpen reports whether no player holds the slot.
func (s RosterSlot) IsOpen() bool {
	return s.PlayerID == nil
}

// Team is a fantasy team with its roster slots.
type Team struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Owner     string       `json:"owner"`
	SalaryCap float64      `json:"salary_cap"`
	Slots     []RosterSlot `json:"slots"`
}

// TeamOverview is the team lookup response.
type TeamOverview struct {
	Team       *Team     `json:"team"`
	Hitters    []*Player `json:"hitters"`
	Pitchers   []*Player `json:"pitchers"`
	Aggregates StatLine  `json:"aggregates"`
	Payroll    float64   `json:"payroll"`
}

package models

import "strings"

// PlayerKind discriminates hitters from pitchers.
type PlayerKind string

const (
	KindHitter  PlayerKind = "hitter"
	KindPitcher PlayerKind = "pitcher"
)

// Valid reports whether k is hitter or pitcher.
func (k PlayerKind) Valid() bool {
	return k == KindHitter || k == KindPitcher
}

// Position is a raw fielding position tag such as "SS" or "RP".
type Position string

const (
	PosCatcher    Position = "C"
	PosFirstBase  Position = "1B"
	PosSecondBase Position = "2B"
	PosThirdBase  Position = "3B"
	PosShortStop  Position = "SS"
	PosOutfield   Position = "OF"
	PosLeftField  Position = "LF"
	PosCenter     Position = "CF"
	PosRightField Position = "RF"
	PosDH         Position = "DH"
	PosStarter    Position = "SP"
	PosReliever   Position = "RP"
	PosPitcher    Position = "P"
)

// ParsePositions splits a comma-separated eligibility string ("2B,SS") into tags.
func ParsePositions(raw string) []Position {
	var out []Position
	for _, part := range strings.Split(raw, ",") {
		p := strings.ToUpper(strings.TrimSpace(part))
		if p == "" {
			continue
		}
		out = append(out, Position(p))
	}
	return out
}

// HittingLine is a hitter's raw stat line. Nil means no data.
type HittingLine struct {
	AB  *float64 `json:"ab,omitempty"`
	H   *float64 `json:"h,omitempty"`
	R   *float64 `json:"r,omitempty"`
	HR  *float64 `json:"hr,omitempty"`
	RBI *float64 `json:"rbi,omitempty"`
	SB  *float64 `json:"sb,omitempty"`
	AVG *float64 `json:"avg,omitempty"`
}

// PitchingLine is a pitcher's raw stat line. Nil means no data.
type PitchingLine struct {
	IP   *float64 `json:"ip,omitempty"`
	W    *float64 `json:"w,omitempty"`
	QS   *float64 `json:"qs,omitempty"`
	SO   *float64 `json:"so,omitempty"`
	SV   *float64 `json:"sv,omitempty"`
	HLD  *float64 `json:"hld,omitempty"`
	SVH  *float64 `json:"svh,omitempty"`
	ERA  *float64 `json:"era,omitempty"`
	WHIP *float64 `json:"whip,omitempty"`
}

// Player is a rostered player or free agent.
type Player struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	Kind           PlayerKind    `json:"kind"`
	MLBTeam        string        `json:"mlb_team,omitempty"`
	Positions      []Position    `json:"positions"`
	Status         string        `json:"status,omitempty"`
	TeamID         *int64        `json:"team_id,omitempty"`
	OriginalSalary float64       `json:"original_salary"`
	AdjustedSalary float64       `json:"adjusted_salary"`
	AuctionSalary  float64       `json:"auction_salary"`
	Hitting        *HittingLine  `json:"hitting,omitempty"`
	Pitching       *PitchingLine `json:"pitching,omitempty"`
	StandardGain   float64       `json:"standard_gain"`
}

// PrimaryPosition is the first listed eligible position, or "" if none.
func (p *Player) PrimaryPosition() Position {
	if len(p.Positions) == 0 {
		return ""
	}
	return p.Positions[0]
}

// IsFreeAgent reports whether the player is not on any fantasy roster.
func (p *Player) IsFreeAgent() bool {
	return p.TeamID == nil
}

// PositionString joins positions back into the league's comma format.
func (p *Player) PositionString() string {
	parts := make([]string, len(p.Positions))
	for i, pos := range p.Positions {
		parts[i] = string(pos)
	}
	return strings.Join(parts, ",")
}

// ScoredPlayer pairs a player with a standard-gain score for ranking output.
type ScoredPlayer struct {
	Rank         int        `json:"rank"`
	PlayerID     int64      `json:"player_id"`
	Name         string     `json:"name"`
	Kind         PlayerKind `json:"kind"`
	StandardGain float64    `json:"standard_gain"`
}

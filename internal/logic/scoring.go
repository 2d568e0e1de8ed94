package logic

import "github.com/jclfantasy/optimizer-api/internal/models"

// DefaultScarcity weights scarce primary positions above deep ones.
// Positions not listed score at 1.0.
var DefaultScarcity = map[models.Position]float64{
	models.PosCatcher:    1.25,
	models.PosShortStop:  1.2,
	models.PosSecondBase: 1.1,
	models.PosCenter:     1.05,
	models.PosReliever:   1.15,
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer)

// WithScarcity replaces the position-scarcity table. Non-positive weights are ignored.
func WithScarcity(table map[models.Position]float64) ScorerOption {
	return func(s *Scorer) {
		s.scarcity = make(map[models.Position]float64, len(table))
		for pos, w := range table {
			if w > 0 {
				s.scarcity[pos] = w
			}
		}
	}
}

// Scorer computes standard gain: how far a candidate would move a team toward
// its threshold, with every category measured in units of its own gap.
type Scorer struct {
	scarcity map[models.Position]float64
}

// NewScorer returns a Scorer using DefaultScarcity unless overridden.
func NewScorer(opts ...ScorerOption) *Scorer {
	s := &Scorer{scarcity: DefaultScarcity}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Multiplier returns the scarcity weight for a player's primary position.
func (s *Scorer) Multiplier(p *models.Player) float64 {
	if w, ok := s.scarcity[p.PrimaryPosition()]; ok {
		return w
	}
	return 1.0
}

// StandardGain scores one candidate against the team's current aggregates and gaps.
// The result is negative when the candidate's rate stats would drag the team down
// more than their counting stats help.
func (s *Scorer) StandardGain(p *models.Player, current, gaps models.StatLine) float64 {
	var total float64

	switch p.Kind {
	case models.KindHitter:
		h := p.Hitting
		if h == nil {
			break
		}
		for _, c := range models.HittingCategories {
			if c.IsRate() {
				continue
			}
			gap, ok := gaps[c]
			if !ok || gap <= 0 {
				continue
			}
			if v, present := hittingValue(h, c); present {
				total += v / gap
			}
		}
		if ab := val(h.AB); ab > 0 {
			if gap, ok := gaps[models.CategoryAverage]; ok && gap > 0 {
				impact := (hitsOf(h)/ab - current[models.CategoryAverage]) * ab
				total += impact / gap
			}
		}

	case models.KindPitcher:
		pl := p.Pitching
		if pl == nil {
			break
		}
		for _, c := range models.PitchingCategories {
			if c.IsRate() {
				continue
			}
			gap, ok := gaps[c]
			if !ok || gap <= 0 {
				continue
			}
			if v, present := pitchingValue(pl, c); present {
				total += v / gap
			}
		}
		if ip := val(pl.IP); ip > 0 {
			if gap, ok := gaps[models.CategoryERA]; ok && gap > 0 && pl.ERA != nil {
				total += (current[models.CategoryERA] - *pl.ERA) * ip / gap
			}
			if gap, ok := gaps[models.CategoryWHIP]; ok && gap > 0 && pl.WHIP != nil {
				total += (current[models.CategoryWHIP] - *pl.WHIP) * ip / gap
			}
		}
	}

	return total * s.Multiplier(p)
}

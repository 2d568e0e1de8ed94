package logic

import "github.com/jclfantasy/optimizer-api/internal/models"

// val returns the value behind p, treating missing data as zero.
func val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// hitsOf returns a hitter's hits, reconstructing them from AVG when only the
// average was recorded.
func hitsOf(h *models.HittingLine) float64 {
	if h == nil {
		return 0
	}
	if h.H != nil {
		return *h.H
	}
	return val(h.AVG) * val(h.AB)
}

// savesHoldsOf maps the SV_H category onto the raw SVH column, falling back to
// SV + HLD for rows that only carry the components.
func savesHoldsOf(p *models.PitchingLine) float64 {
	if p == nil {
		return 0
	}
	if p.SVH != nil {
		return *p.SVH
	}
	return val(p.SV) + val(p.HLD)
}

// hittingValue reads a counting category from a hitter's line.
func hittingValue(h *models.HittingLine, c models.Category) (float64, bool) {
	if h == nil {
		return 0, false
	}
	switch c {
	case models.CategoryRuns:
		return val(h.R), h.R != nil
	case models.CategoryHomeRuns:
		return val(h.HR), h.HR != nil
	case models.CategoryRBI:
		return val(h.RBI), h.RBI != nil
	case models.CategoryStolenBases:
		return val(h.SB), h.SB != nil
	}
	return 0, false
}

// pitchingValue reads a counting category from a pitcher's line.
// K is stored as SO and SV_H as SVH in league data.
func pitchingValue(p *models.PitchingLine, c models.Category) (float64, bool) {
	if p == nil {
		return 0, false
	}
	switch c {
	case models.CategoryWins:
		return val(p.W), p.W != nil
	case models.CategoryStrikeouts:
		return val(p.SO), p.SO != nil
	case models.CategorySavesHolds:
		present := p.SVH != nil || p.SV != nil || p.HLD != nil
		return savesHoldsOf(p), present
	}
	return 0, false
}

// AggregateStats derives a team's per-category line from its rostered players.
// Counting categories are summed; AVG is total hits over total at-bats; ERA and
// WHIP are rebuilt from innings-weighted totals. Rate categories are 0 when the
// underlying denominator is 0.
func AggregateStats(hitters, pitchers []*models.Player) models.StatLine {
	line := make(models.StatLine, len(models.AllCategories))
	for _, c := range models.AllCategories {
		line[c] = 0
	}

	var atBats, hits float64
	for _, p := range hitters {
		if p == nil || p.Hitting == nil {
			continue
		}
		for _, c := range models.HittingCategories {
			if v, ok := hittingValue(p.Hitting, c); ok {
				line[c] += v
			}
		}
		atBats += val(p.Hitting.AB)
		hits += hitsOf(p.Hitting)
	}
	if atBats > 0 {
		line[models.CategoryAverage] = hits / atBats
	}

	var innings, earnedRuns, weightedWHIP float64
	for _, p := range pitchers {
		if p == nil || p.Pitching == nil {
			continue
		}
		for _, c := range models.PitchingCategories {
			if v, ok := pitchingValue(p.Pitching, c); ok {
				line[c] += v
			}
		}
		ip := val(p.Pitching.IP)
		innings += ip
		earnedRuns += val(p.Pitching.ERA) * ip / 9
		weightedWHIP += val(p.Pitching.WHIP) * ip
	}
	if innings > 0 {
		line[models.CategoryERA] = 9 * earnedRuns / innings
		line[models.CategoryWHIP] = weightedWHIP / innings
	}

	return line
}

// splitByKind separates a mixed player list into hitters and pitchers.
func splitByKind(players []*models.Player) (hitters, pitchers []*models.Player) {
	for _, p := range players {
		switch p.Kind {
		case models.KindHitter:
			hitters = append(hitters, p)
		case models.KindPitcher:
			pitchers = append(pitchers, p)
		}
	}
	return hitters, pitchers
}

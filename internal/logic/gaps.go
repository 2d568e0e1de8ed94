package logic

import (
	"math"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

// Gap floors. They keep every gap strictly positive so the scorer can divide by it.
const (
	GapFloor        = 0.1
	AverageGapFloor = 0.001
)

// ComputeGaps returns the clamped distance between current aggregates and the
// threshold targets. Categories without a target are omitted.
func ComputeGaps(current, targets models.StatLine) models.StatLine {
	gaps := make(models.StatLine, len(targets))
	for _, c := range models.AllCategories {
		target, ok := targets[c]
		if !ok {
			continue
		}
		cur := current[c]
		switch {
		case c == models.CategoryAverage:
			gaps[c] = math.Max(target-cur, AverageGapFloor)
		case c.LowerIsBetter():
			gaps[c] = math.Max(cur-target, GapFloor)
		default:
			gaps[c] = math.Max(target-cur, GapFloor)
		}
	}
	return gaps
}

package logic

import (
	"math"
	"testing"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

func TestComputeGaps(t *testing.T) {
	targets := models.StatLine{
		models.CategoryRuns:     1000,
		models.CategoryHomeRuns: 250,
		models.CategoryAverage:  0.265,
		models.CategoryERA:      3.60,
		models.CategoryWHIP:     1.15,
	}

	tests := []struct {
		name    string
		current models.StatLine
		cat     models.Category
		want    float64
	}{
		{"Higher is better, behind", models.StatLine{models.CategoryRuns: 850}, models.CategoryRuns, 150},
		{"Higher is better, met", models.StatLine{models.CategoryRuns: 1000}, models.CategoryRuns, GapFloor},
		{"Higher is better, ahead", models.StatLine{models.CategoryHomeRuns: 300}, models.CategoryHomeRuns, GapFloor},
		{"Average behind", models.StatLine{models.CategoryAverage: 0.255}, models.CategoryAverage, 0.010},
		{"Average ahead", models.StatLine{models.CategoryAverage: 0.280}, models.CategoryAverage, AverageGapFloor},
		{"ERA worse than target", models.StatLine{models.CategoryERA: 4.10}, models.CategoryERA, 0.50},
		{"ERA better than target", models.StatLine{models.CategoryERA: 3.20}, models.CategoryERA, GapFloor},
		{"WHIP equal", models.StatLine{models.CategoryWHIP: 1.15}, models.CategoryWHIP, GapFloor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeGaps(tt.current, targets)
			if math.Abs(got[tt.cat]-tt.want) > 1e-9 {
				t.Errorf("ComputeGaps()[%s] = %v, want %v", tt.cat, got[tt.cat], tt.want)
			}
		})
	}
}

func TestComputeGaps_AlwaysPositive(t *testing.T) {
	targets := models.StatLine{}
	for _, c := range models.AllCategories {
		targets[c] = 10
	}
	for _, cur := range []float64{-5, 0, 9.99, 10, 10.01, 1e6} {
		current := models.StatLine{}
		for _, c := range models.AllCategories {
			current[c] = cur
		}
		for c, g := range ComputeGaps(current, targets) {
			if g <= 0 {
				t.Errorf("gap[%s] = %v at current %v, want > 0", c, g, cur)
			}
		}
	}
}

func TestComputeGaps_OmitsUntargetedCategories(t *testing.T) {
	got := ComputeGaps(models.StatLine{models.CategoryRuns: 10, models.CategoryWins: 5}, models.StatLine{models.CategoryRuns: 20})
	if len(got) != 1 {
		t.Errorf("ComputeGaps() = %v, want only R", got)
	}
	if _, ok := got[models.CategoryWins]; ok {
		t.Error("ComputeGaps() included W without a target")
	}
}

package logic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

var seasonColumns = []string{"team_name", "season_year", "made_playoffs", "wins", "losses", "ties"}

// ParseTeamSeasons reads a league-history CSV. The header must carry the
// season columns; any tracked category column is read as a stat, and blank
// category cells are left out of that team's line.
func ParseTeamSeasons(r io.Reader) ([]models.TeamSeason, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, invalidf("csv is empty")
	}
	if err != nil {
		return nil, invalidf("csv header: %v", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	var missing []string
	for _, col := range seasonColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, invalidf("csv missing columns: %s", strings.Join(missing, ", "))
	}

	var seasons []models.TeamSeason
	line := 1
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, invalidf("csv line %d: %v", line, err)
		}

		s := models.TeamSeason{
			TeamName: strings.TrimSpace(rec[index["team_name"]]),
			Stats:    models.StatLine{},
		}
		if s.SeasonYear, err = atoi(rec, index, "season_year"); err != nil {
			return nil, invalidf("csv line %d: %v", line, err)
		}
		if s.Wins, err = atoi(rec, index, "wins"); err != nil {
			return nil, invalidf("csv line %d: %v", line, err)
		}
		if s.Losses, err = atoi(rec, index, "losses"); err != nil {
			return nil, invalidf("csv line %d: %v", line, err)
		}
		if s.Ties, err = atoi(rec, index, "ties"); err != nil {
			return nil, invalidf("csv line %d: %v", line, err)
		}
		if s.MadePlayoffs, err = strconv.ParseBool(strings.TrimSpace(rec[index["made_playoffs"]])); err != nil {
			return nil, invalidf("csv line %d: made_playoffs %q", line, rec[index["made_playoffs"]])
		}

		for _, cat := range models.AllCategories {
			i, ok := index[string(cat)]
			if !ok {
				continue
			}
			cell := strings.TrimSpace(rec[i])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, invalidf("csv line %d: %s value %q", line, cat, cell)
			}
			s.Stats[cat] = v
		}
		seasons = append(seasons, s)
	}
	if len(seasons) == 0 {
		return nil, invalidf("csv has no team rows")
	}
	return seasons, nil
}

func atoi(rec []string, index map[string]int, col string) (int, error) {
	raw := strings.TrimSpace(rec[index[col]])
	// Spreadsheet exports write whole numbers as 2021.0.
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("%s %q is not a whole number", col, raw)
	}
	return int(f), nil
}

// AnalyzeSeasons derives benchmarks from playoff teams, correlations across
// all teams, and targets equal to the playoff means.
func AnalyzeSeasons(seasons []models.TeamSeason) (*models.ThresholdAnalysis, error) {
	var playoff []models.TeamSeason
	for _, s := range seasons {
		if s.MadePlayoffs {
			playoff = append(playoff, s)
		}
	}
	if len(playoff) == 0 {
		return nil, invalidf("no playoff teams found; cannot calculate benchmarks")
	}

	out := &models.ThresholdAnalysis{Targets: models.StatLine{}}
	var present []models.Category
	for _, cat := range models.AllCategories {
		if !anyHas(seasons, cat) {
			continue
		}
		present = append(present, cat)

		values := columnOf(playoff, cat)
		if len(values) == 0 {
			continue
		}
		b := summarize(cat, values)
		out.Benchmarks = append(out.Benchmarks, b)
		out.Targets[cat] = b.Mean
	}

	for i, c1 := range present {
		for _, c2 := range present[i+1:] {
			x, y := pairedColumns(seasons, c1, c2)
			if len(x) < 2 {
				continue
			}
			r := stat.Correlation(x, y, nil)
			if math.IsNaN(r) {
				continue
			}
			out.Correlations = append(out.Correlations, models.Correlation{
				Category1: c1, Category2: c2, Coefficient: r,
			})
		}
	}
	return out, nil
}

func summarize(cat models.Category, values []float64) models.Benchmark {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	b := models.Benchmark{
		Category: cat,
		Mean:     stat.Mean(sorted, nil),
		Min:      sorted[0],
		Max:      sorted[len(sorted)-1],
	}
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		b.Median = sorted[mid]
	} else {
		b.Median = (sorted[mid-1] + sorted[mid]) / 2
	}
	if len(sorted) > 1 {
		b.StdDev = stat.StdDev(sorted, nil)
	}
	return b
}

func anyHas(seasons []models.TeamSeason, cat models.Category) bool {
	for _, s := range seasons {
		if _, ok := s.Stats[cat]; ok {
			return true
		}
	}
	return false
}

func columnOf(seasons []models.TeamSeason, cat models.Category) []float64 {
	var out []float64
	for _, s := range seasons {
		if v, ok := s.Stats[cat]; ok {
			out = append(out, v)
		}
	}
	return out
}

// pairedColumns returns the two categories for teams that report both.
func pairedColumns(seasons []models.TeamSeason, c1, c2 models.Category) (x, y []float64) {
	for _, s := range seasons {
		v1, ok1 := s.Stats[c1]
		v2, ok2 := s.Stats[c2]
		if ok1 && ok2 {
			x = append(x, v1)
			y = append(y, v2)
		}
	}
	return x, y
}

// WhatIf extrapolates a model's benchmark means from explicit adjustments.
// Each adjusted category moves its correlated, non-adjusted partners by
// delta% times the coefficient. When two adjustments touch the same partner
// the one later in category order wins.
func WhatIf(benchmarks []models.Benchmark, correlations []models.Correlation, adjustments map[models.Category]float64) (models.StatLine, error) {
	base := make(models.StatLine, len(benchmarks))
	for _, b := range benchmarks {
		base[b.Category] = b.Mean
	}

	related := map[models.Category]map[models.Category]float64{}
	link := func(a, b models.Category, r float64) {
		if related[a] == nil {
			related[a] = map[models.Category]float64{}
		}
		related[a][b] = r
	}
	for _, c := range correlations {
		link(c.Category1, c.Category2, c.Coefficient)
		link(c.Category2, c.Category1, c.Coefficient)
	}

	results := make(models.StatLine, len(base))
	for cat, v := range base {
		results[cat] = v
	}
	for cat, v := range adjustments {
		mean, ok := base[cat]
		if !ok {
			return nil, invalidf("category %q has no benchmark in this model", cat)
		}
		if mean == 0 {
			return nil, invalidf("category %q has a zero baseline", cat)
		}
		results[cat] = v
	}

	for _, cat := range models.AllCategories {
		adj, ok := adjustments[cat]
		if !ok {
			continue
		}
		delta := (adj - base[cat]) / base[cat]
		for _, other := range models.AllCategories {
			coef, ok := related[cat][other]
			if !ok {
				continue
			}
			if _, explicit := adjustments[other]; explicit {
				continue
			}
			if mean, ok := base[other]; ok {
				results[other] = mean * (1 + delta*coef)
			}
		}
	}
	return results, nil
}

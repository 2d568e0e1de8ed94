package models

// Category is a scoring category label as it appears in league data and threshold models.
type Category string

const (
	CategoryRuns        Category = "R"
	CategoryHomeRuns    Category = "HR"
	CategoryRBI         Category = "RBI"
	CategoryStolenBases Category = "SB"
	CategoryAverage     Category = "AVG"
	CategoryWins        Category = "W"
	CategoryStrikeouts  Category = "K"
	CategorySavesHolds  Category = "SV_H"
	CategoryERA         Category = "ERA"
	CategoryWHIP        Category = "WHIP"
)

// HittingCategories are scored for hitters, in display order.
var HittingCategories = []Category{
	CategoryRuns, CategoryHomeRuns, CategoryRBI, CategoryStolenBases, CategoryAverage,
}

// PitchingCategories are scored for pitchers, in display order.
var PitchingCategories = []Category{
	CategoryWins, CategoryStrikeouts, CategorySavesHolds, CategoryERA, CategoryWHIP,
}

// AllCategories lists every tracked category.
var AllCategories = append(append([]Category{}, HittingCategories...), PitchingCategories...)

// LowerIsBetter reports whether a smaller value is the better one (ERA, WHIP).
func (c Category) LowerIsBetter() bool {
	return c == CategoryERA || c == CategoryWHIP
}

// IsRate reports whether the category is a ratio that must be aggregated from weighted totals.
func (c Category) IsRate() bool {
	return c == CategoryAverage || c == CategoryERA || c == CategoryWHIP
}

// Valid reports whether c is one of the tracked categories.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// StatLine holds one value per category.
type StatLine map[Category]float64

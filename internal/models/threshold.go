package models

import "time"

// ThresholdModel is a named competitive bar: one target value per category.
type ThresholdModel struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	Targets      StatLine      `json:"targets"`
	Benchmarks   []Benchmark   `json:"benchmarks,omitempty"`
	Correlations []Correlation `json:"correlations,omitempty"`
}

// ThresholdSummary is a list entry for threshold models.
type ThresholdSummary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Benchmark summarizes one category over playoff teams.
type Benchmark struct {
	Category Category `json:"category"`
	Mean     float64  `json:"mean_value"`
	Median   float64  `json:"median_value"`
	StdDev   float64  `json:"std_dev"`
	Min      float64  `json:"min_value"`
	Max      float64  `json:"max_value"`
}

// Correlation is the Pearson coefficient between two categories across all teams.
type Correlation struct {
	Category1   Category `json:"category1"`
	Category2   Category `json:"category2"`
	Coefficient float64  `json:"coefficient"`
}

// TeamSeason is one row of an uploaded league-history file.
type TeamSeason struct {
	TeamName     string   `json:"team_name"`
	SeasonYear   int      `json:"season_year"`
	MadePlayoffs bool     `json:"made_playoffs"`
	Wins         int      `json:"wins"`
	Losses       int      `json:"losses"`
	Ties         int      `json:"ties"`
	Stats        StatLine `json:"stats"`
}

// ThresholdAnalysis is the outcome of building a model from team seasons.
type ThresholdAnalysis struct {
	Benchmarks   []Benchmark   `json:"benchmarks"`
	Correlations []Correlation `json:"correlations"`
	Targets      StatLine      `json:"targets"`
}

// UploadSummary describes a processed league-history upload.
type UploadSummary struct {
	ModelID      int64 `json:"model_id"`
	Teams        int   `json:"teams"`
	Seasons      int   `json:"seasons"`
	PlayoffTeams int   `json:"playoff_teams"`
}

// CreateThresholdRequest creates a model from explicit targets.
type CreateThresholdRequest struct {
	Name        string               `json:"name" validate:"required,max=120"`
	Description string               `json:"description" validate:"max=1000"`
	Targets     map[Category]float64 `json:"targets" validate:"required,min=1"`
}

// WhatIfRequest adjusts one or more categories of a model.
type WhatIfRequest struct {
	Adjustments map[Category]float64 `json:"adjustments" validate:"required,min=1"`
}

// WhatIfResult is the extrapolated line for every benchmarked category.
type WhatIfResult struct {
	ModelID int64    `json:"model_id"`
	Results StatLine `json:"results"`
}

package domain

import (
	"fmt"
	"time"
)

// Baseline sources.
const (
	SourceOpenFoodFacts = "openfoodfacts"
	SourceUSDA          = "usda"
)

// BaseInfo is the baseline nutrition one food database returned for a single
// lookup. Macros are nil when the provider did not report them.
type BaseInfo struct {
	Source  string
	Name    string
	Carbs   *float64
	Protein *float64
	Fat     *float64
}

// AnalysisResult is the decoded model output. Every field is optional.
type AnalysisResult struct {
	MealName           *string  `json:"mealName,omitempty"`
	MealDescription    *string  `json:"mealDescription,omitempty"`
	Calories           *float64 `json:"calories,omitempty"`
	Carbohydrates      *float64 `json:"carbohydrates,omitempty"`
	Protein            *float64 `json:"protein,omitempty"`
	Fat                *float64 `json:"fat,omitempty"`
	Fiber              *float64 `json:"fiber,omitempty"`
	PortionDescription *string  `json:"portionDescription,omitempty"`
	DiabetesNotes      *string  `json:"diabetesNotes,omitempty"`
}

// NutritionTotals holds the merged figures. The three core macros are always
// set; calories and fiber only when the model reported them.
type NutritionTotals struct {
	CarbsG       float64  `json:"carbs_g" yaml:"carbs_g"`
	ProteinG     float64  `json:"protein_g" yaml:"protein_g"`
	FatG         float64  `json:"fat_g" yaml:"fat_g"`
	CaloriesKcal *float64 `json:"calories_kcal,omitempty" yaml:"calories_kcal,omitempty"`
	FiberG       *float64 `json:"fiber_g,omitempty" yaml:"fiber_g,omitempty"`
}

// MealResult is the canonical output of one resolution.
type MealResult struct {
	MealName           *string         `json:"mealName,omitempty" yaml:"mealName,omitempty"`
	MealDescription    *string         `json:"mealDescription,omitempty" yaml:"mealDescription,omitempty"`
	PortionDescription *string         `json:"portionDescription,omitempty" yaml:"portionDescription,omitempty"`
	DiabetesNotes      *string         `json:"diabetesNotes,omitempty" yaml:"diabetesNotes,omitempty"`
	Analysis           NutritionTotals `json:"analysis" yaml:"analysis"`
}

// ID derives a weak identity from the name and the truncated macros. Two
// results with the same name and integer macros share an ID, and editing a
// macro changes it. Stored entries carry their own UUIDs instead.
func (m MealResult) ID() string {
	return fmt.Sprintf("%s-%d-%d-%d", m.Name(),
		int(m.Analysis.CarbsG), int(m.Analysis.ProteinG), int(m.Analysis.FatG))
}

// Name returns the meal name or "meal" when the result has none.
func (m MealResult) Name() string {
	if m.MealName == nil {
		return "meal"
	}
	return *m.MealName
}

// Image is a ready-to-send photo payload.
type Image struct {
	Data     []byte
	MimeType string
}

// HistoryEntry is a saved meal. Calories is 0 when the result had none.
type HistoryEntry struct {
	ID           string    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Calories     float64   `json:"calories" yaml:"calories"`
	Protein      float64   `json:"protein" yaml:"protein"`
	Carbs        float64   `json:"carbs" yaml:"carbs"`
	Fat          float64   `json:"fat" yaml:"fat"`
	Date         time.Time `json:"date" yaml:"date"`
	ThumbnailKey string    `json:"thumbnail_key,omitempty" yaml:"thumbnail_key,omitempty"`
}

// Favorite is a saved result kept under a user-chosen name.
type Favorite struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Result    MealResult `json:"result" yaml:"result"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// String returns a pointer to s.
func String(s string) *string { return &s }

package resolve

import "github.com/vbonduro/mealai/internal/domain"

// Merge combines an analysis with an optional baseline. For each core macro
// the AI value wins, then the baseline, then 0. Calories, fiber and the
// descriptive fields come from the AI alone.
func Merge(base *domain.BaseInfo, ai *domain.AnalysisResult) *domain.MealResult {
	if ai == nil {
		ai = &domain.AnalysisResult{}
	}

	var baseCarbs, baseProtein, baseFat *float64
	var baseName *string
	if base != nil {
		baseCarbs, baseProtein, baseFat = base.Carbs, base.Protein, base.Fat
		baseName = &base.Name
	}

	name := ai.MealName
	if name == nil && baseName != nil {
		name = domain.String(*baseName)
	}

	return &domain.MealResult{
		MealName:           name,
		MealDescription:    ai.MealDescription,
		PortionDescription: ai.PortionDescription,
		DiabetesNotes:      ai.DiabetesNotes,
		Analysis: domain.NutritionTotals{
			CarbsG:       first(ai.Carbohydrates, baseCarbs),
			ProteinG:     first(ai.Protein, baseProtein),
			FatG:         first(ai.Fat, baseFat),
			CaloriesKcal: ai.Calories,
			FiberG:       ai.Fiber,
		},
	}
}

func first(values ...*float64) float64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealResultJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		result MealResult
	}{
		{
			name: "all fields present",
			result: MealResult{
				MealName:           String("Oatmeal"),
				MealDescription:    String("oats with milk"),
				PortionDescription: String("one bowl"),
				DiabetesNotes:      String("slow carbs"),
				Analysis: NutritionTotals{
					CarbsG: 54.5, ProteinG: 12, FatG: 7.25,
					CaloriesKcal: Float(330), FiberG: Float(8),
				},
			},
		},
		{
			name: "optional fields absent",
			result: MealResult{
				Analysis: NutritionTotals{CarbsG: 27, ProteinG: 1, FatG: 0},
			},
		},
		{
			name: "present zeros stay present",
			result: MealResult{
				MealName: String(""),
				Analysis: NutritionTotals{CaloriesKcal: Float(0), FiberG: Float(0)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.result)
			require.NoError(t, err)

			var decoded MealResult
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tt.result, decoded)
		})
	}
}

func TestMealResultJSONLayout(t *testing.T) {
	data, err := json.Marshal(MealResult{
		MealName: String("Apple"),
		Analysis: NutritionTotals{CarbsG: 25},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mealName":"Apple","analysis":{"carbs_g":25,"protein_g":0,"fat_g":0}}`, string(data))
}

func TestMealResultID(t *testing.T) {
	r := MealResult{
		MealName: String("Banana"),
		Analysis: NutritionTotals{CarbsG: 27.9, ProteinG: 1.5, FatG: 0.2},
	}
	assert.Equal(t, "Banana-27-1-0", r.ID())

	unnamed := MealResult{Analysis: NutritionTotals{CarbsG: 10}}
	assert.Equal(t, "meal-10-0-0", unnamed.ID())

	// Equal names and integer macros collide.
	other := r
	other.Analysis.CarbsG = 27.1
	assert.Equal(t, r.ID(), other.ID())
}

func TestRequestErrorUnwrapsToRequestFailed(t *testing.T) {
	var err error = &RequestError{Service: "openai", StatusCode: 429, Body: "rate limited"}
	assert.True(t, errors.Is(err, ErrRequestFailed))
	assert.Equal(t, "openai returned status 429: rate limited", err.Error())
}

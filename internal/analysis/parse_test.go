package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/mealai/internal/domain"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "surrounding prose",
			text:     `Here is the result: {"mealName":"Apple"} Thanks!`,
			expected: `{"mealName":"Apple"}`,
		},
		{
			name:     "bare object",
			text:     `{"fat":1}`,
			expected: `{"fat":1}`,
		},
		{
			name:     "nested object keeps outer braces",
			text:     `x {"a":{"b":1}} y`,
			expected: `{"a":{"b":1}}`,
		},
		{
			name:     "no braces",
			text:     "no json here",
			expected: "no json here",
		},
		{
			name:     "closing before opening",
			text:     "} then {",
			expected: "} then {",
		},
		{
			// The last brace belongs to the prose, so the slice keeps it.
			name:     "stray brace in trailing prose",
			text:     `{"fat":1} (see {note})`,
			expected: `{"fat":1} (see {note}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.text))
		})
	}
}

func TestSanitizeThenDecode(t *testing.T) {
	raw := "Here is the result: {\"mealName\":\"Apple\",\"carbohydrates\":25,\"protein\":0,\"fat\":0} Thanks!"

	result := Decode(Sanitize(raw))
	require.NotNil(t, result)
	assert.Equal(t, domain.String("Apple"), result.MealName)
	assert.Equal(t, domain.Float(25), result.Carbohydrates)
	assert.Equal(t, domain.Float(0), result.Protein)
	assert.Equal(t, domain.Float(0), result.Fat)
	assert.Nil(t, result.Calories)
	assert.Nil(t, result.Fiber)
}

func TestDecode(t *testing.T) {
	full := `{"mealName":"Pasta","mealDescription":"spaghetti bolognese","calories":620,
		"carbohydrates":78.5,"protein":28,"fat":19,"fiber":6,
		"portionDescription":"one plate","diabetesNotes":"high carb","extra":"ignored"}`

	result := Decode(full)
	require.NotNil(t, result)
	assert.Equal(t, &domain.AnalysisResult{
		MealName:           domain.String("Pasta"),
		MealDescription:    domain.String("spaghetti bolognese"),
		Calories:           domain.Float(620),
		Carbohydrates:      domain.Float(78.5),
		Protein:            domain.Float(28),
		Fat:                domain.Float(19),
		Fiber:              domain.Float(6),
		PortionDescription: domain.String("one plate"),
		DiabetesNotes:      domain.String("high carb"),
	}, result)
}

func TestDecodeFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "prose", text: "sorry, I cannot help"},
		{name: "null", text: "null"},
		{name: "array", text: `[{"fat":1}]`},
		{name: "wrong type", text: `{"carbohydrates":"lots"}`},
		{name: "truncated", text: `{"mealName":"Apple"`},
		{name: "stray brace after object", text: `{"fat":1} (see {note}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Decode(tt.text))
		})
	}
}

func TestSanitizeMisTrimDoesNotDecode(t *testing.T) {
	sliced := Sanitize(`{"fat":1} (see {note})`)
	assert.Equal(t, `{"fat":1} (see {note}`, sliced)
	assert.Nil(t, Decode(sliced))
}

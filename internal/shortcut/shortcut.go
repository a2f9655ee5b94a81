package shortcut

import (
	"math"

	"github.com/vbonduro/mealai/internal/domain"
)

// Payload is the numeric macro set handed to a health automation.
type Payload struct {
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
	Protein int `json:"protein"`
}

// FromResult rounds the core macros half away from zero.
func FromResult(m domain.MealResult) Payload {
	return Payload{
		Carbs:   int(math.Round(m.Analysis.CarbsG)),
		Fat:     int(math.Round(m.Analysis.FatG)),
		Protein: int(math.Round(m.Analysis.ProteinG)),
	}
}

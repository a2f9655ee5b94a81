package resolve

import "github.com/vbonduro/mealai/internal/domain"

// Input is one of Text, Voice, Barcode or Images.
type Input interface {
	kind() string
}

// Text is a typed food description.
type Text string

// Voice is a speech transcript. It resolves exactly like Text.
type Voice string

// Barcode is a product barcode.
type Barcode string

// Images holds 1 to 3 photos of the same meal.
type Images []domain.Image

func (Text) kind() string    { return "text" }
func (Voice) kind() string   { return "voice" }
func (Barcode) kind() string { return "barcode" }
func (Images) kind() string  { return "images" }

// Kind names the variant of in, for logging and transport layers.
func Kind(in Input) string {
	if in == nil {
		return ""
	}
	return in.kind()
}

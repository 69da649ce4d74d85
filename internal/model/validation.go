package model

// Category classifies the kind of non-observable language a validation rule flags
type Category string

const (
	CategoryInterpretation Category = "interpretation" // Meaning attributed to behaviour
	CategoryDiagnosis      Category = "diagnosis"      // Medical or psychological labels
	CategoryIntention      Category = "intention"      // What the writer thinks the child wanted
)

// Valid reports whether c is one of the declared categories
func (c Category) Valid() bool {
	switch c {
	case CategoryInterpretation, CategoryDiagnosis, CategoryIntention:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

// ValidationResult is one triggered category for a piece of text
type ValidationResult struct {
	Category     Category `json:"category"`
	FlaggedWords []string `json:"flagged_words"` // Literal matches, deduplicated by exact string
}

// FieldFlags groups the validation results for one form field
type FieldFlags struct {
	Field   string             `json:"field"`
	Results []ValidationResult `json:"results"`
}

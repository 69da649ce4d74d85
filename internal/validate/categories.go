package validate

import (
	"github.com/ppiankov/dagrapport/internal/model"
	"github.com/ppiankov/dagrapport/internal/util"
)

// Rule is the fixed configuration of one validation category
type Rule struct {
	Category    model.Category `json:"category"`
	Words       []string       `json:"words"`
	Message     string         `json:"message"`
	Tip         string         `json:"tip"`
	Suggestions []string       `json:"suggestions"`

	matcher *util.WordMatcher
}

// rules is evaluated in declaration order
var rules = []*Rule{
	{
		Category: model.CategoryInterpretation,
		Words:    []string{"overprikkeld", "gezellig", "ontspannen", "lastig", "druk", "humeurig"},
		Message:  "Let op – dit is een interpretatie.",
		Tip:      "In deze rapportage beschrijven we wat zichtbaar of hoorbaar was.",
		Suggestions: []string{
			"Het kind liep meerdere keren weg en keek om zich heen.",
			"Het kind maakte veel bewegingen en praatte hard.",
			"Het kind reageerde niet op aanspreken en vroeg om een pauze.",
		},
	},
	{
		Category: model.CategoryDiagnosis,
		Words:    []string{"depressie", "autisme", "autistisch", "adhd", "trauma", "ptss", "hechtingsstoornis"},
		Message:  "Let op – dit is een diagnose of label.",
		Tip:      "Gebruik geen medische termen in deze rapportage.",
		Suggestions: []string{
			"Het kind was stil en keek veel naar de grond.",
			"Het kind gaf korte antwoorden en nam weinig initiatief.",
			"Het kind trok zich terug en bleef apart zitten.",
		},
	},
	{
		Category: model.CategoryIntention,
		Words:    []string{"wilde niet", "had geen zin", "deed expres", "zocht grenzen op"},
		Message:  "Let op – dit beschrijft wat je denkt dat het kind wilde.",
		Tip:      "Beschrijf wat je zag of hoorde.",
		Suggestions: []string{
			"Het kind zei \"nee\" en deed niet mee.",
			"Het kind keek toe maar pakte het materiaal niet.",
			"Het kind liep weg van de activiteit en bleef in zicht.",
		},
	},
}

// signalSuggestions are the quick-pick words offered on the "SIGNALEN – indruk" field
var signalSuggestions = []string{
	"gefrustreerd", "boos", "gespannen", "onrustig", "afwachtend", "vermijdend",
	"overprikkeld", "overweldigd", "vrolijk", "enthousiast", "moe", "teruggetrokken",
}

func init() {
	for _, r := range rules {
		r.matcher = util.NewWordMatcher(r.Words...)
	}
}

// Categories returns the rules in evaluation order
func Categories() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = *r
	}
	return out
}

// Lookup returns the rule for a category
func Lookup(c model.Category) (Rule, bool) {
	for _, r := range rules {
		if r.Category == c {
			return *r, true
		}
	}
	return Rule{}, false
}

// SignalSuggestions returns a copy of the pre-approved signal vocabulary
func SignalSuggestions() []string {
	return append([]string(nil), signalSuggestions...)
}

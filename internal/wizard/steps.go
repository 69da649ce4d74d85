package wizard

// StepKey identifies a wizard step by the form field it collects
type StepKey string

const (
	StepStart        StepKey = "childName"
	StepActivities   StepKey = "activitiesGeneral"
	StepNeeds        StepKey = "needsSignalsIndruk"
	StepGoals        StepKey = "goals"
	StepIncidents    StepKey = "incidents"
	StepExtraContext StepKey = "extraContext"
)

// Step is one page of the wizard
type Step struct {
	Key      StepKey
	Optional bool
}

var steps = []Step{
	{Key: StepStart},
	{Key: StepActivities},
	{Key: StepNeeds},
	{Key: StepGoals},
	{Key: StepIncidents, Optional: true},
	{Key: StepExtraContext, Optional: true},
}

// Steps returns the wizard steps in order
func Steps() []Step {
	return append([]Step(nil), steps...)
}

// childNameSuggestions are offered while typing the start line
var childNameSuggestions = []string{
	"Bram", "Daan", "Emma", "Finn", "Julia", "Levi", "Lars", "Mila", "Noah", "Saar", "Sem", "Tess", "Zoë",
	"Kevin", "Lisa", "Milan", "Sophie", "Thijs", "Lieke", "Luuk", "Fleur", "Stijn", "Eva",
}

const maxNameSuggestions = 5

// ReflectionTheme is a guiding question for the care worker's own reflection.
// Reflections stay in the form file and never reach the report model.
type ReflectionTheme struct {
	ID       string
	Label    string
	Question string
}

var reflectionThemes = []ReflectionTheme{
	{ID: "leren", Label: "Leren", Question: "Wat deed jij vandaag dat helpend was voor dit kind, en wil je vaker inzetten?"},
	{ID: "ontdekken", Label: "Ontdekken", Question: "Wat viel je vandaag op aan het kind of de situatie dat je nog niet eerder zo zag?"},
	{ID: "bevestigen", Label: "Bevestigen", Question: "Wat ging vandaag goed genoeg, zonder dat het beter hoefde?"},
}

// ReflectionThemes returns the reflection themes in display order
func ReflectionThemes() []ReflectionTheme {
	return append([]ReflectionTheme(nil), reflectionThemes...)
}

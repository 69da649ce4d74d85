package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/dagrapport/internal/extract"
	"github.com/ppiankov/dagrapport/internal/model"
	"golang.org/x/text/cases"
)

var (
	// ErrStepInvalid is returned by Next when the current step is not complete
	ErrStepInvalid = errors.New("current step is not complete")
	// ErrTooManyGoals is returned by AddGoal when the form already holds MaxGoals goals
	ErrTooManyGoals = errors.New("maximum number of goals reached")
	// ErrLastGoal is returned by RemoveGoal when only one goal is left
	ErrLastGoal = errors.New("at least one goal is required")
	// ErrUnknownTheme is returned by SetReflectionTheme for an id not in ReflectionThemes
	ErrUnknownTheme = errors.New("unknown reflection theme")
)

// DefaultNeedsAction is filled in when the care worker reports nothing special
const DefaultNeedsAction = "Mijn aanwezigheid en het bieden van structuur was voldoende; K deed mee binnen de afspraken."

// IncidentOption is the yes/no answer on the incidents step
type IncidentOption string

const (
	IncidentUnset IncidentOption = "unset"
	IncidentYes   IncidentOption = "yes"
	IncidentNo    IncidentOption = "no"
)

// Form is the state of one wizard run
type Form struct {
	Data           model.ReportData
	StartLine      string
	IncidentOption IncidentOption
	NoSpecialties  bool

	index int
}

// NewForm returns a form positioned on the first step
func NewForm() *Form {
	return &Form{
		Data:           model.NewReportData(),
		IncidentOption: IncidentUnset,
	}
}

// Current returns the step the form is on
func (f *Form) Current() Step {
	return steps[f.index]
}

// Index returns the zero-based position of the current step
func (f *Form) Index() int {
	return f.index
}

// IsLastStep reports whether the current step is the final one
func (f *Form) IsLastStep() bool {
	return f.index == len(steps)-1
}

// StepValid reports whether the current step has enough input to continue
func (f *Form) StepValid() bool {
	step := f.Current()
	d := f.Data

	if step.Key == StepIncidents {
		switch f.IncidentOption {
		case IncidentNo:
			return true
		case IncidentYes:
			return filled(d.Incidents)
		default:
			return false
		}
	}
	if step.Optional {
		return true
	}

	switch step.Key {
	case StepStart:
		return len(strings.Fields(f.StartLine)) >= 2
	case StepActivities:
		return filled(d.ActivitiesGeneral)
	case StepNeeds:
		if f.NoSpecialties {
			return filled(d.NeedsAction)
		}
		if filled(d.NeedsSignalsIndruk) && !filled(d.NeedsSignalsCamera) {
			return false
		}
		return filled(d.NeedsWhat) && filled(d.NeedsAction)
	case StepGoals:
		return len(d.Goals) > 0 && d.Goals[0].Complete()
	}
	return false
}

// Next applies the current step and advances. done is true when the last
// step was completed and the form is ready to be finalized.
func (f *Form) Next() (done bool, err error) {
	if !f.StepValid() {
		return false, fmt.Errorf("%s: %w", f.Current().Key, ErrStepInvalid)
	}

	switch f.Current().Key {
	case StepStart:
		child, initials, _ := extract.ParseStartLine(f.StartLine)
		f.Data.ChildName = child
		f.Data.BegeleiderInitials = initials
	case StepActivities:
		extract.ApplyTimeline(&f.Data)
	}

	if f.IsLastStep() {
		return true, nil
	}
	f.index++
	return false, nil
}

// Back moves to the previous step
func (f *Form) Back() {
	if f.index > 0 {
		f.index--
	}
}

// AddGoal appends an empty goal
func (f *Form) AddGoal() error {
	if len(f.Data.Goals) >= model.MaxGoals {
		return ErrTooManyGoals
	}
	f.Data.Goals = append(f.Data.Goals, model.GoalEntry{})
	return nil
}

// RemoveGoal deletes the goal at index i
func (f *Form) RemoveGoal(i int) error {
	if len(f.Data.Goals) <= 1 {
		return ErrLastGoal
	}
	if i < 0 || i >= len(f.Data.Goals) {
		return fmt.Errorf("goal index %d out of range", i)
	}
	f.Data.Goals = append(f.Data.Goals[:i:i], f.Data.Goals[i+1:]...)
	return nil
}

// SetGoal replaces the goal at index i
func (f *Form) SetGoal(i int, goal model.GoalEntry) error {
	if i < 0 || i >= len(f.Data.Goals) {
		return fmt.Errorf("goal index %d out of range", i)
	}
	f.Data.Goals[i] = goal
	return nil
}

// SetNoSpecialties toggles the "nothing special today" shortcut
func (f *Form) SetNoSpecialties(on bool) {
	f.NoSpecialties = on
	if on && !filled(f.Data.NeedsAction) {
		f.Data.NeedsAction = DefaultNeedsAction
	}
}

// SetIncidentOption records the incidents answer; "no" clears any typed text
func (f *Form) SetIncidentOption(opt IncidentOption) {
	f.IncidentOption = opt
	if opt == IncidentNo {
		f.Data.Incidents = ""
	}
}

// SetReflectionTheme fills the reflection question from the theme with id.
// An empty id clears the question.
func (f *Form) SetReflectionTheme(id string) error {
	if id == "" {
		f.Data.ReflectionQuestion = ""
		return nil
	}
	for _, th := range reflectionThemes {
		if th.ID == id {
			f.Data.ReflectionQuestion = th.Question
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTheme, id)
}

// Finalize returns the data to submit, with answers the care worker opted out of removed
func (f *Form) Finalize() model.ReportData {
	data := f.Data
	data.Goals = append([]model.GoalEntry(nil), f.Data.Goals...)

	if f.IncidentOption != IncidentYes {
		data.Incidents = ""
	}
	if f.NoSpecialties {
		data.NeedsSignalsIndruk = ""
		data.NeedsSignalsCamera = ""
		data.NeedsWhat = ""
	}
	return data
}

// Reset wipes all collected data and returns to the first step
func (f *Form) Reset() {
	*f = *NewForm()
}

// SuggestNames returns child name quick picks starting with prefix
func SuggestNames(prefix string) []string {
	if strings.TrimSpace(prefix) == "" {
		return nil
	}
	fold := cases.Fold()
	p := fold.String(prefix)

	var out []string
	for _, name := range childNameSuggestions {
		if strings.HasPrefix(fold.String(name), p) {
			out = append(out, name)
			if len(out) == maxNameSuggestions {
				break
			}
		}
	}
	return out
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

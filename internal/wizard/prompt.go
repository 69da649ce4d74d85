package wizard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ppiankov/dagrapport/internal/model"
	"github.com/ppiankov/dagrapport/internal/validate"
)

// Prompter walks a Form through its steps on a line-based terminal
type Prompter struct {
	form *Form
	in   *bufio.Scanner
	out  io.Writer
}

// NewPrompter creates a prompter reading answers from in and writing questions to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		form: NewForm(),
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// Form returns the form being filled in
func (p *Prompter) Form() *Form {
	return p.form
}

// Run asks every step until the form is complete and returns the finalized data.
// Input ending early returns io.ErrUnexpectedEOF.
func (p *Prompter) Run() (model.ReportData, error) {
	for {
		fmt.Fprintf(p.out, "\n[%d/%d]\n", p.form.Index()+1, len(steps))

		if err := p.ask(p.form.Current().Key); err != nil {
			return model.ReportData{}, err
		}

		done, err := p.form.Next()
		if errors.Is(err, ErrStepInvalid) {
			fmt.Fprintf(p.out, "Nog niet compleet (%s), probeer opnieuw.\n", p.form.Current().Key)
			continue
		}
		if err != nil {
			return model.ReportData{}, err
		}
		if done {
			return p.form.Finalize(), nil
		}
	}
}

func (p *Prompter) ask(key StepKey) error {
	f := p.form

	switch key {
	case StepStart:
		line, err := p.line("Kind en initialen begeleider (bv. 'Sam JK')")
		if err != nil {
			return err
		}
		f.StartLine = line
		if fields := strings.Fields(line); len(fields) == 1 {
			if names := SuggestNames(fields[0]); len(names) > 0 {
				fmt.Fprintf(p.out, "Bedoel je: %s?\n", strings.Join(names, ", "))
			}
		}

	case StepActivities:
		text, err := p.line("Verloop van de dag (gebruik 'daarna' en 'tot slot')")
		if err != nil {
			return err
		}
		f.Data.ActivitiesGeneral = text
		p.check(text, false)

	case StepNeeds:
		none, err := p.yesNo("Geen bijzonderheden vandaag?")
		if err != nil {
			return err
		}
		f.SetNoSpecialties(none)
		if none {
			fmt.Fprintf(p.out, "Actie begeleider: %s\n", f.Data.NeedsAction)
			return nil
		}

		fmt.Fprintf(p.out, "Signaalwoorden: %s\n", strings.Join(validate.SignalSuggestions(), ", "))
		if f.Data.NeedsSignalsIndruk, err = p.line("Signalen, jouw indruk"); err != nil {
			return err
		}
		p.check(f.Data.NeedsSignalsIndruk, true)

		if f.Data.NeedsSignalsIndruk != "" {
			if f.Data.NeedsSignalsCamera, err = p.line("Signalen, wat zag of hoorde je"); err != nil {
				return err
			}
			p.check(f.Data.NeedsSignalsCamera, false)
		}

		if f.Data.NeedsWhat, err = p.line("Wat had het kind nodig"); err != nil {
			return err
		}
		p.check(f.Data.NeedsWhat, false)

		action, err := p.line("Wat deed jij (Enter voor de standaardzin)")
		if err != nil {
			return err
		}
		if strings.TrimSpace(action) == "" {
			action = DefaultNeedsAction
		}
		f.Data.NeedsAction = action
		p.check(action, false)

	case StepGoals:
		f.Data.Goals = []model.GoalEntry{{}}
		for i := 0; ; i++ {
			title, err := p.line(fmt.Sprintf("Doel %d, titel", i+1))
			if err != nil {
				return err
			}
			content, err := p.line(fmt.Sprintf("Doel %d, wat gebeurde er", i+1))
			if err != nil {
				return err
			}
			_ = f.SetGoal(i, model.GoalEntry{Title: title, Content: content})
			p.check(content, false)

			if len(f.Data.Goals) >= model.MaxGoals {
				return nil
			}
			more, err := p.yesNo("Nog een doel?")
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
			if err := f.AddGoal(); err != nil {
				return nil
			}
		}

	case StepIncidents:
		yes, err := p.yesNo("Was er een incident?")
		if err != nil {
			return err
		}
		if !yes {
			f.SetIncidentOption(IncidentNo)
			return nil
		}
		f.SetIncidentOption(IncidentYes)
		if f.Data.Incidents, err = p.line("Beschrijf het incident"); err != nil {
			return err
		}
		p.check(f.Data.Incidents, false)

	case StepExtraContext:
		text, err := p.line("Extra context (optioneel)")
		if err != nil {
			return err
		}
		f.Data.ExtraContext = text
		p.check(text, false)
		return p.reflect()
	}

	return nil
}

// reflect asks the optional personal reflection; it is not validated and not reported
func (p *Prompter) reflect() error {
	fmt.Fprintln(p.out, "Wat neem jij mee van vandaag? Alleen voor jezelf, komt niet in de rapportage.")
	for i, th := range reflectionThemes {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, th.Label)
	}

	for {
		answer, err := p.line("Thema (Enter om over te slaan)")
		if err != nil {
			return err
		}
		if answer == "" {
			return nil
		}
		id := strings.ToLower(answer)
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(reflectionThemes) {
			id = reflectionThemes[n-1].ID
		}
		if err := p.form.SetReflectionTheme(id); err == nil {
			break
		}
	}

	fmt.Fprintln(p.out, p.form.Data.ReflectionQuestion)
	text, err := p.line("Reflectie")
	if err != nil {
		return err
	}
	p.form.Data.Reflection = text
	return nil
}

func (p *Prompter) line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *Prompter) yesNo(label string) (bool, error) {
	for {
		answer, err := p.line(label + " (j/n)")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "j", "ja", "y", "yes":
			return true, nil
		case "n", "nee", "no":
			return false, nil
		}
	}
}

// check prints camera-language warnings; they never block the wizard
func (p *Prompter) check(text string, exempt bool) {
	for _, res := range validate.Validate(text, exempt) {
		rule, _ := validate.Lookup(res.Category)
		fmt.Fprintf(p.out, "  ⚠ %s (%s)\n", rule.Message, strings.Join(res.FlaggedWords, ", "))
		fmt.Fprintf(p.out, "    %s\n", rule.Tip)
	}
}

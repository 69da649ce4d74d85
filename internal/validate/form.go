package validate

import (
	"fmt"

	"github.com/ppiankov/dagrapport/internal/model"
)

// Field names as used by the wizard and in report flags
const (
	FieldActivitiesGeneral  = "activitiesGeneral"
	FieldNeedsSignalsIndruk = "needsSignalsIndruk"
	FieldNeedsSignalsCamera = "needsSignalsCamera"
	FieldNeedsWhat          = "needsWhat"
	FieldNeedsAction        = "needsAction"
	FieldIncidents          = "incidents"
	FieldExtraContext       = "extraContext"
)

// GoalContentField returns the field name of a goal's content
func GoalContentField(i int) string {
	return fmt.Sprintf("goal-content-%d", i)
}

type formField struct {
	name   string
	text   string
	exempt bool
}

// ValidateForm checks every free-text field of a form, in form order.
// Fields without findings are omitted.
func ValidateForm(data model.ReportData) []model.FieldFlags {
	fields := []formField{
		{FieldActivitiesGeneral, data.ActivitiesGeneral, false},
		{FieldNeedsSignalsIndruk, data.NeedsSignalsIndruk, true},
		{FieldNeedsSignalsCamera, data.NeedsSignalsCamera, false},
		{FieldNeedsWhat, data.NeedsWhat, false},
		{FieldNeedsAction, data.NeedsAction, false},
	}
	for i, g := range data.Goals {
		fields = append(fields, formField{GoalContentField(i), g.Content, false})
	}
	fields = append(fields,
		formField{FieldIncidents, data.Incidents, false},
		formField{FieldExtraContext, data.ExtraContext, false},
	)

	var flags []model.FieldFlags
	for _, f := range fields {
		if results := Validate(f.text, f.exempt); len(results) > 0 {
			flags = append(flags, model.FieldFlags{Field: f.name, Results: results})
		}
	}
	return flags
}

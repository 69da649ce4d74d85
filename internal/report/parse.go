package report

import (
	"strings"

	"github.com/ppiankov/dagrapport/internal/model"
)

// IncidentMarker flags a section that describes an incident
const IncidentMarker = "**INCIDENT**"

// Parse splits generated report text into blank-line separated sections.
// A section whose first line carries IncidentMarker is an incident section.
// A first line wrapped in ** becomes the section heading.
func Parse(text string) []model.Section {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var sections []model.Section
	for _, block := range strings.Split(text, "\n\n") {
		lines := strings.Split(block, "\n")
		first := strings.TrimSpace(lines[0])

		s := model.Section{
			Incident: strings.Contains(first, IncidentMarker),
			Lines:    []string{},
		}
		if IsBold(first) {
			s.Heading = StripBold(first)
			lines = lines[1:]
		}

		for _, l := range lines {
			if strings.TrimSpace(l) == "" {
				continue
			}
			s.Lines = append(s.Lines, strings.TrimRight(l, " \t"))
		}

		if s.Heading == "" && len(s.Lines) == 0 {
			continue
		}
		sections = append(sections, s)
	}

	return sections
}

// IsBold reports whether line is wrapped in ** markers
func IsBold(line string) bool {
	return len(line) >= 4 && strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**")
}

// StripBold removes every ** marker from line
func StripBold(line string) string {
	return strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
}

// HasIncident reports whether any section is an incident section
func HasIncident(sections []model.Section) bool {
	for _, s := range sections {
		if s.Incident {
			return true
		}
	}
	return false
}

package report

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	text := "**ALGEMEEN**\nSam kwam om 9 uur binnen.\nDaarna speelde Sam buiten.\n\n" +
		"**INCIDENT**\nSam gooide een beker.\n\n" +
		"**DOELEN**\n\n" +
		"**Doel 1: Samen spelen**\nWat gebeurde er bij dit doel:\n- Kind: Sam gaf de bal door.\n- Begeleider: Begeleider JK benoemde de beurt.\n"

	sections := Parse(text)
	if len(sections) != 4 {
		t.Fatalf("Expected 4 sections, got %d: %+v", len(sections), sections)
	}

	if sections[0].Heading != "ALGEMEEN" || len(sections[0].Lines) != 2 || sections[0].Incident {
		t.Errorf("Unexpected first section: %+v", sections[0])
	}
	if !sections[1].Incident || sections[1].Heading != "INCIDENT" {
		t.Errorf("Expected incident section, got %+v", sections[1])
	}
	if sections[2].Heading != "DOELEN" || len(sections[2].Lines) != 0 {
		t.Errorf("Expected empty DOELEN heading section, got %+v", sections[2])
	}
	want := []string{
		"Wat gebeurde er bij dit doel:",
		"- Kind: Sam gaf de bal door.",
		"- Begeleider: Begeleider JK benoemde de beurt.",
	}
	if sections[3].Heading != "Doel 1: Samen spelen" || !reflect.DeepEqual(sections[3].Lines, want) {
		t.Errorf("Unexpected goal section: %+v", sections[3])
	}
}

func TestParse_InlineIncident(t *testing.T) {
	sections := Parse("**INCIDENT** Sam viel van de schommel.")
	if len(sections) != 1 {
		t.Fatalf("Expected 1 section, got %d", len(sections))
	}
	if !sections[0].Incident {
		t.Error("Expected incident marker on the first line to flag the section")
	}
	if sections[0].Heading != "" {
		t.Errorf("Expected no heading for a non-bold line, got %q", sections[0].Heading)
	}
}

func TestParse_IncidentOnlyOnFirstLine(t *testing.T) {
	sections := Parse("**ALGEMEEN**\nEr was geen **INCIDENT** vandaag.")
	if sections[0].Incident {
		t.Error("Expected marker outside the first line to be ignored")
	}
}

func TestParse_Empty(t *testing.T) {
	for _, in := range []string{"", "\n\n", "  \n\n\n  "} {
		if got := Parse(in); len(got) != 0 {
			t.Errorf("Parse(%q): expected no sections, got %+v", in, got)
		}
	}
}

func TestParse_CRLF(t *testing.T) {
	sections := Parse("**ALGEMEEN**\r\nTekst\r\n\r\n**DOELEN**")
	if len(sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(sections))
	}
	if sections[0].Lines[0] != "Tekst" {
		t.Errorf("Expected carriage returns removed, got %q", sections[0].Lines[0])
	}
}

func TestIsBold(t *testing.T) {
	tests := map[string]bool{
		"**ALGEMEEN**": true,
		"**":           false,
		"****":         true,
		"**a** b":      false,
		"tekst":        false,
	}
	for in, want := range tests {
		if got := IsBold(in); got != want {
			t.Errorf("IsBold(%q): expected %v, got %v", in, want, got)
		}
	}
}

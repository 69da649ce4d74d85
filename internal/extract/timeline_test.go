package extract

import (
	"strings"
	"testing"

	"github.com/ppiankov/dagrapport/internal/model"
)

func TestSplitTimeline_ThreeParts(t *testing.T) {
	seg := SplitTimeline("We begonnen met spelen. Daarna aten we fruit. Tot slot gingen we naar huis.")

	want := model.TimelineSegments{
		Start: "We begonnen met spelen.",
		Mid:   "aten we fruit.",
		End:   "gingen we naar huis.",
	}
	if seg != want {
		t.Errorf("Expected %+v, got %+v", want, seg)
	}
}

func TestSplitTimeline_NoDelimiters(t *testing.T) {
	seg := SplitTimeline("  Alleen dit gebeurde er.  ")

	if seg.Start != "Alleen dit gebeurde er." {
		t.Errorf("Expected trimmed input as start, got %q", seg.Start)
	}
	if seg.Mid != "" || seg.End != "" {
		t.Errorf("Expected empty mid and end, got %q / %q", seg.Mid, seg.End)
	}
}

func TestSplitTimeline_OnlyMiddleMarker(t *testing.T) {
	seg := SplitTimeline("We maakten vuur. Vervolgens ruimden we op.")

	if seg.Start != "We maakten vuur." {
		t.Errorf("Unexpected start %q", seg.Start)
	}
	if seg.Mid != "ruimden we op." {
		t.Errorf("Unexpected mid %q", seg.Mid)
	}
	if seg.End != "" {
		t.Errorf("Expected empty end, got %q", seg.End)
	}
}

func TestSplitTimeline_EndMarkerWithoutMiddle(t *testing.T) {
	// Without a middle marker nothing is split, even if an end marker is present.
	seg := SplitTimeline("We wandelden. Tot slot dronken we thee.")

	if seg.Start != "We wandelden. Tot slot dronken we thee." {
		t.Errorf("Unexpected start %q", seg.Start)
	}
	if seg.Mid != "" || seg.End != "" {
		t.Errorf("Expected empty mid and end, got %q / %q", seg.Mid, seg.End)
	}
}

func TestSplitTimeline_EndMarkerBeforeMiddle(t *testing.T) {
	seg := SplitTimeline("Tot slot van de ochtend wandelden we. Daarna aten we.")

	if seg.Start != "Tot slot van de ochtend wandelden we." {
		t.Errorf("Unexpected start %q", seg.Start)
	}
	if seg.Mid != "aten we." || seg.End != "" {
		t.Errorf("Unexpected mid/end %q / %q", seg.Mid, seg.End)
	}
}

func TestSplitTimeline_OnlyFirstOccurrenceSplits(t *testing.T) {
	seg := SplitTimeline("Start. Daarna A, daarna B. Aan het einde C, tot slot D.")

	if seg.Start != "Start." {
		t.Errorf("Unexpected start %q", seg.Start)
	}
	if seg.Mid != "A, daarna B." {
		t.Errorf("Unexpected mid %q", seg.Mid)
	}
	if seg.End != "C, tot slot D." {
		t.Errorf("Unexpected end %q", seg.End)
	}
}

func TestSplitTimeline_WordBoundaries(t *testing.T) {
	tests := []struct {
		desc string
		text string
	}{
		{"daarnaast is not daarna", "Daarnaast speelden we dagelijks buiten."},
		{"dagelijks", "Dit doen we dagelijks."},
		{"totslot", "Het totslotwoord bestaat niet."},
		{"diacritic continuation", "Daarnaë gebeurde niets."},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			seg := SplitTimeline(tt.text)
			if seg.Start != strings.TrimSpace(tt.text) || seg.Mid != "" || seg.End != "" {
				t.Errorf("Expected no split for %q, got %+v", tt.text, seg)
			}
		})
	}
}

func TestSplitTimeline_CaseInsensitiveMarkers(t *testing.T) {
	seg := SplitTimeline("a DAARNA b AAN HET EINDE c")

	want := model.TimelineSegments{Start: "a", Mid: "b", End: "c"}
	if seg != want {
		t.Errorf("Expected %+v, got %+v", want, seg)
	}
}

func TestSplitTimeline_StartsWithMarker(t *testing.T) {
	seg := SplitTimeline("Daarna gingen we weg. Tot slot sliepen we.")

	want := model.TimelineSegments{Start: "", Mid: "gingen we weg.", End: "sliepen we."}
	if seg != want {
		t.Errorf("Expected %+v, got %+v", want, seg)
	}
}

func TestSplitTimeline_RoundTrip(t *testing.T) {
	middles := []string{"daarna", "Vervolgens"}
	ends := []string{"tot slot", "Aan het einde"}
	parts := [][3]string{
		{"We maakten vuur.", "We ruimden op.", "We zwaaiden."},
		{"Ochtend:\tkring", "lunch met fruit", "naar huis"},
		{"Eén", "twee", "drie"},
	}

	for _, p := range parts {
		for _, m := range middles {
			for _, e := range ends {
				input := p[0] + "  " + m + "\n" + p[1] + " " + e + "   " + p[2] + " "
				seg := SplitTimeline(input)

				got := seg.Start + " " + seg.Mid + " " + seg.End
				want := p[0] + " " + p[1] + " " + p[2]
				if got != want {
					t.Errorf("Round trip of %q: expected %q, got %q", input, want, got)
				}
			}
		}
	}
}

func TestApplyTimeline(t *testing.T) {
	data := model.ReportData{ActivitiesGeneral: "A. Daarna B. Tot slot C."}

	seg := ApplyTimeline(&data)

	if data.ActivitiesStart != "A." || data.ActivitiesMid != "B." || data.ActivitiesEnd != "C." {
		t.Errorf("Unexpected form segments: %q / %q / %q", data.ActivitiesStart, data.ActivitiesMid, data.ActivitiesEnd)
	}
	if seg.Start != data.ActivitiesStart {
		t.Error("Expected returned segments to match form fields")
	}
}

package extract

import (
	"strings"

	"github.com/ppiankov/dagrapport/internal/model"
	"github.com/ppiankov/dagrapport/internal/util"
)

// Connector words care workers are coached to use when narrating the day
var (
	middleMarkers = util.NewWordMatcher("daarna", "vervolgens")
	endMarkers    = util.NewWordMatcher("aan het einde", "tot slot")
)

// SplitTimeline partitions a day narrative into start, middle and end.
//
// Only the first middle marker and the first end marker after it split the text;
// later occurrences stay inside their segment. Markers never appear in the output.
func SplitTimeline(text string) model.TimelineSegments {
	loc := middleMarkers.FindFirstIndex(text)
	if loc == nil {
		return model.TimelineSegments{Start: strings.TrimSpace(text)}
	}

	start := text[:loc[0]]
	rest := strings.TrimSpace(middleMarkers.TrimLeading(text[loc[0]:]))

	mid, end := rest, ""
	if loc := endMarkers.FindFirstIndex(rest); loc != nil {
		mid = rest[:loc[0]]
		end = endMarkers.TrimLeading(rest[loc[0]:])
	}

	return model.TimelineSegments{
		Start: strings.TrimSpace(start),
		Mid:   strings.TrimSpace(mid),
		End:   strings.TrimSpace(end),
	}
}

// ApplyTimeline stores the split of the day narrative on the form
func ApplyTimeline(data *model.ReportData) model.TimelineSegments {
	seg := SplitTimeline(data.ActivitiesGeneral)
	data.ActivitiesStart = seg.Start
	data.ActivitiesMid = seg.Mid
	data.ActivitiesEnd = seg.End
	return seg
}

package model

import "strings"

// MaxGoals is the number of goal entries a form can hold
const MaxGoals = 3

// GoalEntry is one development goal with what was observed for it
type GoalEntry struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// Complete reports whether both title and content are filled in
func (g GoalEntry) Complete() bool {
	return strings.TrimSpace(g.Title) != "" && strings.TrimSpace(g.Content) != ""
}

// ReportData holds every value collected by the wizard for one daily report
type ReportData struct {
	ChildName          string      `json:"childName" yaml:"childName"`
	BegeleiderInitials string      `json:"begeleiderInitials" yaml:"begeleiderInitials"`
	ActivitiesGeneral  string      `json:"activitiesGeneral" yaml:"activitiesGeneral"`
	ActivitiesStart    string      `json:"activitiesStart" yaml:"activitiesStart"`
	ActivitiesMid      string      `json:"activitiesMid" yaml:"activitiesMid"`
	ActivitiesEnd      string      `json:"activitiesEnd" yaml:"activitiesEnd"`
	NeedsSignalsIndruk string      `json:"needsSignalsIndruk" yaml:"needsSignalsIndruk"`
	NeedsSignalsCamera string      `json:"needsSignalsCamera" yaml:"needsSignalsCamera"`
	NeedsWhat          string      `json:"needsWhat" yaml:"needsWhat"`
	NeedsAction        string      `json:"needsAction" yaml:"needsAction"`
	Goals              []GoalEntry `json:"goals" yaml:"goals"`
	Incidents          string      `json:"incidents" yaml:"incidents"`
	ExtraContext       string      `json:"extraContext" yaml:"extraContext"`
	// Reflection is the care worker's own note; it is never sent to the model
	Reflection         string      `json:"reflection" yaml:"reflection"`
	ReflectionQuestion string      `json:"reflectionQuestion" yaml:"reflectionQuestion"`
}

// NewReportData returns an empty form with a single blank goal
func NewReportData() ReportData {
	return ReportData{
		Goals: []GoalEntry{{}},
	}
}

// CompleteGoals returns the goals that have both a title and content
func (d ReportData) CompleteGoals() []GoalEntry {
	var goals []GoalEntry
	for _, g := range d.Goals {
		if g.Complete() {
			goals = append(goals, g)
		}
	}
	return goals
}

// HasTimeline reports whether the narrative has already been split
func (d ReportData) HasTimeline() bool {
	return d.ActivitiesStart != "" || d.ActivitiesMid != "" || d.ActivitiesEnd != ""
}

// TimelineSegments is the chronological split of a single narrative
type TimelineSegments struct {
	Start string `json:"start"`
	Mid   string `json:"mid"`
	End   string `json:"end"`
}

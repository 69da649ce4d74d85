package model

import "time"

// Report represents one generated daily report together with its inputs
type Report struct {
	ID        string    `json:"id"`         // Random identifier for this generation
	CreatedAt time.Time `json:"created_at"` // When the report was generated

	Data     ReportData       `json:"data"`            // Finalized form data sent to the model
	Timeline TimelineSegments `json:"timeline"`        // Split of the day narrative
	Flags    []FieldFlags     `json:"flags,omitempty"` // Camera-language warnings per field

	Text     string    `json:"text,omitempty"`     // Markdown report as returned by the model
	Sections []Section `json:"sections,omitempty"` // Parsed sections of Text

	LLM *LLMInfo `json:"llm,omitempty"` // Which model produced Text (nil when generation is disabled)
}

// Section is one blank-line separated block of a generated report
type Section struct {
	Heading  string   `json:"heading,omitempty"` // Text of a **bold** first line, without markers
	Lines    []string `json:"lines"`             // Remaining non-empty lines
	Incident bool     `json:"incident"`          // First line carries the **INCIDENT** marker
}

// LLMInfo records the provider side of a generation
type LLMInfo struct {
	Provider   string   `json:"provider"`
	Model      string   `json:"model,omitempty"`
	TokensUsed int      `json:"tokens_used,omitempty"`
	Cached     bool     `json:"cached"`
	Warnings   []string `json:"warnings,omitempty"`
}

// FlagCount returns the total number of flagged words across all fields
func (r *Report) FlagCount() int {
	count := 0
	for _, f := range r.Flags {
		for _, res := range f.Results {
			count += len(res.FlaggedWords)
		}
	}
	return count
}

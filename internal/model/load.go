package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadReportData reads a form from a YAML or JSON file
func LoadReportData(path string) (ReportData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ReportData{}, fmt.Errorf("read form: %w", err)
	}
	return ParseReportData(raw, filepath.Ext(path))
}

// ParseReportData decodes a form; ext selects the format (".json", otherwise YAML)
func ParseReportData(raw []byte, ext string) (ReportData, error) {
	data := NewReportData()
	data.Goals = nil

	var err error
	if strings.EqualFold(ext, ".json") {
		err = json.Unmarshal(raw, &data)
	} else {
		err = yaml.Unmarshal(raw, &data)
	}
	if err != nil {
		return ReportData{}, fmt.Errorf("decode form: %w", err)
	}

	if len(data.Goals) == 0 {
		data.Goals = []GoalEntry{{}}
	}
	return data, nil
}

// Package result models benchmark-result documents and flattens them
// into storage-ready rows.
package result

import (
	"encoding/json"
	"time"
)

// ResultDocument is one parsed benchmark-result file. It is never
// mutated after parsing.
type ResultDocument struct {
	Title        string                      `json:"title"`
	LastModified string                      `json:"last_modified"`
	Results      map[string]ResultEntry      `json:"results"`
	Systems      map[string]SystemDescriptor `json:"systems"`
}

// ResultEntry is one benchmark test's results within a document. The
// nested Results map is keyed by system identifier.
type ResultEntry struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Scale       string                  `json:"scale"`
	AppVersion  string                  `json:"app_version"`
	Identifier  string                  `json:"identifier"`
	Results     map[string]SystemResult `json:"results"`
}

// SystemResult holds the measurement for one system. Value is nil when
// the metric was not collected, which is valid data absence rather than
// an error.
type SystemResult struct {
	Value *float64 `json:"value"`
}

// SystemDescriptor carries the hardware and software facts for one
// benchmark run target, nested the way the result files emit them.
type SystemDescriptor struct {
	Hardware HardwareInfo `json:"hardware"`
	Software SoftwareInfo `json:"software"`
}

// HardwareInfo is the hardware half of a system descriptor.
type HardwareInfo struct {
	Processor string `json:"Processor"`
	Memory    string `json:"Memory"`
	Disk      string `json:"Disk"`
	Graphics  string `json:"Graphics"`
	Network   string `json:"Network"`
}

// SoftwareInfo is the software half of a system descriptor.
type SoftwareInfo struct {
	OS     string `json:"OS"`
	Kernel string `json:"Kernel"`
}

// Parse decodes one result file. The name is used in errors only.
func Parse(name string, data []byte) (*ResultDocument, error) {
	var doc ResultDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{File: name, Err: err}
	}

	return &doc, nil
}

// timestampLayouts are the accepted spellings of last_modified.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp parses last_modified against the accepted layouts.
func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}

// validate checks that the descriptor carries every field the row
// schema needs.
func (s *SystemDescriptor) validate(title string) error {
	fields := []struct {
		name  string
		value string
	}{
		{"hardware.Processor", s.Hardware.Processor},
		{"hardware.Memory", s.Hardware.Memory},
		{"hardware.Disk", s.Hardware.Disk},
		{"hardware.Graphics", s.Hardware.Graphics},
		{"hardware.Network", s.Hardware.Network},
		{"software.OS", s.Software.OS},
		{"software.Kernel", s.Software.Kernel},
	}

	for _, f := range fields {
		if f.value == "" {
			return &IncompleteDocumentError{
				Title:  title,
				Reason: "system descriptor missing " + f.name,
			}
		}
	}

	return nil
}

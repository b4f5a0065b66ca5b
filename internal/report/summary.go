package report

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/specialistvlad/signalgrid/internal/executor"
)

// RunSummary is the JSON document written next to the tables.
type RunSummary struct {
	RunID    string           `json:"runId"`
	Strategy string           `json:"strategy"`
	Symbol   string           `json:"symbol"`
	Bars     int              `json:"bars"`
	Entries  int              `json:"entrySignals"`
	Exits    int              `json:"exitSignals"`
	Rejected int              `json:"rejectedEntries"`
	Summary  executor.Summary `json:"summary"`
}

// WriteSummaryJSON writes s as indented JSON.
func WriteSummaryJSON(w io.Writer, s RunSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

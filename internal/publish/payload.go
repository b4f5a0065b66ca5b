package publish

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/specialistvlad/signalgrid/internal/executor"
)

// Payload is the body of the result event.
type Payload struct {
	RunID       string           `json:"runId"`
	Symbol      string           `json:"symbol"`
	Summary     executor.Summary `json:"summary"`
	CompletedAt time.Time        `json:"completedAt"`
}

// NewPayload builds a payload stamped with the current time.
func NewPayload(runID, symbol string, summary executor.Summary) Payload {
	return Payload{
		RunID:       runID,
		Symbol:      symbol,
		Summary:     summary,
		CompletedAt: time.Now().UTC(),
	}
}

// toMap converts the payload into the generic JSON shape the socket.io
// encoder expects.
func (p Payload) toMap() (map[string]any, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

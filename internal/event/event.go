package event

import (
	"time"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/hepmc"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/record"
)

// Event is the canonical input model for all incoming generator events.
type Event struct {
	ID         string            `json:"id"`
	Run        uint64            `json:"run"`
	Lumi       uint64            `json:"lumi"`
	Number     uint64            `json:"number"`
	ReceivedAt time.Time         `json:"-"`
	GenEvent   *hepmc.GenEvent   `json:"gen_event"`
	Meta       map[string]string `json:"meta,omitempty"` // campaign, dataset, etc.
}

// Result is the outcome of processing a single event.
type Result struct {
	EventID    string          `json:"event_id"`
	Run        uint64          `json:"run"`
	Lumi       uint64          `json:"lumi"`
	Number     uint64          `json:"number"`
	StreamID   int             `json:"stream_id"`
	DurationMs int64           `json:"duration_ms"`
	Outputs    []record.Output `json:"outputs"`
	Error      string          `json:"error,omitempty"`
}

// OK reports whether every module succeeded.
func (r *Result) OK() bool { return r.Error == "" }

package engine

import (
	"fmt"

	"github.com/SaiNageswarS/spec-core/schema"
)

// Snapshot is one observable view of a run, emitted after every node
// transition.
type Snapshot struct {
	RunID          string
	Phase          string
	Progress       int
	SourceStatuses map[schema.SourceKey]schema.SourceStatus
	Done           bool
}

// ProgressReporter receives snapshots as the run advances. Implementations
// must not block the driver.
type ProgressReporter interface {
	Send(snapshot *Snapshot) error
}

// NoOpProgressReporter drops every snapshot.
type NoOpProgressReporter struct{}

func (r *NoOpProgressReporter) Send(*Snapshot) error { return nil }

// ChannelReporter forwards snapshots to a buffered channel. When the consumer
// stops draining, snapshots are dropped instead of stalling the run.
type ChannelReporter struct {
	ch chan *Snapshot
}

func NewChannelReporter(buffer int) *ChannelReporter {
	return &ChannelReporter{ch: make(chan *Snapshot, buffer)}
}

func (r *ChannelReporter) Chan() <-chan *Snapshot {
	return r.ch
}

func (r *ChannelReporter) Send(snapshot *Snapshot) error {
	select {
	case r.ch <- snapshot:
		return nil
	default:
		return fmt.Errorf("snapshot dropped, consumer not draining")
	}
}

func (r *ChannelReporter) Close() {
	close(r.ch)
}

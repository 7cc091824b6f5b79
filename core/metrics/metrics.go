// Package metrics defines the observability sink used by the schedule
// engine's callers. The engine itself stays pure; commands and HTTP
// handlers record events after each operation.
package metrics

// ExpansionEvent captures one annual expansion of a schedule.
type ExpansionEvent struct {
	Schedule string
	Days     int
	Timestep int
}

// CompactionEvent captures one calendar compaction of a schedule.
type CompactionEvent struct {
	Schedule        string
	WeekPatterns    int
	TimelineEntries int
}

// Sink records schedule engine events for observability purposes.
type Sink interface {
	RecordExpansion(ev ExpansionEvent) error
	RecordCompaction(ev CompactionEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordExpansion(ExpansionEvent) error   { return nil }
func (NopSink) RecordCompaction(CompactionEvent) error { return nil }

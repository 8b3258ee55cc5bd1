package driver

import "time"

// Stage names a step of the per-document pipeline. The values double as
// phase names in timing reports.
type Stage string

const (
	StageLoad     Stage = "load"
	StageAnalyze  Stage = "sema"
	StageOptimize Stage = "opt"
	StageGenerate Stage = "codegen"
	StageWrite    Stage = "write"
)

type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event is a progress update for one document. The last pipeline event of
// a document has no Stage and carries the total Elapsed time.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Elapsed time.Duration
}

// ProgressSink receives events from every worker goroutine at once.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink sends each event on Ch, blocking until it is received.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

// Emit delivers ev to sink when there is one.
func Emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}

package trace

import "errors"

// MultiTracer forwards every event to several tracers. Its level is the
// most verbose level among them; each member still filters on its own.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

// NewMultiTracer drops nil and disabled members.
func NewMultiTracer(tracers ...Tracer) *MultiTracer {
	m := &MultiTracer{tracers: make([]Tracer, 0, len(tracers))}
	for _, t := range tracers {
		if t == nil || !t.Enabled() {
			continue
		}
		m.tracers = append(m.tracers, t)
		m.level = max(m.level, t.Level())
	}
	return m
}

func (m *MultiTracer) Emit(ev *Event) {
	for _, t := range m.tracers {
		t.Emit(ev)
	}
}

func (m *MultiTracer) Flush() error {
	var errs []error
	for _, t := range m.tracers {
		errs = append(errs, t.Flush())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Close() error {
	var errs []error
	for _, t := range m.tracers {
		errs = append(errs, t.Close())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Level() Level  { return m.level }
func (m *MultiTracer) Enabled() bool { return len(m.tracers) > 0 }

// Ring returns the first ring member, if any.
func (m *MultiTracer) Ring() (*RingTracer, bool) {
	for _, t := range m.tracers {
		if r, ok := t.(*RingTracer); ok {
			return r, true
		}
	}
	return nil, false
}

package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// Format selects how events are rendered.
type Format uint8

const (
	FormatAuto   Format = iota // decided by the output file name
	FormatText                 // one indented line per event
	FormatNDJSON               // one JSON object per line
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("unknown trace format %q (want auto, text or ndjson)", s)
}

// formatFor resolves FormatAuto from an output path.
func formatFor(f Format, path string) Format {
	if f != FormatAuto {
		return f
	}
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".json") {
		return FormatNDJSON
	}
	return FormatText
}

var epoch = time.Now()

// FormatEvent renders ev as one line including the trailing newline.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendJSON(nil, ev)
	}
	return appendText(nil, ev)
}

type record struct {
	Time   string            `json:"time"`
	Seq    uint64            `json:"seq"`
	Kind   string            `json:"kind"`
	Scope  string            `json:"scope"`
	Span   uint64            `json:"span_id,omitempty"`
	Parent uint64            `json:"parent_id,omitempty"`
	Name   string            `json:"name"`
	Detail string            `json:"detail,omitempty"`
	DurUS  int64             `json:"dur_us,omitempty"`
	Extra  map[string]string `json:"extra,omitempty"`
}

func appendJSON(dst []byte, ev *Event) []byte {
	data, err := json.Marshal(record{
		Time:   ev.Time.Format(time.RFC3339Nano),
		Seq:    ev.Seq,
		Kind:   ev.Kind.String(),
		Scope:  ev.Scope.String(),
		Span:   ev.SpanID,
		Parent: ev.ParentID,
		Name:   ev.Name,
		Detail: ev.Detail,
		DurUS:  ev.Dur.Microseconds(),
		Extra:  ev.Extra,
	})
	if err != nil {
		data = fmt.Appendf(nil, `{"kind":%q,"name":%q}`, ev.Kind, ev.Name)
	}
	dst = append(dst, data...)
	return append(dst, '\n')
}

var marks = [...]string{KindSpanBegin: "→", KindSpanEnd: "←", KindPoint: "•"}

// appendText renders `[+12.345ms] <indent><mark> name (detail) 1.2ms {k=v}`.
// Indentation follows the scope, not the actual nesting.
func appendText(dst []byte, ev *Event) []byte {
	rel := ev.Time.Sub(epoch)
	if ev.Time.IsZero() || rel < 0 {
		rel = 0
	}
	dst = fmt.Appendf(dst, "[+%9.3fms] ", float64(rel.Microseconds())/1000)
	if ev.Scope > ScopeDriver {
		dst = append(dst, strings.Repeat("  ", int(ev.Scope-ScopeDriver))...)
	}
	mark := "?"
	if int(ev.Kind) < len(marks) && marks[ev.Kind] != "" {
		mark = marks[ev.Kind]
	}
	dst = append(dst, mark...)
	dst = append(dst, ' ')
	dst = append(dst, ev.Name...)
	if ev.Detail != "" {
		dst = fmt.Appendf(dst, " (%s)", ev.Detail)
	}
	if ev.Kind == KindSpanEnd {
		dst = fmt.Appendf(dst, " %s", ev.Dur.Round(time.Microsecond))
	}
	if len(ev.Extra) > 0 {
		dst = append(dst, " {"...)
		for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			dst = append(dst, k...)
			dst = append(dst, '=')
			dst = append(dst, ev.Extra[k]...)
		}
		dst = append(dst, '}')
	}
	return append(dst, '\n')
}

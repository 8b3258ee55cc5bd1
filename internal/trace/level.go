package trace

import (
	"fmt"
	"strings"
)

// Level controls how fine-grained the recorded events are.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // command spans only, enough to see what failed
	LevelPhase        // adds pass spans
	LevelDetail       // adds file spans
	LevelDebug        // adds node points
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// ceiling is the finest scope each level lets through.
var ceiling = [...]Scope{LevelError: ScopeDriver, LevelPhase: ScopePass, LevelDetail: ScopeFile, LevelDebug: ScopeNode}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel reads a level name, ignoring case.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("unknown trace level %q (want one of %s)", s, strings.Join(levelNames[:], ", "))
}

// ShouldEmit reports whether events of the given scope are recorded at l.
func (l Level) ShouldEmit(scope Scope) bool {
	if scope == 0 || int(l) >= len(ceiling) {
		return false
	}
	return scope <= ceiling[l]
}

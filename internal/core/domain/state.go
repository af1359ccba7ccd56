package domain

import "strings"

// State is a step of the orchestrator state machine.
type State string

const (
	// StateChecking computes the fingerprint and looks for its marker.
	StateChecking State = "checking"
	// StateCacheHit means the marker exists and the builder is skipped.
	StateCacheHit State = "cache_hit"
	// StateCleaning removes stale entries of the unit before a rebuild.
	StateCleaning State = "cleaning"
	// StateBuilding invokes the builder.
	StateBuilding State = "building"
	// StateRecording writes the marker for the new fingerprint.
	StateRecording State = "recording"
	// StateDone is the terminal state of a successful run.
	StateDone State = "done"
	// StateFailed is the terminal state of a failed run.
	StateFailed State = "failed"
)

// IsTerminal checks if a state ends a run (Done or Failed).
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

// NormalizeState converts a string to a State, defaulting to checking if unknown.
func NormalizeState(s string) State {
	switch st := State(strings.ToLower(s)); st {
	case StateChecking, StateCacheHit, StateCleaning, StateBuilding, StateRecording, StateDone, StateFailed:
		return st
	default:
		return StateChecking
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

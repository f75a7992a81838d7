// Package ports defines the interfaces shared between the event log and its adapters.
package ports

import "time"

// LogLevel represents the severity of a user-facing status line.
type LogLevel int

const (
	// LevelInfo is for progress and status messages.
	LevelInfo LogLevel = iota
	// LevelSuccess marks a completed step.
	LevelSuccess
	// LevelError reports a failure to the user.
	// It is a display label only and never aborts the caller.
	LevelError
	// LevelCustom is used for lines appended with an explicit label.
	LevelCustom
)

// Catalog keys resolved for each level label.
const (
	KeyInfo    = "logger.info"
	KeySuccess = "logger.success"
	KeyError   = "logger.error"
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	case LevelCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Key returns the catalog key of the level's label.
// LevelCustom has no key.
func (l LogLevel) Key() string {
	switch l {
	case LevelInfo:
		return KeyInfo
	case LevelSuccess:
		return KeySuccess
	case LevelError:
		return KeyError
	default:
		return ""
	}
}

// LookupLogLevel parses one of the leveled names (info, success, error).
func LookupLogLevel(s string) (LogLevel, bool) {
	switch s {
	case "info":
		return LevelInfo, true
	case "success":
		return LevelSuccess, true
	case "error":
		return LevelError, true
	default:
		return LevelInfo, false
	}
}

// Entry is one appended line of the event log.
type Entry struct {
	// Seq is the 1-based append position. It keeps counting when
	// old entries are dropped by a retention limit.
	Seq int `json:"seq"`

	Level   LogLevel `json:"-"`
	Label   string   `json:"label"`
	Message string   `json:"message"`

	// Line is the formatted record string "[<Label>]: <Message>".
	Line string `json:"line"`

	// Locale is the active locale when the entry was appended.
	Locale string    `json:"locale"`
	At     time.Time `json:"at"`
}

// Logger is the leveled, translated status log.
type Logger interface {
	// Log appends a line with an explicit label.
	Log(label, message string)

	// Info appends a line labelled with the translated info label.
	Info(message string)

	// Success appends a line labelled with the translated success label.
	Success(message string)

	// Error appends a line labelled with the translated error label.
	// It reports to the user only; nothing is returned or raised.
	Error(message string)
}

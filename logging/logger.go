package logging

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EnvLogLevel is the name of the environment variable to change the logging
// level.
const EnvLogLevel = "GLOG"

const defaultLevel = zerolog.Disabled

const componentField = "component"

var (
	logout = zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		// Format the component name
		FormatPrepare: func(e map[string]interface{}) error {
			e[componentField] = fmt.Sprintf("[%s]", e[componentField])
			return nil
		},
		// Change the order in which things appear
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			componentField,
			zerolog.MessageFieldName,
		},
		// Prevent the component from being printed again
		FieldsExclude: []string{componentField},
	}

	levelMu sync.RWMutex
	level   = ParseLevel(os.Getenv(EnvLogLevel))
)

// ParseLevel converts the value of the GLOG variable (or of a command line
// flag) into a zerolog level. Unknown values give the default level.
func ParseLevel(lvl string) zerolog.Level {
	switch lvl {
	case "error":
		return zerolog.ErrorLevel
	case "warn":
		return zerolog.WarnLevel
	case "info":
		return zerolog.InfoLevel
	case "debug":
		return zerolog.DebugLevel
	case "trace":
		return zerolog.TraceLevel
	case "no":
		return zerolog.Disabled
	default:
		return defaultLevel
	}
}

// SetLevel overrides the level of the loggers returned by GetLogger from now
// on.
func SetLevel(l zerolog.Level) {
	levelMu.Lock()
	defer levelMu.Unlock()
	level = l
}

// GetLogger returns a formatted logger tagged with the given component name
func GetLogger(component string) zerolog.Logger {
	levelMu.RLock()
	defer levelMu.RUnlock()

	return zerolog.New(logout).
		Level(level).
		With().
		Timestamp().
		Str(componentField, component).
		Logger()
}

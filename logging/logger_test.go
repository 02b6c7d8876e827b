package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	require.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("info"))
	require.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	require.Equal(t, zerolog.TraceLevel, ParseLevel("trace"))
	require.Equal(t, zerolog.Disabled, ParseLevel("no"))
	require.Equal(t, defaultLevel, ParseLevel(""))
	require.Equal(t, defaultLevel, ParseLevel("verbose"))
}

func TestGetLogger_Level(t *testing.T) {
	SetLevel(zerolog.DebugLevel)
	defer SetLevel(defaultLevel)

	logger := GetLogger("test")
	require.Equal(t, zerolog.DebugLevel, logger.GetLevel())

	SetLevel(zerolog.Disabled)
	logger = GetLogger("test")
	require.Equal(t, zerolog.Disabled, logger.GetLevel())
}

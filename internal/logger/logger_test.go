package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesJSONAtLevel(t *testing.T) {
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "warn", Output: &buf})

	log.Info().Msg("ignored")
	log.Warn().Str("entity", "cut").Msg("kept")

	out := buf.String()
	require.NotContains(t, out, "ignored")
	require.Contains(t, out, `"entity":"cut"`)
	require.Contains(t, out, `"message":"kept"`)
}

func TestInit_OnlyFirstCallWins(t *testing.T) {
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})

	l := Get()
	l.Info().Msg("hello")

	require.Contains(t, first.String(), "hello")
	require.Empty(t, second.String())
}

func TestGet_BeforeInitIsNop(t *testing.T) {
	Reset()
	l := Get()
	require.Equal(t, zerolog.Disabled, l.GetLevel())
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		require.Equal(t, want, ParseLevel(in), in)
	}
}

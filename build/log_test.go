package build

import (
	"testing"

	"github.com/btcsuite/btclog"
	"github.com/stretchr/testify/require"
)

// newTestLogWriter returns a log writer with a fixed set of registered
// subsystems.
func newTestLogWriter(subsystems ...string) *RotatingLogWriter {
	w := NewRotatingLogWriter()
	for _, subsystem := range subsystems {
		w.RegisterSubLogger(subsystem, w.GenSubLogger(subsystem))
	}

	return w
}

// TestParseAndSetDebugLevels checks the global and per-subsystem debug level
// syntax.
func TestParseAndSetDebugLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     string
		expErr    string
		expLevels map[string]btclog.Level
	}{
		{
			name:  "global level",
			level: "debug",
			expLevels: map[string]btclog.Level{
				"HDKD": btclog.LevelDebug,
				"REGK": btclog.LevelDebug,
			},
		},
		{
			name:  "global and subsystem levels",
			level: "info,REGK=trace",
			expLevels: map[string]btclog.Level{
				"HDKD": btclog.LevelInfo,
				"REGK": btclog.LevelTrace,
			},
		},
		{
			name:  "subsystem only",
			level: "HDKD=off",
			expLevels: map[string]btclog.Level{
				"HDKD": btclog.LevelOff,
				"REGK": btclog.LevelInfo,
			},
		},
		{
			name:   "invalid global level",
			level:  "loud",
			expErr: "the specified debug level [loud] is invalid",
		},
		{
			name:   "unknown subsystem",
			level:  "NOPE=debug",
			expErr: "the specified subsystem [NOPE] is invalid",
		},
		{
			name:   "invalid subsystem level",
			level:  "HDKD=loud",
			expErr: "the specified debug level [loud] is invalid",
		},
		{
			name:   "malformed pair",
			level:  "info,HDKD=debug=trace",
			expErr: "invalid subsystem/level pair",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := newTestLogWriter("HDKD", "REGK")

			err := ParseAndSetDebugLevels(test.level, w)
			if test.expErr != "" {
				require.ErrorContains(t, err, test.expErr)
				return
			}
			require.NoError(t, err)

			for subsystem, level := range test.expLevels {
				logger := w.SubLoggers()[subsystem]
				require.Equal(t, level, logger.Level(), subsystem)
			}
		})
	}
}

// TestParseAndSetDebugLevelsAtomic asserts that an invalid debug level string
// leaves every level untouched.
func TestParseAndSetDebugLevelsAtomic(t *testing.T) {
	t.Parallel()

	w := newTestLogWriter("HDKD", "REGK")

	err := ParseAndSetDebugLevels("trace,HDKD=debug,NOPE=debug", w)
	require.Error(t, err)

	for _, logger := range w.SubLoggers() {
		require.Equal(t, btclog.LevelInfo, logger.Level())
	}
}

// TestSupportedSubsystems asserts that the registered subsystems are reported
// in sorted order.
func TestSupportedSubsystems(t *testing.T) {
	t.Parallel()

	w := newTestLogWriter("SDFP", "ADHK", "HDKD")
	require.Equal(
		t, []string{"ADHK", "HDKD", "SDFP"}, w.SupportedSubsystems(),
	)
}

// TestNewSubLoggerDisabledByDefault asserts that library packages stay silent
// unless a sub-logger constructor is supplied.
func TestNewSubLoggerDisabledByDefault(t *testing.T) {
	t.Parallel()

	if LoggingType == LogTypeStdOut {
		t.Skip("stdlog builds always log to stdout")
	}

	require.Equal(t, btclog.Disabled, NewSubLogger("TEST", nil))

	w := NewRotatingLogWriter()
	logger := NewSubLogger("TEST", w.GenSubLogger)
	require.NotEqual(t, btclog.Disabled, logger)
}

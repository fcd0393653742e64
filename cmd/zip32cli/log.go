package main

import (
	"github.com/btcsuite/btclog"
	"github.com/lightningnetwork/zip32/adhoc"
	"github.com/lightningnetwork/zip32/build"
	"github.com/lightningnetwork/zip32/fingerprint"
	"github.com/lightningnetwork/zip32/hdkd"
	"github.com/lightningnetwork/zip32/registered"
	"github.com/urfave/cli"
)

// Subsystem defines the logging code for the command line tool.
const Subsystem = "ZCLI"

var (
	// logWriter is the shared backend of every subsystem logger. Output
	// goes to stderr, so that stdout only carries command results, and to
	// the log file once setupLogging has initialized the rotator.
	logWriter = build.NewRotatingLogWriter()

	log = addSubLogger(Subsystem, nil)
)

// Route the logging of every library package through the shared backend.
func init() {
	addSubLogger(hdkd.Subsystem, hdkd.UseLogger)
	addSubLogger(adhoc.Subsystem, adhoc.UseLogger)
	addSubLogger(registered.Subsystem, registered.UseLogger)
	addSubLogger(fingerprint.Subsystem, fingerprint.UseLogger)
}

// addSubLogger creates a logger for the given subsystem, registers it so its
// level can be set through --debuglevel, and hands it to useLogger if given.
func addSubLogger(subsystem string,
	useLogger func(btclog.Logger)) btclog.Logger {

	logger := build.NewSubLogger(subsystem, logWriter.GenSubLogger)
	logWriter.RegisterSubLogger(subsystem, logger)

	if useLogger != nil {
		useLogger(logger)
	}

	return logger
}

// setupLogging applies the logging flags. It runs before any command.
func setupLogging(ctx *cli.Context) error {
	if logFile := ctx.String("logfile"); logFile != "" {
		cfg := &build.FileLoggerConfig{
			Compressor:     ctx.String("logcompressor"),
			MaxLogFiles:    ctx.Int("maxlogfiles"),
			MaxLogFileSize: ctx.Int("maxlogfilesize"),
		}

		if err := logWriter.InitLogRotator(cfg, logFile); err != nil {
			return err
		}
	}

	err := build.ParseAndSetDebugLevels(
		ctx.String("debuglevel"), logWriter,
	)
	if err != nil {
		return err
	}

	log.Debugf("Running %v build", build.Deployment)
	log.Debugf("Logging initialized for subsystems %v",
		logWriter.SupportedSubsystems())

	return nil
}

// logClosure is used to provide a closure over expensive logging operations so
// don't have to be performed when the logging level doesn't warrant it.
type logClosure func() string

// String invokes the underlying function and returns the result.
func (c logClosure) String() string {
	return c()
}

// newLogClosure returns a new closure over a function that returns a string
// which itself provides a Stringer interface so that it can be used with the
// logging system.
func newLogClosure(c func() string) logClosure {
	return logClosure(c)
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/lightningnetwork/zip32/build"
	"github.com/urfave/cli"
	"golang.org/x/term"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[zip32cli] %v\n", err)
	os.Exit(1)
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

// newApp assembles the command line application. Command results are written
// to the app's Writer.
func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "zip32cli"
	app.Usage = "derive hardened-only keys and seed fingerprints"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name: "debuglevel",
			Usage: "Logging level for all subsystems {trace, debug, " +
				"info, warn, error, critical} -- You may also " +
				"specify <subsystem>=<level>,<subsystem2>=" +
				"<level>,... to set the log level for " +
				"individual subsystems.",
			Value: build.DefaultDebugLevel(),
		},
		cli.StringFlag{
			Name:      "logfile",
			Usage:     "If set, also write logs to this file.",
			TakesFile: true,
		},
		cli.IntFlag{
			Name:  "maxlogfiles",
			Usage: "Maximum number of rolled log files to keep.",
			Value: build.DefaultMaxLogFiles,
		},
		cli.IntFlag{
			Name:  "maxlogfilesize",
			Usage: "Maximum log file size in MB before rolling.",
			Value: build.DefaultMaxLogFileSize,
		},
		cli.StringFlag{
			Name: "logcompressor",
			Usage: "Compression algorithm used for rolled log " +
				"files {gzip, zstd}.",
			Value: build.Gzip,
		},
	}
	app.Before = setupLogging
	app.After = func(_ *cli.Context) error {
		return logWriter.Close()
	}
	app.Commands = []cli.Command{
		fingerprintCommand,
		parseFingerprintCommand,
		adhocCommand,
		registeredCommand,
		cryptovalueCommand,
	}

	return app
}

// readPassword reads a secret from the terminal. This requires there to be an
// actual TTY so passing in a secret from stdin won't work.
func readPassword(text string) ([]byte, error) {
	fmt.Fprint(os.Stderr, text)

	// The variable syscall.Stdin is of a different type in the Windows API
	// that's why we need the explicit cast.
	pw, err := term.ReadPassword(int(syscall.Stdin)) // nolint:unconvert
	fmt.Fprintln(os.Stderr)
	return pw, err
}

func printJSON(w io.Writer, resp interface{}) {
	b, err := json.Marshal(resp)
	if err != nil {
		fatal(err)
	}

	var out bytes.Buffer
	_ = json.Indent(&out, b, "", "\t")
	out.WriteString("\n")
	_, _ = out.WriteTo(w)
}

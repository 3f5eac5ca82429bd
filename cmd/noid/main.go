package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/noid/internal/debug"
	"github.com/standardbeagle/noid/internal/version"
	"github.com/standardbeagle/noid/pkg/noid"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 22 // EINVAL
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)
	err := app.Run(args)
	if err == nil {
		return exitOK
	}

	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		if msg := ec.Error(); msg != "" {
			fmt.Fprintln(stderr, msg)
		}
		return ec.ExitCode()
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return exitFailure
}

func newApp(stdout, stderr io.Writer) *cli.App {
	// -v is verbose here, so the version flag keeps only its long form
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}

	return &cli.App{
		Name:                   "noid",
		Usage:                  "generate nice and opaque identifiers",
		ArgsUsage:              "[noid]",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Writer:                 stdout,
		ErrWriter:              stderr,
		ExitErrHandler:         func(*cli.Context, error) {},
		OnUsageError:           usageError,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-file",
				Aliases: []string{"c"},
				Usage:   "path to a config file with a noid section (INI, .kdl or .toml)",
				EnvVars: []string{"NOID_CONFIG_FILE"},
			},
			&cli.BoolFlag{
				Name:    "validate",
				Aliases: []string{"V"},
				Usage:   "validate the given noid",
			},
			&cli.BoolFlag{
				Name:    "check-digit",
				Aliases: []string{"d"},
				Usage:   "compute and print the corresponding check digit for the given noid",
			},
			&cli.StringFlag{
				Name:    "scheme",
				Aliases: []string{"s"},
				Usage:   "the noid scheme",
				Value:   noid.DefaultScheme,
				EnvVars: []string{"NOID_SCHEME"},
			},
			&cli.StringFlag{
				Name:    "naa",
				Aliases: []string{"N"},
				Usage:   "the name assigning authority (NAA) number",
				EnvVars: []string{"NOID_NAA"},
			},
			&cli.StringFlag{
				Name:    "template",
				Aliases: []string{"t"},
				Usage:   "the template by which to generate noids",
				Value:   noid.DefaultTemplate,
				EnvVars: []string{"NOID_TEMPLATE"},
			},
			&cli.Int64Flag{
				Name:    "index",
				Aliases: []string{"n"},
				Usage:   "a number for which to generate a valid noid; negative mints at random",
				Value:   -1,
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "number of noids to generate, consecutive from --index",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "turn on verbose text",
				EnvVars: []string{"NOID_VERBOSE"},
			},
		},
		Before: func(c *cli.Context) error {
			debug.Init(debug.Config{
				Output:  c.App.ErrWriter,
				Verbose: c.Bool("verbose"),
			})
			return nil
		},
		Action: rootAction,
		Commands: []*cli.Command{
			inspectCommand(),
			decodeCommand(),
			configCommand(),
			mcpCommand(),
		},
	}
}

func usageError(c *cli.Context, err error, isSubcommand bool) error {
	return cli.Exit("error: "+err.Error(), exitUsage)
}

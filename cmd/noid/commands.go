package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/noid/internal/config"
	"github.com/standardbeagle/noid/internal/debug"
	"github.com/standardbeagle/noid/internal/mcp"
	"github.com/standardbeagle/noid/internal/template"
	"github.com/standardbeagle/noid/pkg/noid"
)

// loadSettings loads the config file, then lets explicit flags and NOID_*
// environment variables override it.
func loadSettings(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config-file"))
	if err != nil {
		return nil, cli.Exit("error: "+err.Error(), exitFailure)
	}

	overrides := map[string]*string{
		config.KeyTemplate: &cfg.Noid.Template,
		config.KeyScheme:   &cfg.Noid.Scheme,
		config.KeyNAA:      &cfg.Noid.NAA,
	}
	for flag, target := range overrides {
		if c.IsSet(flag) {
			*target = c.String(flag)
		}
	}
	return cfg, nil
}

func rootAction(c *cli.Context) error {
	logger := debug.For(debug.ComponentCLI)

	validate, checkDigit := c.Bool("validate"), c.Bool("check-digit")
	if validate && checkDigit {
		return cli.Exit("error: option '--validate' cannot be used with option '--check-digit'", exitUsage)
	}

	id := c.Args().First()
	if (validate || checkDigit) && id == "" {
		return cli.Exit("error: missing noid to validate", exitUsage)
	}

	switch {
	case validate:
		logger.Info().Msgf("validating '%s'...", id)
		fmt.Fprintf(c.App.Writer, "'%s' valid? %t\n", id, noid.Validate(id))
		return nil
	case checkDigit:
		logger.Info().Msgf("computing check digit for '%s'...", id)
		fmt.Fprintln(c.App.Writer, noid.CheckDigit(id))
		return nil
	}

	cfg, err := loadSettings(c)
	if err != nil {
		return err
	}

	n, count := c.Int64("index"), c.Int("count")
	if count < 1 {
		return cli.Exit(fmt.Sprintf("error: --count must be at least 1, got %d", count), exitUsage)
	}

	logger.Info().Msgf("generating noid using template=%s, n=%d, scheme=%s, naa=%s...",
		cfg.Noid.Template, n, cfg.Noid.Scheme, cfg.Noid.NAA)

	minter, err := noid.NewMinter(cfg.Noid.Template,
		noid.WithScheme(cfg.Noid.Scheme),
		noid.WithNAA(cfg.Noid.NAA),
	)
	if err != nil {
		return cli.Exit("error: "+err.Error(), exitFailure)
	}

	ids, err := minter.MintRange(c.Context, n, count)
	if err != nil {
		return cli.Exit("error: "+err.Error(), exitFailure)
	}
	for _, id := range ids {
		fmt.Fprintln(c.App.Writer, id)
	}
	return nil
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Describe a template: prefix, mask, width and capacity",
		ArgsUsage: "[template]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output as JSON",
			},
		},
		OnUsageError: usageError,
		Action: func(c *cli.Context) error {
			tmpl := c.Args().First()
			if tmpl == "" {
				cfg, err := loadSettings(c)
				if err != nil {
					return err
				}
				tmpl = cfg.Noid.Template
			}

			t, err := template.Parse(tmpl)
			if err != nil {
				return cli.Exit("error: "+err.Error(), exitFailure)
			}
			info := t.Describe()

			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			generator := "none"
			switch info.Generator {
			case "z":
				generator = "z (expands past capacity)"
			case "":
			default:
				generator = info.Generator
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "template:\t%s\n", info.Template)
			fmt.Fprintf(w, "prefix:\t%s\n", info.Prefix)
			fmt.Fprintf(w, "mask:\t%s\n", info.Mask)
			fmt.Fprintf(w, "generator:\t%s\n", generator)
			fmt.Fprintf(w, "width:\t%d\n", info.Width)
			fmt.Fprintf(w, "check digit:\t%t\n", info.HasCheckDigit)
			fmt.Fprintf(w, "capacity:\t%s\n", info.Capacity)
			return w.Flush()
		},
	}
}

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Recover the index a noid was minted from, using --template, --scheme and --naa",
		ArgsUsage: "<noid>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return cli.Exit("error: missing noid to decode", exitUsage)
			}

			cfg, err := loadSettings(c)
			if err != nil {
				return err
			}
			minter, err := noid.NewMinter(cfg.Noid.Template,
				noid.WithScheme(cfg.Noid.Scheme),
				noid.WithNAA(cfg.Noid.NAA),
			)
			if err != nil {
				return cli.Exit("error: "+err.Error(), exitFailure)
			}

			n, err := minter.Parse(id)
			if err != nil {
				return cli.Exit("error: "+err.Error(), exitFailure)
			}
			fmt.Fprintln(c.App.Writer, n.String())
			return nil
		},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Create, show or check config files",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a config file holding the current settings",
				Flags: []cli.Flag{
					formatFlag(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "file to write; the format follows its extension unless --format is given",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "overwrite an existing file",
					},
				},
				OnUsageError: usageError,
				Action:       configInit,
			},
			{
				Name:         "show",
				Usage:        "Print the effective settings after config file, environment and flags",
				Flags:        []cli.Flag{formatFlag()},
				OnUsageError: usageError,
				Action: func(c *cli.Context) error {
					format, err := config.ParseFormat(c.String("format"))
					if err != nil {
						return cli.Exit("error: "+err.Error(), exitUsage)
					}
					cfg, err := loadSettings(c)
					if err != nil {
						return err
					}
					return config.Write(c.App.Writer, cfg, format)
				},
			},
			{
				Name:  "validate",
				Usage: "Check the config file and report warnings",
				Action: func(c *cli.Context) error {
					cfg, err := loadSettings(c)
					if err != nil {
						return err
					}
					if err := config.ValidateConfig(cfg); err != nil {
						return cli.Exit("error: "+err.Error(), exitFailure)
					}
					source := cfg.Source
					if source == "" {
						source = "defaults"
					}
					fmt.Fprintf(c.App.Writer, "%s: ok (%d warnings)\n", source, len(cfg.Warnings))
					return nil
				},
			},
		},
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "config format: ini, kdl or toml",
		Value:   string(config.FormatINI),
	}
}

func configInit(c *cli.Context) error {
	cfg, err := loadSettings(c)
	if err != nil {
		return err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return cli.Exit("error: "+err.Error(), exitFailure)
	}

	output := c.String("output")
	format := config.FormatFor(output)
	if output == "" || c.IsSet("format") {
		if format, err = config.ParseFormat(c.String("format")); err != nil {
			return cli.Exit("error: "+err.Error(), exitUsage)
		}
	}

	if output == "" {
		return config.Write(c.App.Writer, cfg, format)
	}

	data, err := config.Marshal(cfg, format)
	if err != nil {
		return cli.Exit("error: "+err.Error(), exitFailure)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if c.Bool("force") {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(output, flags, 0o644)
	if errors.Is(err, os.ErrExist) {
		return cli.Exit(fmt.Sprintf("error: %s already exists; use --force to overwrite it", output), exitFailure)
	}
	if err != nil {
		return cli.Exit("error: "+err.Error(), exitFailure)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return cli.Exit("error: "+err.Error(), exitFailure)
	}
	if err := f.Close(); err != nil {
		return cli.Exit("error: "+err.Error(), exitFailure)
	}

	fmt.Fprintf(c.App.Writer, "wrote %s\n", output)
	return nil
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server with stdio transport",
		Action: func(c *cli.Context) error {
			// stdout belongs to the protocol from here on
			debug.SetMCPMode(true)

			cfg, err := loadSettings(c)
			if err != nil {
				return err
			}
			if err := config.ValidateConfig(cfg); err != nil {
				return cli.Exit("error: "+err.Error(), exitFailure)
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := mcp.NewServer(cfg).Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return cli.Exit("error: "+err.Error(), exitFailure)
			}
			return nil
		},
	}
}

// Package main is the entry point for the mcfcomplete CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	mcfcli "github.com/NikitaCOEUR/mcfcomplete/internal/cli"
	"github.com/NikitaCOEUR/mcfcomplete/internal/trace"
	"github.com/NikitaCOEUR/mcfcomplete/pkg/version"
)

func main() {
	stopTrace := trace.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newApp(os.Stdout).Run(ctx, os.Args)
	stop()
	stopTrace()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options collects the global flags
func options(cmd *cli.Command, out io.Writer) mcfcli.Options {
	return mcfcli.Options{
		ConfigPath: cmd.String("config"),
		Grammar:    cmd.String("grammar"),
		Registries: cmd.String("registries"),
		LogLevel:   cmd.String("log-level"),
		LogFormat:  cmd.String("log-format"),
		Out:        out,
	}
}

// outputParams collects the output flags of a command
func outputParams(cmd *cli.Command) mcfcli.OutputParams {
	return mcfcli.OutputParams{
		Format:   cmd.String("format"),
		MaxItems: cmd.Int("max-items"),
		Template: cmd.String("template"),
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, json, yaml or template (default from config)",
		},
		&cli.IntFlag{
			Name:    "max-items",
			Aliases: []string{"n"},
			Value:   -1,
			Usage:   "Maximum candidates printed, 0 for no limit (default from config)",
		},
		&cli.StringFlag{
			Name:  "template",
			Usage: "Go template rendered for each candidate, with sprig functions",
		},
	}
}

// lineArg joins the positional arguments into a command line. Quote the
// line to keep trailing spaces.
func lineArg(cmd *cli.Command) string {
	return strings.Join(cmd.Args().Slice(), " ")
}

//nolint:gocyclo // Command table complexity is acceptable
func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:                  "mcfcomplete",
		Usage:                 "Command completion for Minecraft function files",
		Version:               version.Version,
		EnableShellCompletion: true,
		Writer:                out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (default: global config merged with .mcfcomplete.* files up to the current directory)",
				Sources: cli.EnvVars("MCFCOMPLETE_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "grammar",
				Aliases: []string{"g"},
				Usage:   "Command grammar file (commands.json)",
				Sources: cli.EnvVars("MCFCOMPLETE_GRAMMAR"),
			},
			&cli.StringFlag{
				Name:    "registries",
				Aliases: []string{"r"},
				Usage:   "Registries file listing item and block identifiers",
				Sources: cli.EnvVars("MCFCOMPLETE_REGISTRIES"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("MCFCOMPLETE_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log format (text, json)",
				Sources: cli.EnvVars("MCFCOMPLETE_LOG_FORMAT"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "complete",
				Usage:     "List the completions of a partial command line",
				ArgsUsage: "<line>",
				Flags:     outputFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return mcfcli.Complete(ctx, mcfcli.CompleteParams{
						Options: options(cmd, out),
						Output:  outputParams(cmd),
						Line:    lineArg(cmd),
					})
				},
			},
			{
				Name:      "parse",
				Usage:     "Show how far a command line gets through the grammar",
				ArgsUsage: "<line>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, json or yaml (default from config)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return mcfcli.Parse(ctx, mcfcli.ParseParams{
						Options: options(cmd, out),
						Format:  cmd.String("format"),
						Line:    lineArg(cmd),
					})
				},
			},
			{
				Name:      "embedded",
				Usage:     "Complete at a byte offset of a source file with embedded mc`...` blocks",
				ArgsUsage: "<file>",
				Flags: append(outputFlags(), &cli.IntFlag{
					Name:     "offset",
					Aliases:  []string{"o"},
					Usage:    "Byte offset of the cursor in the file",
					Required: true,
				}),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("file argument required")
					}
					return mcfcli.Embedded(ctx, mcfcli.EmbeddedParams{
						Options: options(cmd, out),
						Output:  outputParams(cmd),
						File:    cmd.Args().Get(0),
						Offset:  cmd.Int("offset"),
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a grammar file, or a configuration file with --config-file",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "config-file",
						Usage: "Validate a mcfcomplete configuration file instead of a grammar",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return mcfcli.Validate(mcfcli.ValidateParams{
						Options: options(cmd, out),
						Path:    cmd.Args().First(),
						Config:  cmd.Bool("config-file"),
					})
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema of grammar or configuration files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "kind",
						Aliases: []string{"k"},
						Value:   mcfcli.SchemaGrammar,
						Usage:   "Schema to print: grammar or config",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return mcfcli.Schema(mcfcli.SchemaParams{
						Options:    options(cmd, out),
						Kind:       cmd.String("kind"),
						OutputPath: outputPath,
					})
				},
			},
			{
				Name:  "tree",
				Usage: "Print the grammar outline",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "depth",
						Aliases: []string{"d"},
						Usage:   "Levels shown below the root, 0 for all",
					},
					&cli.BoolFlag{
						Name:  "check",
						Usage: "Also report grammar integrity issues",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return mcfcli.Tree(ctx, mcfcli.TreeParams{
						Options: options(cmd, out),
						Depth:   cmd.Int("depth"),
						Check:   cmd.Bool("check"),
					})
				},
			},
			{
				Name:  "status",
				Usage: "Show the configuration, grammar and registries in use",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return mcfcli.Status(mcfcli.StatusParams{Options: options(cmd, out)})
				},
			},
			{
				Name:  "repl",
				Usage: "Start an interactive prompt with tab completion",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return mcfcli.Repl(ctx, mcfcli.ReplParams{Options: options(cmd, out)})
				},
			},
			{
				Name:  "serve",
				Usage: "Run the HTTP completion service",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address (default from config)",
						Sources: cli.EnvVars("MCFCOMPLETE_ADDR"),
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return mcfcli.Serve(ctx, mcfcli.ServeParams{
						Options: options(cmd, out),
						Addr:    cmd.String("addr"),
					})
				},
			},
		},
	}
}

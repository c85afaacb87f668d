package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/kmabeeTT/claude-code-history/internal/config"
	"github.com/kmabeeTT/claude-code-history/internal/errors"
	"github.com/kmabeeTT/claude-code-history/internal/logger"
	"github.com/kmabeeTT/claude-code-history/internal/ops"
	"github.com/kmabeeTT/claude-code-history/internal/render"
	"github.com/kmabeeTT/claude-code-history/internal/store"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config, baseDir string) *cli.App {
	app := &cli.App{
		Name:    "claude-history",
		Usage:   "Browse your Claude Code session transcripts",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "claude-dir", Usage: "Claude data directory (default: ~/.claude)"},
			&cli.BoolFlag{Name: "plain", Usage: "Plain text output (no colors or borders)"},
			&cli.BoolFlag{Name: "verbose", Usage: "Log skipped lines and dropped sessions"},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(c.Bool("verbose"))
			return nil
		},
		Commands: []*cli.Command{
			listCmd(cfg),
			searchCmd(cfg),
			grepCmd(cfg),
			viewCmd(cfg),
			statsCmd(cfg),
			exportCmd(cfg, baseDir),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// listCmd creates the list command.
func listCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List sessions across all projects, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "branch", Aliases: []string{"b"}, Usage: "Filter by git branch substring"},
			&cli.StringFlag{Name: "since", Usage: "Only sessions modified on or after this date (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "until", Usage: "Only sessions modified on or before this date (YYYY-MM-DD)"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Keep only the newest N sessions"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(storeFor(c, cfg), ops.ListInput{
				Branch: c.String("branch"),
				Since:  c.String("since"),
				Until:  c.String("until"),
				Limit:  c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}

			rendererFor(c).SessionTable(os.Stdout, output.Sessions, "Claude Code Session History")
			return nil
		},
	}
}

// searchCmd creates the search command.
func searchCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search session summaries, first prompts, and branches",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum results to return"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Search(storeFor(c, cfg), ops.SearchInput{
				Query: c.Args().First(),
				Limit: c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}

			title := fmt.Sprintf("Sessions matching %q", output.Query)
			rendererFor(c).SessionTable(os.Stdout, output.Sessions, title)
			return nil
		},
	}
}

// grepCmd creates the grep command.
func grepCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "grep",
		Usage:     "Search the full message content of every session",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "case-sensitive", Aliases: []string{"c"}, Usage: "Match case exactly"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum sessions to return"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Grep(storeFor(c, cfg), ops.GrepInput{
				Query:         c.Args().First(),
				CaseSensitive: c.Bool("case-sensitive"),
				Limit:         c.Int("limit"),
				Context:       previewContext(cfg),
			})
			if err != nil {
				return outputError(err)
			}

			rendererFor(c).SearchResults(os.Stdout, output.Results, output.Query)
			return nil
		},
	}
}

// viewCmd creates the view command.
func viewCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     "View one session's messages, by list number or session ID",
		ArgsUsage: "<number|session-id>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "max-message-length",
				Aliases: []string{"m"},
				Value:   defaultMaxLen(cfg),
				Usage:   "Truncate message bodies to this many characters (0 = no limit)",
			},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.View(storeFor(c, cfg), ops.ViewInput{
				Target: c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}

			rendererFor(c).SessionDetail(os.Stdout, &output.Session, output.Messages, c.Int("max-message-length"))
			return nil
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show aggregate statistics over all sessions",
		Action: func(c *cli.Context) error {
			rendererFor(c).Stats(os.Stdout, ops.Stats(storeFor(c, cfg)))
			return nil
		},
	}
}

// exportCmd creates the export command.
func exportCmd(cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export one session's transcript to a markdown or HTML file",
		ArgsUsage: "<number|session-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Destination file path (default: ~/.claude-history/exports/<id>.<ext>)"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "markdown", Usage: "Export format: markdown|html"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(storeFor(c, cfg), ops.ExportInput{
				Target:  c.Args().First(),
				Path:    c.String("path"),
				Format:  ops.ExportFormat(c.String("format")),
				BaseDir: baseDir,
			})
			if err != nil {
				return outputError(err)
			}

			fmt.Printf("Exported %d messages to %s\n", output.MessageCount, output.Path)
			return nil
		},
	}
}

// Helper functions

// storeFor builds the session store, honoring the --claude-dir override.
func storeFor(c *cli.Context, cfg *config.Config) *store.Store {
	if dir := c.String("claude-dir"); dir != "" {
		override := *cfg
		override.ClaudeDir = dir
		return store.New(&override)
	}
	return store.New(cfg)
}

// rendererFor selects rich output for terminals, plain for pipes or
// when --plain is set.
func rendererFor(c *cli.Context) render.Renderer {
	rich := !c.Bool("plain") && isatty.IsTerminal(os.Stdout.Fd())
	return render.New(rich)
}

// defaultMaxLen returns the detail-view truncation default. cfg is nil
// on the --help path, before config is loaded.
func defaultMaxLen(cfg *config.Config) int {
	if cfg == nil {
		return config.DefaultConfig().MaxMessageLength
	}
	return cfg.MaxMessageLength
}

func previewContext(cfg *config.Config) int {
	if cfg == nil {
		return config.DefaultConfig().PreviewContext
	}
	return cfg.PreviewContext
}

// outputError formats error for CLI.
func outputError(err error) error {
	if hErr, ok := err.(*errors.HistoryError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", hErr.Code, hErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// rimloc: RimWorld mod localization kit. It extracts translatable text from
// workshop mods, reconciles it with earlier translations and assembles a
// translation pack with AI assistance.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/minios-linux/rimloc/config"
	"github.com/minios-linux/rimloc/i18n"
	"github.com/minios-linux/rimloc/logging"
	"github.com/minios-linux/rimloc/pipeline"
	"github.com/minios-linux/rimloc/settings"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	verbose   bool
	logFormat string
	logger    = slog.Default()
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rimloc",
		Short: "RimWorld mod localization kit with AI translation",
		Long: `rimloc: RimWorld mod localization kit.

Reads a project file (TOML or YAML) naming the workshop mods to translate,
extracts Keyed and DefInjected text, reuses every translation that is still
valid, sends only new or changed text to the AI provider and writes a
ready-to-load translation pack.

Commands:
  run       Translate the mods of one project file or a directory of them
  scan      Report what a run would translate, without calling the provider
  auth      Manage provider API keys
  version   Show version information

AI Providers:
  google    Google AI (Gemini), API key
  openai    OpenAI or any OpenAI-compatible endpoint, API key`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			i18n.Init("")
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			l, err := logging.New(os.Stderr, level, logFormat)
			if err != nil {
				return err
			}
			logger = l
			slog.SetDefault(l)
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&logFormat, "log-format", logging.FormatText, "Log format: text or json")

	root.AddCommand(
		newRunCmd(),
		newScanCmd(),
		newAuthCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rimloc version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// run
// ---------------------------------------------------------------------------

type runArgs struct {
	apiKey   string
	download bool
}

func newRunCmd() *cobra.Command {
	var a runArgs

	cmd := &cobra.Command{
		Use:   "run <project-file|directory>",
		Short: "Translate the mods of a project",
		Long: `Translate every mod listed in a project file and write the pack.

A directory argument processes every *.toml, *.yaml and *.yml file in it
in name order. Projects with enabled = false are skipped. A failure in one
project does not stop the others.

API key lookup order:
  1. --api-key flag
  2. RIMLOC_API_KEY environment variable
  3. GEMINI_API_KEY environment variable (google provider)
  4. Stored credentials (rimloc auth login)

Examples:
  rimloc run projects/core.toml
  rimloc run projects/ --download
  rimloc run core.yaml --api-key $KEY`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return forEachProject(cmd.Context(), args[0], func(ctx context.Context, cfg *config.Config) error {
				cred := settings.Lookup(a.apiKey, cfg.AI.Provider)
				if cred.Key == "" {
					return fmt.Errorf(i18n.T("no API key for provider %s; run 'rimloc auth login' or set %s"), cfg.AI.Provider, settings.EnvAPIKey)
				}
				logger.Debug("using API key", "provider", cfg.AI.Provider, "source", string(cred.Source), "key", settings.MaskKey(cred.Key))

				engine := pipeline.New(cfg, pipeline.Options{
					Translator: pipeline.NewClient(cfg, cred, logger),
					Download:   a.download,
					Progress:   progressWriter(),
					Logger:     logger,
				})
				report, err := engine.Run(ctx)
				if report != nil {
					printReport(cmd.OutOrStdout(), report, false)
				}
				return err
			})
		},
	}

	cmd.Flags().StringVar(&a.apiKey, "api-key", "", "API key for the provider")
	cmd.Flags().BoolVar(&a.download, "download", false, "Download the mods with steamcmd first")

	return cmd
}

// ---------------------------------------------------------------------------
// scan
// ---------------------------------------------------------------------------

func newScanCmd() *cobra.Command {
	var download bool

	cmd := &cobra.Command{
		Use:   "scan <project-file|directory>",
		Short: "Show what a run would translate",
		Long: `Scan the mods of a project and report, per mod, how many keys are new,
changed since the last run, or reusable from earlier translations.
Nothing is sent to the provider and nothing is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return forEachProject(cmd.Context(), args[0], func(ctx context.Context, cfg *config.Config) error {
				engine := pipeline.New(cfg, pipeline.Options{
					Download: download,
					Progress: progressWriter(),
					Logger:   logger,
				})
				report, err := engine.Scan(ctx)
				if report != nil {
					printReport(cmd.OutOrStdout(), report, true)
				}
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&download, "download", false, "Download the mods with steamcmd first")

	return cmd
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

// forEachProject loads every project named by arg and calls fn for the
// enabled ones. Failures are collected; cancellation stops the loop.
func forEachProject(ctx context.Context, arg string, fn func(context.Context, *config.Config) error) error {
	paths, err := config.Expand(arg)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		logWarning(i18n.T("no project files found in %s"), arg)
		return nil
	}

	var result *multierror.Error
	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}
		logInfo(i18n.T("project %d/%d: %s"), i+1, len(paths), path)

		cfg, err := config.Load(path)
		if errors.Is(err, config.ErrDisabled) {
			logInfo(i18n.T("skipping disabled project %s"), path)
			continue
		}
		if err != nil {
			logError("%v", err)
			result = multierror.Append(result, err)
			continue
		}

		if err := fn(ctx, cfg); err != nil {
			logError("%s: %v", cfg.Name(), err)
			result = multierror.Append(result, fmt.Errorf("%s: %w", cfg.Name(), err))
		}
	}
	if err := ctx.Err(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// progressWriter returns stderr when it is a terminal.
func progressWriter() io.Writer {
	if logging.IsTerminal(os.Stderr) {
		return os.Stderr
	}
	return nil
}

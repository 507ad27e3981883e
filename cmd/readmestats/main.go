package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/aviator-co/readmestats/internal/actions"
	"github.com/aviator-co/readmestats/internal/config"
	"github.com/aviator-co/readmestats/internal/gh"
	"github.com/aviator-co/readmestats/internal/utils/colors"
	"github.com/kr/text"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootFlags struct {
	Debug      bool
	ConfigDirs []string
	DryRun     bool
}

var RootCmd = &cobra.Command{
	Use:   "readmestats",
	Short: "Update a GitHub profile README with statistics about its owner",
	Long: strings.TrimSpace(`
Compute statistics for a GitHub user (account age, commit contributions,
stars, repositories and lines of code) and write them into the configured
SVG cards and README.

The GitHub token and login are read from ACCESS_TOKEN and USER_NAME, or from
a config file.
`),
	Args: cobra.NoArgs,

	// Don't automatically print errors or usage information (we handle that ourselves).
	SilenceErrors: true,
	SilenceUsage:  true,

	// Don't show "completion" command in help menu
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if rootFlags.Debug {
			logrus.SetLevel(logrus.DebugLevel)
			logrus.WithField("readmestats_version", config.Version).Debug("enabled debug logging")
		}
		if !stderrIsTerminal() {
			colors.Disable()
		}
		colors.SetupBackgroundColorTypeFromEnv()
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(rootFlags.ConfigDirs)
		if err != nil {
			return errors.WrapIf(err, "failed to load configuration")
		}
		logrus.WithFields(logrus.Fields{
			"user":      cfg.GitHub.User,
			"endpoint":  cfg.GitHub.Endpoint,
			"documents": cfg.Output.Documents,
		}).Debug("loaded configuration")

		client, err := gh.NewClient(cfg.GitHub.Endpoint, cfg.GitHub.Token)
		if err != nil {
			return err
		}

		stats, err := actions.CollectStats(cmd.Context(), client, cfg, time.Now())
		if err != nil {
			return err
		}
		if err := actions.PrintSummary(os.Stderr, stats); err != nil {
			return errors.WrapIf(err, "failed to print summary")
		}

		if rootFlags.DryRun {
			values := stats.Values()
			for _, field := range slices.Sorted(maps.Keys(values)) {
				fmt.Printf("%s=%s\n", field, values[field])
			}
			return nil
		}
		if err := actions.UpdateDocuments(cfg, stats); err != nil {
			return err
		}
		actions.PrintUpdated(os.Stderr, cfg.Output.Documents)
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(
		&rootFlags.Debug, "debug", false,
		"enable verbose debug logging",
	)
	RootCmd.Flags().StringSliceVar(
		&rootFlags.ConfigDirs, "config", nil,
		"additional directory to search for a config file",
	)
	RootCmd.Flags().BoolVar(
		&rootFlags.DryRun, "dry-run", false,
		"print the computed values instead of writing documents",
	)
	RootCmd.AddCommand(
		versionCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := RootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprint(os.Stderr, renderError(err))

		// In debug mode, show more detailed information about the error
		// (including the stack trace).
		if rootFlags.Debug {
			_, _ = fmt.Fprintln(os.Stderr, text.Indent(fmt.Sprintf("%+v", err), "\t"))
		}
		os.Exit(1)
	}
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

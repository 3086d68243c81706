package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/meigma/actpak"
	"github.com/meigma/actpak/internal/config"
)

var (
	// Version is the application version, set at build time.
	Version = "dev"

	// Commit is the git commit hash, set at build time.
	Commit = "unknown"

	// BuildDate is the build date, set at build time.
	BuildDate = "unknown"
)

// isInteractive reports whether the wizard can be shown.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // fds fit in int
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f any) bool {
	fd, ok := f.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(fd.Fd())) //nolint:gosec // fds fit in int
}

// wizard is replaced in tests.
var wizard = runWizard

type rootOptions struct {
	configFile string
	all        bool
}

// NewRootCommand returns the actpak command.
func NewRootCommand() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "actpak [flags]",
		Short: "Extract assets from ACTKOOL game containers",
		Long: TitleStyle.Render("actpak") + SubtitleStyle.Render(" - extract assets from ACTKOOL game containers") + `

actpak scans a game directory for stream (.actstr) and file (.actbin)
containers, indexes the assets they hold and writes each one to disk with
an extension guessed from its contents.

Run without flags on a terminal to start the interactive wizard.

` + SubtitleStyle.Render("Examples:") + `
  actpak -i ./Game -a            Extract everything to ./Game/Output
  actpak -i ./Game -f -g -o out  Extract file assets grouped by type
  actpak -i ./Game -s --log-level 0`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	fs := cmd.Flags()
	fs.StringP("input", "i", "", "game directory holding the containers")
	fs.StringP("output", "o", "", "output directory (default is <input>/Output)")
	fs.BoolP("file", "f", false, "extract file containers (.actbin)")
	fs.BoolP("stream", "s", false, "extract stream containers (.actstr)")
	fs.BoolVarP(&opts.all, "all", "a", false, "extract every container kind")
	fs.BoolP("group", "g", false, "group extracted assets by type")
	fs.String("log-path", "", "write logs to this file instead of stderr")
	fs.Int("log-level", config.MaxLogLevel, "log verbosity from 0 (off) to 5")
	fs.Int("log-frequency", 0, "log only every n-th asset (0 logs every asset)")
	fs.StringVar(&opts.configFile, "config", "", "config file (default is ./actpak.yaml or $XDG_CONFIG_HOME/actpak/actpak.yaml)")

	return cmd
}

// loadConfig resolves the run configuration, running the wizard when no
// flags were given on an interactive terminal.
func loadConfig(cmd *cobra.Command, opts rootOptions) (*config.Config, error) {
	cfg, _, err := config.Load(config.LoadOptions{
		ConfigFilePath: opts.configFile,
		Flags:          cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}
	if opts.all {
		cfg.File, cfg.Stream = true, true
	}

	if cmd.Flags().NFlag() == 0 && isInteractive() {
		if err := wizard(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	logger, closeLog, err := newLogger(cfg.Log, stderr)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck // log file is append-only

	projectOpts := []actpak.Option{
		actpak.WithLogger(logger),
		actpak.WithOutputDir(cfg.Output),
		actpak.WithLogFrequency(cfg.Log.Frequency),
	}
	var progress *progressLine
	if logger == nil && isTerminal(stderr) {
		progress = newProgressLine(stderr)
		projectOpts = append(projectOpts, actpak.WithProgress(progress.update))
		defer progress.done()
	}

	p := actpak.New(cfg.Input, projectOpts...)
	flags := cfg.Flags()
	start := time.Now()

	var stats actpak.Stats
	phases := []struct {
		name string
		run  func() error
	}{
		{"Container search", func() error { return p.FindContainers(flags, true) }},
		{"Asset indexing", func() error { return p.ReadAssets(flags, true) }},
		{"Asset extraction", func() error {
			var err error
			stats, err = p.ExtractAssets(flags)
			return err
		}},
	}
	for _, phase := range phases {
		if err := cmd.Context().Err(); err != nil {
			return fmt.Errorf("%s canceled: %w", phase.name, err)
		}
		if err := phase.run(); err != nil {
			return fmt.Errorf("%s failed! [%s]: %w", phase.name, actpak.ResultOf(err), err)
		}
	}
	if progress != nil {
		progress.done()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, SuccessStyle.Render(fmt.Sprintf("Extracted %d assets (%s) to %s",
		stats.Extracted, humanize.IBytes(stats.TotalBytes), p.OutputDir())))
	if stats.Skipped > 0 {
		fmt.Fprintln(out, WarningStyle.Render(fmt.Sprintf("Skipped %d empty assets", stats.Skipped)))
	}
	fmt.Fprintln(out, SubtitleStyle.Render("Elapsed time: "+time.Since(start).Round(time.Millisecond).String()))
	return nil
}

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(),
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

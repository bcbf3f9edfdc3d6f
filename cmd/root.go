// file: cmd/root.go
// version: 2.0.0
// guid: 034cd1fb-2449-4e31-a27a-23dd6e43ec8a

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jdfalk/music-organizer/internal/config"
	"github.com/jdfalk/music-organizer/internal/fileops"
	"github.com/jdfalk/music-organizer/internal/metrics"
	"github.com/jdfalk/music-organizer/internal/movelog"
	"github.com/jdfalk/music-organizer/internal/organizer"
	"github.com/jdfalk/music-organizer/internal/report"
	"github.com/jdfalk/music-organizer/internal/undo"
)

var cfgFile string
var undoRequested bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "music-organizer [path]",
	Short: "Organize a music folder by its tags",
	Long: `Music Organizer moves the audio files under a folder into
<Artist>/<Album> or <Genre>/<Year> directories read from their tags, writes a
playlist into every directory it fills, and logs every move so the run can be
undone with --undo.

The first files of a sparse directory are gathered in a Miscellaneous folder
instead (see --flatten).`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			config.AppConfig.RootDir = args[0]
		}
		cfg := config.AppConfig

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if undoRequested {
			return runUndo(ctx, cfg, cmd.OutOrStdout())
		}

		if cfg.RootDir == "" {
			return errors.New("music folder path not specified")
		}
		if !config.ValidGroupBy(cfg.GroupBy) {
			return fmt.Errorf("invalid --by value %q: use %s or %s",
				cfg.GroupBy, config.GroupByArtistAlbum, config.GroupByGenreYear)
		}
		if cfg.FlattenThreshold < 0 {
			return fmt.Errorf("--flatten must not be negative, got %d", cfg.FlattenThreshold)
		}
		return runOrganize(ctx, cfg, cmd.OutOrStdout())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.music-organizer.yaml)")
	flags.String("move-log", config.DefaultMoveLog, "human-readable log of every move")
	flags.String("undo-log", config.DefaultUndoLog, "machine-readable log replayed by --undo")
	flags.Bool("verbose", false, "log every file decision")

	rootCmd.Flags().String("by", config.GroupByArtistAlbum, "grouping mode: artist_album or genre_year")
	rootCmd.Flags().Bool("dry-run", false, "print the planned moves without touching any file")
	rootCmd.Flags().BoolVar(&undoRequested, "undo", false, "restore every file recorded in the undo log and exit")
	rootCmd.Flags().Int("flatten", config.DefaultFlattenThreshold, "the first N files of each directory go to the Miscellaneous folder")
	rootCmd.Flags().Bool("verify", true, "verify checksums when a move has to copy across filesystems")
	rootCmd.Flags().String("report", "", "write a YAML run report to this file")
	rootCmd.Flags().String("metrics-file", "", "write run metrics in Prometheus text format to this file")

	viper.BindPFlag("move_log", flags.Lookup("move-log"))
	viper.BindPFlag("undo_log", flags.Lookup("undo-log"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))
	viper.BindPFlag("group_by", rootCmd.Flags().Lookup("by"))
	viper.BindPFlag("dry_run", rootCmd.Flags().Lookup("dry-run"))
	viper.BindPFlag("flatten", rootCmd.Flags().Lookup("flatten"))
	viper.BindPFlag("verify_copies", rootCmd.Flags().Lookup("verify"))
	viper.BindPFlag("report", rootCmd.Flags().Lookup("report"))
	viper.BindPFlag("metrics_file", rootCmd.Flags().Lookup("metrics-file"))

	rootCmd.AddCommand(diagnosticsCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".music-organizer")
	}

	viper.SetEnvPrefix("MUSIC_ORGANIZER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()
}

func runOrganize(ctx context.Context, cfg config.Config, out io.Writer) error {
	journal := movelog.New(cfg.MoveLogPath, cfg.UndoLogPath)
	defer func() {
		if err := journal.Close(); err != nil {
			log.Printf("[WARN] closing logs: %v", err)
		}
	}()

	rec := metrics.New()
	opts := []organizer.Option{
		organizer.WithMetrics(rec),
		organizer.WithOutput(out),
	}
	var bar *progressbar.ProgressBar
	if !cfg.DryRun && !cfg.Verbose && isTerminal(os.Stderr) {
		bar = progressbar.Default(-1, "Organizing")
		opts = append(opts, organizer.WithProgress(bar))
	}

	summary, runErr := organizer.NewOrganizer(cfg, journal, opts...).Run(ctx)
	if bar != nil {
		_ = bar.Finish()
	}
	if errors.Is(runErr, organizer.ErrInvalidRoot) {
		fmt.Fprintln(out, "Invalid music folder path.")
		return runErr
	}
	if runErr != nil && summary.Discovered == 0 {
		return runErr
	}

	fmt.Fprintf(out, "\nSummary: %s\n", summary.Line())
	if summary.BytesMoved > 0 {
		fmt.Fprintf(out, "Moved %s in %s\n", humanize.Bytes(uint64(summary.BytesMoved)), summary.Duration.Round(time.Millisecond))
	}
	if !cfg.DryRun {
		fmt.Fprintf(out, "Log written to: %s\n", cfg.MoveLogPath)
		fmt.Fprintf(out, "Undo log written to: %s\n", cfg.UndoLogPath)
	}

	if cfg.ReportPath != "" {
		if err := report.Write(cfg.ReportPath, report.FromSummary(summary, cfg.MoveLogPath, cfg.UndoLogPath, runErr)); err != nil {
			log.Printf("[WARN] %v", err)
		}
	}
	if cfg.MetricsPath != "" {
		if err := rec.WriteTextfile(cfg.MetricsPath); err != nil {
			log.Printf("[WARN] failed to write metrics: %v", err)
		}
	}
	return runErr
}

func runUndo(ctx context.Context, cfg config.Config, out io.Writer) error {
	journal := movelog.New(cfg.MoveLogPath, cfg.UndoLogPath)
	defer func() {
		if err := journal.Close(); err != nil {
			log.Printf("[WARN] closing logs: %v", err)
		}
	}()

	engine := undo.NewEngine(journal, fileops.MoveOptions{VerifyChecksums: cfg.VerifyCopies}, out)
	rec := metrics.New()
	engine.SetMetrics(rec)

	res, err := engine.Undo(ctx)
	if errors.Is(err, undo.ErrNoUndoLog) {
		fmt.Fprintln(out, "No undo log found.")
		return nil
	}
	if cfg.Verbose {
		log.Printf("[DEBUG] undo: restored=%d skipped=%d failed=%d", res.Restored, res.Skipped, res.Failed)
	}
	if cfg.MetricsPath != "" {
		if werr := rec.WriteTextfile(cfg.MetricsPath); werr != nil {
			log.Printf("[WARN] failed to write metrics: %v", werr)
		}
	}
	return err
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

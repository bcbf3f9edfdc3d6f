// file: cmd/diagnostics.go
// version: 2.0.0
// guid: 98b0dcbc-1eef-4528-9b39-b09c620a8791

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jdfalk/music-organizer/internal/config"
	"github.com/jdfalk/music-organizer/internal/fileops"
	"github.com/jdfalk/music-organizer/internal/metadata"
	"github.com/jdfalk/music-organizer/internal/movelog"
)

var (
	diagnosticsCmd = &cobra.Command{
		Use:   "diagnostics",
		Short: "Debugging and cleanup helpers",
		Long:  "Diagnostic utilities for inspecting tags and the undo log.",
	}

	tagsCmd = &cobra.Command{
		Use:   "tags FILE...",
		Short: "Show the metadata used to classify files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnosticsTags(cmd.OutOrStdout(), args)
		},
	}

	undoLogCmd = &cobra.Command{
		Use:   "undo-log",
		Short: "List pending undo records",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return runDiagnosticsUndoLog(cmd.OutOrStdout(), config.AppConfig.UndoLogPath, limit)
		},
	}

	clearUndoCmd = &cobra.Command{
		Use:   "clear-undo-log",
		Short: "Forget every recorded move",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("yes")
			return runClearUndoLog(cmd.OutOrStdout(), cmd.InOrStdin(), config.AppConfig, force)
		},
	}
)

func init() {
	undoLogCmd.Flags().Int("limit", 20, "Number of records to display (0 for all)")
	clearUndoCmd.Flags().Bool("yes", false, "Skip confirmation prompt")

	diagnosticsCmd.AddCommand(tagsCmd)
	diagnosticsCmd.AddCommand(undoLogCmd)
	diagnosticsCmd.AddCommand(clearUndoCmd)
}

func runDiagnosticsTags(out io.Writer, paths []string) error {
	extractor := metadata.NewExtractor(metadata.Sanitizer{NormalizeUnicode: config.AppConfig.NormalizeUnicode})
	for i, path := range paths {
		res := extractor.Read(path)
		fmt.Fprintf(out, "%2d. %s\n", i+1, path)
		fmt.Fprintf(out, "    Result: %s", res.Kind)
		if res.Reader != "" {
			fmt.Fprintf(out, " (via %s)", res.Reader)
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "    Artist: %s\n", res.Info.Artist)
		fmt.Fprintf(out, "    Album:  %s\n", res.Info.Album)
		fmt.Fprintf(out, "    Genre:  %s\n", res.Info.Genre)
		fmt.Fprintf(out, "    Year:   %s\n", res.Info.Year)
		if res.Reason != nil {
			fmt.Fprintf(out, "    Reason: %s\n", truncateString(res.Reason.Error(), 200))
		}
		fmt.Fprintln(out, "---")
	}
	return nil
}

func runDiagnosticsUndoLog(out io.Writer, undoPath string, limit int) error {
	if limit < 0 {
		return errors.New("limit must not be negative")
	}

	records, err := movelog.ReadUndoLog(undoPath)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(out, "No undo log found.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%d undo records in %s\n", len(records), undoPath)
	for i, rec := range records {
		if limit > 0 && i >= limit {
			fmt.Fprintf(out, "... %d more\n", len(records)-limit)
			break
		}
		state := "present"
		if !fileops.Exists(rec.Destination) {
			state = "missing, will be skipped"
		}
		fmt.Fprintf(out, "%2d. %s (%s)\n", i+1, rec.Destination, state)
		fmt.Fprintf(out, "    restores to %s\n", rec.Source)
	}
	return nil
}

func runClearUndoLog(out io.Writer, in io.Reader, cfg config.Config, force bool) error {
	if !fileops.Exists(cfg.UndoLogPath) {
		fmt.Fprintln(out, "No undo log found.")
		return nil
	}

	journal := movelog.New(cfg.MoveLogPath, cfg.UndoLogPath)
	if err := journal.Lock(); err != nil {
		return err
	}
	defer journal.Close()

	if !force {
		confirmed, err := promptYesNo(out, in, fmt.Sprintf("Delete %s; the recorded moves can no longer be undone", cfg.UndoLogPath))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, "Aborted. Undo log kept.")
			return nil
		}
	}

	if err := os.Remove(cfg.UndoLogPath); err != nil {
		return fmt.Errorf("failed to remove undo log: %w", err)
	}
	fmt.Fprintln(out, "Undo log removed.")
	return nil
}

func promptYesNo(out io.Writer, in io.Reader, action string) (bool, error) {
	fmt.Fprintf(out, "%s? Type 'yes' to confirm: ", action)
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes", nil
}

func truncateString(in string, max int) string {
	if len(in) <= max {
		return in
	}
	return in[:max] + "..."
}

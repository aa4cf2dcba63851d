package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"go-seaport/history"
	"go-seaport/service"
	"go-seaport/util"
)

var (
	historyLimit int
	historyReset bool
)

var historyCmd = &cobra.Command{
	Use:               "history [NAME...]",
	Short:             "Show recorded updates",
	ValidArgsFunction: portNames,
	RunE:              runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of records per port (0 = all)")
	historyCmd.Flags().BoolVar(&historyReset, "reset", false, "Delete the history database")
}

func runHistory(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()
	out := cmd.OutOrStdout()

	if historyReset {
		prompt := util.NewPrompt(svc.Config().YesAll)
		fmt.Fprintf(out, "WARNING: This will delete the update history\nDatabase: %s\n", svc.Config().Database.Path)
		if !prompt.Confirm("Are you sure?", false) {
			fmt.Fprintln(out, "Cancelled")
			return nil
		}
		if _, err := svc.ResetDatabase(); err != nil {
			return err
		}
		fmt.Fprintln(out, "History database reset successfully")
		return nil
	}

	res, err := svc.History(service.HistoryOptions{Ports: args, Limit: historyLimit})
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Fprintln(out, "=== Update History ===")
		fmt.Fprintf(out, "Database:      %s\n", svc.Config().Database.Path)
		fmt.Fprintf(out, "Size:          %s\n", formatBytes(res.DatabaseSize))
		fmt.Fprintf(out, "Updates:       %d (%d ports)\n", res.Stats.Total, res.Stats.Ports)
		fmt.Fprintf(out, "Succeeded:     %d\n", res.Stats.Success)
		fmt.Fprintf(out, "Submitted:     %d\n", res.Stats.Submitted)
		fmt.Fprintf(out, "Failed:        %d\n", res.Stats.Failed)
	}

	if len(res.Records) == 0 {
		fmt.Fprintln(out, "\nNo updates recorded")
		return nil
	}
	for _, rec := range res.Records {
		printRecord(out, rec)
	}
	return nil
}

func printRecord(w io.Writer, rec *history.UpdateRecord) {
	fmt.Fprintf(w, "\n%s %s -> %s\n", rec.Port, rec.OldVersion, rec.NewVersion)
	fmt.Fprintf(w, "  Status:      %s\n", rec.Status)
	fmt.Fprintf(w, "  Run:         %s\n", shortID(rec.UUID))
	fmt.Fprintf(w, "  Started:     %s\n", rec.StartTime.Format("2006-01-02 15:04:05"))
	if d := rec.Duration(); d > 0 {
		fmt.Fprintf(w, "  Duration:    %s\n", d.Round(time.Second))
	}
	if rec.New.SHA256 != "" {
		fmt.Fprintf(w, "  sha256:      %s\n", rec.New.SHA256)
	}
	if rec.PullRequest != "" {
		fmt.Fprintf(w, "  Pull request: %s\n", rec.PullRequest)
	}
	if rec.Reason != "" {
		fmt.Fprintf(w, "  Reason:      %s\n", rec.Reason)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatBytes formats bytes as human-readable string (e.g., "1.5 MiB")
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

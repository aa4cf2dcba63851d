package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-seaport/log"
)

var logsCmd = &cobra.Command{
	Use:   "logs [NAME]",
	Short: "List logs or view the command log of a port",
	Long: `Without NAME, lists the available logs. NAME "seaport" shows the main
log; any other name shows the command output of the last update of that port.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: portNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			return log.ViewLog(cfg, args[0], out)
		}

		entries, err := log.ListLogs(cfg)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintf(out, "No logs in %s\n", cfg.LogsPath)
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%-30s %10s  %s\n", e.Name, formatBytes(e.Size), e.ModTime.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

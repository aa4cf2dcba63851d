package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"go-seaport/service"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the seaport directories and config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		dir := configDir
		if dir == "" {
			dir = filepath.Join(xdg.ConfigHome, "seaport")
		}

		res, err := svc.Initialize(service.InitOptions{ConfigDir: dir, Force: initForce})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if res.ConfigWritten {
			fmt.Fprintf(out, "Config written to %s\n", res.ConfigPath)
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(out, "Warning: %s\n", w)
		}
		fmt.Fprintln(out, "seaport initialized")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
}

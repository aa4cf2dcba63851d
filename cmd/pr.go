package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-seaport/service"
	"go-seaport/util"
)

var prOpts service.PROptions

var prCmd = &cobra.Command{
	Use:   "pr NAME [LOCATION]",
	Short: "Bump a port and send a pull request",
	Long: `Bumps the version number and checksums of NAME.

It then sends a PR to update it, cloning the macports-ports repository to
LOCATION (default: Directory_clone) if it doesn't exist already.

The flags in clip are also valid for this subcommand. The pull request
template is filled in depending on what flags the command was run with.`,
	Args: cobra.RangeArgs(1, 2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 1 {
			return nil, cobra.ShellCompDirectiveFilterDirs
		}
		return portNames(cmd, args, toComplete)
	},
	RunE: runPR,
}

func init() {
	addClipFlags(prCmd, &prOpts.Clip)
	prCmd.Flags().BoolVar(&prOpts.Clip.New, "new", false, "Send a PR for a new Portfile from the local ports tree")
	prCmd.Flags().BoolVar(&prOpts.FromHistory, "from-history", false, "Send the last recorded update instead of running clip")
}

func runPR(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()
	stop := handleSignals(svc)
	defer stop()

	opts := prOpts
	opts.Clip.Name = args[0]
	if len(args) > 1 {
		opts.Location = args[1]
	}

	location := opts.Location
	if location == "" {
		location = svc.Config().ClonePath
	}
	if location == "" {
		return fmt.Errorf("no LOCATION given and Directory_clone is not set")
	}
	if !util.DirExists(location) || !util.Writable(location) {
		return fmt.Errorf("%s is not a writable directory", location)
	}

	res, err := svc.PullRequest(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if res.Submission.Sent {
		fmt.Fprintln(cmd.OutOrStdout(), res.Submission.URL)
	}
	return nil
}

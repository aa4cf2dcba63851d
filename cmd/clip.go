package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-seaport/environment"
	"go-seaport/port"
	"go-seaport/service"
)

var clipOpts service.ClipOptions

var clipCmd = &cobra.Command{
	Use:   "clip NAME",
	Short: "Bump a port and copy the new Portfile to the clipboard",
	Long: `Bumps the version number and checksums of NAME.

It then copies the result to your clipboard.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: portNames,
	RunE:              runClip,
}

func init() {
	addClipFlags(clipCmd, &clipOpts)
	clipCmd.Flags().BoolVar(&clipOpts.NoClipboard, "no-clipboard", false, "Do not copy the result to the clipboard")
}

// addClipFlags registers the flags shared by clip and pr.
func addClipFlags(cmd *cobra.Command, opts *service.ClipOptions) {
	f := cmd.Flags()
	f.StringVar(&opts.Bump, "bump", "", "Version to bump to (default: livecheck result)")
	f.StringVar(&opts.URL, "url", "", "URL to download the new distfile from")
	f.BoolVar(&opts.Write, "write", false, "Keep the updated Portfile in the local ports tree")
	f.BoolVar(&opts.Test, "test", false, "Run port test")
	f.BoolVar(&opts.Lint, "lint", false, "Run port lint --nitpick")
	f.BoolVar(&opts.Install, "install", false, "Install the port to try it, then offer to uninstall it")
	f.BoolVar(&opts.Relocate, "relocate", false, "Copy the downloaded distfile into the MacPorts distfiles cache")
	f.BoolVar(&opts.Precise, "precise", false, "Only replace values inside their Portfile fields")
}

func runClip(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()
	stop := handleSignals(svc)
	defer stop()

	opts := clipOpts
	opts.Name = args[0]

	res, err := svc.Clip(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if svc.Config().Debug && res.Diff != "" {
		fmt.Fprint(cmd.OutOrStdout(), res.Diff)
	}
	if !res.Copied {
		fmt.Fprint(cmd.OutOrStdout(), res.Contents)
	}
	return nil
}

// portNames completes port names with port search.
func portNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	env, err := environment.New("host", cfg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	names, err := port.NewClient(env, cfg, nil).Search(cmd.Context(), toComplete)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

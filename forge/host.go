package forge

import (
	"context"
	"strings"

	"go-seaport/environment"
)

// HostInfo is the "Tested on" section of the pull request.
type HostInfo struct {
	MacOS string // "11.2.3 20D91"
	Xcode string // "Xcode 12.4 12D4e" or the command line tools version
}

// HostInfo collects the macOS and Xcode versions. Xcode falls back to the
// command line tools when it is not installed.
func (f *Forge) HostInfo(ctx context.Context) HostInfo {
	run := func(cmd string, args ...string) (string, error) {
		out, err := environment.Output(ctx, f.Env, &environment.ExecCommand{Command: cmd, Args: args})
		return strings.TrimSpace(out), err
	}

	var info HostInfo
	product, _ := run("sw_vers", "-productVersion")
	build, _ := run("sw_vers", "-buildVersion")
	info.MacOS = strings.TrimSpace(product + " " + build)

	xcode, err := run("xcodebuild", "-version")
	if err == nil && xcode != "" {
		info.Xcode = strings.Replace(xcode, "\nBuild version", "", 1)
	} else {
		f.Logger.Info("Using Command Line Tools instead")
		info.Xcode, _ = run("xcode-select", "--version")
	}
	return info
}

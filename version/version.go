// Package version decides which version a port is updated to.
package version

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"go-seaport/log"
	"go-seaport/port"
	"go-seaport/util"
)

// ErrUpToDate is returned when the resolved version equals the current one.
var ErrUpToDate = fmt.Errorf("already up-to-date")

// UpToDateError wraps ErrUpToDate with the port and its version.
type UpToDateError struct {
	Name    string
	Version string
}

// Error implements the error interface
func (e *UpToDateError) Error() string {
	return fmt.Sprintf("%s is already up-to-date (%s) or there's no livecheck available; specify the version with --bump",
		e.Name, e.Version)
}

// Unwrap allows errors.Is(err, ErrUpToDate) to work correctly
func (e *UpToDateError) Unwrap() error {
	return ErrUpToDate
}

// DevelMarkers are the substrings that flag a pre-release version.
var DevelMarkers = []string{"alpha", "beta", "rc", "devel", "dev", "unstable"}

var livecheckRe = regexp.MustCompile(`new version:\s*([^\s)]+)`)

// ParseLivecheck extracts Y from
// "<name> seems to have been updated (port version: X, new version: Y)".
// It returns "" when the output does not report an update.
func ParseLivecheck(out string) string {
	m := livecheckRe.FindStringSubmatch(out)
	if m == nil {
		return ""
	}
	return m[1]
}

// IsDevel reports whether v carries a pre-release marker.
func IsDevel(v string) bool {
	for _, m := range DevelMarkers {
		if strings.Contains(v, m) {
			return true
		}
	}
	return false
}

// Livechecker runs port livecheck.
type Livechecker interface {
	Livecheck(ctx context.Context, name string) (string, error)
}

// Request describes the port being updated.
type Request struct {
	Name     string
	Current  string
	Override string   // --bump, empty when not given
	IsNew    bool     // a new port keeps its current version
	Subports []string // livecheck falls back to the last one
}

// Resolver decides the new version.
type Resolver struct {
	Livecheck Livechecker
	Confirm   util.Confirmer
	Logger    log.LibraryLogger
}

// Resolve returns the version to update to: the current one for new
// ports, else the override, else the livecheck result. A result equal to
// the current version is an *UpToDateError. Pre-release versions on a
// port not named -devel need confirmation.
func (r *Resolver) Resolve(ctx context.Context, req Request) (string, error) {
	logger := log.OrNoOp(r.Logger)

	if req.IsNew {
		return req.Current, nil
	}

	resolved := req.Override
	if resolved == "" {
		resolved = r.livecheck(ctx, req.Name)
		if resolved == "" && len(req.Subports) > 0 {
			sub := req.Subports[len(req.Subports)-1]
			logger.Debug("no livecheck output for %s, trying subport %s", req.Name, sub)
			resolved = r.livecheck(ctx, sub)
		}
	}

	if resolved == "" || resolved == req.Current {
		return "", &UpToDateError{Name: req.Name, Version: req.Current}
	}

	if !strings.Contains(req.Name, "-devel") && IsDevel(resolved) {
		prompt := fmt.Sprintf("%s is not a devel port, but the new version (%s) is a devel build. Do you wish to continue?",
			req.Name, resolved)
		if r.Confirm == nil || !r.Confirm.Confirm(prompt, false) {
			return "", fmt.Errorf("%w: you can specify a different version using --bump", port.ErrUserDeclined)
		}
	}

	if Downgrade(req.Current, resolved) {
		logger.Warn("%s %s is older than the current version %s", req.Name, resolved, req.Current)
	}

	logger.Info("New version is %s", resolved)
	return resolved, nil
}

func (r *Resolver) livecheck(ctx context.Context, name string) string {
	if r.Livecheck == nil {
		return ""
	}
	out, err := r.Livecheck.Livecheck(ctx, name)
	if err != nil {
		log.OrNoOp(r.Logger).Debug("port livecheck %s: %v", name, err)
		return ""
	}
	return ParseLivecheck(out)
}

// Downgrade reports whether next is a lower semantic version than current.
// Versions that do not parse are never considered a downgrade.
func Downgrade(current, next string) bool {
	cv, err := semver.NewVersion(current)
	if err != nil {
		return false
	}
	nv, err := semver.NewVersion(next)
	if err != nil {
		return false
	}
	return nv.LessThan(cv)
}

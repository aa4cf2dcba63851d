package service

import (
	"time"

	"go-seaport/checksums"
	"go-seaport/forge"
	"go-seaport/history"
	"go-seaport/port"
	"go-seaport/portfile"
)

// ClipOptions contains options for the Clip service.
type ClipOptions struct {
	Name string
	Bump string // explicit new version, livecheck when empty
	URL  string // explicit distfile URL

	Write    bool // keep the patched Portfile in the local tree
	Test     bool
	Lint     bool
	Install  bool
	Relocate bool // copy the downloaded distfile into the distfiles cache
	Precise  bool // restrict replacements to their fields
	New      bool // the port is not yet in the upstream tree

	NoClipboard bool
}

// verify reports whether the Portfile must be written locally.
func (o ClipOptions) verify() bool {
	return o.Write || o.Test || o.Lint || o.Install
}

// ClipResult contains the results of a Clip operation.
type ClipResult struct {
	RunID      string
	Snapshot   *port.Snapshot
	NewVersion string
	Old        checksums.Set
	New        checksums.Set

	PortfilePath string
	Original     string
	Contents     string
	Diff         string
	Patch        *portfile.Result

	// Verification performed
	Linted    bool
	Tested    bool
	Installed bool

	Copied   bool // contents are on the clipboard
	Duration time.Duration
}

// PROptions contains options for the PullRequest service.
type PROptions struct {
	Clip        ClipOptions
	Location    string // directory holding the macports-ports clone
	FromHistory bool   // reuse the last recorded update instead of running Clip
}

// PRResult contains the results of a PullRequest operation.
type PRResult struct {
	Clip       *ClipResult // nil when FromHistory
	Record     *history.UpdateRecord
	Submission *forge.Submission
}

// HistoryOptions contains options for the History service.
type HistoryOptions struct {
	Ports []string // empty = all
	Limit int
}

// HistoryResult contains the results of a history query.
type HistoryResult struct {
	Records      []*history.UpdateRecord
	Stats        history.Stats
	DatabaseSize int64
}

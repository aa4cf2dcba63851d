package checksums

import (
	"context"
	"regexp"
	"strings"

	"go-seaport/log"
	"go-seaport/port"
)

// Set is the distfile URL and its recorded checksums.
type Set struct {
	URL    string
	SHA256 string
	RMD160 string
	Size   string
}

var (
	rmd160Re = regexp.MustCompile(`rmd160:\s*([0-9a-fA-F]+)`)
	sha256Re = regexp.MustCompile(`sha256:\s*([0-9a-fA-F]+)`)
	sizeRe   = regexp.MustCompile(`size:\s*(\d+)`)
)

// ParseDistfiles finds the first http(s) URL in port distfiles output and
// the rmd160, sha256 and size values labelled before it. ok is false when
// the output has no URL.
func ParseDistfiles(out string) (Set, bool) {
	// port distfiles wraps long lines with a newline and a space
	joined := strings.ReplaceAll(out, "\n ", " ")

	urlStart := -1
	var url string
	for _, tok := range strings.Fields(joined) {
		if i := strings.Index(tok, "http://"); i >= 0 {
			url = tok[i:]
		} else if i := strings.Index(tok, "https://"); i >= 0 {
			url = tok[i:]
		} else {
			continue
		}
		urlStart = strings.Index(joined, url)
		break
	}
	if urlStart < 0 {
		return Set{}, false
	}

	before := joined[:urlStart]
	return Set{
		URL:    url,
		RMD160: lastMatch(rmd160Re, before),
		SHA256: lastMatch(sha256Re, before),
		Size:   lastMatch(sizeRe, before),
	}, true
}

func lastMatch(re *regexp.Regexp, s string) string {
	all := re.FindAllStringSubmatch(s, -1)
	if len(all) == 0 {
		return ""
	}
	return all[len(all)-1][1]
}

// Location is the result of Locate.
type Location struct {
	Old    Set    // checksums currently recorded
	NewURL string // Old.URL with the old version replaced by the new one
	Port   string // port whose distfiles were used
}

// Source provides the raw outputs Locate needs.
type Source interface {
	Distfiles(ctx context.Context, name string) (string, error)
	Snapshot(ctx context.Context, name string) (*port.Snapshot, error)
}

// Locator finds the recorded checksums of a port.
type Locator struct {
	Source Source
	Logger log.LibraryLogger
}

// Locate returns the recorded checksums for name. Skeleton ports without
// distfiles of their own are resolved through their last sub-port. The
// candidate chain has at most two entries, so Locate always terminates.
func (l *Locator) Locate(ctx context.Context, name, oldVersion, newVersion string) (*Location, error) {
	logger := log.OrNoOp(l.Logger)
	candidates := []string{name}
	var tried []string

	for i := 0; i < len(candidates); i++ {
		candidate := candidates[i]
		tried = append(tried, candidate)

		out, err := l.Source.Distfiles(ctx, candidate)
		if err != nil {
			logger.Debug("port distfiles %s: %v", candidate, err)
		}
		if set, ok := ParseDistfiles(out); ok && err == nil {
			return &Location{
				Old:    set,
				NewURL: strings.Replace(set.URL, oldVersion, newVersion, -1),
				Port:   candidate,
			}, nil
		}

		if i > 0 {
			break
		}
		snap, err := l.Source.Snapshot(ctx, name)
		if err != nil {
			return nil, err
		}
		sub, ok := snap.LastSubport()
		if !ok {
			break
		}
		logger.Debug("no distfiles for %s, trying subport %s", name, sub)
		candidates = append(candidates, sub)
	}

	return nil, &UnresolvableError{Name: name, Tried: tried}
}

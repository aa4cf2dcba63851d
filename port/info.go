package port

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Snapshot is the state of a port as reported by the package index.
type Snapshot struct {
	Name       string
	Version    string
	Revision   int
	Category   string   // primary category
	Categories []string // every category, primary first
	Subports   []string // in index order, nil when the port has none
}

// LastSubport returns the last listed sub-port. The last entry is used as
// the fallback for distfile and livecheck lookups; nothing makes it more
// authoritative than the others, the choice is kept for compatibility.
func (s *Snapshot) LastSubport() (string, bool) {
	if len(s.Subports) == 0 {
		return "", false
	}
	return s.Subports[len(s.Subports)-1], true
}

// String returns "name version"
func (s *Snapshot) String() string {
	return s.Name + " " + s.Version
}

// Summary is the parsed first line of port info:
//
//	gping @1.3.2_1 (net)
type Summary struct {
	Name       string
	Version    string
	Revision   int
	Categories []string

	// VersionOK is false when the token after '@' is not <digits/dots>[_<digits>]
	VersionOK bool
	// CategoryOK is false when no parenthesized category group was found
	CategoryOK bool
}

var (
	versionTokenRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)(?:_(\d+))?$`)
	categoryRe     = regexp.MustCompile(`\(([^)]*)\)`)
)

// ParseSummary extracts name, version, revision and categories from the
// summary line of port info output. It only fails when no line carries an
// '@' version marker; malformed pieces are flagged on the Summary so the
// caller can fall back to dedicated queries.
func ParseSummary(info string) (Summary, error) {
	var line string
	for _, l := range strings.Split(info, "\n") {
		if strings.Contains(l, "@") {
			line = strings.TrimSpace(l)
			break
		}
	}
	if line == "" {
		return Summary{}, fmt.Errorf("no summary line in port info output")
	}

	at := strings.Index(line, "@")
	s := Summary{Name: strings.TrimSpace(line[:at])}

	rest := line[at+1:]
	token := rest
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		token = rest[:i]
	}
	if m := versionTokenRe.FindStringSubmatch(token); m != nil {
		s.Version = m[1]
		if m[2] != "" {
			s.Revision, _ = strconv.Atoi(m[2])
		}
		s.VersionOK = true
	} else {
		s.Version = token
	}

	if m := categoryRe.FindStringSubmatch(rest); m != nil {
		for _, c := range strings.Split(m[1], ",") {
			if c = strings.TrimSpace(c); c != "" {
				s.Categories = append(s.Categories, c)
			}
		}
		s.CategoryOK = len(s.Categories) > 0
	}
	return s, nil
}

// ParseSubports returns the sub-ports listed on the "Sub-ports:" line of
// port info output, or nil when there is no such line. port info wraps long
// lists onto indented continuation lines without the label; those are not
// read, so the last sub-port is the last one on the labelled line.
func ParseSubports(info string) []string {
	var lines []string
	for _, l := range strings.Split(info, "\n") {
		if strings.Contains(l, "Sub-ports") {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	var subports []string
	for _, field := range strings.FieldsFunc(strings.Join(lines, " "), func(r rune) bool {
		return r == ':' || r == ','
	}) {
		field = strings.Join(strings.Fields(field), "")
		if field == "" || field == "Sub-ports" {
			continue
		}
		subports = append(subports, field)
	}
	return subports
}

// ParseLabeled returns the value of single-field query output such as
// "version: 1.3.2" (port info --version). The second whitespace separated
// token is the value.
func ParseLabeled(out string) (string, bool) {
	fields := strings.Fields(out)
	if len(fields) < 2 {
		return "", false
	}
	return fields[1], true
}

// ParseCategory returns the first category of port info --category output
// ("categories: python, devel"), trailing comma or parenthesis stripped.
func ParseCategory(out string) (string, bool) {
	v, ok := ParseLabeled(out)
	if !ok {
		return "", false
	}
	v = strings.TrimRight(v, ",)")
	return v, v != ""
}

// ParseRevision parses port info --revision output ("revision: 1").
func ParseRevision(out string) (int, bool) {
	v, ok := ParseLabeled(out)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

package portfile

import "strings"

// Numbers are the values the patcher rewrites.
type Numbers struct {
	Version string
	SHA256  string
	RMD160  string
	Size    string
}

// Options controls Patch.
type Options struct {
	// Precise restricts each replacement to the fields that should hold
	// it: checksums inside checksums fields and the version inside
	// version-bearing fields. Values not found there fall back to the
	// first occurrence anywhere in the text.
	Precise bool
}

// Result is the outcome of Patch.
type Result struct {
	Text     string
	Revision RevisionState
	Replaced []string // names of the values that were rewritten
	Missing  []string // names of old values absent from the text
}

// Changed reports whether the patched text differs from the original.
func (r *Result) Changed(original string) bool {
	return r.Text != original
}

type replacement struct {
	name     string
	old, new string
	inField  func(key string) bool
}

// Patch resets the revision and replaces the first occurrence of each old
// value with its new value, in the order version, sha256, rmd160, size.
// Old values missing from the text are reported in Result.Missing and are
// not an error. original is never modified.
func Patch(original string, old, new Numbers, opts Options) (*Result, error) {
	text, state, err := NormalizeRevision(original)
	if err != nil {
		return nil, err
	}

	res := &Result{Revision: state}
	for _, r := range []replacement{
		{"version", old.Version, new.Version, IsVersionField},
		{"sha256", old.SHA256, new.SHA256, IsChecksumField},
		{"rmd160", old.RMD160, new.RMD160, IsChecksumField},
		{"size", old.Size, new.Size, IsChecksumField},
	} {
		if r.old == "" || !strings.Contains(text, r.old) {
			res.Missing = append(res.Missing, r.name)
			continue
		}
		if r.old == r.new {
			continue
		}

		replaced := false
		if opts.Precise {
			text, replaced = replaceInFields(text, r)
		}
		if !replaced {
			text = strings.Replace(text, r.old, r.new, 1)
		}
		res.Replaced = append(res.Replaced, r.name)
	}

	res.Text = text
	return res, nil
}

func replaceInFields(text string, r replacement) (string, bool) {
	for _, f := range ScanFields(text) {
		if !r.inField(f.Key) {
			continue
		}
		if i := indexToken(f.Value, r.old); i >= 0 {
			at := f.Start + i
			return text[:at] + r.new + text[at+len(r.old):], true
		}
	}
	return text, false
}

// indexToken finds old in value where it is not part of a longer
// alphanumeric run, so "1.0" does not match inside "11.0.2".
func indexToken(value, old string) int {
	offset := 0
	for {
		i := strings.Index(value[offset:], old)
		if i < 0 {
			return -1
		}
		at := offset + i
		end := at + len(old)
		if (at == 0 || !isWordByte(value[at-1])) && (end == len(value) || !isWordByte(value[end])) {
			return at
		}
		offset = at + 1
	}
}

func isWordByte(b byte) bool {
	return b == '.' || b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

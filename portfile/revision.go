package portfile

import "regexp"

// RevisionState reports what NormalizeRevision did.
type RevisionState int

const (
	// RevisionUnchanged means no nonzero revision was present.
	RevisionUnchanged RevisionState = iota
	// RevisionReset means a single nonzero revision was set to 0.
	RevisionReset
)

func (s RevisionState) String() string {
	if s == RevisionReset {
		return "reset"
	}
	return "unchanged"
}

var (
	nonzeroRevisionRe = regexp.MustCompile(`revision(\s*)[1-9][0-9]*`)
	anyRevisionRe     = regexp.MustCompile(`revision\s*`)
)

// NormalizeRevision resets a single nonzero revision field to 0, keeping
// the whitespace between keyword and value. Text without a nonzero
// revision is returned unchanged. When several revision fields exist and
// one of them is nonzero, the text is returned untouched with an
// *AmbiguousRevisionError.
func NormalizeRevision(text string) (string, RevisionState, error) {
	nonzero := len(nonzeroRevisionRe.FindAllStringIndex(text, -1))
	if nonzero == 0 {
		return text, RevisionUnchanged, nil
	}

	total := len(anyRevisionRe.FindAllStringIndex(text, -1))
	if total > 1 {
		return text, RevisionUnchanged, &AmbiguousRevisionError{Nonzero: nonzero, Total: total}
	}

	loc := nonzeroRevisionRe.FindStringSubmatchIndex(text)
	ws := text[loc[2]:loc[3]]
	return text[:loc[0]] + "revision" + ws + "0" + text[loc[1]:], RevisionReset, nil
}

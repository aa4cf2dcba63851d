package portfile

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Diff renders a unified diff of a Portfile before and after patching.
// It returns "" when the texts are equal.
func Diff(name, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(before),
		B:        splitLinesKeepNL(after),
		FromFile: "a/" + name + "/Portfile",
		ToFile:   "b/" + name + "/Portfile",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(u)
}

func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}

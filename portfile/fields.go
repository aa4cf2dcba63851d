package portfile

import (
	"strings"
	"unicode"
)

// Field is one top-level "key value..." statement of a Portfile. Start and
// End delimit the raw value span, continuation lines included.
type Field struct {
	Key   string
	Value string
	Start int
	End   int
	Line  int // 1-based line of the key
}

// ScanFields returns the top-level fields of a Portfile in order. Lines
// ending in a backslash continue the value. Comments, blank lines and
// block delimiters are skipped; lines that do not start with an
// identifier are ignored rather than rejected.
func ScanFields(text string) []Field {
	var fields []Field
	pos, line := 0, 1

	for pos < len(text) {
		end := strings.IndexByte(text[pos:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += pos
		}
		startLine := line

		lineText := text[pos:end]
		trimmed := strings.TrimLeft(lineText, " \t")
		indent := len(lineText) - len(trimmed)

		// Extend over continuation lines
		valueEnd := end
		for valueEnd < len(text) && strings.HasSuffix(strings.TrimRight(text[pos:valueEnd], " \t"), `\`) {
			next := strings.IndexByte(text[valueEnd+1:], '\n')
			if next < 0 {
				valueEnd = len(text)
			} else {
				valueEnd = valueEnd + 1 + next
			}
			line++
		}

		key := leadingIdentifier(trimmed)
		if key != "" && !strings.HasPrefix(trimmed, "#") {
			vs := pos + indent + len(key)
			for vs < valueEnd && (text[vs] == ' ' || text[vs] == '\t') {
				vs++
			}
			fields = append(fields, Field{
				Key:   key,
				Value: text[vs:valueEnd],
				Start: vs,
				End:   valueEnd,
				Line:  startLine,
			})
		}

		pos = valueEnd + 1
		line++
	}
	return fields
}

func leadingIdentifier(s string) string {
	i := 0
	for i < len(s) {
		r := rune(s[i])
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.' || r == '-' || r == ':' {
			i++
			continue
		}
		break
	}
	if i == 0 || i == len(s) || (s[i] != ' ' && s[i] != '\t') {
		return ""
	}
	if !unicode.IsLetter(rune(s[0])) {
		return ""
	}
	return s[:i]
}

// IsVersionField reports whether a field may carry the port version:
// "version" itself and the portgroup setup lines (github.setup,
// python.setup and friends).
func IsVersionField(key string) bool {
	return key == "version" || strings.HasSuffix(key, ".setup")
}

// IsChecksumField reports whether a field records distfile checksums.
func IsChecksumField(key string) bool {
	return key == "checksums" || strings.HasPrefix(key, "checksums-")
}

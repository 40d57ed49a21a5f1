// internal/document/normalize.go
package document

import (
	"regexp"
	"strings"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
)

// Text is OCR output prepared for pattern matching. Raw keeps the full text
// (line breaks preserved) for rules that may match anywhere; Lines holds the
// trimmed, non-empty lines in their original order for label rules.
type Text struct {
	Raw   string
	Lines []string
}

// Normalize cleans raw OCR output. It never fails: empty input yields an
// empty, non-nil Lines slice.
func Normalize(raw string) Text {
	s := reCRLF.ReplaceAllString(raw, "\n")
	s = reTabs.ReplaceAllString(s, " ")

	lines := make([]string, 0, strings.Count(s, "\n")+1)
	for _, ln := range strings.Split(s, "\n") {
		ln = strings.TrimSpace(reMultiSpace.ReplaceAllString(ln, " "))
		if ln == "" {
			continue
		}
		lines = append(lines, ln)
	}

	return Text{Raw: s, Lines: lines}
}

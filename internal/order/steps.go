package order

import (
	"strings"
	"unicode"
)

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeNewlines rewrites CRLF and lone CR line endings to LF.
func NormalizeNewlines(s string) string {
	return newlineReplacer.Replace(s)
}

// SplitSteps splits a steps block into lines regardless of the newline
// convention. Empty lines are kept as empty steps.
func SplitSteps(steps string) []string {
	return strings.Split(NormalizeNewlines(steps), "\n")
}

// Clean trims the title, drops trailing whitespace from the steps block and
// strips control characters other than line breaks and tabs. Leading empty
// lines and indentation in the steps block are kept; they are steps too.
func Clean(o Order) Order {
	return Order{
		Title: strings.TrimSpace(stripControl(o.Title)),
		Steps: strings.TrimRightFunc(stripControl(o.Steps), unicode.IsSpace),
	}
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

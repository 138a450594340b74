package markdown

import (
	"regexp"
	"strings"

	"github.com/lithammer/dedent"
)

const DefaultHeadingOffset = 2

// FrontMatter opens every generated document.
var FrontMatter = strings.TrimLeft(dedent.Dedent(`
	---
	sidebar: auto
	collapsable: true
	---

	`), "\n")

var headingRe = regexp.MustCompile(`(?m)^(#+)[ \t]+`)

// DemoteHeadings pushes every heading line offset levels deeper. It is a
// plain text rewrite, levels past 6 are left as produced.
func DemoteHeadings(input string, offset int) string {
	if offset < 0 {
		offset = 0
	}
	extra := strings.Repeat("#", offset)
	return headingRe.ReplaceAllString(input, "${1}"+extra+" ")
}

func ModuleHeading(label string) string {
	return "\n## " + label + " module\n"
}

func TypeHeading(module, typ string) string {
	return "\n### " + module + " " + typ + "\n\n"
}

func Title(title string) string {
	return "# " + title + "\n"
}

// SourceFooter follows each extracted fragment.
func SourceFooter(path string) string {
	return "\nsource: " + path + "\n"
}

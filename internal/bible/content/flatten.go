package content

import (
	"regexp"
	"strings"
)

// Options controls flattening.
type Options struct {
	// LineByLine lays the passage out one verse per line, used for poetic
	// books.
	LineByLine bool
}

const pilcrow = "¶"

var (
	hspaceRun = regexp.MustCompile(`[ \t]{2,}`)
	nlRun     = regexp.MustCompile(`[ \t]*\n[\s]*`)
)

// Flatten walks the document tree depth-first and produces linear display
// text with bracketed verse numbers. It is a pure function of the tree and
// the options; nil or empty input yields "".
func Flatten(nodes []Node, opts Options) string {
	if len(nodes) == 0 {
		return ""
	}
	f := flattener{lineByLine: opts.LineByLine}
	for _, n := range nodes {
		f.walk(n)
	}
	return f.finish()
}

type flattener struct {
	b          strings.Builder
	lineByLine bool
	// stripDigits is armed by a verse marker: the next text leaf drops any
	// leading digit run the backend embedded redundantly.
	stripDigits bool
}

func (f *flattener) walk(n Node) {
	switch n.Type {
	case NodeText:
		f.text(n.Text)
	case NodeTag:
		switch {
		case n.Name == "verse" && n.Attr("number") != "":
			if f.lineByLine {
				f.b.WriteString("\n")
			} else {
				f.b.WriteString(" ")
			}
			f.b.WriteString("[" + n.Attr("number") + "] ")
			f.stripDigits = true
		case n.Name == "para" && f.lineByLine && n.Attr("vid") != "":
			f.b.WriteString(" ")
		}
		for _, child := range n.Items {
			f.walk(child)
		}
	}
}

func (f *flattener) text(s string) {
	s = strings.TrimPrefix(s, pilcrow)
	if s == "" {
		return
	}
	if f.stripDigits {
		f.stripDigits = false
		i := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		s = s[i:]
	}
	f.b.WriteString(s)
}

func (f *flattener) finish() string {
	out := hspaceRun.ReplaceAllString(f.b.String(), " ")
	if f.lineByLine {
		out = nlRun.ReplaceAllString(out, "\n")
		// Trailing space before each newline renders as a markdown
		// soft-break downstream.
		out = strings.ReplaceAll(out, "\n", " \n")
	}
	out = strings.TrimSpace(out)
	if out != "" {
		out += " "
	}
	return out
}

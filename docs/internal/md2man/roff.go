package md2man

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/russross/blackfriday/v2"
)

// RoffRenderer renders the Markdown AST as a man page.
//
// A level 1 heading is the page title ("readmestats 1"), level 2 headings
// are sections and level 3 headings are subsections.
type RoffRenderer struct {
	section int
	version string
	source  string
	volume  string
	date    time.Time

	listDepth   int
	listCounter []int
}

func NewRoffRenderer(section int, version, source, volume string) *RoffRenderer {
	return &RoffRenderer{
		section: section,
		version: version,
		source:  source,
		volume:  volume,
		date:    time.Now(),
	}
}

func (r *RoffRenderer) GetExtensions() blackfriday.Extensions {
	return blackfriday.NoIntraEmphasis |
		blackfriday.FencedCode |
		blackfriday.DefinitionLists |
		blackfriday.SpaceHeadings |
		blackfriday.BackslashLineBreak
}

func (r *RoffRenderer) RenderHeader(w io.Writer, ast *blackfriday.Node) {
	// Disable hyphenation.
	_, _ = io.WriteString(w, ".nh\n")
}

func (r *RoffRenderer) RenderFooter(w io.Writer, ast *blackfriday.Node) {}

func (r *RoffRenderer) RenderNode(w io.Writer, node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
	out := func(s string) { _, _ = io.WriteString(w, s) }

	switch node.Type {
	case blackfriday.Heading:
		if !entering {
			out("\"\n")
			break
		}
		switch node.HeadingData.Level {
		case 1:
			title := strings.ToUpper(strings.TrimSuffix(strings.TrimSpace(text(node)), fmt.Sprintf(" %d", r.section)))
			out(fmt.Sprintf(".TH \"%s\" \"%d\" \"%s\" \"%s\" \"%s\"\n",
				title, r.section, r.date.Format("Jan 2006"), r.source+" "+r.version, r.volume))
			return blackfriday.SkipChildren
		case 2:
			out(".SH \"")
		default:
			out(".SS \"")
		}
	case blackfriday.Paragraph:
		if entering {
			if node.Parent != nil && node.Parent.Type == blackfriday.Item {
				if node.Prev != nil {
					out(".IP \"\" 2\n")
				}
			} else {
				out(".PP\n")
			}
		} else {
			out("\n")
		}
	case blackfriday.Text:
		out(escape(string(node.Literal)))
	case blackfriday.Emph:
		out(font(entering, `\fI`))
	case blackfriday.Strong:
		out(font(entering, `\fB`))
	case blackfriday.Code:
		out(`\fB` + escape(string(node.Literal)) + `\fP`)
	case blackfriday.Link:
		if !entering {
			out(` \[la]` + escape(string(node.LinkData.Destination)) + `\[ra]`)
		}
	case blackfriday.Softbreak:
		out("\n")
	case blackfriday.Hardbreak:
		out("\n.br\n")
	case blackfriday.CodeBlock:
		out(".PP\n.RS\n\n.nf\n")
		out(escape(string(node.Literal)))
		out(".fi\n.RE\n")
	case blackfriday.List:
		if entering {
			r.listDepth++
			r.listCounter = append(r.listCounter, 1)
			if r.listDepth > 1 {
				out(".RS\n")
			}
		} else {
			r.listDepth--
			r.listCounter = r.listCounter[:len(r.listCounter)-1]
			if r.listDepth > 0 {
				out(".RE\n")
			}
		}
	case blackfriday.Item:
		if !entering {
			break
		}
		switch {
		case node.ListFlags&blackfriday.ListTypeTerm != 0:
			out(".TP\n")
		case node.ListFlags&blackfriday.ListTypeDefinition != 0:
		case node.ListFlags&blackfriday.ListTypeOrdered != 0:
			n := len(r.listCounter) - 1
			out(fmt.Sprintf(".IP \"%3d.\" 5\n", r.listCounter[n]))
			r.listCounter[n]++
		default:
			out(".IP \\(bu 2\n")
		}
	case blackfriday.HorizontalRule:
		out(".ti 0\n\\l'\\n(.lu'\n")
	case blackfriday.Document, blackfriday.BlockQuote:
	default:
		// HTML, images and tables have no man page rendering.
		return blackfriday.SkipChildren
	}
	return blackfriday.GoToNext
}

func font(entering bool, start string) string {
	if entering {
		return start
	}
	return `\fP`
}

// text returns the concatenated text of every descendant of node.
func text(node *blackfriday.Node) string {
	var sb strings.Builder
	node.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if entering && (n.Type == blackfriday.Text || n.Type == blackfriday.Code) {
			sb.Write(n.Literal)
		}
		return blackfriday.GoToNext
	})
	return sb.String()
}

var escaper = strings.NewReplacer(`\`, `\e`, `-`, `\-`)

func escape(s string) string {
	s = escaper.Replace(s)
	// A leading dot or quote would be read as a request.
	var sb strings.Builder
	for _, line := range strings.SplitAfter(s, "\n") {
		if strings.HasPrefix(line, ".") || strings.HasPrefix(line, "'") {
			sb.WriteString(`\&`)
		}
		sb.WriteString(line)
	}
	return sb.String()
}

package md2man

import (
	"regexp"

	"github.com/russross/blackfriday/v2"
)

var blankLines = regexp.MustCompile(`\n+`)

// RenderToRoff converts a Markdown man page into roff with runs of blank
// lines collapsed.
func RenderToRoff(text []byte, section int, version, source, volume string) []byte {
	renderer := NewRoffRenderer(section, version, source, volume)
	bs := blackfriday.Run(text,
		[]blackfriday.Option{
			blackfriday.WithRenderer(renderer),
			blackfriday.WithExtensions(renderer.GetExtensions()),
		}...,
	)
	return []byte(blankLines.ReplaceAllString(string(bs), "\n"))
}

package render

import (
	"fmt"
	"html"
	"strings"
)

// RenderHTML produces the edit-preview markup for a document: the same
// content as Render, word-wrapped, inside a <pre> block, with the raster logo
// referenced as an image instead of a placeholder.
func RenderHTML(doc Document) (string, error) {
	width := doc.Width
	if width <= 0 {
		return "", fmt.Errorf("render: document width must be positive, got %d", width)
	}

	// The image is shown as a real <img>; strip it so Render does not emit
	// the text placeholder as well.
	textDoc := doc
	textDoc.LogoImage = ""

	lines, err := Render(textDoc, width, WrapWord)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(`<div class="receipt">` + "\n")
	if doc.LogoImage != "" {
		fmt.Fprintf(&b, `<img class="receipt-logo" src=%q alt="logo">`+"\n", doc.LogoImage)
	}
	b.WriteString("<pre>")
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(html.EscapeString(line))
	}
	b.WriteString("</pre>\n</div>\n")
	return b.String(), nil
}

// Package render lays out a structured receipt document on a fixed-width
// character grid, the way thermal printer firmware expects it. It knows
// nothing about companies, taxes or printers; it consumes the plain Document
// shape and produces lines.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hrkone/kuitti-api/pkg/markup"
)

// WrapMode selects how over-long lines are split.
type WrapMode int

const (
	// WrapHard splits into chunks of exactly width characters. Used for
	// printer-bound output.
	WrapHard WrapMode = iota
	// WrapWord breaks at word boundaries where possible. Used for human
	// preview surfaces.
	WrapWord
)

// Item is one item row to lay out.
type Item struct {
	Name     string
	Quantity string
	Price    string
	Note     string
}

// Document is the renderer's input: already-composed text plus item rows.
// Label/value pairs inside Header or Footer are marked with a tab separator
// and are right-justified at render time.
type Document struct {
	Header    []string
	Items     []Item
	Footer    []string
	LogoText  []string
	LogoImage string
	Width     int
}

// logoPlaceholder stands in for a raster logo in text output; the printer
// sink substitutes the actual image.
const logoPlaceholder = "[LOGO]"

// barGlyph is the synthetic bar used for on-screen barcode placeholders.
const (
	barGlyph    = "█"
	maxBarWidth = 20
)

// Render lays the document out at the given character width and returns the
// final lines. A non-positive width is a caller error, not a data error.
// Rendering is pure: the same document and width always yield the same lines.
func Render(doc Document, width int, mode WrapMode) ([]string, error) {
	if width <= 0 {
		return nil, fmt.Errorf("render: width must be positive, got %d", width)
	}

	var lines []string
	emit := func(line string) {
		lines = append(lines, Wrap(line, width, mode)...)
	}
	emitCentered := func(line string) {
		for _, chunk := range Wrap(line, width, mode) {
			lines = append(lines, Center(chunk, width))
		}
	}

	// Logo block
	for _, l := range doc.LogoText {
		emitCentered(l)
	}
	if doc.LogoImage != "" {
		emitCentered(logoPlaceholder)
	}
	if len(doc.LogoText) > 0 || doc.LogoImage != "" {
		lines = append(lines, "")
	}

	// Header lines are centered; barcode directives become placeholders.
	for _, l := range doc.Header {
		if l == "" {
			lines = append(lines, "")
			continue
		}
		if emitBarcode(&lines, l, width, mode) {
			continue
		}
		if label, value, ok := strings.Cut(l, "\t"); ok {
			emit(LeftRight(label, value, width))
			continue
		}
		emitCentered(l)
	}

	// Item block bounded by rules.
	if len(doc.Items) > 0 {
		lines = append(lines, Rule('-', width))
		for _, item := range doc.Items {
			emit(ItemLine(item.Quantity, item.Name, item.Price, width))
			if item.Note != "" {
				emit("  " + item.Note)
			}
		}
		lines = append(lines, Rule('-', width))
	}

	// Footer lines stay left-aligned unless tab-marked as label/value pairs.
	for _, l := range doc.Footer {
		if emitBarcode(&lines, l, width, mode) {
			continue
		}
		if label, value, ok := strings.Cut(l, "\t"); ok {
			emit(LeftRight(label, value, width))
			continue
		}
		emit(l)
	}

	return lines, nil
}

// emitBarcode replaces a valid directive line with a bracketed placeholder
// and a synthetic bar pattern. Invalid directives are left for the caller to
// print verbatim.
func emitBarcode(lines *[]string, line string, width int, mode WrapMode) bool {
	d, ok := markup.Parse(line)
	if !ok {
		return false
	}
	*lines = append(*lines, Center(fmt.Sprintf("[%s %s]", d.Symbology, d.Payload), width))
	bars := utf8.RuneCountInString(d.Payload)
	if bars > maxBarWidth {
		bars = maxBarWidth
	}
	*lines = append(*lines, Center(strings.Repeat(barGlyph, bars), width))
	if d.Trailing != "" {
		*lines = append(*lines, Wrap(d.Trailing, width, mode)...)
	}
	return true
}

// Center pads text symmetrically to width; an odd remainder goes to the
// right. Text already at or past width is returned unchanged.
func Center(text string, width int) string {
	gap := width - utf8.RuneCountInString(text)
	if gap <= 0 {
		return text
	}
	left := gap / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
}

// LeftRight right-justifies value into the space left after label. When the
// pair does not fit, a single separating space is kept and the line runs
// long; that degradation is deliberate, not an error.
func LeftRight(label, value string, width int) string {
	spaces := width - utf8.RuneCountInString(label) - utf8.RuneCountInString(value)
	if spaces < 1 {
		spaces = 1
	}
	return label + strings.Repeat(" ", spaces) + value
}

// Rule builds a full-width repeated-character separator line.
func Rule(char byte, width int) string {
	return strings.Repeat(string(char), width)
}

// ItemLine composes "{qty}x {name}" with the price right-aligned in the last
// columns. When the combined text would overflow, the name side is truncated;
// the price always stays visible.
func ItemLine(quantity, name, price string, width int) string {
	left := name
	if quantity != "" {
		left = quantity + "x " + name
	}
	priceLen := utf8.RuneCountInString(price)
	if priceLen+2 > width {
		// Degenerate width; nothing sensible fits besides the amount.
		return price
	}
	maxLeft := width - priceLen - 1
	leftRunes := []rune(left)
	if len(leftRunes) > maxLeft {
		leftRunes = leftRunes[:maxLeft]
	}
	left = string(leftRunes)
	return left + strings.Repeat(" ", width-len(leftRunes)-priceLen) + price
}

// Wrap splits a line exceeding width into chunks. WrapHard cuts at exactly
// width runes; WrapWord prefers word boundaries, hard-splitting only words
// longer than the whole width.
func Wrap(line string, width int, mode WrapMode) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}
	if mode == WrapHard {
		return hardWrap(line, width)
	}
	return wordWrap(line, width)
}

func hardWrap(line string, width int) []string {
	runes := []rune(line)
	chunks := make([]string, 0, (len(runes)+width-1)/width)
	for len(runes) > width {
		chunks = append(chunks, string(runes[:width]))
		runes = runes[width:]
	}
	return append(chunks, string(runes))
}

func wordWrap(line string, width int) []string {
	var out []string
	var current strings.Builder
	currentLen := 0
	for _, word := range strings.Fields(line) {
		wl := utf8.RuneCountInString(word)
		if currentLen > 0 && currentLen+1+wl > width {
			out = append(out, current.String())
			current.Reset()
			currentLen = 0
		}
		if wl > width {
			// A single word longer than the line still has to split.
			for _, chunk := range hardWrap(word, width) {
				cl := utf8.RuneCountInString(chunk)
				if cl == width {
					if currentLen > 0 {
						out = append(out, current.String())
						current.Reset()
						currentLen = 0
					}
					out = append(out, chunk)
				} else {
					current.WriteString(chunk)
					currentLen = cl
				}
			}
			continue
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(word)
		currentLen += wl
	}
	if currentLen > 0 {
		out = append(out, current.String())
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}

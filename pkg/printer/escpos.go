package printer

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/hrkone/kuitti-api/pkg/markup"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Font size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // Double width + double height
	FontWide   = 0x10 // Double width only
	FontTall   = 0x01 // Double height only
)

// GS k function-B symbology codes.
const (
	symbolUPCA    = 65
	symbolEAN13   = 67
	symbolEAN8    = 68
	symbolCODE39  = 69
	symbolCODE128 = 73
)

// Document builds an ESC/POS byte stream for thermal printers.
type Document struct {
	buf       bytes.Buffer
	width     int // print width in characters (42 for TM-T70II class devices, 48 for 80mm)
	maxLines  int
	lineCount int
}

// NewDocument creates a new ESC/POS document with the given character width.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 42
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Init sends the ESC @ (initialize printer) command.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// SetMaxLines caps the number of content lines the document will emit.
// Content beyond the cap is dropped; trailer feeds and the cut command are
// unaffected. Zero or negative disables the cap.
func (d *Document) SetMaxLines(n int) *Document {
	d.maxLines = n
	return d
}

// capped consumes one line of the budget and reports whether it was already
// spent.
func (d *Document) capped() bool {
	if d.maxLines > 0 && d.lineCount >= d.maxLines {
		return true
	}
	d.lineCount++
	return false
}

// LineFeed sends a line feed. It counts against the line cap.
func (d *Document) LineFeed() *Document {
	if d.capped() {
		return d
	}
	d.buf.WriteByte(LF)
	return d
}

// FeedLines sends n line feeds. The trailer feed is exempt from the line cap.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetFontSize sets the character size. Use FontNormal, FontDouble, FontWide, or FontTall.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	if d.capped() {
		return d
	}
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// TextF writes a formatted line of text followed by a line feed.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator prints a full-width separator line.
func (d *Document) Separator(char byte) *Document {
	if d.capped() {
		return d
	}
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// Barcode emits a GS k (function B) barcode for the given symbology and
// payload. The symbology is folded through markup.Canonical, so "UPC-A",
// "UPC_A" and "upca" all work. Unknown symbologies and invalid payloads fall
// back to printing the payload as text so the information is never lost.
func (d *Document) Barcode(symbology, payload string) *Document {
	if !markup.Validate(symbology, payload) {
		return d.Text(payload)
	}
	if d.capped() {
		return d
	}

	var code byte
	data := payload
	switch markup.Canonical(symbology) {
	case "UPCA":
		code = symbolUPCA
	case "EAN13":
		code = symbolEAN13
	case "EAN8":
		code = symbolEAN8
	case "CODE39":
		code = symbolCODE39
	case "CODE128":
		code = symbolCODE128
		data = "{B" + payload // select code set B
	default:
		code = symbolCODE128
		data = "{B" + payload
	}

	// Height 80 dots, module width 2, HRI below the bars.
	d.buf.Write([]byte{GS, 'h', 80})
	d.buf.Write([]byte{GS, 'w', 2})
	d.buf.Write([]byte{GS, 'H', 2})
	d.buf.Write([]byte{GS, 'k', code, byte(len(data))})
	d.buf.WriteString(data)
	d.buf.WriteByte(LF)
	return d
}

// Image emits a GS v 0 raster image. The image is downscaled to fit
// maxWidth×maxHeight dots (aspect preserved) and thresholded to 1 bit per
// pixel. Dimensions of zero or less disable the respective limit.
func (d *Document) Image(img image.Image, maxWidth, maxHeight int) *Document {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return d
	}
	if d.capped() {
		return d
	}

	scale := 1.0
	if maxWidth > 0 && w > maxWidth {
		scale = float64(maxWidth) / float64(w)
	}
	if maxHeight > 0 && float64(h)*scale > float64(maxHeight) {
		scale = float64(maxHeight) / float64(h)
	}
	outW := int(float64(w) * scale)
	outH := int(float64(h) * scale)
	if outW == 0 || outH == 0 {
		return d
	}

	rowBytes := (outW + 7) / 8
	raster := make([]byte, rowBytes*outH)
	for y := 0; y < outH; y++ {
		srcY := bounds.Min.Y + y*h/outH
		for x := 0; x < outW; x++ {
			srcX := bounds.Min.X + x*w/outW
			r, g, b, a := img.At(srcX, srcY).RGBA()
			// Luma threshold; transparent pixels stay white.
			luma := (299*r + 587*g + 114*b) / 1000
			if a > 0x7FFF && luma < 0x7FFF {
				raster[y*rowBytes+x/8] |= 0x80 >> uint(x%8)
			}
		}
	}

	d.buf.Write([]byte{GS, 'v', '0', 0,
		byte(rowBytes & 0xFF), byte(rowBytes >> 8),
		byte(outH & 0xFF), byte(outH >> 8)})
	d.buf.Write(raster)
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints a left-aligned key and right-aligned value on the same line.
func (d *Document) KeyValue(key, value string) *Document {
	if d.capped() {
		return d
	}
	spaces := d.width - len([]rune(key)) - len([]rune(value))
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(value)
	d.buf.WriteByte(LF)
	return d
}

// Cut sends the paper cut command (full cut).
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x00})
	return d
}

// PartialCut sends the partial cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Reset clears the buffer and the line count, then reinitializes the document.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.lineCount = 0
	d.Init()
	return d
}

package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
	"testing"

	"codeberg.org/go-pdf/fpdf"
)

const fixtureFontSize = 20

// fixtureText is a word printed on a fixture page; x, y are in points with
// y on the baseline.
type fixtureText struct {
	x, y float64
	ink  color.RGBA
	word string
}

// writeFixturePDF prints one page per entry with fpdf and returns where each
// word lands once the document is rendered at dpi, keyed by page number.
func writeFixturePDF(t *testing.T, path string, dpi float64, pages ...[]fixtureText) map[int][]inkRegion {
	t.Helper()

	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetFont("Helvetica", "B", fixtureFontSize)
	scale := dpi / 72
	px := func(v float64) int { return int(v * scale) }

	regions := make(map[int][]inkRegion, len(pages))
	for i, words := range pages {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: 320, Ht: 400})
		for _, w := range words {
			pdf.SetTextColor(int(w.ink.R), int(w.ink.G), int(w.ink.B))
			pdf.Text(w.x, w.y, w.word)
			width := pdf.GetStringWidth(w.word)
			regions[i+1] = append(regions[i+1], inkRegion{
				rect: image.Rect(px(w.x-2), px(w.y-fixtureFontSize-2), px(w.x+width+2), px(w.y+6)),
				ink:  w.ink,
				word: w.word,
			})
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatalf("write fixture PDF: %v", err)
	}
	return regions
}

// writeEmptyPDF writes a well-formed document whose page tree has no kids.
// fpdf always emits at least one page, so this one is assembled by hand.
func writeEmptyPDF(t *testing.T, path string) {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	catalog := buf.Len()
	buf.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	pages := buf.Len()
	buf.WriteString("2 0 obj\n<< /Type /Pages /Kids [] /Count 0 >>\nendobj\n")
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 3\n0000000000 65535 f \n%010d 00000 n \n%010d 00000 n \n", catalog, pages)
	fmt.Fprintf(&buf, "trailer\n<< /Size 3 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write empty PDF: %v", err)
	}
}

// isRed reports a rendered pixel that is clearly red ink
func isRed(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 > 150 && g>>8 < 100 && b>>8 < 100
}

func countPixels(img image.Image, rect image.Rectangle, match func(color.Color) bool) int {
	n := 0
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if match(img.At(x, y)) {
				n++
			}
		}
	}
	return n
}

package app

import (
	"bufio"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// writeReportPDF renders the run report to PDF. Headings get a bold font and
// table rows are flattened to "cell  cell" lines; this is not a Markdown
// layout engine.
func writeReportPDF(markdown string, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	scanner := bufio.NewScanner(strings.NewReader(markdown))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		switch {
		case s == "":
			pdf.Ln(4)
		case s == "---":
			pdf.Ln(2)
			pageW, _ := pdf.GetPageSize()
			l, _, r, _ := pdf.GetMargins()
			y := pdf.GetY()
			pdf.Line(l, y, pageW-r, y)
			pdf.Ln(3)
		case strings.HasPrefix(s, "#"):
			level := 0
			for level < len(s) && s[level] == '#' {
				level++
			}
			text := strings.TrimSpace(s[level:])
			if text == "" {
				continue
			}
			size := 14.0
			if level >= 2 {
				size = 12.0
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.CellFormat(0, 8, tr(text), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
		case strings.HasPrefix(s, "|"):
			cells := tableCells(s)
			if len(cells) == 0 {
				continue
			}
			pdf.MultiCell(0, 5, tr(strings.Join(cells, "  ")), "", "L", false)
		default:
			pdf.MultiCell(0, 5, tr(s), "", "L", false)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return pdf.OutputFileAndClose(outPath)
}

// tableCells splits a Markdown table row. Separator rows yield nil.
func tableCells(row string) []string {
	row = strings.Trim(row, "|")
	row = strings.ReplaceAll(row, `\|`, "\x00")
	parts := strings.Split(row, "|")
	out := make([]string, 0, len(parts))
	separator := true
	for _, p := range parts {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\x00", "|"))
		p = strings.Trim(p, "`")
		if strings.Trim(p, "-:") != "" {
			separator = false
		}
		out = append(out, p)
	}
	if separator {
		return nil
	}
	return out
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest builds minimal but structurally valid PDF documents so
// tests never have to ship binary fixtures or shell out to an external tool.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

// Build assembles a PDF with the given number of empty pages, optionally
// carrying one text form field on the first page. Object offsets in the
// cross-reference table are recorded as the objects are written, so the
// output satisfies strict parsers.
func Build(pages int, withField bool) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make(map[int]int)
	addObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	fieldNum := 3 + pages

	catalog := "<< /Type /Catalog /Pages 2 0 R >>"
	if withField {
		catalog = fmt.Sprintf("<< /Type /Catalog /Pages 2 0 R /AcroForm << /Fields [%d 0 R] >> >>", fieldNum)
	}
	addObj(1, catalog)

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}
	addObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))

	for i := 0; i < pages; i++ {
		page := "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] >>"
		if withField && i == 0 {
			page = fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Annots [%d 0 R] >>", fieldNum)
		}
		addObj(3+i, page)
	}

	if withField {
		addObj(fieldNum, "<< /Type /Annot /Subtype /Widget /FT /Tx /T (note) /Rect [36 700 200 720] /V (sample) /DA (/Helv 12 Tf 0 g) >>")
	}

	count := 2 + pages
	if withField {
		count++
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", count+1)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num <= count; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", count+1, xrefPos)
	return buf.Bytes()
}

// Write saves a generated document to path and fails the test on error.
func Write(t testing.TB, path string, pages int, withField bool) {
	t.Helper()
	if err := os.WriteFile(path, Build(pages, withField), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

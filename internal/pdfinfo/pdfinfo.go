// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfinfo answers cheap questions about PDF files: whether a file
// is one at all, how many pages it holds, and whether an interactive form
// survives in it.
package pdfinfo

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// pdfMagic is the five-byte header every PDF starts with.
var pdfMagic = []byte("%PDF-")

// IsPDF reports whether the file at path begins with the PDF magic header.
// This is a sniff, not a structural validation: a malformed body behind a
// valid header passes. Any I/O error reads as "not a PDF"; IsPDF never
// returns an error.
func IsPDF(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(f, buf); err != nil {
		return false
	}
	return bytes.Equal(buf, pdfMagic)
}

// PageCount returns the number of pages in the document at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}

// HasAcroForm reports whether the document catalog carries an AcroForm
// dictionary with at least one field. A flattened document has none.
func HasAcroForm(path string) (bool, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	root, err := ctx.Catalog()
	if err != nil {
		return false, fmt.Errorf("catalog of %s: %w", path, err)
	}

	obj, found := root.Find("AcroForm")
	if !found {
		return false, nil
	}
	form, err := ctx.DereferenceDict(obj)
	if err != nil || form == nil {
		return false, nil
	}
	fieldsObj, found := form.Find("Fields")
	if !found {
		return false, nil
	}
	fields, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return false, nil
	}
	return len(fields) > 0, nil
}

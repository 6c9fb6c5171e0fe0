// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mergepdf concatenates PDF documents structurally, without
// re-rendering any page content.
package mergepdf

import (
	"errors"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrSourceNotFound marks a missing input document.
var ErrSourceNotFound = errors.New("source file not found")

// Concat writes a new document to dst containing every page of first in
// order, then every page of second in order. No page is dropped, reordered,
// or duplicated. Errors name the offending file.
func Concat(first, second, dst string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	for _, src := range []string{first, second} {
		if _, err := os.Stat(src); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s", ErrSourceNotFound, src)
			}
			return fmt.Errorf("reading %s: %w", src, err)
		}
		if err := api.ValidateFiles([]string{src}, conf); err != nil {
			return fmt.Errorf("reading %s: %w", src, err)
		}
	}

	if err := api.MergeCreateFile([]string{first, second}, dst, false, conf); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}

// Merger adapts Concat to the pipeline's merge interface.
type Merger struct{}

// Merge concatenates first and second into dst.
func (Merger) Merge(first, second, dst string) error {
	return Concat(first, second, dst)
}

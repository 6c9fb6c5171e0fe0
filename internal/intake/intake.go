// Package intake discovers the candidate PDF files a batch will operate on.
package intake

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/coverbind/internal/pdfinfo"
	"github.com/pdiddy/coverbind/pkg/types"
)

// Collect expands each path into candidate files. A directory contributes
// the *.pdf files directly inside it in name order; other entries are
// ignored. Every collected file is content-sniffed: files that do not start
// with the PDF header stay in the result flagged invalid and are also listed
// in rejected. A path that cannot be read at all is an error.
func Collect(paths ...string) ([]types.Candidate, []string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, nil, fmt.Errorf("reading input %s: %w", path, err)
		}
		if info.IsDir() {
			entries, err := listPDFs(path)
			if err != nil {
				return nil, nil, err
			}
			files = append(files, entries...)
			continue
		}
		files = append(files, path)
	}

	var candidates []types.Candidate
	var rejected []string
	for _, file := range files {
		valid := pdfinfo.IsPDF(file)
		if !valid {
			rejected = append(rejected, file)
		}
		candidates = append(candidates, types.Candidate{Path: file, Valid: valid})
	}
	return candidates, rejected, nil
}

// listPDFs returns the *.pdf files directly inside dir. os.ReadDir hands the
// entries back in name order already.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading folder %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

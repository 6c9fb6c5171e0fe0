// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package flatten

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
)

// locator carries the probes discovery needs, so tests can model any
// platform and filesystem.
type locator struct {
	goos     string
	exeDir   func() (string, error)
	glob     func(pattern string) ([]string, error)
	exists   func(path string) bool
	lookPath func(file string) (string, error)
}

func newLocator() locator {
	return locator{
		goos: runtime.GOOS,
		exeDir: func() (string, error) {
			exe, err := os.Executable()
			if err != nil {
				return "", err
			}
			return filepath.Dir(exe), nil
		},
		glob: filepath.Glob,
		exists: func(path string) bool {
			info, err := os.Stat(path)
			return err == nil && !info.IsDir()
		},
		lookPath: execRunner{}.LookPath,
	}
}

// Locate finds the Ghostscript executable. It checks, in order: the
// directory of the running binary and its gs/ subdirectory (a bundled
// install), the platform's usual install locations, and finally $PATH.
// When nothing resolves, the error wraps ErrToolNotFound and carries
// per-platform install guidance.
func Locate() (string, error) {
	return locate(newLocator())
}

func locate(l locator) (string, error) {
	if dir, err := l.exeDir(); err == nil {
		for _, name := range binaryNames(l.goos) {
			for _, p := range []string{filepath.Join(dir, name), filepath.Join(dir, "gs", name)} {
				if l.exists(p) {
					return p, nil
				}
			}
		}
	}

	for _, pattern := range wellKnownGlobs(l.goos) {
		matches, err := l.glob(pattern)
		if err != nil || len(matches) == 0 {
			continue
		}
		// Versioned install directories can match more than once; pick the
		// lexicographically last for determinism.
		sort.Strings(matches)
		if p := matches[len(matches)-1]; l.exists(p) {
			return p, nil
		}
	}

	for _, name := range binaryNames(l.goos) {
		if p, err := l.lookPath(name); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrToolNotFound, InstallHint(l.goos))
}

// binaryNames returns the Ghostscript executable names for a platform.
// Windows ships separate 64- and 32-bit console binaries.
func binaryNames(goos string) []string {
	if goos == "windows" {
		return []string{"gswin64c.exe", "gswin32c.exe"}
	}
	return []string{"gs"}
}

// wellKnownGlobs returns the usual install locations per platform.
func wellKnownGlobs(goos string) []string {
	switch goos {
	case "windows":
		return []string{
			`C:\Program Files\gs\gs*\bin\gswin64c.exe`,
			`C:\Program Files (x86)\gs\gs*\bin\gswin32c.exe`,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/bin/gs",
			"/usr/local/bin/gs",
		}
	default:
		return []string{
			"/usr/bin/gs",
			"/usr/local/bin/gs",
		}
	}
}

// InstallHint returns per-platform guidance for obtaining Ghostscript.
func InstallHint(goos string) string {
	switch goos {
	case "windows":
		return "install Ghostscript from https://ghostscript.com/releases/ (the gswin64c.exe console binary)"
	case "darwin":
		return "install Ghostscript with: brew install ghostscript"
	default:
		return "install Ghostscript with your package manager, e.g.: apt install ghostscript"
	}
}

// Package runner highlights many Markdown files concurrently.
package runner

import "github.com/yaklabco/gomdhl/pkg/config"

// Options controls multi-file highlighting.
type Options struct {
	// Paths are the user-specified files or directories to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// Ignore holds doublestar glob patterns, relative to WorkingDir, for
	// files and directories to skip. A pattern without a slash matches a
	// base name at any depth.
	Ignore []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Window limits the runs reported for each file. The zero value
	// reports nothing; use config.FullWindow for everything.
	Window config.Window
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".mdown", ".mkd"}
}

// skippedDirs are directory names never descended into, in addition to
// hidden directories such as .git.
//
//nolint:gochecknoglobals // Read-only lookup table.
var skippedDirs = map[string]bool{
	"node_modules": true,
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

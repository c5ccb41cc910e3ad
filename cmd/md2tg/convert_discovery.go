package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2tg/internal/fileutil"
)

// stdinName is the output base name for input read from stdin.
const stdinName = "stdin"

// FileToConvert represents a single document to process.
type FileToConvert struct {
	InputPath  string // "-" for stdin
	OutputBase string // output path without suffix; empty when writing to stdout
	content    []byte // preloaded input (stdin)
}

// discoverFiles finds all markdown files under the given paths, in argument
// order then walk order.
func discoverFiles(paths []string, outputDir string) ([]FileToConvert, error) {
	var files []FileToConvert
	for _, p := range paths {
		found, err := discoverPath(p, outputDir)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func discoverPath(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		return []FileToConvert{{
			InputPath:  inputPath,
			OutputBase: resolveOutputBase(inputPath, outputDir, ""),
		}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdownFile(path) {
			return nil
		}
		files = append(files, FileToConvert{
			InputPath:  path,
			OutputBase: resolveOutputBase(path, outputDir, inputPath),
		})
		return nil
	})
	return files, err
}

// resolveOutputBase returns the chunk file prefix for a markdown file,
// mirroring the input tree under outputDir. Empty outputDir means stdout.
func resolveOutputBase(inputPath, outputDir, baseInputDir string) string {
	if outputDir == "" {
		return ""
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	if baseInputDir != "" {
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base)
		}
	}
	return filepath.Join(outputDir, base)
}

// chunkPath returns the path of the chunk at index i (0-based).
func chunkPath(base string, i int) string {
	return fmt.Sprintf("%s.%03d.txt", base, i+1)
}

// jsonPath returns the path of the JSON document for base.
func jsonPath(base string) string {
	return base + ".json"
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !fileutil.IsMarkdownFile(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

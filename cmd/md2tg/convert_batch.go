package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	md2tg "github.com/alnah/go-md2tg"
	"github.com/alnah/go-md2tg/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrReadInput   = errors.New("failed to read markdown input")
	ErrWriteOutput = errors.New("failed to write output")
)

// Renderer is the conversion service used by the CLI.
type Renderer interface {
	Render(markdown string) ([]string, error)
	PlainChunks(markdown string) []string
}

// Compile-time interface implementation check.
var _ Renderer = (*md2tg.Converter)(nil)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	plain     bool
	json      bool
	separator string
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath   string
	OutputBase  string
	OutputPaths []string
	Chunks      []string
	Err         error
	Duration    time.Duration
}

// convertBatch processes files concurrently with at most workers goroutines.
// Results keep the order of files.
func convertBatch(ctx context.Context, r Renderer, files []FileToConvert, workers int, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(r, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile converts a single document and writes its chunk files when
// it has an output base.
func convertFile(r Renderer, f FileToConvert, params *conversionParams) (result ConversionResult) {
	start := time.Now()
	result = ConversionResult{
		InputPath:  f.InputPath,
		OutputBase: f.OutputBase,
	}
	defer func() { result.Duration = time.Since(start) }()

	content := f.content
	if content == nil {
		var err error
		content, err = os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
		if err != nil {
			result.Err = fmt.Errorf("%w: %w", ErrReadInput, err)
			return result
		}
	}

	if params.plain {
		result.Chunks = r.PlainChunks(string(content))
	} else {
		chunks, err := r.Render(string(content))
		if err != nil {
			result.Err = err
			return result
		}
		result.Chunks = chunks
	}

	if f.OutputBase != "" {
		paths, err := writeChunkFiles(f.OutputBase, result.Chunks, params)
		if err != nil {
			result.Err = err
			return result
		}
		result.OutputPaths = paths
	}
	return result
}

// writeChunkFiles writes base.NNN.txt per chunk, or base.json in JSON mode.
func writeChunkFiles(base string, chunks []string, params *conversionParams) ([]string, error) {
	if err := os.MkdirAll(filepath.Dir(base), dirPermissions); err != nil {
		return nil, fmt.Errorf("%w: creating output directory: %w", ErrWriteOutput, err)
	}

	if params.json {
		data, err := json.MarshalIndent(chunks, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		path := jsonPath(base)
		if err := fileutil.WriteFileAtomic(path, append(data, '\n'), filePermissions); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return []string{path}, nil
	}

	paths := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		path := chunkPath(base, i)
		if err := fileutil.WriteFileAtomic(path, []byte(chunk), filePermissions); err != nil {
			return paths, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writeDocument prints one document's chunks to w: a JSON array on one
// line, or the chunks joined by the separator. Documents after the first
// are preceded by the separator in text mode.
func writeDocument(w io.Writer, chunks []string, params *conversionParams, first bool) error {
	if params.json {
		if chunks == nil {
			chunks = []string{}
		}
		data, err := json.Marshal(chunks)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}

	var b strings.Builder
	if !first {
		b.WriteString(params.separator)
	}
	b.WriteString(strings.Join(chunks, params.separator))
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Chunks    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Chunks += len(r.Chunks)
	}
	return summary
}

// printResults writes documents bound for stdout and reports each
// conversion. Status lines go to stdout when chunks are written to files,
// and to stderr otherwise so stdout carries only messages.
// Returns the number of failed conversions.
func printResults(results []ConversionResult, params *conversionParams, quiet, verbose bool, env *Environment) int {
	status := env.Stderr
	toFiles := len(results) > 0 && results[0].OutputBase != ""
	if toFiles {
		status = env.Stdout
	}

	first := true
	for i := range results {
		r := &results[i]
		if r.Err == nil && r.OutputBase == "" {
			if err := writeDocument(env.Stdout, r.Chunks, params, first); err != nil {
				r.Err = fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}
			first = false
		}

		if r.Err != nil {
			// a single failure is returned to the caller instead
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			}
			continue
		}

		switch {
		case verbose:
			fmt.Fprintf(status, "%s: %d chunk(s) (%v)\n", r.InputPath, len(r.Chunks), r.Duration.Round(time.Millisecond))
		case quiet || !toFiles:
		default:
			for _, p := range r.OutputPaths {
				fmt.Fprintf(status, "Created %s\n", p)
			}
		}
	}

	summary := countResults(results)
	if !quiet && len(results) > 1 {
		fmt.Fprintf(status, "\n%d succeeded, %d failed, %d chunk(s)\n", summary.Succeeded, summary.Failed, summary.Chunks)
	}
	return summary.Failed
}

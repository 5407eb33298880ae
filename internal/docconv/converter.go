package docconv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/sweepkit/internal/ctxlog"
	"github.com/specialistvlad/sweepkit/internal/fsutil"
)

var (
	// ErrUnsupported is reported for inputs whose extension has no extractor.
	ErrUnsupported = errors.New("unsupported file extension")
	// ErrDuplicateOutput is reported when two inputs of a batch map to the
	// same output file.
	ErrDuplicateOutput = errors.New("output already written in this batch")
)

// Options configures a Converter.
type Options struct {
	// ASCII transliterates the extracted text before writing.
	ASCII bool
	// OutDir redirects every output into one directory. Empty writes next to the input.
	OutDir string
	// Antiword is the binary used for .doc files.
	Antiword string
	// Runner runs external tools. Nil uses os/exec.
	Runner Runner
}

// Converter turns Word documents into .txt files.
type Converter struct {
	opts       Options
	extractors map[string]Extractor
}

// NewConverter creates a Converter for .doc and .docx inputs.
func NewConverter(opts Options) *Converter {
	return &Converter{
		opts: opts,
		extractors: map[string]Extractor{
			".docx": Docx{},
			".doc":  &Antiword{Binary: opts.Antiword, Runner: opts.Runner},
		},
	}
}

// Extensions returns the supported input extensions.
func (c *Converter) Extensions() []string {
	return []string{".doc", ".docx"}
}

// Failure is an input that could not be converted or was skipped.
type Failure struct {
	Input string
	Err   error
}

// Conversion is an input and the text file written for it.
type Conversion struct {
	Input  string
	Output string
}

// Report summarizes a batch.
type Report struct {
	// Converted is in processing order.
	Converted []Conversion
	// Skipped holds inputs passed over with a warning; their errors wrap ErrUnsupported.
	Skipped []Failure
	Failed  []Failure
}

// OK reports whether no input failed.
func (r *Report) OK() bool {
	return len(r.Failed) == 0
}

// Err joins every failure into a single error, or returns nil.
func (r *Report) Err() error {
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, fmt.Errorf("%s: %w", f.Input, f.Err))
	}
	return errors.Join(errs...)
}

// Convert processes every input in order. Missing inputs are reported as
// failures and unsupported extensions are skipped with a warning; neither
// stops the batch. Directories are searched recursively for documents.
func (c *Converter) Convert(ctx context.Context, inputs []string) *Report {
	logger := ctxlog.FromContext(ctx)
	b := &batch{report: &Report{}, outputs: make(map[string]string)}

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			b.fail(input, err)
			continue
		}

		info, err := os.Stat(input)
		if err != nil {
			logger.Error("Input file does not exist, skipping.", "path", input, "error", err)
			b.fail(input, err)
			continue
		}

		if !info.IsDir() {
			c.convertFile(ctx, b, input, c.OutputPath(input))
			continue
		}

		files, err := fsutil.FindFilesByExtension(input, c.Extensions()...)
		if err != nil {
			logger.Error("Failed to search directory.", "path", input, "error", err)
			b.fail(input, err)
			continue
		}
		if len(files) == 0 {
			logger.Warn("Directory contains no documents.", "path", input)
		}
		for _, f := range files {
			c.convertFile(ctx, b, f, c.treeOutputPath(input, f))
		}
	}
	return b.report
}

// batch is the state of one Convert call.
type batch struct {
	report *Report
	// outputs maps every output path claimed so far to its input.
	outputs map[string]string
}

func (b *batch) fail(input string, err error) {
	b.report.Failed = append(b.report.Failed, Failure{Input: input, Err: err})
}

func (c *Converter) convertFile(ctx context.Context, b *batch, input, output string) {
	logger := ctxlog.FromContext(ctx)

	ext := strings.ToLower(filepath.Ext(input))
	extractor, ok := c.extractors[ext]
	if !ok {
		err := fmt.Errorf("%w %q", ErrUnsupported, ext)
		logger.Warn("Unsupported file extension, skipping.", "path", input, "error", err)
		b.report.Skipped = append(b.report.Skipped, Failure{Input: input, Err: err})
		return
	}

	key := filepath.Clean(output)
	if prev, taken := b.outputs[key]; taken {
		err := fmt.Errorf("%w: %s is the output of %s", ErrDuplicateOutput, output, prev)
		logger.Error("Output path collides with an earlier input.", "path", input, "output", output, "first", prev)
		b.fail(input, err)
		return
	}
	b.outputs[key] = input

	text, err := extractor.Extract(ctx, input)
	if err != nil {
		logger.Error("Failed to extract text.", "path", input, "error", err)
		b.fail(input, err)
		return
	}
	if c.opts.ASCII {
		text = ToASCII(text)
	}

	if err := c.write(output, text); err != nil {
		logger.Error("Failed to write output.", "path", output, "error", err)
		b.fail(input, err)
		return
	}

	logger.Info("Converted document.", "input", input, "output", output)
	b.report.Converted = append(b.report.Converted, Conversion{Input: input, Output: output})
}

// OutputPath returns where the text of a file input is written: the input
// path with ".txt" appended, or the input's base name with ".txt" inside OutDir.
func (c *Converter) OutputPath(input string) string {
	if c.opts.OutDir == "" {
		return input + ".txt"
	}
	return filepath.Join(c.opts.OutDir, filepath.Base(input)+".txt")
}

// treeOutputPath is OutputPath for a file found under the directory input
// root. With OutDir the file's path relative to root is mirrored inside it.
func (c *Converter) treeOutputPath(root, file string) string {
	if c.opts.OutDir == "" {
		return file + ".txt"
	}
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return c.OutputPath(file)
	}
	return filepath.Join(c.opts.OutDir, rel+".txt")
}

func (c *Converter) write(path, text string) error {
	if err := fsutil.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

// Package extract writes the text of a PDF to a UTF-8 text file.
package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/akashicode/pdftext/internal/display"
	"github.com/akashicode/pdftext/internal/logging"
	"github.com/akashicode/pdftext/internal/reader"
)

// Failure kinds. Errors returned by Extract wrap exactly one of these
// together with the underlying cause.
var (
	ErrOpen  = errors.New("open input")
	ErrParse = errors.New("extract pages")
	ErrWrite = errors.New("write output")
)

// Result describes a completed extraction.
type Result struct {
	Input  string
	Output string
	Pages  int
	Text   string
}

// Extractor runs page sources against input files.
type Extractor struct {
	source  reader.PageSource
	log     logrus.FieldLogger
	console *display.Console
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the structured logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Extractor) { e.log = l }
}

// WithConsole sets where Run prints its status line.
func WithConsole(c *display.Console) Option {
	return func(e *Extractor) { e.console = c }
}

// New returns an Extractor reading pages through src.
func New(src reader.PageSource, opts ...Option) *Extractor {
	e := &Extractor{
		source:  src,
		log:     logging.Discard(),
		console: display.NewConsole(os.Stdout, false),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads every page of inputPath, writes the joined text to
// outputPath and returns it. The output file is written before Extract
// returns successfully; on failure it may be partially written.
func (e *Extractor) Extract(inputPath, outputPath string) (Result, error) {
	log := e.log.WithFields(logrus.Fields{
		logging.FieldInput:   inputPath,
		logging.FieldBackend: e.source.Name(),
	})

	f, err := os.Open(inputPath) // #nosec G304 -- path comes from local config
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close input file")
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	log.Debug("Extracting pages")
	pages, err := e.source.Pages(f, info.Size())
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrParse, err)
	}

	text := Join(pages)
	if err := writeText(outputPath, text); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	log.WithFields(logrus.Fields{
		logging.FieldOutput: outputPath,
		logging.FieldPages:  len(pages),
		logging.FieldChars:  utf8.RuneCountInString(text),
	}).Info("Extracted PDF text")

	return Result{
		Input:  inputPath,
		Output: outputPath,
		Pages:  len(pages),
		Text:   text,
	}, nil
}

// Run is Extract with every failure collapsed into a printed message.
// It returns the extracted text and true on success, or "" and false.
func (e *Extractor) Run(inputPath, outputPath string) (string, bool) {
	res, err := e.Extract(inputPath, outputPath)
	if err != nil {
		e.log.WithError(err).WithField(logging.FieldInput, inputPath).Error("Extraction failed")
		e.console.Error(fmt.Sprintf("Error: %v", err))
		return "", false
	}
	e.console.Success(fmt.Sprintf("Text extracted and saved to %s", res.Output))
	return res.Text, true
}

// Join concatenates page texts in page order, each followed by a newline.
// Invalid UTF-8 is replaced with U+FFFD.
func Join(pages []reader.Page) string {
	ordered := make([]reader.Page, len(pages))
	copy(ordered, pages)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Number < ordered[j].Number
	})

	var sb strings.Builder
	for _, p := range ordered {
		sb.WriteString(strings.ToValidUTF8(p.Text, "\uFFFD"))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Preview returns the first n characters (runes) of text.
func Preview(text string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}

func writeText(path, text string) error {
	f, err := os.Create(path) // #nosec G304 -- path comes from local config
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f, text); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

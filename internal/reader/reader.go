package reader

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnknownBackend is returned when a page source name is not registered.
var ErrUnknownBackend = errors.New("unknown page source")

// ErrInvalidPDF is returned when a file fails PDF validation.
var ErrInvalidPDF = errors.New("invalid PDF")

// Page source names accepted by NewPageSource.
const (
	BackendLedongthuc = "ledongthuc"
	BackendPDFCPU     = "pdfcpu"

	DefaultBackend = BackendLedongthuc
)

// Page is the extracted text of a single PDF page.
type Page struct {
	// Number is the 1-based page index in document order
	Number int
	// Text is the page's plain-text approximation, possibly empty
	Text string
}

// PageSource turns an open PDF into its pages' text, in document order.
type PageSource interface {
	// Name identifies the backend in logs and config.
	Name() string
	// Pages extracts every page of the PDF readable from r.
	Pages(r io.ReaderAt, size int64) ([]Page, error)
}

// Backends lists the registered page source names.
func Backends() []string {
	return []string{BackendLedongthuc, BackendPDFCPU}
}

// NewPageSource returns the page source registered under name.
// An empty name selects DefaultBackend.
func NewPageSource(name string) (PageSource, error) {
	switch name {
	case "", BackendLedongthuc:
		return NewPlainTextSource(), nil
	case BackendPDFCPU:
		return NewContentSource(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

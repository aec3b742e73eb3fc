package reader

import (
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// PlainTextSource extracts page text with ledongthuc/pdf.
type PlainTextSource struct{}

// NewPlainTextSource returns the default page source.
func NewPlainTextSource() *PlainTextSource {
	return &PlainTextSource{}
}

// Name implements PageSource.
func (s *PlainTextSource) Name() string { return BackendLedongthuc }

// Pages implements PageSource. Pages without a page object yield an empty Page.
// Line breaks the parser emits around a page's text are trimmed.
func (s *PlainTextSource) Pages(r io.ReaderAt, size int64) (pages []Page, err error) {
	// the parser panics on some malformed cross-reference tables
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = errors.Errorf("parse PDF: %v", rec)
		}
	}()

	doc, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrap(err, "parse PDF")
	}

	total := doc.NumPage()
	pages = make([]Page, 0, total)
	for i := 1; i <= total; i++ {
		p := doc.Page(i)
		if p.V.IsNull() {
			pages = append(pages, Page{Number: i})
			continue
		}

		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, errors.Wrapf(err, "extract page %d", i)
		}
		pages = append(pages, Page{Number: i, Text: strings.Trim(text, "\r\n")})
	}
	return pages, nil
}

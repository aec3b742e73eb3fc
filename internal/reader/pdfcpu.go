package reader

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pkg/errors"
)

// ContentSource extracts each page's decoded content stream with pdfcpu and
// keeps only the strings shown by its text operators.
type ContentSource struct {
	conf *model.Configuration
}

// NewContentSource returns a pdfcpu page source using relaxed validation.
func NewContentSource() *ContentSource {
	return &ContentSource{conf: relaxedConfig()}
}

func relaxedConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Name implements PageSource.
func (s *ContentSource) Name() string { return BackendPDFCPU }

// Pages implements PageSource.
func (s *ContentSource) Pages(r io.ReaderAt, size int64) ([]Page, error) {
	total, err := api.PageCount(io.NewSectionReader(r, 0, size), s.conf)
	if err != nil {
		return nil, errors.Wrap(err, "count pages")
	}

	tmpDir, err := os.MkdirTemp("", "pdftext-content-*")
	if err != nil {
		return nil, errors.Wrap(err, "create temp dir")
	}
	defer os.RemoveAll(tmpDir)

	pages := make([]Page, 0, total)
	for i := 1; i <= total; i++ {
		text, err := s.extractPage(r, size, i, tmpDir)
		if err != nil {
			return nil, errors.Wrapf(err, "extract page %d", i)
		}
		pages = append(pages, Page{Number: i, Text: text})
	}
	return pages, nil
}

// extractPage dumps one page's content into its own directory so the
// output files need no name parsing to be attributed to a page.
func (s *ContentSource) extractPage(r io.ReaderAt, size int64, page int, tmpDir string) (string, error) {
	nr := strconv.Itoa(page)
	pageDir := filepath.Join(tmpDir, nr)
	if err := os.Mkdir(pageDir, 0o700); err != nil {
		return "", err
	}

	rs := io.NewSectionReader(r, 0, size)
	if err := api.ExtractContent(rs, pageDir, "page", []string{nr}, s.conf); err != nil {
		return "", err
	}

	entries, err := os.ReadDir(pageDir)
	if err != nil {
		return "", err
	}

	var content []byte
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(pageDir, entry.Name()))
		if err != nil {
			return "", err
		}
		content = append(content, data...)
		content = append(content, '\n')
	}
	return contentText(content), nil
}

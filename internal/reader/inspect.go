package reader

import (
	"os"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pkg/errors"
)

// Report summarizes a PDF without writing any output.
type Report struct {
	Path      string `yaml:"path"`
	Valid     bool   `yaml:"valid"`
	Pages     int    `yaml:"pages"`
	Backend   string `yaml:"backend,omitempty"`
	PageChars []int  `yaml:"page_chars,omitempty"`
	Error     string `yaml:"error,omitempty"`
}

// Inspect validates path with pdfcpu, counts its pages and measures the
// text src extracts from each page. Validation failures are recorded in the
// report and returned wrapped in ErrInvalidPDF.
func Inspect(path string, src PageSource) (Report, error) {
	report := Report{Path: path}

	if err := api.ValidateFile(path, relaxedConfig()); err != nil {
		report.Error = err.Error()
		return report, errors.Wrapf(ErrInvalidPDF, "%s: %v", path, err)
	}
	report.Valid = true

	total, err := api.PageCountFile(path)
	if err != nil {
		return report, errors.Wrap(err, "count pages")
	}
	report.Pages = total

	if src == nil {
		return report, nil
	}
	report.Backend = src.Name()

	f, err := os.Open(path)
	if err != nil {
		return report, errors.Wrap(err, "open input")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return report, errors.Wrap(err, "stat input")
	}

	pages, err := src.Pages(f, info.Size())
	if err != nil {
		report.Error = err.Error()
		return report, err
	}
	report.PageChars = make([]int, len(pages))
	for i, p := range pages {
		report.PageChars[i] = utf8.RuneCountInString(p.Text)
	}
	return report, nil
}

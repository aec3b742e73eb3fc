package extract

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashicode/pdftext/internal/display"
	"github.com/akashicode/pdftext/internal/logging"
	"github.com/akashicode/pdftext/internal/pdftest"
	"github.com/akashicode/pdftext/internal/reader"
)

// stubSource returns fixed pages regardless of input.
type stubSource struct {
	pages []reader.Page
	err   error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Pages(io.ReaderAt, int64) ([]reader.Page, error) {
	return s.pages, s.err
}

func pagesOf(texts ...string) []reader.Page {
	pages := make([]reader.Page, len(texts))
	for i, t := range texts {
		pages[i] = reader.Page{Number: i + 1, Text: t}
	}
	return pages
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "in.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0o644))
	return path
}

func TestExtract_HelloWorld(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	output := filepath.Join(dir, "out.txt")

	e := New(&stubSource{pages: pagesOf("Hello", "World")})
	res, err := e.Extract(input, output)
	require.NoError(t, err)

	assert.Equal(t, "Hello\nWorld\n", res.Text)
	assert.Equal(t, 2, res.Pages)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Hello\nWorld\n", string(written))
}

func TestExtract_OverwritesOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	output := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(output, []byte("stale content that is much longer"), 0o644))

	_, err := New(&stubSource{pages: pagesOf("new")}).Extract(input, output)
	require.NoError(t, err)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(written))
}

func TestExtract_MissingInputLeavesOutputAlone(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(output, []byte("previous"), 0o644))

	_, err := New(&stubSource{pages: pagesOf("x")}).Extract(filepath.Join(dir, "missing.pdf"), output)
	require.ErrorIs(t, err, ErrOpen)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(written))
}

func TestExtract_MissingInputCreatesNoOutput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.txt")

	_, err := New(&stubSource{}).Extract(filepath.Join(dir, "missing.pdf"), output)
	require.ErrorIs(t, err, ErrOpen)

	_, statErr := os.Stat(output)
	assert.ErrorIs(t, statErr, fs.ErrNotExist)
}

func TestExtract_ParseError(t *testing.T) {
	dir := t.TempDir()
	cause := errors.New("corrupt xref")

	_, err := New(&stubSource{err: cause}).Extract(writeInput(t, dir), filepath.Join(dir, "out.txt"))
	require.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrOpen)
}

func TestExtract_WriteError(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "no-such-dir", "out.txt")

	_, err := New(&stubSource{pages: pagesOf("a")}).Extract(writeInput(t, dir), output)
	require.ErrorIs(t, err, ErrWrite)
}

func TestExtract_BlankPagesKeepSegments(t *testing.T) {
	dir := t.TempDir()

	res, err := New(&stubSource{pages: pagesOf("a", "", "c", "")}).
		Extract(writeInput(t, dir), filepath.Join(dir, "out.txt"))
	require.NoError(t, err)

	assert.Equal(t, "a\n\nc\n\n", res.Text)
	assert.Equal(t, 4, strings.Count(res.Text, "\n"))
}

func TestExtract_RealPDF(t *testing.T) {
	sources := []reader.PageSource{reader.NewPlainTextSource(), reader.NewContentSource()}

	for _, src := range sources {
		t.Run(src.Name(), func(t *testing.T) {
			dir := t.TempDir()
			input := pdftest.WriteFile(t, dir, "doc.pdf", "Hello", "World", "", "Again")
			output := filepath.Join(dir, "out.txt")

			res, err := New(src).Extract(input, output)
			require.NoError(t, err)
			assert.Equal(t, 4, res.Pages)
			assert.Equal(t, "Hello\nWorld\n\nAgain\n", res.Text)
			assert.Equal(t, 4, strings.Count(res.Text, "\n"))

			written, err := os.ReadFile(output)
			require.NoError(t, err)
			assert.Equal(t, res.Text, string(written))
			assert.True(t, utf8.Valid(written))
		})
	}
}

func TestExtract_LogsRuneCount(t *testing.T) {
	dir := t.TempDir()
	log, hook := logtest.NewNullLogger()

	_, err := New(&stubSource{pages: pagesOf("café")}, WithLogger(log)).
		Extract(writeInput(t, dir), filepath.Join(dir, "out.txt"))
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Extracted PDF text", entry.Message)
	assert.Equal(t, 5, entry.Data[logging.FieldChars])
}

func TestExtract_Idempotent(t *testing.T) {
	dir := t.TempDir()
	input := pdftest.WriteFile(t, dir, "doc.pdf", "one", "two")
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")

	e := New(reader.NewPlainTextSource())
	_, err := e.Extract(input, first)
	require.NoError(t, err)
	_, err = e.Extract(input, second)
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExtract_NotAPDF(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "fake.pdf")
	require.NoError(t, os.WriteFile(input, []byte("plain text"), 0o644))

	_, err := New(reader.NewPlainTextSource()).Extract(input, filepath.Join(dir, "out.txt"))
	require.ErrorIs(t, err, ErrParse)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	output := filepath.Join(dir, "out.txt")

	var buf bytes.Buffer
	e := New(&stubSource{pages: pagesOf("Hello", "World")}, WithConsole(display.NewConsole(&buf, false)))

	text, ok := e.Run(input, output)
	require.True(t, ok)
	assert.Equal(t, "Hello\nWorld\n", text)
	assert.Contains(t, buf.String(), "Text extracted and saved to "+output)
}

func TestRun_FailureIsAbsent(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	e := New(&stubSource{}, WithConsole(display.NewConsole(&buf, false)))

	text, ok := e.Run(filepath.Join(dir, "missing.pdf"), filepath.Join(dir, "out.txt"))
	assert.False(t, ok)
	assert.Empty(t, text)
	assert.Contains(t, buf.String(), "Error: open input")
}

func TestJoin_OrdersByPageNumber(t *testing.T) {
	pages := []reader.Page{{Number: 2, Text: "b"}, {Number: 1, Text: "a"}}
	assert.Equal(t, "a\nb\n", Join(pages))
	assert.Equal(t, 2, pages[0].Number, "input slice must not be reordered")
}

func TestJoin_ReplacesInvalidUTF8(t *testing.T) {
	out := Join([]reader.Page{{Number: 1, Text: "ok\xffok"}})
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, "ok�ok\n", out)
}

func TestJoin_Empty(t *testing.T) {
	assert.Equal(t, "", Join(nil))
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("a", 600)

	tests := []struct {
		name string
		text string
		n    int
		want string
	}{
		{name: "shorter than limit", text: "Hello\nWorld\n", n: 500, want: "Hello\nWorld\n"},
		{name: "longer than limit", text: long, n: 500, want: long[:500]},
		{name: "exact length", text: "abc", n: 3, want: "abc"},
		{name: "multibyte counts runes", text: "héllo wörld", n: 4, want: "héll"},
		{name: "zero", text: "abc", n: 0, want: ""},
		{name: "empty text", text: "", n: 500, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Preview(tt.text, tt.n)
			assert.Equal(t, tt.want, got)
			want := tt.n
			if l := utf8.RuneCountInString(tt.text); l < want {
				want = l
			}
			assert.Equal(t, want, utf8.RuneCountInString(got))
		})
	}
}

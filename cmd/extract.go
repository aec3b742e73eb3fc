package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akashicode/pdftext/internal/display"
	"github.com/akashicode/pdftext/internal/extract"
	"github.com/akashicode/pdftext/internal/reader"
)

// runExtract extracts the configured input. Extraction failures are printed
// and swallowed; only configuration problems make the command fail.
func runExtract(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}

	src, err := reader.NewPageSource(cfg.Backend)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	console := display.NewConsole(out, display.ColorEnabled(out))
	ex := extract.New(src, extract.WithLogger(log), extract.WithConsole(console))

	text, ok := ex.Run(cfg.Input, cfg.Output)
	if !ok {
		return nil
	}
	if strings.TrimSpace(text) == "" {
		console.Warn("No text layer found; the PDF may contain only scanned images")
	}
	if text == "" {
		return nil
	}

	console.Println(fmt.Sprintf("First %d characters:", cfg.PreviewChars))
	console.Println(extract.Preview(text, cfg.PreviewChars))
	return nil
}

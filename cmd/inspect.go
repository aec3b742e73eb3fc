package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/akashicode/pdftext/internal/logging"
	"github.com/akashicode/pdftext/internal/reader"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Validate the configured PDF and report its pages as YAML",
	Long: `Validates the configured input PDF with pdfcpu, counts its pages and
reports how many characters the configured backend extracts from each page.
No output file is written.`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}

	src, err := reader.NewPageSource(cfg.Backend)
	if err != nil {
		return err
	}

	report, inspectErr := reader.Inspect(cfg.Input, src)
	if inspectErr != nil {
		log.WithError(inspectErr).WithField(logging.FieldInput, cfg.Input).Warn("Inspection incomplete")
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}
	return inspectErr
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/akashicode/pdftext/internal/config"
	"github.com/akashicode/pdftext/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pdftext",
	Short: "Extract the text of a PDF into a UTF-8 text file.",
	Long: `pdftext reads a PDF page by page, writes the extracted text to a UTF-8
text file (one newline-terminated segment per page) and prints a preview.

The input and output paths default to the built-in values and can be
overridden in config.yaml or with PDFTEXT_INPUT / PDFTEXT_OUTPUT.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runExtract,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.pdftext/config.yaml)")
}

func initConfig() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".pdftext"))
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// config.yaml is optional; an explicitly named file is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "warning: error reading config file %s: %v\n", cfgFile, err)
		}
	}
}

// loadRuntime returns the validated config and a logger built from it.
// Logs go to stderr so stdout carries only the status line and preview.
func loadRuntime() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, nil, fmt.Errorf("configure logging: %w", err)
	}
	return cfg, log, nil
}

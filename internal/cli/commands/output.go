package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"trp/internal/config"
)

// writeSection appends markdown to the configured output file, or prints it
// to the command's stdout when no file is configured
func writeSection(cmd *cobra.Command, cfg *config.Config, section string) error {
	path := cfg.GetOutputPath()
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), section)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open output %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, section); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

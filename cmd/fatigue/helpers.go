package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"Durability/internal/calc/damage"
	"Durability/internal/calc/importer"
	"Durability/internal/materials"
	"Durability/internal/plot"
)

func openCatalog(cmd *cobra.Command) (*materials.Catalog, error) {
	path, _ := cmd.Flags().GetString("materials")
	return materials.Open(path)
}

// readSpectrum loads an uploaded spectrum; an empty path is the example.
func readSpectrum(path string) (damage.Spectrum, error) {
	if path == "" {
		return damage.ExampleSpectrum(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return importer.ParseSpectrum(filepath.Base(path), f)
}

// writeChart renders fig in the format named by the file extension.
func writeChart(fig *plot.Figure, path string) error {
	format, err := plot.ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := fig.Render(&buf, format); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

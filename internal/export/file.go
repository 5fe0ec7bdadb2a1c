package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultOutputDir is used when no output directory is configured.
const DefaultOutputDir = "reports"

// WriteFile writes content to dir/filename, creating dir as needed, and returns the path.
func WriteFile(content, dir, filename string) (string, error) {
	if dir == "" {
		dir = DefaultOutputDir
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write report file %s: %w", path, err)
	}

	return path, nil
}

// Filename returns the download name for niche in the given format.
func Filename(niche, format string) string {
	switch format {
	case "csv":
		return CSVFilename(niche)
	case "markdown":
		return baseName(niche) + ".md"
	case "html":
		return baseName(niche) + ".html"
	case "json":
		return baseName(niche) + ".json"
	default:
		return baseName(niche) + ".txt"
	}
}

var pathSeparators = strings.NewReplacer("/", "_", "\\", "_")

func baseName(niche string) string {
	if whitespaceRun.ReplaceAllString(niche, "") == "" {
		return "relatorio_mercado"
	}
	return "relatorio_" + pathSeparators.Replace(whitespaceRun.ReplaceAllString(niche, "_"))
}

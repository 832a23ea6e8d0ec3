package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/readiness/internal/logger"
	"github.com/huangsam/readiness/schema"
)

// Color variables for console output.
var (
	ReadyColor      = color.New(color.FgGreen, color.Bold) // ReadyColor marks people ready for advanced programs.
	DevelopingColor = color.New(color.FgCyan)              // DevelopingColor marks steady progress.
	EmergingColor   = color.New(color.FgYellow)            // EmergingColor marks early signals worth watching.
	NotReadyColor   = color.New(color.FgRed, color.Bold)   // NotReadyColor marks people who need foundations first.
)

// GetColorLabel returns a colored readiness band for console output (table).
// It uses schema.GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score float64) string {
	text := schema.GetPlainLabel(score)

	switch text {
	case schema.ReadyLabel:
		return ReadyColor.Sprint(text)
	case schema.DevelopingLabel:
		return DevelopingColor.Sprint(text)
	case schema.EmergingLabel:
		return EmergingColor.Sprint(text)
	default:
		return NotReadyColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	l := logger.Default()
	l.Error(msg, "error", err)
	l.Sync()
	os.Exit(1)
}

// LogWarn logs a warning with its cause.
func LogWarn(msg string, err error) {
	logger.Default().Warn(msg, "error", err)
}

// GetRunDBFilePath returns the path to the SQLite DB file for run storage.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".readiness_runs.db"
	}
	return filepath.Join(homeDir, ".readiness_runs.db")
}

// TruncateText truncates s to maxWidth runes with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

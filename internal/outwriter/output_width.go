package outwriter

import (
	"os"

	"github.com/huangsam/readiness/internal/contract"
	"golang.org/x/term"
)

// Name column bounds for table output.
const (
	minNameWidth = 12
	maxNameWidth = 40
)

// GetMaxTableNameWidth calculates the maximum width for the person or department
// column in table output based on terminal width and table configuration.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	baseWidth := 45 // Rank + Department + Score + Label with borders/padding
	if cfg.Detail {
		baseWidth += 45 // Four component columns plus completeness
	}
	if cfg.Explain {
		baseWidth += 40
	}
	if cfg.Insights {
		baseWidth += 45
	}
	baseWidth += 10

	available := termWidth - baseWidth
	if available < minNameWidth {
		return minNameWidth
	}
	if available > maxNameWidth {
		return maxNameWidth
	}
	return available
}

// insightWidth is the width of the insights column.
func insightWidth(cfg *contract.Config) int {
	if cfg.Width > 0 && cfg.Width < 100 {
		return 30
	}
	return 45
}

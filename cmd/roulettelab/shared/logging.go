package shared

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger builds the stderr logger. An empty level means warn and
// verbose forces debug output.
func SetupLogger(level string, verbose bool) (*log.Logger, error) {
	if level == "" {
		level = "warn"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if verbose {
		lvl = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "roulettelab",
	}), nil
}

package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/jverhoeven/sortdir/internal/platform"
	"github.com/jverhoeven/sortdir/pkg/config"
	"github.com/jverhoeven/sortdir/pkg/logging"
	"github.com/jverhoeven/sortdir/pkg/models"
	"github.com/jverhoeven/sortdir/pkg/output"
	"github.com/jverhoeven/sortdir/pkg/storage"
)

// loadConfig loads configuration from file or returns the default.
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagOverrides layers the global flags onto the loaded configuration.
func applyFlagOverrides(cfg *config.Config) {
	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Enable progress in verbose mode
	if globalFlags.Verbose {
		cfg.Output.Progress = true
	}
}

// openDirectory resolves and validates the target directory argument.
func openDirectory(arg string) (*storage.Dir, error) {
	return storage.Open(platform.ExpandUser(arg))
}

// resolvePolicy picks the duplicate policy for a run: the flag wins over
// the config default, and the interactive policy silently degrades to
// auto-copy when there is no terminal to prompt on.
func resolvePolicy(flagValue string, cfg *config.Config) (models.DuplicatePolicy, error) {
	policy := cfg.Organize.OnDuplicate
	if flagValue != "" {
		parsed, err := models.ParseDuplicatePolicy(flagValue)
		if err != nil {
			return "", err
		}
		policy = parsed
	}

	if policy == models.PolicyInteractive && !isatty.IsTerminal(os.Stdin.Fd()) {
		policy = models.PolicyAutoCopy
	}

	return policy, nil
}

// selectFormatter chooses the output formatter for a run. The progress bar
// is used only on a terminal and never alongside interactive prompts, which
// would fight over the same screen.
func selectFormatter(format string, cfg *config.Config, policy models.DuplicatePolicy) (output.Formatter, error) {
	switch format {
	case "json":
		return output.NewJSONFormatter(), nil
	case "", "human":
		if cfg.Output.Progress && !cfg.Output.Quiet &&
			policy != models.PolicyInteractive &&
			isatty.IsTerminal(os.Stdout.Fd()) {
			return output.NewProgressFormatter(), nil
		}
		return output.NewHumanFormatter(), nil
	default:
		return nil, fmt.Errorf("invalid output format: %s (valid: human, json)", format)
	}
}

// createLogger creates the diagnostic logger from the logging flags.
func createLogger(logFile, logFormat, logLevel string) (logging.Logger, error) {
	if logFile == "" {
		return logging.NewNullLogger(), nil
	}

	format := logging.FormatText
	if logFormat == "json" {
		format = logging.FormatJSON
	}

	return logging.NewFileLogger(logFile, format, logging.ParseLevel(logLevel))
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jverhoeven/sortdir/pkg/models"
	"github.com/jverhoeven/sortdir/pkg/organize"
	"github.com/jverhoeven/sortdir/pkg/output"
)

// OrganizeFlags holds organize command flags.
type OrganizeFlags struct {
	OnDuplicate string
	Output      string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var organizeFlags OrganizeFlags

// NewOrganizeCommand creates the organize command.
func NewOrganizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize <directory>",
		Short: "Sort a directory's files into extension folders",
		Long: `Organize the files of a directory into subfolders named after their
extensions, verify the result, and append a record to the directory's
organization log. Hidden files and existing subdirectories are left alone.`,
		Args: cobra.ExactArgs(1),
		RunE: runOrganize,
	}

	cmd.Flags().StringVar(&organizeFlags.OnDuplicate, "on-duplicate", "", "duplicate policy: interactive, auto-copy, auto-overwrite")
	cmd.Flags().StringVarP(&organizeFlags.Output, "output", "o", "", "output format: human, json")

	cmd.Flags().StringVar(&organizeFlags.LogFile, "log-file", "", "write diagnostic logs to file (enables logging)")
	cmd.Flags().StringVar(&organizeFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&organizeFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runOrganize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(cfg)

	dir, err := openDirectory(args[0])
	if err != nil {
		return err
	}

	policy, err := resolvePolicy(organizeFlags.OnDuplicate, cfg)
	if err != nil {
		return err
	}

	format := organizeFlags.Output
	if format == "" {
		format = cfg.Output.Format
	}
	formatter, err := selectFormatter(format, cfg, policy)
	if err != nil {
		return err
	}

	logger, err := createLogger(organizeFlags.LogFile, organizeFlags.LogFormat, organizeFlags.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	writer := cmd.OutOrStdout()
	if cfg.Output.Quiet && formatter.Name() != "json" {
		writer = nil
	}
	formatter.Start(writer, dir.Name()+"/")

	opts := organize.Options{
		Policy:   policy,
		Prompter: newTerminalPrompter(os.Stdin, cmd.ErrOrStderr()),
		OnFolder: func(category models.CategoryKey, existed bool) {
			formatter.Progress(output.ProgressUpdate{
				Type:          output.UpdateFolder,
				Category:      category,
				FolderExisted: existed,
			})
		},
		OnMove: func(category models.CategoryKey, name string, index, total int) {
			formatter.Progress(output.ProgressUpdate{
				Type:     output.UpdateFile,
				Category: category,
				Name:     name,
				Index:    index,
				Total:    total,
			})
		},
	}

	runner, err := organize.NewRunner(dir, opts, logger)
	if err != nil {
		return err
	}

	result, runErr := runner.Run(ctx)
	if runErr != nil {
		formatter.Error(runErr)
		if result.Status == models.StatusCancelled {
			os.Exit(result.Status.ExitCode())
		}
		return runErr
	}

	formatter.Complete(result)

	os.Exit(result.Status.ExitCode())
	return nil
}

// terminalPrompter asks the user on the controlling terminal whether to
// overwrite a colliding file. Anything other than "y" means "keep both".
type terminalPrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func newTerminalPrompter(in io.Reader, out io.Writer) *terminalPrompter {
	return &terminalPrompter{reader: bufio.NewReader(in), out: out}
}

func (p *terminalPrompter) ConfirmOverwrite(name string, category models.CategoryKey) (bool, error) {
	fmt.Fprintf(p.out, "\n⚠ '%s' exists in %s/. Overwrite? (y/n): ", name, category)

	line, err := p.reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	return strings.EqualFold(strings.TrimSpace(line), "y"), nil
}

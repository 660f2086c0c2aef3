package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jverhoeven/sortdir/pkg/verify"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <directory>",
		Short: "Check that a directory is organized by extension",
		Long: `Walk a directory tree and report any file that does not sit in the
folder matching its extension. Works on any tree, not only ones produced
by the organize command. Exits 1 when violations are found.`,
		Args: cobra.ExactArgs(1),
		RunE: runVerify,
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
	dir, err := openDirectory(args[0])
	if err != nil {
		return err
	}

	organized, violations, err := verify.Tree(dir)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "--- Verification ---\n")
	if organized {
		fmt.Fprintf(w, "✓ All files organized correctly\n")
		return nil
	}

	fmt.Fprintf(w, "✗ Issues found:\n")
	for _, violation := range violations {
		fmt.Fprintf(w, "  • %s\n", violation)
	}
	os.Exit(1)
	return nil
}

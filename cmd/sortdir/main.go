package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jverhoeven/sortdir/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "sortdir",
		Short: "Extension-based file organizer",
		Long: `sortdir tidies a directory by moving its files into subfolders named
after their extensions, with duplicate handling, post-run verification,
and an append-only log of every run kept inside the directory.`,
		Version:       cli.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewOrganizeCommand())
	rootCmd.AddCommand(cli.NewVerifyCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewServeCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}

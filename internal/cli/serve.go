package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jverhoeven/sortdir/internal/web"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the localhost web interface",
		Long: `Start a JSON API on localhost for organizing directories from a
browser or scripts. The server binds to 127.0.0.1 only; no external
network access is allowed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if port == 0 {
				port = cfg.Web.Port
			}

			logger, err := createLogger(cfg.Logging.File, cfg.Logging.Format, cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer logger.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://127.0.0.1:%d\n", port)
			return web.NewServer(logger).ListenAndServe(port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (default from config)")

	return cmd
}

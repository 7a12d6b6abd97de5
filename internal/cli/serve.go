package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gtravel/snapshots/internal/auth"
	"github.com/gtravel/snapshots/internal/logging"
	"github.com/gtravel/snapshots/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI and API",
		Long:  "Start an HTTP server for the catalog web UI and JSON API. Reads GTT_* configuration from the environment, with .env supported.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")

	return cmd
}

func runServe(port int) error {
	// Missing .env is fine; the environment may be set directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	logging.Setup(os.Getenv("GTT_DEV_MODE") == "true")

	cfg := auth.ConfigFromEnv()
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		fmt.Fprintln(os.Stderr, "warning: no GTT_ADMIN_PASSWORD or GTT_ADMIN_PASSWORD_HASH set; admin login is disabled")
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	srv, err := web.NewServer(database, cfg)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("Starting catalog on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, logging.RequestLogger(srv))
}

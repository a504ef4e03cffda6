// Command admin is the operator CLI: content file checks, consultation
// exports and password hashing for the admin area.
package main

import (
	"fmt"
	"os"

	"file_bridge_app_go/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "File Bridge site administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newContentCmd(), newConsultationsCmd(), newHashPasswordCmd())
	return root
}

// loadConfig reads .env when present, then the environment.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	return config.Parse()
}

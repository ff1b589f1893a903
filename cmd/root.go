package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "adlib",
	Short: "Newsletter ad library server and tooling",
	Long:  `adlib serves the newsletter ad catalog over a read-only HTTP API and seeds its Postgres backing store.`,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		// .env is optional; deployments set the environment directly
		_ = godotenv.Load()
	})
}

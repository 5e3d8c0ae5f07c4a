package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/quickdrop/quickdrop/internal/client"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		serverURL string
		key       string
	)

	cmd := &cobra.Command{
		Use:           "upload [files...]",
		Short:         "Upload files to a quickdrop server and print their URLs",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverURL)
			for _, path := range args {
				fileURL, err := c.Upload(cmd.Context(), path, key)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), fileURL)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "url", envOr("USER_URL", "http://127.0.0.1:8000"), "server base URL")
	cmd.Flags().StringVar(&key, "key", os.Getenv("KEY"), "shared upload key")

	return cmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	// A .env next to the server config doubles as client defaults.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

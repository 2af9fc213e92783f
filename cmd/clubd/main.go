package main

import (
	"os"

	"github.com/clubworks/clubd/internal/client"
	"github.com/clubworks/clubd/internal/ui"
	"github.com/spf13/cobra"
)

var (
	httpURL    string
	secret     string
	jsonOutput bool

	apiClient *client.Client
)

func defaultHTTPURL() string {
	if s := os.Getenv("CLUBD_HTTP_URL"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

var rootCmd = &cobra.Command{
	Use:   "clubd <command>",
	Short: "Club event service and CLI",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
		if secret == "" {
			secret = os.Getenv("CLUBD_SECRET")
		}
		apiClient = client.New(httpURL, secret)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&httpURL, "http-url", defaultHTTPURL(), "server URL")
	rootCmd.PersistentFlags().StringVar(&secret, "secret", "", "member secret (defaults to CLUBD_SECRET)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "events", Title: "Events:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)
	cobra.EnableCommandSorting = false

	// Events
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(rsvpCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(watchCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(addUserCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

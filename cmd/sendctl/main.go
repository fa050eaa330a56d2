// sendctl is a small operator CLI for a send-worker server.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kylewill/send-worker/pkg/client"
)

var rootCmd = &cobra.Command{
	Use:   "sendctl",
	Short: "Control a send-worker document sharing server",
	Long: `sendctl publishes documents to a send-worker server and prints the
resulting tracked links.`,
	SilenceUsage: true,
}

var (
	serverURL     string
	fileURL       string
	title         string
	slug          string
	allowDownload bool
	allowPrint    bool
	settingsRef   string
)

// publishCmd publishes one document from a source URL
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a PDF from a source URL",
	Long: `Publish fetches a PDF from the given source URL through the server and
prints the view and stats links.

Options can be given as flags or restored from a saved settings reference
(--settings), with flags taking precedence.`,
	RunE: runPublish,
}

func runPublish(cmd *cobra.Command, args []string) error {
	if fileURL == "" {
		return fmt.Errorf("--file-url is required")
	}
	if title == "" {
		return fmt.Errorf("--title is required")
	}

	req := client.PublishRequest{
		FileURL: fileURL,
		Title:   title,
	}
	if saved := client.ParsePublishSettings(settingsRef); saved != nil {
		req.Slug = saved.Slug
		req.AllowDownload = saved.AllowDownload
		req.AllowPrint = saved.AllowPrint
	}
	if cmd.Flags().Changed("slug") {
		req.Slug = slug
	}
	if cmd.Flags().Changed("allow-download") {
		req.AllowDownload = allowDownload
	}
	if cmd.Flags().Changed("allow-print") {
		req.AllowPrint = allowPrint
	}

	res, err := client.New(serverURL).Publish(cmd.Context(), req)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "send-worker server base URL")

	publishCmd.Flags().StringVar(&fileURL, "file-url", "", "source URL of the PDF to publish")
	publishCmd.Flags().StringVar(&title, "title", "", "document title")
	publishCmd.Flags().StringVar(&slug, "slug", "", "custom slug (sanitized server-side)")
	publishCmd.Flags().BoolVar(&allowDownload, "allow-download", false, "let viewers download the file")
	publishCmd.Flags().BoolVar(&allowPrint, "allow-print", false, "let viewers print the document")
	publishCmd.Flags().StringVar(&settingsRef, "settings", "", "saved publish settings reference (JSON)")

	rootCmd.AddCommand(publishCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/smazurov/lednode/internal/api"
)

// CreateStatusCmd creates the status command.
func CreateStatusCmd() *cobra.Command {
	var url string
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Query a node's status over HTTP",
		Long:  `Fetches /api/status from a running node and prints the active command and link health.`,
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			client := &http.Client{Timeout: 5 * time.Second}

			req, err := http.NewRequest(http.MethodGet, url+"/api/status", nil)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if username != "" {
				req.SetBasicAuth(username, password)
			}

			resp, err := client.Do(req)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: node unreachable at %s: %v\n", url, err)
				os.Exit(1)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				fmt.Fprintf(os.Stderr, "Error: node returned %s\n", resp.Status)
				os.Exit(1)
			}

			var status api.StatusData
			if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
				fmt.Fprintf(os.Stderr, "Error: decoding response: %v\n", err)
				os.Exit(1)
			}

			link := "disconnected"
			if status.Connected {
				link = "connected"
			}

			fmt.Printf("Pattern:    %s\n", status.Pattern)
			fmt.Printf("Color:      #%02X%02X%02X\n", status.Color[0], status.Color[1], status.Color[2])
			fmt.Printf("Brightness: %d\n", status.Brightness)
			fmt.Printf("Speed:      %dms\n", status.Speed)
			fmt.Printf("Link:       %s\n", link)
			fmt.Printf("Received:   %d\n", status.Received)
			if status.LastReceive != "" {
				fmt.Printf("Last seen:  %s\n", status.LastReceive)
			}
		},
	}

	cmd.Flags().StringVar(&url, "url", "http://127.0.0.1:8090", "Node API base URL")
	cmd.Flags().StringVar(&username, "username", "", "Basic auth username")
	cmd.Flags().StringVar(&password, "password", "", "Basic auth password")

	return cmd
}

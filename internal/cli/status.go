package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/config"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/health"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current status of a running loader service",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	url := fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port)

	resp, err := client.Get(url)
	if err != nil {
		slog.Error("Failed to reach loader service", "url", url, "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var status health.Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		slog.Error("Failed to decode status", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "STATUS\tONLINE\tQUALITY\tCACHED")
	_, _ = fmt.Fprintf(w, "%s\t%t\t%s\t%d\n", status.Status, status.Online, status.Quality, status.CachedResources)
	_ = w.Flush()
}

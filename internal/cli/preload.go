package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/vietddude/stylelog"
	"gopkg.in/yaml.v2"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/control"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/config"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/domain"
)

var manifestPath string

var preloadCmd = &cobra.Command{
	Use:   "preload",
	Short: "Warm the caches from a manifest and exit",
	Run:   runPreload,
}

func init() {
	preloadCmd.Flags().StringVar(&manifestPath, "manifest", "preload.yaml", "manifest of resources and languages to warm")
	rootCmd.AddCommand(preloadCmd)
}

// manifest lists what to warm: binary assets by descriptor and
// localized datasets by language code.
type manifest struct {
	Resources []domain.ResourceDescriptor `yaml:"resources"`
	Languages []string                    `yaml:"languages"`
}

func runPreload(cmd *cobra.Command, args []string) {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		stylelog.InitDefault()
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	stylelog.InitDefault(&tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.RFC3339,
	})

	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		slog.Error("Failed to read manifest", "path", manifestPath, "error", err)
		os.Exit(1)
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		slog.Error("Failed to parse manifest", "path", manifestPath, "error", err)
		os.Exit(1)
	}

	app, err := control.NewService(*cfg, nil)
	if err != nil {
		slog.Error("Failed to initialize loader service", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = app.Stop(shutdownCtx)
	}()

	if len(m.Resources) > 0 {
		res := app.Loader().Preload(ctx, m.Resources)
		slog.Info("Asset preload finished",
			"succeeded", res.SuccessCount,
			"failed", res.FailureCount,
			"total", res.Total)
	}

	if len(m.Languages) > 0 {
		res := app.Loader().PreloadLanguages(ctx, m.Languages)
		slog.Info("Language preload finished",
			"succeeded", res.SuccessCount,
			"failed", res.FailureCount,
			"total", res.Total)
	}
}

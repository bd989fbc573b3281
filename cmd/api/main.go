package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/aacdash/internal/app"
	"github.com/MrJamesThe3rd/aacdash/internal/config"
	aacHttp "github.com/MrJamesThe3rd/aacdash/internal/http"
	reportHandler "github.com/MrJamesThe3rd/aacdash/internal/http/report"
	"github.com/MrJamesThe3rd/aacdash/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format); err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}

	reportService, err := app.Report(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to load report", "source", cfg.Data.Source, "error", err)
		os.Exit(1)
	}

	router := aacHttp.New(reportHandler.NewHandler(reportService), cfg.Server.CORSOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr)

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

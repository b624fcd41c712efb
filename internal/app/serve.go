package app

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/curriculumwatch/curriculumwatch/internal/auth"
	"github.com/curriculumwatch/curriculumwatch/internal/config"
	"github.com/curriculumwatch/curriculumwatch/internal/engine"
	"github.com/curriculumwatch/curriculumwatch/internal/server"
	"github.com/curriculumwatch/curriculumwatch/internal/store"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API server",
	Long: `Start the HTTP API that backs the curriculum dashboard. The server
exposes authentication, data management, analysis, and the audit trail,
and shuts down cleanly on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	addr := cfg.Listen
	if serveListen != "" {
		addr = serveListen
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	authSvc := auth.NewService(db, auth.LogCodeSender{Logger: logger})
	evaluator := engine.NewEvaluator(cfg.EngineThresholds())
	srv := server.New(db, authSvc, evaluator, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, addr)
}

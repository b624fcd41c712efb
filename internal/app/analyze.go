package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/curriculumwatch/curriculumwatch/internal/client"
	"github.com/curriculumwatch/curriculumwatch/internal/config"
	"github.com/curriculumwatch/curriculumwatch/internal/engine"
	"github.com/curriculumwatch/curriculumwatch/internal/output"
	"github.com/curriculumwatch/curriculumwatch/internal/store"
)

var analyzeServer string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Evaluate the current curriculum data",
	Long: `Run the quality evaluation over the stored curriculum data and print
findings, action items, and the overall programme status.

With --server, the analysis runs on a live curriculumwatch server. If the
server cannot be reached, the command falls back to the local database
and says so.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeServer, "server", "", "Base URL of a running server (e.g. http://127.0.0.1:8742)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	snap, result, err := fetchAnalysis(cmd, cfg)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	fmt.Println(output.Report(snap, result))
	return nil
}

// fetchAnalysis prefers the remote server when one is configured, but a
// transport failure degrades to the local database instead of aborting.
func fetchAnalysis(cmd *cobra.Command, cfg *config.Config) (engine.Snapshot, *engine.AnalysisResult, error) {
	if analyzeServer != "" {
		c := client.New(analyzeServer)
		snap, err := c.Snapshot(cmd.Context())
		if err == nil {
			var result *engine.AnalysisResult
			if result, err = c.Analysis(cmd.Context()); err == nil {
				return snap, result, nil
			}
		}
		var terr *client.TransportError
		if !errors.As(err, &terr) {
			return engine.Snapshot{}, nil, err
		}
		fmt.Fprintf(os.Stderr, "warning: %v; using local data\n", terr)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return engine.Snapshot{}, nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	snap, err := db.LoadSnapshot()
	if err != nil {
		return engine.Snapshot{}, nil, err
	}
	result, err := engine.NewEvaluator(cfg.EngineThresholds()).Evaluate(snap)
	if err != nil {
		return engine.Snapshot{}, nil, err
	}
	return snap, result, nil
}

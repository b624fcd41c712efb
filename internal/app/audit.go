package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/curriculumwatch/curriculumwatch/internal/config"
	"github.com/curriculumwatch/curriculumwatch/internal/output"
	"github.com/curriculumwatch/curriculumwatch/internal/store"
)

var auditLimit int

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent audit-log entries",
	Long: `Print the most recent audit-log entries, newest first. Every login,
registration, password change, and data replacement leaves one entry.`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().IntVar(&auditLimit, "limit", 100, "Maximum number of entries to show")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	entries, err := db.RecentAudit(auditLimit)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("no audit entries")
		return nil
	}
	tbl := output.NewTable("Time", "Actor", "Action", "Detail")
	for _, e := range entries {
		tbl.AddRow(e.LoggedAt.Local().Format(time.DateTime), e.Actor, e.Action, e.Detail)
	}
	fmt.Print(tbl.Render())
	return nil
}

package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/curriculumwatch/curriculumwatch/internal/config"
	"github.com/curriculumwatch/curriculumwatch/internal/output"
	"github.com/curriculumwatch/curriculumwatch/internal/sample"
	"github.com/curriculumwatch/curriculumwatch/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demonstration dataset",
	Long: `Replace the stored curriculum data with the built-in demonstration
dataset and create the default accounts. Accounts that already exist are
left untouched.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := sample.Seed(db); err != nil {
		return fmt.Errorf("seeding: %w", err)
	}

	fmt.Println(output.Section("Seeded demonstration data"))
	tbl := output.NewTable("Email", "Password", "Role")
	for _, acct := range sample.Accounts() {
		tbl.AddRow(acct.Email, acct.Password, acct.Role)
	}
	fmt.Print(tbl.Render())
	return nil
}

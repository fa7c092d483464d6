package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"movieverse/internal/config"
	"movieverse/internal/dashboard"
	"movieverse/internal/database"
	"movieverse/internal/repository"
)

var importCSV string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Manage the dashboard dataset",
}

var dashboardImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the dashboard CSV into PostgreSQL",
	Long: `Reads the CSV with the dashboard cleaning rules and replaces the
dashboard_movies table with it in one transaction.

Example:
  moviectl dashboard import --csv data/imdb_clean.csv`,
	RunE: runDashboardImport,
}

func init() {
	RootCmd.AddCommand(dashboardCmd)
	dashboardCmd.AddCommand(dashboardImportCmd)
	dashboardImportCmd.Flags().StringVar(&importCSV, "csv", "", "CSV file to import (default DASHBOARD_CSV)")
}

func runDashboardImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	path := importCSV
	if path == "" {
		path = cfg.Dashboard.CSVPath
	}

	records, err := dashboard.LoadFile(path)
	if err != nil {
		return err
	}

	db, err := database.NewPostgres(cmd.Context(), cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.NewCatalogRepository(db).ReplaceAll(cmd.Context(), records); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows from %s\n", len(records), path)
	return nil
}

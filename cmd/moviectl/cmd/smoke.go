package cmd

import (
	"fmt"
	"net/http"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"movieverse/internal/browse"
	"movieverse/internal/config"
	"movieverse/internal/tmdb"
)

var smokePage int

var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Fetch one page of top rated movies and print it",
	Long: `Performs a single top rated call against TMDB, prints the HTTP status
and the normalized rows. A non-200 status is printed before the command fails.

Example:
  moviectl smoke --page 2`,
	RunE: runSmoke,
}

func init() {
	RootCmd.AddCommand(smokeCmd)
	smokeCmd.Flags().IntVarP(&smokePage, "page", "p", 1, "page to fetch")
}

func runSmoke(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language, cfg.TMDB.Timeout)
	resp, err := client.TopRated(cmd.Context(), smokePage)
	out := cmd.OutOrStdout()
	if err != nil {
		if status := tmdb.StatusCode(err); status != 0 {
			fmt.Fprintln(out, status)
		}
		return fmt.Errorf("top rated page %d: %w", smokePage, err)
	}
	fmt.Fprintln(out, http.StatusOK)

	rows := browse.Normalize(resp.Results)
	fmt.Fprintf(out, "page %d of %d, %d rows\n", resp.Page, resp.TotalPages, len(rows))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tRATING\tRELEASED\tPOSTER")
	for _, r := range rows {
		poster := r.PosterURL
		if poster == "" {
			poster = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%.1f\t%s\t%s\n", r.ID, r.Title, r.Rating, r.ReleaseDate, poster)
	}
	return tw.Flush()
}

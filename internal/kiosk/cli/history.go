package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	historyLimit  int
	historyOffset int
)

var historyCmd = &cobra.Command{
	Use:   "history <user-id>",
	Short: "Browse a user's analysis history",
	Args:  cobra.ExactArgs(1),
	FParseErrWhitelist: cobra.FParseErrWhitelist{
		UnknownFlags: true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newClient()
		defer func() { _ = client.Close() }()

		page, err := client.AnalysisHistory(cmd.Context(), args[0], historyLimit, historyOffset)
		if err != nil {
			return err
		}

		fmt.Printf("%d analyses (showing %d from offset %d)\n\n", page.Total, len(page.Analyses), page.Offset)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIMESTAMP\tOVERALL\tSKIN\tPOSTURE\tEYES\tTHERMAL")
		for _, a := range page.Analyses {
			fmt.Fprintf(w, "%s\t%.1f\t%s\t%s\t%s\t%s\n",
				a.Timestamp, a.ComputedScore,
				cell(a.SkinScore), cell(a.PostureScore), cell(a.EyeScore), cell(a.ThermalScore))
		}
		return w.Flush()
	},
}

// cell formats a nullable score; absent metrics print as "-".
func cell(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "max entries to fetch")
	historyCmd.Flags().IntVar(&historyOffset, "offset", 0, "entries to skip")
	rootCmd.AddCommand(historyCmd)
}

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/planwatch/planwatch/internal/pipeline"
	"github.com/planwatch/planwatch/pkg/reduce"
)

var carriersCmd = &cobra.Command{
	Use:   "carriers",
	Short: "List supported carriers and their pricing pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CARRIER\tPRICING PAGE")
		for _, c := range reduce.Carriers() {
			fmt.Fprintf(w, "%s\t%s\n", c.String(), pipeline.PageURL(c))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(carriersCmd)
}

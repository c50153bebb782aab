package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/LuckyTW/ppt-creator/internal/service/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the available themes",
	Args:  cobra.NoArgs,
	RunE:  runThemes,
}

func runThemes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRIMARY\tDESCRIPTION")
	for _, p := range theme.Previews() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.PreviewColors.Primary, p.Description)
	}
	return w.Flush()
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/dagrapport/internal/extract"
)

var splitJSON bool

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split [text|-]",
	Short: "Split a day narrative into start, middle and end",
	Long: `Split cuts the narrative at the first "daarna"/"vervolgens" and, after
that, at the first "aan het einde"/"tot slot". The markers themselves are
left out.

Example:
  dagrapport split "We gingen naar het bos. Daarna aten we. Tot slot lazen we."`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		seg := extract.SplitTimeline(text)
		out := cmd.OutOrStdout()

		if splitJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(seg)
		}

		fmt.Fprintf(out, "Begin:  %s\n", seg.Start)
		fmt.Fprintf(out, "Midden: %s\n", seg.Mid)
		fmt.Fprintf(out, "Eind:   %s\n", seg.End)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)
	splitCmd.Flags().BoolVar(&splitJSON, "json", false, "print JSON")
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSourcesCmd(opts *rootOptions) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List the time sets in the source document",
		Long:  "List the time sets in the source document. Sources without an id are shown with the id generated for them.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, doc, err := opts.buildTimeline(cmd)
			if err != nil {
				return err
			}
			defer tl.Close()

			out := cmd.OutOrStdout()
			if asYAML {
				data, err := doc.Marshal()
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			tbl := &table{headers: []string{"ID", "NAME", "TIMES", "ENABLED"}}
			for _, src := range doc.Sources {
				set, ok := tl.TimeSet(src.ID)
				if !ok {
					continue
				}
				tbl.addRow(src.ID, src.Name, fmt.Sprintf("%d", len(set.Times)), fmt.Sprintf("%d", len(set.Enabled)))
			}
			return tbl.write(out)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the document as YAML with generated ids filled in")
	return cmd
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/schemakit/svc/patient"
)

func newModelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the available models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSCHEMA\tFIELDS\tDESCRIPTION")
			for _, m := range patient.Catalog() {
				marker := ""
				if m.Schema == a.model {
					marker = " *"
				}
				fmt.Fprintf(w, "%s%s\t%s\t%d\t%s\n", m.Name, marker, m.Schema.Name(), len(m.Schema.FieldNames()), m.Summary)
			}
			return w.Flush()
		},
	}
}
